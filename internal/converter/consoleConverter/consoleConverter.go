package consoleConverter

import (
	"fmt"
	"strings"

	"book_catalog/internal/model"
)

func Menu() string {
	return strings.Join([]string{
		"📚 Welcome to Your Book Collection Manager! 📚",
		"1. Add a new book",
		"2. Borrow a book",
		"3. Return a book",
		"4. View all books",
		"5. Exit",
	}, "\n")
}

func BookLine(index int, book model.BookView) string {
	return fmt.Sprintf("%d. %s by %s (%s) - %s - %s", index, book.Title, book.Author, book.Year, book.Genre, book.Status)
}

func BooksList(books []model.BookView) string {
	sb := strings.Builder{}
	sb.WriteString("Your Book Collection:\n")
	for i, b := range books {
		sb.WriteString(BookLine(i+1, b))
		sb.WriteString("\n")
	}
	return sb.String()
}

func BookBorrowed(res model.BorrowResult) string {
	return fmt.Sprintf("Book borrowed successfully! Due date: %s", res.DueDate)
}

func BookReturned(res model.ReturnResult, currency string) string {
	return fmt.Sprintf("Book returned successfully! Fine: %s%d", currency, res.Fine)
}

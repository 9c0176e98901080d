package console

const (
	internalErrMsg        string = "Something went wrong, the catalog was not changed."
	invalidChoice         string = "Invalid choice. Please try again."
	chooseOption          string = "Please choose an option (1-5): "
	bookAdded             string = "Book added successfully!"
	bookNotFound          string = "Book not found!"
	bookAlreadyBorrowed   string = "This book is already borrowed!"
	bookNotBorrowed       string = "Book not found or not borrowed by user!"
	emptyUsername         string = "Username can't be empty."
	emptyCollection       string = "Your collection is empty."
	unknownSortOption     string = "Unknown sort option, use title, author, genre or year."
	invalidRating         string = "Rating must be a number between 1 and 5."
	goodbye               string = "Thank you for using Book Collection Manager. Goodbye!"
	promptTitle           string = "Enter book title: "
	promptAuthor          string = "Enter author: "
	promptYear            string = "Enter publication year: "
	promptGenre           string = "Enter genre: "
	promptRead            string = "Have you read this book? (yes/no): "
	promptRating          string = "Rate the book (1-5): "
	promptReview          string = "Write a short review: "
	promptBorrowTitle     string = "Enter the title of the book to borrow: "
	promptReturnTitle     string = "Enter the title of the book to return: "
	promptUsername        string = "Enter your username: "
	promptSort            string = "Sort by (title/author/genre): "
	invalidInputMsgPrefix string = "Invalid input: "
)

package model

const (
	StatusRead   = "Read"
	StatusUnread = "Unread"
)

type Book struct {
	Title   string   `json:"title"`
	Author  string   `json:"author"`
	Year    string   `json:"year"`
	Genre   string   `json:"genre"`
	Read    bool     `json:"read"`
	Rating  *float64 `json:"rating"`
	Review  string   `json:"review"`
	DueDate *Date    `json:"due_date"`
}

// IsLent reports whether the book is currently out on loan.
func (b Book) IsLent() bool {
	return b.DueDate != nil
}

func (b Book) ReadStatus() string {
	if b.Read {
		return StatusRead
	}
	return StatusUnread
}

func (b Book) clone() Book {
	if b.Rating != nil {
		rating := *b.Rating
		b.Rating = &rating
	}
	if b.DueDate != nil {
		dueDate := *b.DueDate
		b.DueDate = &dueDate
	}
	return b
}

type BookView struct {
	Book
	Status string
}

func NewBookView(book Book) BookView {
	return BookView{Book: book, Status: book.ReadStatus()}
}

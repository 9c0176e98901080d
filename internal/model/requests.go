package model

type AddBookRequest struct {
	Title  string
	Author string
	Year   string
	Genre  string
	Read   bool
	Rating *float64
	Review string
}

type BorrowResult struct {
	Title    string
	Username string
	DueDate  Date
}

type ReturnResult struct {
	Title    string
	Username string
	DaysLate int
	Fine     int
}

type SortKey string

const (
	SortNone   SortKey = ""
	SortTitle  SortKey = "title"
	SortAuthor SortKey = "author"
	SortGenre  SortKey = "genre"
	SortYear   SortKey = "year"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortNone, SortTitle, SortAuthor, SortGenre, SortYear:
		return true
	}
	return false
}

// Field returns the value of b the key sorts by; an empty key sorts
// everything equal.
func (k SortKey) Field(b Book) string {
	switch k {
	case SortTitle:
		return b.Title
	case SortAuthor:
		return b.Author
	case SortGenre:
		return b.Genre
	case SortYear:
		return b.Year
	}
	return ""
}

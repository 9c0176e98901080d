package catalogService

import "errors"

var (
	ErrNotFound        = errors.New("book not found")
	ErrNotBorrowed     = errors.New("book not borrowed by user")
	ErrAlreadyBorrowed = errors.New("book is already borrowed")
	ErrInvalidInput    = errors.New("invalid input")
)

package model

import "strings"

// Catalog is the whole persisted state: the book collection in insertion
// order and the titles each user currently has on loan.
type Catalog struct {
	Books []Book              `json:"books"`
	Users map[string][]string `json:"users"`
}

func NewCatalog() Catalog {
	return Catalog{
		Books: []Book{},
		Users: map[string][]string{},
	}
}

// Normalize replaces nil collections so that an empty catalog is always
// encoded as {"books": [], "users": {}}.
func (c *Catalog) Normalize() {
	if c.Books == nil {
		c.Books = []Book{}
	}
	if c.Users == nil {
		c.Users = map[string][]string{}
	}
}

func (c Catalog) Clone() Catalog {
	cp := Catalog{
		Books: make([]Book, 0, len(c.Books)),
		Users: make(map[string][]string, len(c.Users)),
	}
	for _, b := range c.Books {
		cp.Books = append(cp.Books, b.clone())
	}
	for user, titles := range c.Users {
		cp.Users[user] = append([]string{}, titles...)
	}
	return cp
}

// FindBook returns the index of the first book whose title matches
// case-insensitively, or -1.
func (c Catalog) FindBook(title string) int {
	for i, b := range c.Books {
		if strings.EqualFold(b.Title, title) {
			return i
		}
	}
	return -1
}

// FindLoan returns the index of the first loan entry of username matching
// title case-insensitively, or -1.
func (c Catalog) FindLoan(username, title string) int {
	for i, t := range c.Users[username] {
		if strings.EqualFold(t, title) {
			return i
		}
	}
	return -1
}

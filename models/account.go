package models

import "time"

type Account struct {
	ID           string      `json:"_id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"` // bcrypt hash
	SavedBooks   []BookEntry `json:"savedBooks"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// BookCount is the number of saved books, exposed to clients as bookCount.
func (a *Account) BookCount() int {
	return len(a.SavedBooks)
}

// HasBook reports whether bookID is already in the saved collection.
func (a *Account) HasBook(bookID string) bool {
	for _, b := range a.SavedBooks {
		if b.BookID == bookID {
			return true
		}
	}
	return false
}

package models

import (
	"github.com/google/uuid"
)

// Book is a single catalog entry. There is exactly one copy of each book;
// availability is a flag, not a count.
type Book struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genre       string `json:"genre"`
	IsAvailable bool   `json:"isAvailable"`
}

// Reservation records who holds a book. Title, Author and Genre are copied
// from the Book at reservation time and are never re-synced with later
// catalog edits; a reservation is a historical receipt, not a live join.
type Reservation struct {
	ID              uuid.UUID `json:"id"`
	BookID          int       `json:"bookId"`
	UserID          string    `json:"userid"`
	UserName        string    `json:"name"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Genre           string    `json:"genre"`
	ReservationDate string    `json:"reservationDate"`
}

// User is a registered account. Users are immutable once registered; there
// are no update or delete operations.
type User struct {
	ID       string `json:"userid"`
	Password string `json:"-"`
	Name     string `json:"name"`
}

package stores

import "errors"

var (
	// ErrDuplicateID is returned when an insert would reuse an existing
	// book or user id.
	ErrDuplicateID = errors.New("id already exists")

	// ErrNotFound is returned when the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNameTooShort is returned by Register when the display name has
	// fewer than MinNameLength characters.
	ErrNameTooShort = errors.New("name must be at least 3 characters")
)

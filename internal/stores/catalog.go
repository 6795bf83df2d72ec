package stores

import (
	"strings"
	"sync"

	"bookreserve/internal/models"
)

// BookPatch is a partial update of a catalog entry. Nil fields are left
// untouched.
type BookPatch struct {
	Title       *string
	Author      *string
	Genre       *string
	IsAvailable *bool
}

// CatalogStore owns the set of Book records. It is safe for concurrent use,
// but callers that need a book's availability and its ledger entry to agree
// must go through the reservation service, which serializes transitions
// across both stores.
type CatalogStore struct {
	mu    sync.RWMutex
	books []*models.Book // insertion order, preserved by searches
	byID  map[int]*models.Book
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{byID: make(map[int]*models.Book)}
}

// Load seeds the catalog with books as-is, keeping their availability flags.
// Rows with ids already present are skipped.
func (s *CatalogStore) Load(books []models.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range books {
		if _, ok := s.byID[b.ID]; ok {
			continue
		}
		book := b
		s.books = append(s.books, &book)
		s.byID[book.ID] = &book
	}
}

// Add inserts a new book, always as available.
func (s *CatalogStore) Add(book models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[book.ID]; ok {
		return ErrDuplicateID
	}
	book.IsAvailable = true
	s.books = append(s.books, &book)
	s.byID[book.ID] = &book
	return nil
}

// Find returns the book with the given id, if any.
func (s *CatalogStore) Find(id int) (models.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.byID[id]
	if !ok {
		return models.Book{}, false
	}
	return *b, true
}

// FindByTitle returns all books whose title contains the given substring,
// case-insensitively, in insertion order. An empty substring matches every
// book.
func (s *CatalogStore) FindByTitle(substr string) []models.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(substr)
	matches := make([]models.Book, 0, len(s.books))
	for _, b := range s.books {
		if needle == "" || strings.Contains(strings.ToLower(b.Title), needle) {
			matches = append(matches, *b)
		}
	}
	return matches
}

// FindByExactTitle returns the first book whose whole title equals the given
// one, case-insensitively. Discovery (FindByTitle) is fuzzy; actions that
// change state match exactly.
func (s *CatalogStore) FindByExactTitle(title string) (models.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.books {
		if strings.EqualFold(b.Title, title) {
			return *b, true
		}
	}
	return models.Book{}, false
}

// Update applies a partial patch to the book with the given id.
func (s *CatalogStore) Update(id int, patch BookPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Author != nil {
		b.Author = *patch.Author
	}
	if patch.Genre != nil {
		b.Genre = *patch.Genre
	}
	if patch.IsAvailable != nil {
		b.IsAvailable = *patch.IsAvailable
	}
	return nil
}

// SetAvailability flips the availability flag of a single book.
func (s *CatalogStore) SetAvailability(id int, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	b.IsAvailable = available
	return nil
}

// Remove deletes the book with the given id. A second call for the same id
// fails with ErrNotFound.
func (s *CatalogStore) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	for i, b := range s.books {
		if b.ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			break
		}
	}
	return nil
}

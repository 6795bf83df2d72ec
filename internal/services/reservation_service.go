package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"bookreserve/internal/models"
	"bookreserve/internal/stores"
)

var (
	// ErrUserNotFound is returned when the reserving user id is unknown.
	ErrUserNotFound = errors.New("user not found")

	// ErrBookUnavailable is returned when no book matches the requested
	// title or the matching book is already reserved. The facade presents
	// this and ErrUserNotFound as the same generic outcome so callers
	// cannot tell which precondition failed.
	ErrBookUnavailable = errors.New("book not found or unavailable")
)

// ReservationService is the only code path allowed to change a book's
// availability together with its ledger entry. Every state-changing method
// runs as one critical section over the catalog/ledger pair, so no reader
// observes a book marked unavailable without its reservation or vice versa.
type ReservationService interface {
	// Catalog reads.
	SearchBooks(title string) []models.Book

	// Transitions.
	Reserve(userID, bookTitle string) (*models.Reservation, error)
	Release(bookID int) error
	SetAvailability(bookID int, available bool) error
	AddBook(id int, title, author, genre string) error
	UpdateBook(id int, patch stores.BookPatch) error
	DeleteBook(id int) error

	// Ledger reads.
	BookReservation(bookID int) (models.Reservation, bool)
	AllReservations() []models.Reservation
	ReservationsForName(name string) []models.Reservation

	// Snapshot support.
	ExportLedger() []models.Reservation
	RestoreLedger(entries []models.Reservation)

	// User operations, delegated to the directory.
	IDExists(id string) bool
	RegisterUser(id, password, name string) error
	Login(id, password string) bool
}

type reservationService struct {
	// mu is scoped to the (catalog, ledger) pair. Transitions take it
	// exclusively, combined reads take it shared. Never lock per book:
	// the invariant spans both stores.
	mu      sync.RWMutex
	catalog *stores.CatalogStore
	ledger  *stores.ReservationLedger
	users   *stores.UserDirectory
	now     func() time.Time
}

// NewReservationService wires the three stores into a ReservationService.
func NewReservationService(catalog *stores.CatalogStore, ledger *stores.ReservationLedger, users *stores.UserDirectory) ReservationService {
	return &reservationService{
		catalog: catalog,
		ledger:  ledger,
		users:   users,
		now:     time.Now,
	}
}

// ─── Catalog Reads ────────────────────────────────────────────────────────────

func (s *reservationService) SearchBooks(title string) []models.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.FindByTitle(title)
}

// ─── Transitions ──────────────────────────────────────────────────────────────

// Reserve moves a book from Available to Reserved and records the holder.
// The title must match the whole book title, case-insensitively; discovery
// via SearchBooks is fuzzy, actions are exact. Identity is resolved before
// entering the critical section — the directory has its own lock.
func (s *reservationService) Reserve(userID, bookTitle string) (*models.Reservation, error) {
	user, ok := s.users.Find(userID)
	if !ok {
		log.Printf("[WARN] Reserve: unknown user %q", userID)
		return nil, ErrUserNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.catalog.FindByExactTitle(bookTitle)
	if !ok || !book.IsAvailable {
		log.Printf("[INFO] Reserve: %q not reservable for user %q", bookTitle, userID)
		return nil, ErrBookUnavailable
	}

	if err := s.catalog.SetAvailability(book.ID, false); err != nil {
		return nil, err
	}
	reservation := models.Reservation{
		ID:              uuid.New(),
		BookID:          book.ID,
		UserID:          user.ID,
		UserName:        user.Name,
		Title:           book.Title,
		Author:          book.Author,
		Genre:           book.Genre,
		ReservationDate: s.now().Format(time.DateOnly),
	}
	s.ledger.Upsert(reservation)

	log.Printf("[INFO] Reserve: book %d (%q) reserved by user %q on %s", book.ID, book.Title, user.ID, reservation.ReservationDate)
	return &reservation, nil
}

// Release moves a book back to Available and drops its ledger entry.
func (s *reservationService) Release(bookID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.catalog.SetAvailability(bookID, true); err != nil {
		return err
	}
	s.ledger.RemoveByBook(bookID)
	log.Printf("[INFO] Release: book %d available again", bookID)
	return nil
}

// SetAvailability is the administrative override. Setting a book available
// removes any ledger entry; setting it unavailable does NOT fabricate a
// reservation, leaving the book held by nobody. That asymmetry is kept
// deliberately.
func (s *reservationService) SetAvailability(bookID int, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.catalog.SetAvailability(bookID, available); err != nil {
		return err
	}
	if available {
		s.ledger.RemoveByBook(bookID)
	}
	log.Printf("[INFO] SetAvailability: book %d available=%v", bookID, available)
	return nil
}

func (s *reservationService) AddBook(id int, title, author, genre string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.catalog.Add(models.Book{ID: id, Title: title, Author: author, Genre: genre})
	if err != nil {
		log.Printf("[WARN] AddBook: id %d rejected: %v", id, err)
		return err
	}
	log.Printf("[INFO] AddBook: book %d (%q) added", id, title)
	return nil
}

// UpdateBook applies a partial patch. Availability edits through this path
// are routed through the override semantics so the ledger stays consistent:
// patching a book available also drops its reservation.
func (s *reservationService) UpdateBook(id int, patch stores.BookPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.catalog.Update(id, patch); err != nil {
		return err
	}
	if patch.IsAvailable != nil && *patch.IsAvailable {
		s.ledger.RemoveByBook(id)
	}
	log.Printf("[INFO] UpdateBook: book %d patched", id)
	return nil
}

// DeleteBook removes the reservation for the book (if any), then the book,
// in one critical section.
func (s *reservationService) DeleteBook(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.catalog.Find(id); !ok {
		return stores.ErrNotFound
	}
	s.ledger.RemoveByBook(id)
	if err := s.catalog.Remove(id); err != nil {
		return err
	}
	log.Printf("[INFO] DeleteBook: book %d and its reservation removed", id)
	return nil
}

// ─── Ledger Reads ─────────────────────────────────────────────────────────────

func (s *reservationService) BookReservation(bookID int) (models.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.FindByBook(bookID)
}

func (s *reservationService) AllReservations() []models.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.All()
}

// ReservationsForName resolves a display name to a user and lists that
// user's reservations. An unknown name yields an empty list, not an error.
// Names are not unique; the earliest registration with that name wins.
func (s *reservationService) ReservationsForName(name string) []models.Reservation {
	user, ok := s.users.FindByName(name)
	if !ok {
		return []models.Reservation{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.FindByUser(user.ID)
}

// ─── Snapshot Support ─────────────────────────────────────────────────────────

func (s *reservationService) ExportLedger() []models.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.All()
}

// RestoreLedger reloads reservations saved by a previous run and re-marks
// the affected books unavailable. Entries whose book no longer exists in
// the catalog are dropped.
func (s *reservationService) RestoreLedger(entries []models.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.Reservation, 0, len(entries))
	for _, e := range entries {
		if _, ok := s.catalog.Find(e.BookID); !ok {
			log.Printf("[WARN] RestoreLedger: dropping reservation for missing book %d", e.BookID)
			continue
		}
		if err := s.catalog.SetAvailability(e.BookID, false); err != nil {
			continue
		}
		kept = append(kept, e)
	}
	s.ledger.Replace(kept)
	log.Printf("[INFO] RestoreLedger: %d of %d reservations restored", len(kept), len(entries))
}

// ─── User Operations ──────────────────────────────────────────────────────────

func (s *reservationService) IDExists(id string) bool {
	return s.users.IDExists(id)
}

func (s *reservationService) RegisterUser(id, password, name string) error {
	if err := s.users.Register(id, password, name); err != nil {
		log.Printf("[WARN] RegisterUser: %q rejected: %v", id, err)
		return err
	}
	log.Printf("[INFO] RegisterUser: %q registered", id)
	return nil
}

func (s *reservationService) Login(id, password string) bool {
	_, ok := s.users.Authenticate(id, password)
	return ok
}

package stores

import (
	"sync"

	"bookreserve/internal/models"
)

// ReservationLedger owns the set of Reservation records, at most one per
// book id. Uniqueness is enforced by replacement: upserting a reservation
// for an already-reserved book drops the old entry.
type ReservationLedger struct {
	mu      sync.RWMutex
	entries []models.Reservation // insertion order
}

func NewReservationLedger() *ReservationLedger {
	return &ReservationLedger{}
}

// Upsert stores the reservation, replacing any existing entry for the same
// book id. The new entry moves to the end of the insertion order.
func (l *ReservationLedger) Upsert(r models.Reservation) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.removeLocked(r.BookID)
	l.entries = append(l.entries, r)
}

// RemoveByBook deletes the reservation for the given book id, if any.
func (l *ReservationLedger) RemoveByBook(bookID int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.removeLocked(bookID)
}

func (l *ReservationLedger) removeLocked(bookID int) {
	for i, e := range l.entries {
		if e.BookID == bookID {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

// FindByBook returns the reservation for the given book id, if any.
func (l *ReservationLedger) FindByBook(bookID int) (models.Reservation, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.entries {
		if e.BookID == bookID {
			return e, true
		}
	}
	return models.Reservation{}, false
}

// FindByUser returns all reservations held by the given user id, in
// insertion order.
func (l *ReservationLedger) FindByUser(userID string) []models.Reservation {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Reservation, 0)
	for _, e := range l.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// All returns every reservation, in insertion order.
func (l *ReservationLedger) All() []models.Reservation {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Reservation, len(l.entries))
	copy(out, l.entries)
	return out
}

// Replace swaps the whole ledger content, used when restoring a snapshot.
func (l *ReservationLedger) Replace(entries []models.Reservation) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make([]models.Reservation, len(entries))
	copy(l.entries, entries)
}

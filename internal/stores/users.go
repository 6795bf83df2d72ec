package stores

import (
	"sync"
	"unicode/utf8"

	"bookreserve/internal/models"
)

// MinNameLength is the minimum display-name length accepted at registration.
const MinNameLength = 3

// Journal receives a durable copy of every user that registers successfully.
type Journal interface {
	Append(user models.User) error
}

// UserDirectory owns the User records. Users are immutable once registered.
// Its lock is independent of the reservation stores; the reservation service
// only reads from it to resolve a requester's identity.
type UserDirectory struct {
	mu      sync.RWMutex
	users   []models.User // insertion order
	byID    map[string]int
	journal Journal
}

// NewUserDirectory returns a directory that mirrors successful registrations
// to the given journal. A nil journal keeps registrations in memory only.
func NewUserDirectory(journal Journal) *UserDirectory {
	return &UserDirectory{byID: make(map[string]int), journal: journal}
}

// Load seeds the directory without touching the journal. Rows with ids
// already present are skipped.
func (d *UserDirectory) Load(users []models.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range users {
		if _, ok := d.byID[u.ID]; ok {
			continue
		}
		d.byID[u.ID] = len(d.users)
		d.users = append(d.users, u)
	}
}

// IDExists reports whether a user with the given id is registered.
func (d *UserDirectory) IDExists(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.byID[id]
	return ok
}

// Register adds a new user. The name length is validated before the
// duplicate-id check, so a short name is rejected even when the id is taken.
// The journal write happens after the in-memory insert; if it fails the
// insert is rolled back and the error returned.
func (d *UserDirectory) Register(id, password, name string) error {
	if utf8.RuneCountInString(name) < MinNameLength {
		return ErrNameTooShort
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byID[id]; ok {
		return ErrDuplicateID
	}

	user := models.User{ID: id, Password: password, Name: name}
	d.byID[id] = len(d.users)
	d.users = append(d.users, user)

	if d.journal != nil {
		if err := d.journal.Append(user); err != nil {
			delete(d.byID, id)
			d.users = d.users[:len(d.users)-1]
			return err
		}
	}
	return nil
}

// Authenticate compares the stored password as an opaque string.
func (d *UserDirectory) Authenticate(id, password string) (models.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.byID[id]
	if !ok || d.users[i].Password != password {
		return models.User{}, false
	}
	return d.users[i], true
}

// Find returns the user with the given id, if any.
func (d *UserDirectory) Find(id string) (models.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	i, ok := d.byID[id]
	if !ok {
		return models.User{}, false
	}
	return d.users[i], true
}

// FindByName returns the first registered user with the given display name.
// Names are not unique; when several users share one, the earliest
// registration wins.
func (d *UserDirectory) FindByName(name string) (models.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, u := range d.users {
		if u.Name == name {
			return u, true
		}
	}
	return models.User{}, false
}

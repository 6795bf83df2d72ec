package stores_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreserve/internal/models"
	"bookreserve/internal/stores"
)

func seededCatalog(t *testing.T) *stores.CatalogStore {
	t.Helper()
	s := stores.NewCatalogStore()
	require.NoError(t, s.Add(models.Book{ID: 1, Title: "Dune", Author: "Frank Herbert", Genre: "SF"}))
	require.NoError(t, s.Add(models.Book{ID: 2, Title: "Dune Messiah", Author: "Frank Herbert", Genre: "SF"}))
	require.NoError(t, s.Add(models.Book{ID: 3, Title: "Foundation", Author: "Isaac Asimov", Genre: "SF"}))
	return s
}

func TestAddRejectsDuplicateID(t *testing.T) {
	s := seededCatalog(t)
	err := s.Add(models.Book{ID: 1, Title: "Other", Author: "X", Genre: "Y"})
	assert.ErrorIs(t, err, stores.ErrDuplicateID)
}

func TestAddAlwaysInsertsAvailable(t *testing.T) {
	s := stores.NewCatalogStore()
	require.NoError(t, s.Add(models.Book{ID: 9, Title: "T", Author: "A", Genre: "G", IsAvailable: false}))
	b, ok := s.Find(9)
	require.True(t, ok)
	assert.True(t, b.IsAvailable)
}

func TestLoadKeepsAvailabilityFlags(t *testing.T) {
	s := stores.NewCatalogStore()
	s.Load([]models.Book{{ID: 1, Title: "T", Author: "A", Genre: "G", IsAvailable: false}})
	b, ok := s.Find(1)
	require.True(t, ok)
	assert.False(t, b.IsAvailable)
}

func TestFindByTitleSubstringCaseInsensitive(t *testing.T) {
	s := seededCatalog(t)

	got := s.FindByTitle("dune")
	require.Len(t, got, 2)
	// Insertion order is preserved.
	assert.Equal(t, "Dune", got[0].Title)
	assert.Equal(t, "Dune Messiah", got[1].Title)

	assert.Len(t, s.FindByTitle(""), 3)
	assert.Empty(t, s.FindByTitle("nope"))
}

func TestFindByExactTitleIsWholeTitleOnly(t *testing.T) {
	s := seededCatalog(t)

	b, ok := s.FindByExactTitle("dUNe")
	require.True(t, ok)
	assert.Equal(t, 1, b.ID)

	// Substrings match discovery, not exact lookup.
	_, ok = s.FindByExactTitle("Dun")
	assert.False(t, ok)
}

func TestUpdateAppliesPartialPatch(t *testing.T) {
	s := seededCatalog(t)

	title := "Dune (Deluxe)"
	require.NoError(t, s.Update(1, stores.BookPatch{Title: &title}))

	b, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, "Dune (Deluxe)", b.Title)
	assert.Equal(t, "Frank Herbert", b.Author, "untouched field must survive")
	assert.Equal(t, "SF", b.Genre)
}

func TestUpdateUnknownID(t *testing.T) {
	s := seededCatalog(t)
	title := "X"
	assert.ErrorIs(t, s.Update(99, stores.BookPatch{Title: &title}), stores.ErrNotFound)
}

func TestRemoveSucceedsOnlyOnce(t *testing.T) {
	s := seededCatalog(t)
	require.NoError(t, s.Remove(2))
	assert.ErrorIs(t, s.Remove(2), stores.ErrNotFound)

	_, ok := s.Find(2)
	assert.False(t, ok)
	assert.Len(t, s.FindByTitle(""), 2)
}

func TestSetAvailability(t *testing.T) {
	s := seededCatalog(t)
	require.NoError(t, s.SetAvailability(1, false))
	b, _ := s.Find(1)
	assert.False(t, b.IsAvailable)

	assert.ErrorIs(t, s.SetAvailability(99, true), stores.ErrNotFound)
}

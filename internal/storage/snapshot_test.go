package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreserve/internal/models"
	"bookreserve/internal/storage"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	in := []models.Reservation{
		{
			ID:              uuid.New(),
			BookID:          1,
			UserID:          "alice",
			UserName:        "Alice A",
			Title:           "Dune",
			Author:          "Frank Herbert",
			Genre:           "SF",
			ReservationDate: "2026-08-28",
		},
	}

	require.NoError(t, storage.SaveSnapshot(path, in))
	out, err := storage.LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaveSnapshotOverwritesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, storage.SaveSnapshot(path, []models.Reservation{{BookID: 1, UserID: "alice"}}))
	require.NoError(t, storage.SaveSnapshot(path, nil))

	out, err := storage.LoadSnapshot(path)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLoadSnapshotRejectsGarbage(t *testing.T) {
	path := writeFile(t, "ledger.json", "{not json")
	_, err := storage.LoadSnapshot(path)
	assert.Error(t, err)
}

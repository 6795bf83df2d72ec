package storage

import (
	"os"

	jsoniter "github.com/json-iterator/go"

	"bookreserve/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// snapshot is the on-disk shape of a ledger dump.
type snapshot struct {
	Reservations []models.Reservation `json:"reservations"`
}

// LoadSnapshot reads a ledger snapshot written by SaveSnapshot.
func LoadSnapshot(path string) ([]models.Reservation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return snap.Reservations, nil
}

// SaveSnapshot writes the ledger to a temp file and renames it into place,
// so a crash mid-write never truncates the previous snapshot.
func SaveSnapshot(path string, reservations []models.Reservation) error {
	raw, err := json.Marshal(snapshot{Reservations: reservations})
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

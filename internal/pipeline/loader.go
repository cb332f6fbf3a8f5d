package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/tracks/internal/model"
	"github.com/theirongolddev/tracks/internal/snapshot"
)

// Storage keys.
const (
	DataKey   = "habitTrackerData"
	BackupKey = DataKey + ".bak"
)

// KV is the byte store the collection is persisted to. SaveAll writes
// every key or none of them.
type KV interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, data []byte) error
	SaveAll(values map[string][]byte) error
}

// LoadCollection reads and normalizes the stored collection. A store that
// has never been written yields an empty collection.
func LoadCollection(kv KV) (*model.Collection, error) {
	data, ok, err := kv.Load(DataKey)
	if err != nil {
		return nil, fmt.Errorf("loading habits: %w", err)
	}
	if !ok {
		return model.NewCollection(nil), nil
	}

	habits, err := snapshot.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding stored habits: %w", err)
	}
	return model.NewCollection(habits), nil
}

// SaveCollection writes the whole collection back to the store.
func SaveCollection(kv KV, c *model.Collection) error {
	data, err := snapshot.Encode(c.Habits)
	if err != nil {
		return err
	}
	if err := kv.Save(DataKey, data); err != nil {
		return fmt.Errorf("saving habits: %w", err)
	}
	return nil
}

// ReplaceCollection swaps the stored collection for habits, keeping the
// previous blob under BackupKey. Backup and data are written together.
func ReplaceCollection(kv KV, habits []model.Habit) (*model.Collection, error) {
	prev, ok, err := kv.Load(DataKey)
	if err != nil {
		return nil, fmt.Errorf("loading habits: %w", err)
	}

	c := model.NewCollection(habits)
	data, err := snapshot.Encode(c.Habits)
	if err != nil {
		return nil, err
	}

	values := map[string][]byte{DataKey: data}
	if ok {
		values[BackupKey] = prev
	}
	if err := kv.SaveAll(values); err != nil {
		return nil, fmt.Errorf("replacing habits: %w", err)
	}
	return c, nil
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tracks")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "tracks")
}

// DBPath returns the default database location.
func DBPath() string {
	return filepath.Join(DataDir(), "tracks.db")
}

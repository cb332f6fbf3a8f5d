package pipeline

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/tracks/internal/model"
	"github.com/theirongolddev/tracks/internal/snapshot"
	"github.com/theirongolddev/tracks/internal/store"
)

type memKV map[string][]byte

func (m memKV) Load(key string) ([]byte, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memKV) Save(key string, data []byte) error {
	m[key] = data
	return nil
}

func (m memKV) SaveAll(values map[string][]byte) error {
	for k, v := range values {
		m[k] = v
	}
	return nil
}

func TestLoadCollectionEmptyStore(t *testing.T) {
	c, err := LoadCollection(memKV{})
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Fatalf("len = %d, want 0", c.Len())
	}
}

func TestLoadCollectionRejectsCorruptBlob(t *testing.T) {
	_, err := LoadCollection(memKV{DataKey: []byte(`{"not":"a list"}`)})
	if !errors.Is(err, snapshot.ErrInvalidFormat) {
		t.Fatalf("err = %v, want ErrInvalidFormat", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	kv := memKV{}
	c := model.NewCollection(nil)
	h := model.NewHabit("Run", "#f00", model.TrackPeriodic)
	h.SetSchedule(model.PerWeek, 4)
	h.MarkDone("2024-01-10")
	c.Add(h)

	if err := SaveCollection(kv, c); err != nil {
		t.Fatal(err)
	}
	got, err := LoadCollection(kv)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 1 || got.Habits[0].Name != "Run" || !got.Habits[0].History.Has("2024-01-10") {
		t.Fatalf("reloaded = %+v", got.Habits)
	}
	if got.Habits[0].FrequencyX != 4 || got.Habits[0].LegacyFrequency() != 4 {
		t.Fatalf("frequency lost: %+v", got.Habits[0])
	}
}

func TestReplaceCollectionKeepsBackup(t *testing.T) {
	kv := memKV{DataKey: []byte(`[{"id":"old","name":"Old","history":[]}]`)}
	imported, err := snapshot.Decode([]byte(`[{"id":"new","name":"New","history":["2024-02-01"]}]`))
	if err != nil {
		t.Fatal(err)
	}

	c, err := ReplaceCollection(kv, imported)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 || c.Habits[0].ID != "new" {
		t.Fatalf("replaced = %+v", c.Habits)
	}
	if string(kv[BackupKey]) != `[{"id":"old","name":"Old","history":[]}]` {
		t.Fatalf("backup = %s", kv[BackupKey])
	}
}

// brokenKV fails every batch write and counts single-key writes.
type brokenKV struct {
	memKV
	saves int
}

func (b *brokenKV) Save(key string, data []byte) error {
	b.saves++
	return b.memKV.Save(key, data)
}

func (b *brokenKV) SaveAll(map[string][]byte) error {
	return errors.New("disk full")
}

func TestReplaceCollectionIsAllOrNothing(t *testing.T) {
	old := `[{"id":"old","name":"Old","history":[]}]`
	kv := &brokenKV{memKV: memKV{DataKey: []byte(old)}}

	_, err := ReplaceCollection(kv, []model.Habit{model.NewHabit("New", "#fff", model.TrackPeriodic)})
	if err == nil {
		t.Fatal("expected the failed batch write to surface")
	}
	if kv.saves != 0 {
		t.Fatalf("ReplaceCollection made %d single-key writes, want 0", kv.saves)
	}
	if string(kv.memKV[DataKey]) != old {
		t.Fatalf("data changed after failed import: %s", kv.memKV[DataKey])
	}
	if _, ok := kv.memKV[BackupKey]; ok {
		t.Fatal("backup written after failed import")
	}
}

func TestReplaceCollectionAgainstSQLite(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "tracks.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Save(DataKey, []byte(`[{"id":"old","name":"Old","history":[]}]`)); err != nil {
		t.Fatal(err)
	}
	if _, err := ReplaceCollection(s, []model.Habit{model.NewHabit("New", "#fff", model.TrackPeriodic)}); err != nil {
		t.Fatal(err)
	}

	backup, ok, err := s.Load(BackupKey)
	if err != nil || !ok || string(backup) != `[{"id":"old","name":"Old","history":[]}]` {
		t.Fatalf("backup = %s, %v, %v", backup, ok, err)
	}
	got, err := LoadCollection(s)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 1 || got.Habits[0].Name != "New" {
		t.Fatalf("data = %+v", got.Habits)
	}
}

func TestLoaderAgainstSQLite(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "tracks.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = s.Close() }()

	c := model.NewCollection(nil)
	c.Add(model.NewHabit("Read", "#0f0", model.TrackPeriodic))
	if err := SaveCollection(s, c); err != nil {
		t.Fatal(err)
	}
	got, err := LoadCollection(s)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 1 || got.Habits[0].ID != c.Habits[0].ID {
		t.Fatalf("sqlite round trip = %+v", got.Habits)
	}
}

func TestDBPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	if got := DBPath(); got != filepath.Join("/tmp/xdg-data", "tracks", "tracks.db") {
		t.Fatalf("DBPath = %s", got)
	}
}

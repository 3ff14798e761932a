package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"leaderboard/domain"
)

// SnapshotStore persists the full update history as one JSON file per
// UTC calendar day. Same-day snapshots replace the prior file; writes go
// through a temp file and rename so a crash mid-write never leaves a
// truncated snapshot behind.
type SnapshotStore struct {
	dir string
	now func() time.Time
}

func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &SnapshotStore{dir: dir, now: time.Now}, nil
}

// Save writes the history snapshot to today's file.
func (s *SnapshotStore) Save(history map[string][]domain.Update) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history snapshot: %w", err)
	}

	path := s.todayPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", domain.SnapshotWriteError, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", domain.SnapshotWriteError, err)
	}
	return nil
}

// Load reads today's snapshot. A missing file is an empty history; a
// file that exists but cannot be parsed is an error, which the caller
// treats as fatal rather than booting with silently lost data.
func (s *SnapshotStore) Load() (map[string][]domain.Update, error) {
	data, err := os.ReadFile(s.todayPath())
	if os.IsNotExist(err) {
		return map[string][]domain.Update{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history snapshot: %w", err)
	}

	var history map[string][]domain.Update
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err)
	}
	if history == nil {
		history = map[string][]domain.Update{}
	}
	return history, nil
}

func (s *SnapshotStore) todayPath() string {
	day := s.now().UTC().Format("2006-01-02")
	return filepath.Join(s.dir, day+".json")
}

package history

import (
	"slices"
	"sync"
	"time"
)

// Snapshot holds an in-memory copy of a store file for readers that outlive
// a single sync run, such as the stats API.
type Snapshot struct {
	path string

	mu       sync.RWMutex
	records  []GameRecord
	loadedAt time.Time
}

// OpenSnapshot loads path once.
func OpenSnapshot(path string) (*Snapshot, error) {
	s := &Snapshot{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSnapshot wraps records that did not come from a file.
func NewSnapshot(records []GameRecord) *Snapshot {
	return &Snapshot{records: records, loadedAt: time.Now()}
}

// Path is the file the snapshot reloads from, empty for in-memory records.
func (s *Snapshot) Path() string {
	return s.path
}

// Reload re-reads the file. On error the previous records are kept.
func (s *Snapshot) Reload() error {
	if s.path == "" {
		return nil
	}

	records, err := Load(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.records = records
	s.loadedAt = time.Now()
	s.mu.Unlock()

	return nil
}

// Games returns a copy of the current records.
func (s *Snapshot) Games() []GameRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// LoadedAt reports when the records were last refreshed.
func (s *Snapshot) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

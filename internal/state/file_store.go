package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Store persists the player snapshot. The whole aggregate is written on
// every save; the file is treated as a single atomic slot.
type Store interface {
	Load() State
	Save(s State) error
}

// FileStore keeps the snapshot in <dataDir>/state.json.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dataDir, "state.json")}, nil
}

// Load reads and normalizes the snapshot. A missing or unparseable file is
// treated as no prior state and yields defaults; load never fails.
func (f *FileStore) Load() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if err != nil {
		return Defaults()
	}
	// Unmarshal over defaults so fields absent from older snapshots keep
	// their default values instead of zeroing out.
	loaded := Defaults()
	if err := json.Unmarshal(b, &loaded); err != nil {
		return Defaults()
	}
	return Normalize(loaded)
}

// Save serializes the whole aggregate to the slot.
func (f *FileStore) Save(s State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, b, 0o644)
}

// MemoryStore is a test-friendly in-memory slot.
type MemoryStore struct {
	mu    sync.Mutex
	s     State
	saved bool
	Saves int
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return Defaults()
	}
	return Normalize(m.s)
}

func (m *MemoryStore) Save(s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s
	m.saved = true
	m.Saves++
	return nil
}

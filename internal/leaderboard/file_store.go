package leaderboard

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Store persists the board.
type Store interface {
	Top() []Entry
	Submit(name string, score float64) []Entry
}

type fileState struct {
	Entries []Entry `json:"entries"`
}

// FileStore keeps the board in a JSON file under dataDir. A missing or
// unreadable file yields an empty board.
type FileStore struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	fs := &FileStore{path: filepath.Join(dataDir, "leaderboard.json")}
	fs.load()
	return fs, nil
}

func (f *FileStore) load() {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return
	}
	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return
	}
	f.s = loaded
}

// Top returns a copy of the board, best score first.
func (f *FileStore) Top() []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Entry, len(f.s.Entries))
	copy(out, f.s.Entries)
	return out
}

// Submit upserts a score and writes the board back. Write failures leave
// the in-memory board authoritative.
func (f *FileStore) Submit(name string, score float64) []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.s.Entries = Upsert(f.s.Entries, name, score)

	if b, err := json.MarshalIndent(f.s, "", "  "); err == nil {
		_ = os.WriteFile(f.path, b, 0o644)
	}

	out := make([]Entry, len(f.s.Entries))
	copy(out, f.s.Entries)
	return out
}

// MemoryStore is the board without a file, for tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

func (m *MemoryStore) Top() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *MemoryStore) Submit(name string, score float64) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = Upsert(m.entries, name, score)
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

package tracking

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FreshnessWindow bounds how old a stored session may be to be resumed.
const FreshnessWindow = 15 * time.Minute

// ErrNoState is returned by Store.Load when nothing is stored.
var ErrNoState = errors.New("no tracking state")

// Store keeps one encoded session.
type Store interface {
	Save(data []byte) error
	Load() ([]byte, error)
	Clear() error
}

type snapshot struct {
	Payload   Session `json:"payload"`
	Timestamp int64   `json:"timestamp"`
}

// Save writes session stamped with now.
func Save(store Store, session Session, now time.Time) error {
	data, err := json.Marshal(snapshot{Payload: session, Timestamp: now.UnixMilli()})
	if err != nil {
		return fmt.Errorf("encode tracking state: %w", err)
	}
	return store.Save(data)
}

// Restore loads the stored session. Stale, corrupt or unreadable state is
// cleared and reported as no session. A fresh session is advanced by the
// whole minutes that passed since it was saved.
func Restore(store Store, now time.Time) (*Session, error) {
	data, err := store.Load()
	if errors.Is(err, ErrNoState) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(fmt.Errorf("load tracking state: %w", err), store.Clear())
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil || snap.Timestamp <= 0 {
		return nil, store.Clear()
	}

	age := now.Sub(time.UnixMilli(snap.Timestamp))
	if age >= FreshnessWindow {
		return nil, store.Clear()
	}

	session := snap.Payload
	if age > 0 {
		session.Advance(int(age / time.Minute))
	}
	return &session, nil
}

// FileStore keeps the session in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save replaces the file contents atomically.
func (f *FileStore) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoState
	}
	return data, err
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore keeps the session in memory.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func (m *MemoryStore) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStore) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoState
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Iron-Ham/taskmill/internal/task"
)

// document is the serializable representation of the store: a mapping
// of numeric task id to task record, with subtasks nested inline.
type document struct {
	Version int                   `json:"version"`
	NextID  int                   `json:"next_id"`
	Tasks   map[string]*task.Task `json:"tasks"`
}

const documentVersion = 1

// Save writes the store to path as one consistent JSON snapshot. The
// write is atomic: data goes to a temporary file first, then is renamed
// into place. A file lock in the snapshot's directory is held during
// the operation for cross-process safety.
func (s *Store) Save(path string) error {
	return s.SaveTimeout(path, 0)
}

// SaveTimeout is Save with a bound on how long to wait for the file
// lock. A non-positive timeout waits indefinitely.
func (s *Store) SaveTimeout(path string, lockTimeout time.Duration) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	fl := NewFileLock(dir)
	if err := fl.LockTimeout(lockTimeout); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = fl.Unlock() }()

	doc := document{
		Version: documentVersion,
		NextID:  s.nextID,
		Tasks:   make(map[string]*task.Task, len(s.tasks)),
	}
	for id, t := range s.tasks {
		doc.Tasks[strconv.Itoa(id)] = t
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load restores a Store from a previously saved snapshot. A missing
// file is reported via os.ErrNotExist so callers can start empty.
func Load(path string) (*Store, error) {
	return LoadTimeout(path, 0)
}

// LoadTimeout is Load with a bound on how long to wait for the file
// lock. A non-positive timeout waits indefinitely.
func LoadTimeout(path string, lockTimeout time.Duration) (*Store, error) {
	// Stat before locking: a missing snapshot means a fresh store, and
	// taking the lock would create the data directory's lock file as a
	// side effect.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	fl := NewFileLock(filepath.Dir(path))
	if err := fl.LockTimeout(lockTimeout); err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = fl.Unlock() }()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal store: %w", err)
	}

	s := New()
	for key, t := range doc.Tasks {
		id, err := strconv.Atoi(key)
		if err != nil || id <= 0 || t == nil {
			return nil, fmt.Errorf("invalid task id %q in store file", key)
		}
		t.ID = id
		if t.Dependencies == nil {
			t.Dependencies = []task.Ref{}
		}
		for i := range t.Subtasks {
			if t.Subtasks[i].Dependencies == nil {
				t.Subtasks[i].Dependencies = []task.Ref{}
			}
		}
		s.tasks[id] = t
		if id >= s.nextID {
			s.nextID = id + 1
		}
	}
	if doc.NextID > s.nextID {
		s.nextID = doc.NextID
	}
	return s, nil
}

package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrSlotEmpty is returned by Slot.Load when nothing has been persisted yet.
var ErrSlotEmpty = errors.New("bookmark slot is empty")

// Slot is a single named durable value holding the serialized bookmark set.
// Save always overwrites the whole value.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Name() string
}

// ─────────────────────────────────────────────────────────────────
// File slot
// ─────────────────────────────────────────────────────────────────

// FileSlot persists the bookmark set as a JSON file on local disk.
type FileSlot struct {
	path string
}

// NewFileSlot creates a slot backed by path. The parent directory is created
// on first save.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

func (f *FileSlot) Name() string { return "file:" + f.path }

func (f *FileSlot) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("failed to read bookmark file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrSlotEmpty
	}
	return data, nil
}

// Save writes to a temp file in the same directory and renames it over the
// target, so readers never observe a half-written file.
func (f *FileSlot) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create bookmark directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".bookmarks-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp bookmark file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write bookmark file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close bookmark file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace bookmark file: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Memory slot
// ─────────────────────────────────────────────────────────────────

// MemorySlot keeps the value in process memory. Bookmarks survive a Store
// rebuild within the same process but not a restart.
type MemorySlot struct {
	mu      sync.Mutex
	data    []byte
	loadErr error
	saveErr error
	saves   int
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (m *MemorySlot) Name() string { return "memory" }

func (m *MemorySlot) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.data == nil {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemorySlot) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

// Set seeds the raw stored value.
func (m *MemorySlot) Set(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
}

// Data returns a copy of the raw stored value.
func (m *MemorySlot) Data() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// Saves counts successful writes.
func (m *MemorySlot) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// FailLoad makes subsequent loads return err (nil restores normal behavior).
func (m *MemorySlot) FailLoad(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

// FailSave makes subsequent saves return err (nil restores normal behavior).
func (m *MemorySlot) FailSave(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

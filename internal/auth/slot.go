package auth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"senti/internal/cache"
)

// SlotName names the single persisted session record.
const SlotName = "senti_user"

// Slot is the storage for the persisted session record.
// Load returns nil data and nil error when the slot is empty.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// MemorySlot keeps the record in process memory. It survives a new
// SessionService over the same slot but not a process restart.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
}

var _ Slot = (*MemorySlot)(nil)

// NewMemorySlot creates an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Load(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Save(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *MemorySlot) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}

// FileSlot keeps the record in <dir>/senti_user.
type FileSlot struct {
	dir  string
	path string
}

var _ Slot = (*FileSlot)(nil)

// NewFileSlot creates a slot stored under dir. The directory is created on first save.
func NewFileSlot(dir string) *FileSlot {
	return &FileSlot{dir: dir, path: filepath.Join(dir, SlotName)}
}

// Path returns the file backing the slot.
func (s *FileSlot) Path() string {
	return s.path
}

func (s *FileSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session slot: %w", err)
	}
	return data, nil
}

// Save replaces the record atomically: readers see the old or the new record, never a partial one.
func (s *FileSlot) Save(ctx context.Context, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, "."+SlotName+"-*")
	if err != nil {
		return fmt.Errorf("create session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

func (s *FileSlot) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// KeyValueStore is the subset of the Redis client the slot needs.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

var _ KeyValueStore = (*cache.Client)(nil)

// RedisSlot keeps the record under a Redis key with no expiry.
type RedisSlot struct {
	store KeyValueStore
	key   string
}

var _ Slot = (*RedisSlot)(nil)

// NewRedisSlot creates a slot stored at prefix+SlotName.
func NewRedisSlot(store KeyValueStore, prefix string) *RedisSlot {
	return &RedisSlot{store: store, key: prefix + SlotName}
}

func (s *RedisSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read session slot: %w", err)
	}
	return data, nil
}

func (s *RedisSlot) Save(ctx context.Context, data []byte) error {
	if err := s.store.Set(ctx, s.key, data, 0); err != nil {
		return fmt.Errorf("write session slot: %w", err)
	}
	return nil
}

func (s *RedisSlot) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear session slot: %w", err)
	}
	return nil
}

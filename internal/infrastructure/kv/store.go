package kv

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/example/watchhaven/internal/config"
)

// Store keeps one-time flags and small string sets (newsletter popup
// markers, subscriber lists)
type Store interface {
	GetFlag(ctx context.Context, key string) (bool, error)
	SetFlag(ctx context.Context, key string) error
	AddMember(ctx context.Context, set, member string) (bool, error)
	Members(ctx context.Context, set string) ([]string, error)
	Close() error
}

// Open builds the backend selected in cfg
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "memory", "":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	case "postgres":
		return OpenPostgresStore(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// MemoryStore is the in-process backend
type MemoryStore struct {
	mu    sync.RWMutex
	flags map[string]bool
	sets  map[string]map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		flags: make(map[string]bool),
		sets:  make(map[string]map[string]struct{}),
	}
}

func (m *MemoryStore) GetFlag(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[key], nil
}

func (m *MemoryStore) SetFlag(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[key] = true
	return nil
}

func (m *MemoryStore) AddMember(_ context.Context, set, member string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	members, ok := m.sets[set]
	if !ok {
		members = make(map[string]struct{})
		m.sets[set] = members
	}
	if _, exists := members[member]; exists {
		return false, nil
	}
	members[member] = struct{}{}
	return true, nil
}

// Members returns the set sorted
func (m *MemoryStore) Members(_ context.Context, set string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.sets[set]))
	for member := range m.sets[set] {
		out = append(out, member)
	}
	sort.Strings(out)
	return out, nil
}

func (m *MemoryStore) Close() error {
	return nil
}

package cache

import (
	"context"
	"sync"
)

// Memory is the in-process fallback used when no Redis URL is configured.
// State does not survive a restart; the job store's URL check catches the
// duplicates this lets through.
type Memory struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{seen: map[string]struct{}{}}
}

func (m *Memory) Seen(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.seen[key]
	return ok, nil
}

func (m *Memory) Mark(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen[key] = struct{}{}
	return nil
}

func (m *Memory) Close() error { return nil }

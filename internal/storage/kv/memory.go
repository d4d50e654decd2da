package kv

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore keeps values in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.data[key]), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(key, value)
	return nil
}

func (m *MemoryStore) set(key string, value []byte) {
	v := clone(value)
	if v == nil {
		v = []byte{}
	}
	m.data[key] = v
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) List(_ context.Context) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot(), nil
}

func (m *MemoryStore) snapshot() map[string][]byte {
	out := make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		out[k] = clone(v)
	}
	return out
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.data)
	return nil
}

// Atomic holds the store lock for the whole unit and applies the buffered
// writes only when fn succeeds.
func (m *MemoryStore) Atomic(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ws := newWriteSet(lockedMemory{m})
	if err := fn(ctx, ws); err != nil {
		return err
	}

	if ws.cleared {
		clear(m.data)
	}
	sets, deletes := ws.pending()
	for _, k := range deletes {
		delete(m.data, k)
	}
	maps.Copy(m.data, sets)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// lockedMemory reads m without taking the lock; the caller already holds it.
type lockedMemory struct{ m *MemoryStore }

func (l lockedMemory) Get(_ context.Context, key string) ([]byte, error) {
	return clone(l.m.data[key]), nil
}

func (l lockedMemory) List(_ context.Context) (map[string][]byte, error) {
	return l.m.snapshot(), nil
}

func (l lockedMemory) Set(context.Context, string, []byte) error { return errReadOnly }
func (l lockedMemory) Delete(context.Context, string) error      { return errReadOnly }
func (l lockedMemory) Clear(context.Context) error               { return errReadOnly }
func (l lockedMemory) Close() error                              { return nil }

func (l lockedMemory) Atomic(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	return fn(ctx, l)
}

package kv

import (
	"context"
)

// writeSet buffers the writes of one Atomic unit on top of a read-only view
// of the backing store. A nil entry is a pending delete.
type writeSet struct {
	base    Store
	writes  map[string][]byte
	cleared bool
}

func newWriteSet(base Store) *writeSet {
	return &writeSet{base: base, writes: make(map[string][]byte)}
}

func (w *writeSet) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := w.writes[key]; ok {
		return clone(v), nil
	}
	if w.cleared {
		return nil, nil
	}
	return w.base.Get(ctx, key)
}

func (w *writeSet) Set(_ context.Context, key string, value []byte) error {
	v := clone(value)
	if v == nil {
		v = []byte{}
	}
	w.writes[key] = v
	return nil
}

func (w *writeSet) Delete(_ context.Context, key string) error {
	w.writes[key] = nil
	return nil
}

func (w *writeSet) List(ctx context.Context) (map[string][]byte, error) {
	out := make(map[string][]byte)
	if !w.cleared {
		base, err := w.base.List(ctx)
		if err != nil {
			return nil, err
		}
		out = base
	}
	for k, v := range w.writes {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = clone(v)
	}
	return out, nil
}

func (w *writeSet) Clear(_ context.Context) error {
	w.cleared = true
	w.writes = make(map[string][]byte)
	return nil
}

func (w *writeSet) Atomic(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	return fn(ctx, w)
}

func (w *writeSet) Close() error { return nil }

// pending returns the keys to upsert and the keys to delete.
func (w *writeSet) pending() (sets map[string][]byte, deletes []string) {
	sets = make(map[string][]byte)
	for k, v := range w.writes {
		if v == nil {
			deletes = append(deletes, k)
			continue
		}
		sets[k] = v
	}
	return sets, deletes
}

// Package storage is the serialization boundary between the storefront and
// its key-value backend: typed values in, JSON bytes out.
//
// Reads are fail-soft. A stored value that does not decode is logged and
// reported as absent, so callers fall back to their default (empty cart, no
// session) instead of failing. Backend errors are still returned.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/storage/kv"
)

type Accessor struct {
	store kv.Store
	log   logging.Logger
}

func New(store kv.Store, log logging.Logger) *Accessor {
	if log == nil {
		log = logging.Nop()
	}
	return &Accessor{store: store, log: log}
}

// Read decodes the value under key into dst, a non-nil pointer. It reports
// false when the key is absent, holds JSON null, or does not decode; in the
// last case dst is reset to its zero value.
func (a *Accessor) Read(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := a.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if raw == nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false, nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		a.log.Warn(ctx, "malformed stored state, using default", "key", key, "error", err)
		if v := reflect.ValueOf(dst); v.Kind() == reflect.Pointer && !v.IsNil() {
			v.Elem().SetZero()
		}
		return false, nil
	}
	return true, nil
}

func (a *Accessor) Write(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.store.Set(ctx, key, b); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (a *Accessor) Delete(ctx context.Context, key string) error {
	if err := a.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Has reports whether anything is stored under key, decodable or not.
func (a *Accessor) Has(ctx context.Context, key string) (bool, error) {
	raw, err := a.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	return raw != nil, nil
}

// Atomic runs fn as one read-modify-write unit of the backend. fn must use
// the Accessor it is given.
func (a *Accessor) Atomic(ctx context.Context, fn func(ctx context.Context, acc *Accessor) error) error {
	return a.store.Atomic(ctx, func(ctx context.Context, s kv.Store) error {
		return fn(ctx, &Accessor{store: s, log: a.log})
	})
}

// ReadAs is Read for callers that want the value back. The zero T is
// returned when the key is absent or malformed.
func ReadAs[T any](ctx context.Context, a *Accessor, key string) (T, bool, error) {
	var v T
	ok, err := a.Read(ctx, key, &v)
	return v, ok, err
}

// ReadClean is ReadAs followed by clean. A value that clean had to change
// broke an invariant of its type; it is logged like malformed JSON and the
// cleaned value is returned. Nothing is written back.
func ReadClean[T any](ctx context.Context, a *Accessor, key string, clean func(T) (T, bool)) (T, bool, error) {
	v, ok, err := ReadAs[T](ctx, a, key)
	if err != nil || !ok {
		return v, ok, err
	}
	cleaned, changed := clean(v)
	if changed {
		a.log.Warn(ctx, "malformed stored state, dropping invalid entries", "key", key)
	}
	return cleaned, true, nil
}

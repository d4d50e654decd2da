// Package kv defines the raw key-value port behind the storefront state and
// its backends: in-memory, SQLite, Redis and PostgreSQL.
//
// Values are opaque bytes; typing and JSON live one layer up in package
// storage. Every backend runs Atomic units all-or-nothing.
package kv

import (
	"context"
	"errors"
)

var errReadOnly = errors.New("kv: read-only view")

// ErrConflict is returned by optimistic backends when an Atomic unit kept
// losing to concurrent writers.
var ErrConflict = errors.New("kv: concurrent update, retries exhausted")

// Store is a visitor's persistent key space.
type Store interface {
	// Get returns the value stored under key, or (nil, nil) when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	// Atomic runs fn as one read-modify-write unit. The Store passed to fn
	// must be used for every access inside the unit; if fn returns an error
	// none of its writes are applied. Nested calls join the outer unit.
	Atomic(ctx context.Context, fn func(ctx context.Context, s Store) error) error
	Close() error
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

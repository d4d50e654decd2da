package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/dmitrijs2005/storefront/internal/storage/kv/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore keeps many visitors' key spaces in one table, each scoped by
// its namespace. Several processes may serve the same namespace: Atomic takes
// a transaction-scoped advisory lock on it, so units never interleave.
type PostgresStore struct {
	db   *sql.DB
	q    dbx.DBTX
	ns   string
	inTx bool
}

// NewPostgresStore wraps an already migrated database for namespace ns.
func NewPostgresStore(db *sql.DB, ns string) *PostgresStore {
	return &PostgresStore{db: db, q: db, ns: ns}
}

// OpenPostgres connects through the pgx stdlib driver and migrates the schema.
func OpenPostgres(ctx context.Context, dsn, ns string) (*PostgresStore, error) {
	if ns == "" {
		return nil, errors.New("postgres kv: namespace is required")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	sub, err := fs.Sub(migrations.Postgres, "postgres")
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := gooseUp(ctx, db, "pgx", sub); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}

	return NewPostgresStore(db, ns), nil
}

// Namespace returns the visitor namespace this store is bound to.
func (s *PostgresStore) Namespace() string { return s.ns }

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.q.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE namespace = $1 AND key = $2`, s.ns, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO kv (namespace, key, value, updated_at) VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = now()
	`, s.ns, key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM kv WHERE namespace = $1 AND key = $2`, s.ns, key)
	if err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM kv WHERE namespace = $1`, s.ns)
	if err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT key, value FROM kv WHERE namespace = $1`, s.ns)
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kv rows: %w", err)
	}

	return result, nil
}

// Atomic runs fn in a transaction holding the namespace advisory lock.
func (s *PostgresStore) Atomic(ctx context.Context, fn func(ctx context.Context, st Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, s.ns); err != nil {
			return fmt.Errorf("lock namespace %s: %w", s.ns, err)
		}
		return fn(ctx, &PostgresStore{db: s.db, q: tx, ns: s.ns, inTx: true})
	})
}

// Close closes the database. Closing a transactional view is a no-op.
func (s *PostgresStore) Close() error {
	if s.inTx {
		return nil
	}
	return s.db.Close()
}

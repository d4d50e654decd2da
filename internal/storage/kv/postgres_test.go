package kv

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := ctr.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("container test")
	}
	ctx := context.Background()
	dsn := startPostgres(t)

	st, err := OpenPostgres(ctx, dsn, "visitor-1")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	suite.Run(t, &storeSuite{newStore: func() Store { return st }})

	t.Run("namespaces are isolated", func(t *testing.T) {
		other, err := OpenPostgres(ctx, dsn, "visitor-2")
		require.NoError(t, err)
		defer other.Close()

		require.NoError(t, st.Set(ctx, "coupon", []byte(`"SAVE10"`)))
		v, err := other.Get(ctx, "coupon")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("advisory lock serializes units across connections", func(t *testing.T) {
		require.NoError(t, st.Set(ctx, "n", []byte("0")))

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				// separate store values share the pool but not the unit
				peer := NewPostgresStore(st.db, st.Namespace())
				err := peer.Atomic(ctx, func(ctx context.Context, tx Store) error {
					v, err := tx.Get(ctx, "n")
					if err != nil {
						return err
					}
					return tx.Set(ctx, "n", []byte{v[0] + 1})
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		v, err := st.Get(ctx, "n")
		require.NoError(t, err)
		assert.Equal(t, byte('0'+10), v[0])
	})
}

func TestPostgresStore_AtomicLockFailure(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	st := NewPostgresStore(db, "v1")
	lockErr := errors.New("lock timeout")

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).WithArgs("v1").WillReturnError(lockErr)
	mock.ExpectRollback()

	called := false
	err = st.Atomic(ctx, func(ctx context.Context, tx Store) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, lockErr)
	assert.False(t, called)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_QueriesAreNamespaced(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	st := NewPostgresStore(db, "v1")

	mock.ExpectQuery(`SELECT value FROM kv WHERE namespace = \$1 AND key = \$2`).
		WithArgs("v1", "auth").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{}`)))
	v, err := st.Get(ctx, "auth")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(v))

	mock.ExpectExec(`DELETE FROM kv WHERE namespace = \$1$`).WithArgs("v1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	require.NoError(t, st.Clear(ctx))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPostgres_RequiresNamespace(t *testing.T) {
	_, err := OpenPostgres(context.Background(), "postgres://localhost/x", "")
	assert.Error(t, err)
}

package identity

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/keyspace"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/dmitrijs2005/storefront/internal/storage"
	"github.com/dmitrijs2005/storefront/internal/storage/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newStore(t *testing.T) (*Store, *storage.Accessor, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemoryStore()
	acc := storage.New(mem, logging.Nop())
	return NewStore(acc, logging.Nop(), WithClock(func() time.Time { return fixedNow })), acc, mem
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s, acc, _ := newStore(t)

	pub, err := s.Register(ctx, "  Alice@Example.com ", "password123", "")
	require.NoError(t, err)
	assert.Equal(t, models.PublicUser{Email: "alice@example.com", Name: "alice", CreatedAt: fixedNow}, pub)

	users, ok, err := storage.ReadAs[[]models.User](ctx, acc, keyspace.Users)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, users, 1)

	u := users[0]
	assert.NotEqual(t, "password123", u.PasswordHash)
	salt, err := hex.DecodeString(u.Salt)
	require.NoError(t, err)
	assert.Len(t, salt, 16)
}

func TestRegister_DuplicateIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s, acc, _ := newStore(t)

	_, err := s.Register(ctx, "bob@example.com", "mysecret", "Bob")
	require.NoError(t, err)

	_, err = s.Register(ctx, "BOB@example.com", "another1", "Robert")
	assert.ErrorIs(t, err, common.ErrDuplicateIdentity)

	users, _, err := storage.ReadAs[[]models.User](ctx, acc, keyspace.Users)
	require.NoError(t, err)
	assert.Len(t, users, 1, "rejected sign-up changes nothing")
	assert.Equal(t, "Bob", users[0].Name)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		msg      string
	}{
		{"empty email", "", "password123", "email is required"},
		{"no at", "alice.example.com", "password123", "valid email"},
		{"no tld", "alice@example", "password123", "valid email"},
		{"space", "al ice@example.com", "password123", "valid email"},
		{"short password", "alice@example.com", "12345", "at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, mem := newStore(t)
			_, err := s.Register(context.Background(), tt.email, tt.password, "")
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Contains(t, err.Error(), tt.msg)

			all, _ := mem.List(context.Background())
			assert.Empty(t, all)
		})
	}
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)

	email := strings.ToLower(gofakeit.Email())
	password := gofakeit.Password(true, true, true, false, false, 12)
	_, err := s.Register(ctx, email, password, "Dana Scully")
	require.NoError(t, err)

	pub, ok, err := s.Verify(ctx, strings.ToUpper(email), password)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, email, pub.Email)
	assert.Equal(t, "Dana Scully", pub.Name)

	wrongPub, wrongOK, wrongErr := s.Verify(ctx, email, password+"x")
	unknownPub, unknownOK, unknownErr := s.Verify(ctx, "nobody@example.com", password)

	assert.Equal(t, wrongPub, unknownPub, "failures are indistinguishable")
	assert.Equal(t, wrongOK, unknownOK)
	assert.Equal(t, wrongErr, unknownErr)
	assert.False(t, wrongOK)
	assert.NoError(t, wrongErr)
	assert.Equal(t, models.PublicUser{}, wrongPub)
}

func TestVerify_ResolvesDisplayName(t *testing.T) {
	ctx := context.Background()
	s, acc, _ := newStore(t)

	_, err := s.Register(ctx, "carol@example.com", "secret1", "")
	require.NoError(t, err)

	// clear the stored name to mimic an old record
	users, _, _ := storage.ReadAs[[]models.User](ctx, acc, keyspace.Users)
	users[0].Name = ""
	require.NoError(t, acc.Write(ctx, keyspace.Users, users))

	pub, ok, err := s.Verify(ctx, "carol@example.com", "secret1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "carol", pub.Name)
}

func TestFindByEmail(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newStore(t)
	_, err := s.Register(ctx, "dave@example.com", "secret1", "Dave")
	require.NoError(t, err)

	u, ok, err := s.FindByEmail(ctx, "DAVE@EXAMPLE.COM")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Dave", u.Name)

	_, ok, err = s.FindByEmail(ctx, "eve@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMalformedRegistryIsTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	s, _, mem := newStore(t)
	require.NoError(t, mem.Set(ctx, keyspace.Users, []byte(`{oops`)))

	_, ok, err := s.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Register(ctx, "alice@example.com", "password123", "")
	require.NoError(t, err)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("empty registry gets demo users", func(t *testing.T) {
		s, _, _ := newStore(t)
		require.NoError(t, s.Seed(ctx, DemoSeeds))

		pub, ok, err := s.Verify(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Alice Smith", pub.Name)

		_, ok, err = s.Verify(ctx, "bob@example.com", "mysecret")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("non-empty registry only backfills names", func(t *testing.T) {
		s, acc, _ := newStore(t)
		require.NoError(t, acc.Write(ctx, keyspace.Users, []models.User{
			{Email: "frank@example.com", Salt: "00", PasswordHash: "00"},
			{Email: "gina@example.com", Name: "Gina", Salt: "00", PasswordHash: "00"},
		}))

		require.NoError(t, s.Seed(ctx, DemoSeeds))

		users, _, err := storage.ReadAs[[]models.User](ctx, acc, keyspace.Users)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "frank", users[0].Name)
		assert.Equal(t, "Gina", users[1].Name)

		_, ok, _ := s.FindByEmail(ctx, "alice@example.com")
		assert.False(t, ok)
	})
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Alice Smith", DisplayName(models.User{Email: "alice@example.com", Name: "Alice Smith"}))
	assert.Equal(t, "alice", DisplayName(models.User{Email: "alice@example.com"}))
}

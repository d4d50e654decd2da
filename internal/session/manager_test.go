package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/identity"
	"github.com/dmitrijs2005/storefront/internal/idp"
	"github.com/dmitrijs2005/storefront/internal/keyspace"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/metrics"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/dmitrijs2005/storefront/internal/storage"
	"github.com/dmitrijs2005/storefront/internal/storage/kv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type ManagerSuite struct {
	suite.Suite
	ctx      context.Context
	mem      *kv.MemoryStore
	acc      *storage.Accessor
	users    *identity.Store
	clock    *clock
	reg      *prometheus.Registry
	prom     *metrics.Prometheus
	notified int
	m        *Manager
}

func (s *ManagerSuite) SetupTest() {
	s.ctx = context.Background()
	s.mem = kv.NewMemoryStore()
	s.acc = storage.New(s.mem, logging.Nop())
	s.users = identity.NewStore(s.acc, logging.Nop())
	s.clock = &clock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	s.reg = prometheus.NewRegistry()
	s.prom = metrics.NewPrometheus(s.reg)
	s.notified = 0
	s.m = NewManager(s.acc, s.users, logging.Nop(),
		WithClock(s.clock.Now),
		WithMetrics(s.prom),
		WithNotifier(func(context.Context) { s.notified++ }),
	)

	_, err := s.users.Register(s.ctx, "alice@example.com", "password123", "Alice Smith")
	s.Require().NoError(err)
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) cart(id models.Identity) []models.CartItem {
	v, _, err := storage.ReadAs[[]models.CartItem](s.ctx, s.acc, keyspace.Cart(id))
	s.Require().NoError(err)
	return v
}

func (s *ManagerSuite) wishlist(id models.Identity) []string {
	v, _, err := storage.ReadAs[[]string](s.ctx, s.acc, keyspace.Wishlist(id))
	s.Require().NoError(err)
	return v
}

func (s *ManagerSuite) has(key string) bool {
	ok, err := s.acc.Has(s.ctx, key)
	s.Require().NoError(err)
	return ok
}

func (s *ManagerSuite) TestLogin_CreatesSession() {
	sess, err := s.m.Login(s.ctx, models.IdentityRef{Email: "Alice@Example.com"})
	s.Require().NoError(err)

	s.Len(sess.Token, 48)
	s.Equal("alice@example.com", sess.Email)
	s.Equal("Alice Smith", sess.Name, "name enriched from the registry")
	s.Equal(models.ProviderPassword, sess.Provider)
	s.True(sess.ExpiresAt.Equal(s.clock.Now().Add(DefaultTTL)))

	active, ok, err := s.m.Active(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(sess.Token, active.Token)
	s.Equal(1, s.notified)
	n, err := testutil.GatherAndCount(s.reg, "storefront_logins_total")
	s.Require().NoError(err)
	s.Equal(1, n, "one provider series recorded")
}

func (s *ManagerSuite) TestLogin_OverwritesPriorSession() {
	first, err := s.m.Login(s.ctx, models.IdentityRef{Email: "alice@example.com"})
	s.Require().NoError(err)
	second, err := s.m.Login(s.ctx, models.IdentityRef{Email: "bob@example.com", Name: "Bob"})
	s.Require().NoError(err)

	s.NotEqual(first.Token, second.Token)
	active, ok, err := s.m.Active(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("bob@example.com", active.Email)
	s.Equal("Bob", active.Name, "unknown users keep the given name")
}

func (s *ManagerSuite) TestActive_ExpiredSessionIsTornDown() {
	_, err := s.m.Login(s.ctx, models.IdentityRef{Email: "alice@example.com"})
	s.Require().NoError(err)
	s.Require().NoError(s.acc.Write(s.ctx, keyspace.Cart("alice@example.com"), []models.CartItem{{ProductID: "p1", Qty: 1}}))

	s.clock.Advance(DefaultTTL + time.Millisecond)

	_, ok, err := s.m.Active(s.ctx)
	s.Require().NoError(err)
	s.False(ok)
	s.False(s.has(keyspace.Auth), "auth cleared by the read itself")
	s.Equal([]models.CartItem{{ProductID: "p1", Qty: 1}}, s.cart(models.Identity("alice@example.com")))
	s.True(s.has(keyspace.Backup(keyspace.KindCart, "alice@example.com")), "expiry backs up like logout")
	s.Equal([]models.CartItem{}, s.cart(models.Guest))
}

func (s *ManagerSuite) TestActive_ExactExpiryIsStillValid() {
	_, err := s.m.Login(s.ctx, models.IdentityRef{Email: "alice@example.com"})
	s.Require().NoError(err)

	s.clock.Advance(DefaultTTL)
	ok, err := s.m.IsActive(s.ctx)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *ManagerSuite) TestActive_MalformedSessionIsAbsent() {
	s.Require().NoError(s.mem.Set(s.ctx, keyspace.Auth, []byte("{not json")))

	ok, err := s.m.IsActive(s.ctx)
	s.Require().NoError(err)
	s.False(ok)

	id, err := s.m.Identity(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.Guest, id)
}

func (s *ManagerSuite) TestLogout_WithoutSession() {
	s.Require().NoError(s.m.Logout(s.ctx))
	s.Equal([]models.CartItem{}, s.cart(models.Guest))
	s.Equal([]string{}, s.wishlist(models.Guest))
}

func (s *ManagerSuite) TestIdentity() {
	id, err := s.m.Identity(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.Guest, id)

	_, err = s.m.Login(s.ctx, models.IdentityRef{Email: "alice@example.com"})
	s.Require().NoError(err)
	id, err = s.m.Identity(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.Identity("alice@example.com"), id)
}

func (s *ManagerSuite) TestProviderOnlySessionUsesGuestStorage() {
	s.Require().NoError(s.acc.Write(s.ctx, keyspace.Cart(models.Guest), []models.CartItem{{ProductID: "p1", Qty: 2}}))

	sess, err := s.m.LoginWithProvider(s.ctx, idp.Payload{}, "garbage-credential")
	s.Require().NoError(err)
	s.Empty(sess.Email)
	s.Equal(models.ProviderGoogle, sess.Provider)
	s.Equal("garbage-credential", sess.Credential)

	ok, err := s.m.IsActive(s.ctx)
	s.Require().NoError(err)
	s.True(ok, "authenticated for display purposes")

	id, err := s.m.Identity(s.ctx)
	s.Require().NoError(err)
	s.Equal(models.Guest, id)
	s.Equal([]models.CartItem{{ProductID: "p1", Qty: 2}}, s.cart(models.Guest), "no merge without email")

	s.Require().NoError(s.m.Logout(s.ctx))
	s.Equal([]models.CartItem{}, s.cart(models.Guest))
}

func (s *ManagerSuite) TestLoginWithProvider_Dev() {
	s.Require().NoError(s.acc.Write(s.ctx, keyspace.Wishlist(models.Guest), []string{"p9"}))

	sess, err := s.m.LoginWithProvider(s.ctx, idp.Dev{}, "")
	s.Require().NoError(err)
	s.Equal(idp.DevEmail, sess.Email)
	s.Equal([]string{"p9"}, s.wishlist(models.Identity(idp.DevEmail)))
}

type rejectingProvider struct{}

func (rejectingProvider) Name() string { return "google" }
func (rejectingProvider) Verify(context.Context, string) (idp.Identity, error) {
	return idp.Identity{}, idp.ErrVerification
}

func (s *ManagerSuite) TestLoginWithProvider_Rejected() {
	_, err := s.m.LoginWithProvider(s.ctx, rejectingProvider{}, "tok")
	s.ErrorIs(err, idp.ErrVerification)
	s.False(s.has(keyspace.Auth))
}

// codeFlow accepts a single authorization code.
type codeFlow struct {
	rejectingProvider
	code string
	id   idp.Identity
}

func (codeFlow) CodeFlowEnabled() bool { return true }
func (codeFlow) AuthCodeURL(state string) string {
	return "https://accounts.example/auth?state=" + state
}
func (f codeFlow) Exchange(_ context.Context, code string) (idp.Identity, string, error) {
	if code != f.code {
		return idp.Identity{}, "", idp.ErrVerification
	}
	return f.id, "id-token-for-" + code, nil
}

func (s *ManagerSuite) TestLoginWithCode() {
	s.Require().NoError(s.acc.Write(s.ctx, keyspace.Cart(models.Guest), []models.CartItem{{ProductID: "p1", Qty: 1}}))
	flow := codeFlow{code: "4/abc", id: idp.Identity{Email: "alice@example.com", Name: "Alice G."}}

	_, err := s.m.LoginWithCode(s.ctx, flow, "wrong")
	s.ErrorIs(err, idp.ErrVerification)
	s.False(s.has(keyspace.Auth))

	sess, err := s.m.LoginWithCode(s.ctx, flow, "4/abc")
	s.Require().NoError(err)
	s.Equal("alice@example.com", sess.Email)
	s.Equal(models.ProviderGoogle, sess.Provider)
	s.Equal("id-token-for-4/abc", sess.Credential)
	s.Equal("Alice Smith", sess.Name, "registered name wins")
	s.Equal([]models.CartItem{{ProductID: "p1", Qty: 1}}, s.cart(models.Identity("alice@example.com")))
}

func (s *ManagerSuite) TestDisplayName() {
	name, err := s.m.DisplayName(s.ctx)
	s.Require().NoError(err)
	s.Empty(name)

	// an old session written without a name
	s.Require().NoError(s.acc.Write(s.ctx, keyspace.Auth, models.Session{
		Token: "t", ExpiresAt: s.clock.Now().Add(time.Hour), Email: "alice@example.com",
	}))
	name, err = s.m.DisplayName(s.ctx)
	s.Require().NoError(err)
	s.Equal("Alice Smith", name)

	stored, _, err := storage.ReadAs[models.Session](s.ctx, s.acc, keyspace.Auth)
	s.Require().NoError(err)
	s.Equal("Alice Smith", stored.Name, "resolved name saved into the session")

	s.Require().NoError(s.acc.Write(s.ctx, keyspace.Auth, models.Session{
		Token: "t", ExpiresAt: s.clock.Now().Add(time.Hour), Email: "zed@example.com",
	}))
	name, err = s.m.DisplayName(s.ctx)
	s.Require().NoError(err)
	s.Equal("zed", name)
}

// The reference walk-through: guest activity, login, logout, login again.
func (s *ManagerSuite) TestAliceScenario() {
	const alice = models.Identity("alice@example.com")
	s.Require().NoError(s.acc.Write(s.ctx, keyspace.Cart(models.Guest), []models.CartItem{{ProductID: "p1", Qty: 1}}))
	s.Require().NoError(s.acc.Write(s.ctx, keyspace.Wishlist(models.Guest), []string{"p2"}))

	pub, ok, err := s.users.Verify(s.ctx, "alice@example.com", "password123")
	s.Require().NoError(err)
	s.Require().True(ok)
	_, err = s.m.Login(s.ctx, models.IdentityRef{Email: pub.Email, Name: pub.Name, Provider: models.ProviderPassword})
	s.Require().NoError(err)

	s.Equal([]models.CartItem{{ProductID: "p1", Qty: 1}}, s.cart(alice))
	s.Equal([]string{"p2"}, s.wishlist(alice))
	s.Empty(s.cart(models.Guest))
	s.Empty(s.wishlist(models.Guest))

	s.Require().NoError(s.m.Logout(s.ctx))

	backupCart, _, err := storage.ReadAs[[]models.CartItem](s.ctx, s.acc, keyspace.Backup(keyspace.KindCart, string(alice)))
	s.Require().NoError(err)
	backupWish, _, err := storage.ReadAs[[]string](s.ctx, s.acc, keyspace.Backup(keyspace.KindWishlist, string(alice)))
	s.Require().NoError(err)
	s.Equal([]models.CartItem{{ProductID: "p1", Qty: 1}}, backupCart)
	s.Equal([]string{"p2"}, backupWish)
	s.Empty(s.cart(models.Guest))
	s.Empty(s.wishlist(models.Guest))

	_, err = s.m.Login(s.ctx, models.IdentityRef{Email: "alice@example.com"})
	s.Require().NoError(err)

	s.Equal([]models.CartItem{{ProductID: "p1", Qty: 1}}, s.cart(alice))
	s.Equal([]string{"p2"}, s.wishlist(alice))
	s.False(s.has(keyspace.Backup(keyspace.KindCart, string(alice))))
	s.False(s.has(keyspace.Backup(keyspace.KindWishlist, string(alice))))
}

// Guest activity stays with the guest until someone logs in, and then goes
// only to that identity.
func (s *ManagerSuite) TestGuestIsolation() {
	const bob = models.Identity("bob@example.com")
	s.Require().NoError(s.acc.Write(s.ctx, keyspace.Cart(bob), []models.CartItem{{ProductID: "b1", Qty: 1}}))
	s.Require().NoError(s.acc.Write(s.ctx, keyspace.Cart(models.Guest), []models.CartItem{{ProductID: "g1", Qty: 4}}))

	_, err := s.m.Login(s.ctx, models.IdentityRef{Email: "alice@example.com"})
	s.Require().NoError(err)
	s.Require().NoError(s.m.Logout(s.ctx))

	s.Equal([]models.CartItem{{ProductID: "b1", Qty: 1}}, s.cart(bob))
	s.Equal([]models.CartItem{{ProductID: "g1", Qty: 4}}, s.cart("alice@example.com"))
}

// failingUsers makes the registry lookup fail.
type failingUsers struct{ err error }

func (f failingUsers) FindByEmail(context.Context, string) (models.User, bool, error) {
	return models.User{}, false, f.err
}

func TestLogin_LookupErrorLeavesNoSession(t *testing.T) {
	ctx := context.Background()
	acc := storage.New(kv.NewMemoryStore(), logging.Nop())
	boom := errors.New("registry down")
	m := NewManager(acc, failingUsers{err: boom}, logging.Nop())

	_, err := m.Login(ctx, models.IdentityRef{Email: "alice@example.com"})
	require.ErrorIs(t, err, boom)

	ok, err := m.IsActive(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogin_ReconcileFailureRollsBackSession(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	acc := storage.New(brokenBackups{Store: mem}, logging.Nop())
	m := NewManager(acc, identity.NewStore(acc, logging.Nop()), logging.Nop())

	_, err := m.Login(ctx, models.IdentityRef{Email: "alice@example.com"})
	require.Error(t, err)

	v, err := mem.Get(ctx, keyspace.Auth)
	require.NoError(t, err)
	assert.Nil(t, v, "session write rolled back with the failed unit")
}

// brokenBackups fails reads of backup keys inside Atomic units.
type brokenBackups struct {
	kv.Store
}

func (b brokenBackups) Atomic(ctx context.Context, fn func(ctx context.Context, s kv.Store) error) error {
	return b.Store.Atomic(ctx, func(ctx context.Context, s kv.Store) error {
		return fn(ctx, brokenBackups{Store: s})
	})
}

func (b brokenBackups) Get(ctx context.Context, key string) ([]byte, error) {
	if key == keyspace.Backup(keyspace.KindCart, "alice@example.com") {
		return nil, errors.New("backup unreadable")
	}
	return b.Store.Get(ctx, key)
}

func TestNewManager_Defaults(t *testing.T) {
	acc := storage.New(kv.NewMemoryStore(), logging.Nop())
	m := NewManager(acc, identity.NewStore(acc, logging.Nop()), logging.Nop(), WithTTL(time.Minute))
	assert.Equal(t, time.Minute, m.ttl)

	sess, err := m.Login(context.Background(), models.IdentityRef{Email: "x@example.com"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), sess.ExpiresAt, 5*time.Second)
}

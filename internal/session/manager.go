// Package session owns the single active session stored under "auth" and
// drives state reconciliation on every login and logout.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/identity"
	"github.com/dmitrijs2005/storefront/internal/keyspace"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/metrics"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/dmitrijs2005/storefront/internal/reconcile"
	"github.com/dmitrijs2005/storefront/internal/storage"
)

const (
	DefaultTTL = 24 * time.Hour
	tokenBytes = 24
)

// UserLookup resolves registered users; *identity.Store implements it.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (models.User, bool, error)
}

// Notifier is called after the session changed (login, logout, expiry) so
// the caller can refresh counters.
type Notifier func(ctx context.Context)

type Manager struct {
	acc       *storage.Accessor
	users     UserLookup
	reconcile *reconcile.Reconciler
	rec       metrics.Recorder
	log       logging.Logger
	now       func() time.Time
	ttl       time.Duration
	notify    Notifier
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }
func WithTTL(ttl time.Duration) Option      { return func(m *Manager) { m.ttl = ttl } }
func WithNotifier(n Notifier) Option        { return func(m *Manager) { m.notify = n } }

func WithMetrics(rec metrics.Recorder) Option {
	return func(m *Manager) { m.rec = rec }
}

func NewManager(acc *storage.Accessor, users UserLookup, log logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		acc:    acc,
		users:  users,
		rec:    metrics.Nop{},
		log:    log,
		now:    time.Now,
		ttl:    DefaultTTL,
		notify: func(context.Context) {},
	}
	for _, o := range opts {
		o(m)
	}
	m.reconcile = reconcile.New(log, m.rec)
	return m
}

// Login replaces any current session with a new one for ref. When ref has an
// email, the identity's backups are restored and guest state is merged in,
// in the same unit as the session write.
func (m *Manager) Login(ctx context.Context, ref models.IdentityRef) (models.Session, error) {
	token, err := common.MakeRandHexString(tokenBytes)
	if err != nil {
		return models.Session{}, fmt.Errorf("session token: %w", err)
	}

	s := models.Session{
		Token:      token,
		ExpiresAt:  m.now().Add(m.ttl),
		Email:      common.NormalizeEmail(ref.Email),
		Name:       ref.Name,
		Provider:   ref.Provider,
		Credential: ref.Credential,
	}
	if s.Provider == "" {
		s.Provider = models.ProviderPassword
	}

	if s.Email != "" {
		u, ok, err := m.users.FindByEmail(ctx, s.Email)
		if err != nil {
			return models.Session{}, err
		}
		if ok && u.Name != "" {
			s.Name = u.Name
		}
	}

	err = m.acc.Atomic(ctx, func(ctx context.Context, acc *storage.Accessor) error {
		if err := acc.Write(ctx, keyspace.Auth, s); err != nil {
			return err
		}
		if !s.HasIdentity() {
			return nil
		}
		return m.reconcile.Login(ctx, acc, s.Email)
	})
	if err != nil {
		return models.Session{}, fmt.Errorf("login: %w", err)
	}

	m.rec.Login(string(s.Provider))
	m.log.Info(ctx, "session created", "email", s.Email, "provider", s.Provider)
	m.notify(ctx)
	return s, nil
}

// Active returns the current session. An expired session is torn down as a
// logout would and reported as absent.
func (m *Manager) Active(ctx context.Context) (models.Session, bool, error) {
	s, ok, err := storage.ReadAs[models.Session](ctx, m.acc, keyspace.Auth)
	if err != nil || !ok {
		return models.Session{}, false, err
	}
	if !s.Expired(m.now()) {
		return s, true, nil
	}

	if err := m.teardown(ctx); err != nil {
		return models.Session{}, false, err
	}
	m.rec.SessionExpired()
	m.log.Info(ctx, "session expired", "email", s.Email)
	m.notify(ctx)
	return models.Session{}, false, nil
}

// Logout backs up the identity's stores, clears the session and leaves the
// guest with empty stores. It is safe to call without a session.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.teardown(ctx); err != nil {
		return err
	}
	m.rec.Logout()
	m.log.Info(ctx, "session cleared")
	m.notify(ctx)
	return nil
}

func (m *Manager) teardown(ctx context.Context) error {
	err := m.acc.Atomic(ctx, func(ctx context.Context, acc *storage.Accessor) error {
		s, _, err := storage.ReadAs[models.Session](ctx, acc, keyspace.Auth)
		if err != nil {
			return err
		}
		return m.reconcile.Logout(ctx, acc, s.Email, func(ctx context.Context, acc *storage.Accessor) error {
			return acc.Delete(ctx, keyspace.Auth)
		})
	})
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (m *Manager) IsActive(ctx context.Context) (bool, error) {
	_, ok, err := m.Active(ctx)
	return ok, err
}

// Identity is the storage scope of the current visitor: the session email,
// or Guest when there is no session or the session has no email.
func (m *Manager) Identity(ctx context.Context) (models.Identity, error) {
	s, ok, err := m.Active(ctx)
	if err != nil {
		return "", err
	}
	if !ok || !s.HasIdentity() {
		return models.Guest, nil
	}
	return models.Identity(s.Email), nil
}

// DisplayName is the greeting name of the current session: the session
// name, else the registered user's name, else the email local part. A
// resolved name is saved back into the session. Empty without a session.
func (m *Manager) DisplayName(ctx context.Context) (string, error) {
	s, ok, err := m.Active(ctx)
	if err != nil || !ok {
		return "", err
	}
	if s.Name != "" || !s.HasIdentity() {
		return s.Name, nil
	}

	name := common.LocalPart(s.Email)
	u, found, err := m.users.FindByEmail(ctx, s.Email)
	if err != nil {
		return "", err
	}
	if found {
		name = identity.DisplayName(u)
	}

	s.Name = name
	if err := m.acc.Write(ctx, keyspace.Auth, s); err != nil {
		return "", err
	}
	return name, nil
}

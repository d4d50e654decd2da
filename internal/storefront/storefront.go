// Package storefront is the single entry point a driver talks to. It wires
// the identity registry, the session manager, the per-visitor stores and
// pricing over one key-value store.
package storefront

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/cart"
	"github.com/dmitrijs2005/storefront/internal/catalog"
	"github.com/dmitrijs2005/storefront/internal/identity"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/metrics"
	"github.com/dmitrijs2005/storefront/internal/pricing"
	"github.com/dmitrijs2005/storefront/internal/session"
	"github.com/dmitrijs2005/storefront/internal/storage"
	"github.com/dmitrijs2005/storefront/internal/storage/kv"
	"github.com/dmitrijs2005/storefront/internal/wishlist"
	"github.com/google/uuid"
)

type settings struct {
	now      func() time.Time
	ttl      time.Duration
	currency string
	catalog  *catalog.Catalog
	rec      metrics.Recorder
	notify   session.Notifier
	newID    func() string
}

type Option func(*settings)

func WithClock(now func() time.Time) Option   { return func(s *settings) { s.now = now } }
func WithSessionTTL(ttl time.Duration) Option { return func(s *settings) { s.ttl = ttl } }
func WithCurrency(code string) Option         { return func(s *settings) { s.currency = code } }
func WithCatalog(c *catalog.Catalog) Option   { return func(s *settings) { s.catalog = c } }
func WithMetrics(rec metrics.Recorder) Option { return func(s *settings) { s.rec = rec } }

// WithNotifier registers a callback run after every session change.
func WithNotifier(n session.Notifier) Option { return func(s *settings) { s.notify = n } }

type Storefront struct {
	store    kv.Store
	users    *identity.Store
	sessions *session.Manager
	cart     *cart.Store
	wishlist *wishlist.Store
	coupons  *pricing.CouponStore
	pricing  *pricing.Engine
	catalog  *catalog.Catalog
	rec      metrics.Recorder
	log      logging.Logger
	now      func() time.Time
	newID    func() string
}

func New(store kv.Store, log logging.Logger, opts ...Option) (*Storefront, error) {
	if log == nil {
		log = logging.Nop()
	}
	cfg := settings{
		now:      time.Now,
		ttl:      session.DefaultTTL,
		currency: "USD",
		rec:      metrics.Nop{},
		notify:   func(context.Context) {},
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.catalog == nil {
		cfg.catalog = catalog.New()
	}

	engine, err := pricing.NewEngine(cfg.currency, log)
	if err != nil {
		return nil, err
	}

	acc := storage.New(store, log)
	users := identity.NewStore(acc, log, identity.WithClock(cfg.now))
	sessions := session.NewManager(acc, users, log,
		session.WithClock(cfg.now),
		session.WithTTL(cfg.ttl),
		session.WithMetrics(cfg.rec),
		session.WithNotifier(cfg.notify),
	)

	return &Storefront{
		store:    store,
		users:    users,
		sessions: sessions,
		cart:     cart.NewStore(acc, sessions, log),
		wishlist: wishlist.NewStore(acc, sessions, log),
		coupons:  pricing.NewCouponStore(acc),
		pricing:  engine,
		catalog:  cfg.catalog,
		rec:      cfg.rec,
		log:      log,
		now:      cfg.now,
		newID:    cfg.newID,
	}, nil
}

// Seed installs the demo accounts on an empty registry.
func (s *Storefront) Seed(ctx context.Context) error {
	if err := s.users.Seed(ctx, identity.DemoSeeds); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	return nil
}

func (s *Storefront) Catalog() *catalog.Catalog { return s.catalog }
func (s *Storefront) Pricing() *pricing.Engine  { return s.pricing }

func (s *Storefront) Close() error {
	return s.store.Close()
}

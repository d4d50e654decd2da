// Package identity keeps the registry of registered users under the "users"
// key and verifies their credentials.
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/cryptox"
	"github.com/dmitrijs2005/storefront/internal/keyspace"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/dmitrijs2005/storefront/internal/storage"
	"github.com/go-playground/validator"
)

// dummySalt/dummyHash let Verify spend the same work on unknown emails.
var (
	dummySalt    = cryptox.NewSalt()
	dummyHash, _ = cryptox.HashPassword("", dummySalt)
)

type Store struct {
	acc      *storage.Accessor
	log      logging.Logger
	now      func() time.Time
	validate *validator.Validate
}

type Option func(*Store)

// WithClock overrides time.Now for createdAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(acc *storage.Accessor, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		acc:      acc,
		log:      log,
		now:      time.Now,
		validate: newValidator(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DisplayName is the user's name, or the local part of the email.
func DisplayName(u models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return common.LocalPart(u.Email)
}

func (s *Store) users(ctx context.Context, acc *storage.Accessor) ([]models.User, error) {
	users, _, err := storage.ReadAs[[]models.User](ctx, acc, keyspace.Users)
	return users, err
}

func find(users []models.User, email string) (models.User, bool) {
	email = common.NormalizeEmail(email)
	for _, u := range users {
		if common.NormalizeEmail(u.Email) == email {
			return u, true
		}
	}
	return models.User{}, false
}

// Register validates the sign-up input and adds a user. The email is
// stored normalized; name defaults to the email local part.
func (s *Store) Register(ctx context.Context, email, password, name string) (models.PublicUser, error) {
	email = common.NormalizeEmail(email)
	if err := s.validate.Struct(signUp{Email: email, Password: password}); err != nil {
		return models.PublicUser{}, validationError(err)
	}

	salt := cryptox.NewSalt()
	hash, err := cryptox.HashPassword(password, salt)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		Name:         name,
		CreatedAt:    s.now().UTC(),
	}
	if u.Name == "" {
		u.Name = common.LocalPart(email)
	}

	err = s.acc.Atomic(ctx, func(ctx context.Context, acc *storage.Accessor) error {
		users, err := s.users(ctx, acc)
		if err != nil {
			return err
		}
		if _, ok := find(users, email); ok {
			return common.ErrDuplicateIdentity
		}
		return acc.Write(ctx, keyspace.Users, append(users, u))
	})
	if err != nil {
		return models.PublicUser{}, err
	}

	s.log.Info(ctx, "user registered", "email", email)
	return u.Public(), nil
}

// Verify checks a password login. Unknown email and wrong password give the
// same (zero, false, nil) result.
func (s *Store) Verify(ctx context.Context, email, password string) (models.PublicUser, bool, error) {
	users, err := s.users(ctx, s.acc)
	if err != nil {
		return models.PublicUser{}, false, err
	}

	u, ok := find(users, email)
	if !ok {
		cryptox.VerifyPassword(password, dummySalt, dummyHash)
		return models.PublicUser{}, false, nil
	}
	if !cryptox.VerifyPassword(password, u.Salt, u.PasswordHash) {
		return models.PublicUser{}, false, nil
	}

	pub := u.Public()
	pub.Name = DisplayName(u)
	return pub, true, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, bool, error) {
	users, err := s.users(ctx, s.acc)
	if err != nil {
		return models.User{}, false, err
	}
	u, ok := find(users, email)
	return u, ok, nil
}

// Seed describes a demo account.
type Seed struct {
	Email    string
	Password string
	Name     string
}

// DemoSeeds are the accounts a fresh storefront starts with.
var DemoSeeds = []Seed{
	{Email: "alice@example.com", Password: "password123", Name: "Alice Smith"},
	{Email: "bob@example.com", Password: "mysecret", Name: "Bob Johnson"},
}

// Seed creates seeds on an empty registry. On a non-empty registry it only
// fills in missing names from the email local part.
func (s *Store) Seed(ctx context.Context, seeds []Seed) error {
	return s.acc.Atomic(ctx, func(ctx context.Context, acc *storage.Accessor) error {
		users, err := s.users(ctx, acc)
		if err != nil {
			return err
		}

		if len(users) == 0 {
			for _, sd := range seeds {
				salt := cryptox.NewSalt()
				hash, err := cryptox.HashPassword(sd.Password, salt)
				if err != nil {
					return err
				}
				users = append(users, models.User{
					Email:        common.NormalizeEmail(sd.Email),
					PasswordHash: hash,
					Salt:         salt,
					Name:         sd.Name,
					CreatedAt:    s.now().UTC(),
				})
			}
			s.log.Info(ctx, "seeded demo users", "count", len(seeds))
			return acc.Write(ctx, keyspace.Users, users)
		}

		changed := false
		for i := range users {
			if users[i].Name == "" {
				users[i].Name = common.LocalPart(users[i].Email)
				changed = true
			}
		}
		if !changed {
			return nil
		}
		return acc.Write(ctx, keyspace.Users, users)
	})
}

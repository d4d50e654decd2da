package storefront

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/idp"
	"github.com/dmitrijs2005/storefront/internal/models"
)

// Register creates the account and signs it in, as the sign-up form does.
func (s *Storefront) Register(ctx context.Context, email, password, name string) (models.Session, error) {
	u, err := s.users.Register(ctx, email, password, name)
	if err != nil {
		return models.Session{}, err
	}
	return s.sessions.Login(ctx, models.IdentityRef{
		Email:    u.Email,
		Name:     u.Name,
		Provider: models.ProviderPassword,
	})
}

// Login signs in with a password. A wrong password and an unknown email
// both give common.ErrInvalidCredentials.
func (s *Storefront) Login(ctx context.Context, email, password string) (models.Session, error) {
	u, ok, err := s.users.Verify(ctx, email, password)
	if err != nil {
		return models.Session{}, fmt.Errorf("verify credentials: %w", err)
	}
	if !ok {
		s.log.Info(ctx, "login rejected", "email", common.NormalizeEmail(email))
		return models.Session{}, common.ErrInvalidCredentials
	}
	return s.sessions.Login(ctx, models.IdentityRef{
		Email:    u.Email,
		Name:     u.Name,
		Provider: models.ProviderPassword,
	})
}

func (s *Storefront) LoginWithProvider(ctx context.Context, p idp.Provider, credential string) (models.Session, error) {
	return s.sessions.LoginWithProvider(ctx, p, credential)
}

// LoginWithCode completes an authorization code sign-in started at
// flow.AuthCodeURL.
func (s *Storefront) LoginWithCode(ctx context.Context, flow idp.CodeFlow, code string) (models.Session, error) {
	return s.sessions.LoginWithCode(ctx, flow, code)
}

func (s *Storefront) Logout(ctx context.Context) error {
	return s.sessions.Logout(ctx)
}

// Session returns the active session, if any.
func (s *Storefront) Session(ctx context.Context) (models.Session, bool, error) {
	return s.sessions.Active(ctx)
}

func (s *Storefront) DisplayName(ctx context.Context) (string, error) {
	return s.sessions.DisplayName(ctx)
}

package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/idp"
	"github.com/dmitrijs2005/storefront/internal/models"
)

// LoginWithProvider logs in with whatever p vouches for. A verified identity
// without an email gives a provider-only session that stores state as guest.
func (m *Manager) LoginWithProvider(ctx context.Context, p idp.Provider, credential string) (models.Session, error) {
	id, err := p.Verify(ctx, credential)
	if err != nil {
		return models.Session{}, fmt.Errorf("%s sign-in: %w", p.Name(), err)
	}
	return m.loginVerified(ctx, p.Name(), id, credential)
}

// LoginWithCode finishes the authorization code flow of f and logs in with
// the identity its ID token carries.
func (m *Manager) LoginWithCode(ctx context.Context, f idp.CodeFlow, code string) (models.Session, error) {
	id, idToken, err := f.Exchange(ctx, code)
	if err != nil {
		return models.Session{}, fmt.Errorf("%s sign-in: %w", f.Name(), err)
	}
	return m.loginVerified(ctx, f.Name(), id, idToken)
}

func (m *Manager) loginVerified(ctx context.Context, provider string, id idp.Identity, credential string) (models.Session, error) {
	if id.Email == "" {
		m.log.Warn(ctx, "provider sign-in without email", "provider", provider)
	}

	return m.Login(ctx, models.IdentityRef{
		Email:      id.Email,
		Name:       id.Name,
		Provider:   models.Provider(provider),
		Credential: credential,
	})
}

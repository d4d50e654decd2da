// Package idp adapts federated sign-in flows to a verified identity the
// session manager can log in with.
package idp

import (
	"context"
	"errors"
)

// ErrVerification is returned when a credential is rejected.
var ErrVerification = errors.New("credential verification failed")

// Identity is what a provider vouches for. An empty Email yields a
// provider-only session.
type Identity struct {
	Email string
	Name  string
}

type Provider interface {
	// Name is the session provider tag, e.g. "google".
	Name() string
	Verify(ctx context.Context, credential string) (Identity, error)
}

// CodeFlow is a Provider that can also sign in through the OAuth
// authorization code flow: the visitor opens AuthCodeURL, approves, and
// hands back the code, which Exchange turns into a verified identity and
// the raw ID token.
type CodeFlow interface {
	Provider
	CodeFlowEnabled() bool
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (Identity, string, error)
}

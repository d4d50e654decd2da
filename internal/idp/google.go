package idp

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const GoogleIssuer = "https://accounts.google.com"

// Google verifies Google ID tokens for one OAuth client.
type Google struct {
	verifier *oidc.IDTokenVerifier
	oauth    oauth2.Config
}

// NewGoogle discovers Google's OpenID configuration. redirectURL is only
// needed for the authorization code flow.
func NewGoogle(ctx context.Context, clientID, clientSecret, redirectURL string) (*Google, error) {
	if clientID == "" {
		return nil, errors.New("google client id is required")
	}
	p, err := oidc.NewProvider(ctx, GoogleIssuer)
	if err != nil {
		return nil, fmt.Errorf("google discovery: %w", err)
	}

	return &Google{
		verifier: p.Verifier(&oidc.Config{ClientID: clientID}),
		oauth: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     p.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}, nil
}

// NewGoogleWithVerifier skips discovery; used with custom key sets.
func NewGoogleWithVerifier(v *oidc.IDTokenVerifier, cfg oauth2.Config) *Google {
	return &Google{verifier: v, oauth: cfg}
}

func (g *Google) Name() string { return "google" }

// Verify checks signature, issuer, audience and expiry of an ID token.
func (g *Google) Verify(ctx context.Context, credential string) (Identity, error) {
	tok, err := g.verifier.Verify(ctx, credential)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrVerification, err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := tok.Claims(&claims); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	if claims.Email != "" && !claims.EmailVerified {
		return Identity{Name: claims.Name}, nil
	}
	return Identity{Email: claims.Email, Name: claims.Name}, nil
}

// CodeFlowEnabled reports whether the client was configured with the secret
// and redirect URL the code exchange needs.
func (g *Google) CodeFlowEnabled() bool {
	return g.oauth.ClientSecret != "" && g.oauth.RedirectURL != ""
}

// AuthCodeURL starts the authorization code flow.
func (g *Google) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for tokens and verifies the
// returned ID token.
func (g *Google) Exchange(ctx context.Context, code string) (Identity, string, error) {
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return Identity{}, "", fmt.Errorf("google exchange: %w", err)
	}
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return Identity{}, "", fmt.Errorf("%w: no id_token in token response", ErrVerification)
	}
	id, err := g.Verify(ctx, raw)
	return id, raw, err
}

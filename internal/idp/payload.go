package idp

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Payload reads email and name from a JWT credential without checking its
// signature. It never fails: an unreadable credential gives an empty
// Identity and so a provider-only session.
type Payload struct{}

func (Payload) Name() string { return "google" }

func (Payload) Verify(_ context.Context, credential string) (Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return Identity{}, nil
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	return Identity{Email: email, Name: name}, nil
}

package models

import (
	"encoding/json"
	"time"
)

// Provider names how a session was established.
type Provider string

const (
	ProviderPassword Provider = "password"
	ProviderGoogle   Provider = "google"
)

// Session is the single active session stored under the "auth" key.
// An empty Email marks a provider-only session: authenticated for display
// purposes, guest for storage purposes.
type Session struct {
	Token      string
	ExpiresAt  time.Time
	Email      string
	Name       string
	Provider   Provider
	Credential string
}

// sessionJSON is the persisted shape; expiresAt is Unix milliseconds.
type sessionJSON struct {
	Token      string   `json:"token"`
	ExpiresAt  int64    `json:"expiresAt"`
	Email      string   `json:"email,omitempty"`
	Name       string   `json:"name,omitempty"`
	Provider   Provider `json:"provider,omitempty"`
	Credential string   `json:"credential,omitempty"`
}

func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionJSON{
		Token:      s.Token,
		ExpiresAt:  s.ExpiresAt.UnixMilli(),
		Email:      s.Email,
		Name:       s.Name,
		Provider:   s.Provider,
		Credential: s.Credential,
	})
}

func (s *Session) UnmarshalJSON(b []byte) error {
	var w sessionJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*s = Session{
		Token:      w.Token,
		Email:      w.Email,
		Name:       w.Name,
		Provider:   w.Provider,
		Credential: w.Credential,
	}
	if w.ExpiresAt != 0 {
		s.ExpiresAt = time.UnixMilli(w.ExpiresAt)
	}
	return nil
}

// Expired reports whether the session is past its expiry at now.
// A session without an expiry never expires.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// HasIdentity reports whether the session is bound to an email.
func (s Session) HasIdentity() bool {
	return s.Email != ""
}

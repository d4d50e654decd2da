// Package models holds the records persisted in the visitor's key space and
// the value types passed between the storefront components.
package models

import "time"

// User is a registry record stored under the "users" key.
type User struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Salt         string    `json:"salt"`
	Name         string    `json:"name,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the non-secret part of a User.
type PublicUser struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public strips credentials from u.
func (u User) Public() PublicUser {
	return PublicUser{Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

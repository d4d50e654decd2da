// Package common defines shared sentinel errors and small helpers used across
// the storefront layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Identity errors.
	ErrDuplicateIdentity  = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrValidation         = errors.New("validation error")

	// Session errors.
	ErrUnauthorized = errors.New("unauthorized")

	// Cart errors.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrEmptyProductID  = errors.New("productID is empty")
)

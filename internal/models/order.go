package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals is the priced view of a cart.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
	// Percent is the applied coupon percentage, 0 when none applies.
	Percent int      `json:"percent"`
	Missing []string `json:"missing,omitempty"`
}

// Order is returned by checkout. Orders are not persisted.
type Order struct {
	ID       string     `json:"id"`
	Email    string     `json:"email"`
	Items    []CartItem `json:"items"`
	Totals   Totals     `json:"totals"`
	PlacedAt time.Time  `json:"placedAt"`
}

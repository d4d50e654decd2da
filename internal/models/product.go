package models

import "github.com/shopspring/decimal"

// Product is a read-only catalog entry.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Brand       string          `json:"brand"`
	MRP         decimal.Decimal `json:"mrp"`
	Price       decimal.Decimal `json:"price"`
	Discount    int             `json:"discount"`
	Rating      float64         `json:"rating"`
	Reviews     int             `json:"reviews"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Delivery    string          `json:"delivery"`
	Return      string          `json:"return"`
	Description string          `json:"description"`
}

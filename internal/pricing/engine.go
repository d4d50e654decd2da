// Package pricing turns a cart into totals and keeps the applied coupon.
// All arithmetic is decimal; amounts are rounded half-up to cents.
package pricing

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Lookup resolves a product id to its catalog entry.
type Lookup func(id string) (models.Product, bool)

type Engine struct {
	currency currency.Unit
	log      logging.Logger
}

// NewEngine prices in the ISO 4217 currency code.
func NewEngine(code string, log logging.Logger) (*Engine, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("currency %q: %w", code, err)
	}
	return &Engine{currency: unit, log: log}, nil
}

func (e *Engine) Currency() currency.Unit { return e.currency }

func (e *Engine) Money(d decimal.Decimal) Money {
	return Money{Amount: d, Currency: e.currency}
}

// ComputeTotals prices items and applies coupon. Items whose product is
// unknown add nothing to the subtotal and are listed in Missing.
func (e *Engine) ComputeTotals(ctx context.Context, items []models.CartItem, lookup Lookup, coupon string) models.Totals {
	subtotal := decimal.Zero
	var missing []string

	for _, it := range items {
		p, ok := lookup(it.ProductID)
		if !ok {
			missing = append(missing, it.ProductID)
			continue
		}
		subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	if len(missing) > 0 {
		e.log.Warn(ctx, "cart references unknown products", "products", missing)
	}

	subtotal = round2(subtotal)
	discount, pct := CouponDiscount(coupon, subtotal)
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return models.Totals{
		Subtotal: subtotal,
		Discount: discount,
		Total:    total,
		Currency: e.currency.String(),
		Percent:  pct,
		Missing:  missing,
	}
}

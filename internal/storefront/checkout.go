package storefront

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/models"
)

// Totals prices the visitor's cart with the applied coupon.
func (s *Storefront) Totals(ctx context.Context) (models.Totals, error) {
	items, err := s.cart.Items(ctx)
	if err != nil {
		return models.Totals{}, err
	}
	code, err := s.coupons.Current(ctx)
	if err != nil {
		return models.Totals{}, err
	}
	return s.pricing.ComputeTotals(ctx, items, s.catalog.ByID, code), nil
}

// ApplyCoupon stores code and returns the resulting totals. A code that
// does not discount anything is still stored; Totals.Percent tells the
// caller whether it took effect.
func (s *Storefront) ApplyCoupon(ctx context.Context, code string) (models.Totals, error) {
	if err := s.coupons.Apply(ctx, code); err != nil {
		return models.Totals{}, err
	}
	return s.Totals(ctx)
}

func (s *Storefront) RemoveCoupon(ctx context.Context) error {
	return s.coupons.Remove(ctx)
}

func (s *Storefront) Coupon(ctx context.Context) (string, error) {
	return s.coupons.Current(ctx)
}

// Checkout prices and empties the cart of the signed-in visitor. Orders are
// not kept; the returned Order is the only record.
func (s *Storefront) Checkout(ctx context.Context) (models.Order, error) {
	sess, ok, err := s.sessions.Active(ctx)
	if err != nil {
		return models.Order{}, err
	}
	if !ok {
		return models.Order{}, common.ErrUnauthorized
	}

	// Everything that can fail is read before the cart is emptied.
	code, err := s.coupons.Current(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("checkout: %w", err)
	}
	items, err := s.cart.Take(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("checkout: %w", err)
	}
	if len(items) == 0 {
		return models.Order{}, common.ErrEmptyCart
	}

	order := models.Order{
		ID:       s.newID(),
		Email:    sess.Email,
		Items:    items,
		Totals:   s.pricing.ComputeTotals(ctx, items, s.catalog.ByID, code),
		PlacedAt: s.now().UTC(),
	}
	s.rec.CheckoutCompleted()
	s.log.Info(ctx, "order placed", "order", order.ID, "email", order.Email, "total", order.Totals.Total.StringFixed(2))
	return order, nil
}

package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/keyspace"
	"github.com/dmitrijs2005/storefront/internal/storage"
)

// CouponStore keeps the single applied coupon under the "coupon" key. The
// coupon belongs to the visitor, not to an identity, and survives logins.
type CouponStore struct {
	acc *storage.Accessor
}

func NewCouponStore(acc *storage.Accessor) *CouponStore {
	return &CouponStore{acc: acc}
}

// Apply stores code as entered, trimmed. Invalid codes are kept too; they
// simply discount nothing. An empty code removes the coupon.
func (c *CouponStore) Apply(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return c.Remove(ctx)
	}
	if err := c.acc.Write(ctx, keyspace.Coupon, code); err != nil {
		return fmt.Errorf("apply coupon: %w", err)
	}
	return nil
}

func (c *CouponStore) Remove(ctx context.Context) error {
	if err := c.acc.Delete(ctx, keyspace.Coupon); err != nil {
		return fmt.Errorf("remove coupon: %w", err)
	}
	return nil
}

// Current returns the applied code, or "" when none.
func (c *CouponStore) Current(ctx context.Context) (string, error) {
	code, _, err := storage.ReadAs[string](ctx, c.acc, keyspace.Coupon)
	return code, err
}

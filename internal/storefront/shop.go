package storefront

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/models"
)

// Counters are the header badge numbers.
type Counters struct {
	Cart     int
	Wishlist int
}

// Line is a cart item with its catalog entry; Product is zero when the id
// is no longer in the catalog.
type Line struct {
	models.CartItem
	Product models.Product
	Known   bool
}

func (s *Storefront) product(id string) (models.Product, error) {
	p, ok := s.catalog.ByID(strings.TrimSpace(id))
	if !ok {
		return models.Product{}, fmt.Errorf("product %q: %w", id, common.ErrNotFound)
	}
	return p, nil
}

// AddToCart adds qty units of a catalog product to the visitor's cart.
func (s *Storefront) AddToCart(ctx context.Context, productID string, qty int) error {
	p, err := s.product(productID)
	if err != nil {
		return err
	}
	return s.cart.Add(ctx, p.ID, qty)
}

func (s *Storefront) RemoveFromCart(ctx context.Context, productID string) error {
	return s.cart.Remove(ctx, productID)
}

func (s *Storefront) SetCartQty(ctx context.Context, productID string, qty int) error {
	if qty > 0 {
		if _, err := s.product(productID); err != nil {
			return err
		}
	}
	return s.cart.SetQty(ctx, productID, qty)
}

func (s *Storefront) IncrementCart(ctx context.Context, productID string) error {
	return s.cart.Increment(ctx, productID)
}

func (s *Storefront) DecrementCart(ctx context.Context, productID string) error {
	return s.cart.Decrement(ctx, productID)
}

// Cart returns the visitor's cart lines joined with the catalog.
func (s *Storefront) Cart(ctx context.Context) ([]Line, error) {
	items, err := s.cart.Items(ctx)
	if err != nil {
		return nil, err
	}
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		p, ok := s.catalog.ByID(it.ProductID)
		lines = append(lines, Line{CartItem: it, Product: p, Known: ok})
	}
	return lines, nil
}

// ToggleWishlist saves or unsaves a catalog product and reports whether it
// is saved afterwards.
func (s *Storefront) ToggleWishlist(ctx context.Context, productID string) (bool, error) {
	p, err := s.product(productID)
	if err != nil {
		return false, err
	}
	return s.wishlist.Toggle(ctx, p.ID)
}

func (s *Storefront) InWishlist(ctx context.Context, productID string) (bool, error) {
	return s.wishlist.Contains(ctx, productID)
}

// Wishlist returns the saved products that are still in the catalog.
func (s *Storefront) Wishlist(ctx context.Context) ([]models.Product, error) {
	ids, err := s.wishlist.Items(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.catalog.ByID(id); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Storefront) Counters(ctx context.Context) (Counters, error) {
	c, err := s.cart.Count(ctx)
	if err != nil {
		return Counters{}, err
	}
	w, err := s.wishlist.Count(ctx)
	if err != nil {
		return Counters{}, err
	}
	return Counters{Cart: c, Wishlist: w}, nil
}

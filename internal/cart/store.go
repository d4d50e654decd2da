// Package cart keeps the current visitor's cart. The visitor is resolved on
// every call so the same Store follows logins and logouts.
package cart

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/keyspace"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/dmitrijs2005/storefront/internal/storage"
)

// Scope resolves whose cart is being operated on; *session.Manager
// implements it.
type Scope interface {
	Identity(ctx context.Context) (models.Identity, error)
}

type Store struct {
	acc   *storage.Accessor
	scope Scope
	log   logging.Logger
}

func NewStore(acc *storage.Accessor, scope Scope, log logging.Logger) *Store {
	return &Store{acc: acc, scope: scope, log: log}
}

func (s *Store) key(ctx context.Context) (string, error) {
	id, err := s.scope.Identity(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve identity: %w", err)
	}
	return keyspace.Cart(id), nil
}

// Items returns the cart lines in insertion order.
func (s *Store) Items(ctx context.Context) ([]models.CartItem, error) {
	key, err := s.key(ctx)
	if err != nil {
		return nil, err
	}
	items, _, err := storage.ReadClean(ctx, s.acc, key, models.SanitizeCart)
	return items, err
}

// Count is the badge number: the sum of all quantities.
func (s *Store) Count(ctx context.Context) (int, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	return models.TotalQty(items), nil
}

// update runs fn over the current cart inside one Atomic unit and stores the
// result.
func (s *Store) update(ctx context.Context, fn func(items []models.CartItem) []models.CartItem) error {
	key, err := s.key(ctx)
	if err != nil {
		return err
	}

	return s.acc.Atomic(ctx, func(ctx context.Context, acc *storage.Accessor) error {
		items, _, err := storage.ReadClean(ctx, acc, key, models.SanitizeCart)
		if err != nil {
			return err
		}
		items = fn(items)
		if items == nil {
			items = []models.CartItem{}
		}
		return acc.Write(ctx, key, items)
	})
}

func checkID(productID string) (string, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return "", common.ErrEmptyProductID
	}
	return productID, nil
}

func indexOf(items []models.CartItem, productID string) int {
	return slices.IndexFunc(items, func(it models.CartItem) bool { return it.ProductID == productID })
}

// Add puts qty units of productID in the cart, adding to an existing line.
func (s *Store) Add(ctx context.Context, productID string, qty int) error {
	productID, err := checkID(productID)
	if err != nil {
		return err
	}
	if qty < 1 {
		return common.ErrInvalidQuantity
	}

	err = s.update(ctx, func(items []models.CartItem) []models.CartItem {
		if i := indexOf(items, productID); i >= 0 {
			items[i].Qty += qty
			return items
		}
		return append(items, models.CartItem{ProductID: productID, Qty: qty})
	})
	if err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	s.log.Debug(ctx, "cart item added", "product", productID, "qty", qty)
	return nil
}

// Remove drops the line for productID. Removing an absent product is not an
// error.
func (s *Store) Remove(ctx context.Context, productID string) error {
	productID, err := checkID(productID)
	if err != nil {
		return err
	}

	err = s.update(ctx, func(items []models.CartItem) []models.CartItem {
		return slices.DeleteFunc(items, func(it models.CartItem) bool { return it.ProductID == productID })
	})
	if err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	return nil
}

// SetQty sets the quantity of productID. A quantity of zero or less removes
// the line; a product not yet in the cart is added.
func (s *Store) SetQty(ctx context.Context, productID string, qty int) error {
	productID, err := checkID(productID)
	if err != nil {
		return err
	}

	err = s.update(ctx, func(items []models.CartItem) []models.CartItem {
		i := indexOf(items, productID)
		switch {
		case qty <= 0 && i >= 0:
			return slices.Delete(items, i, i+1)
		case qty <= 0:
			return items
		case i >= 0:
			items[i].Qty = qty
			return items
		default:
			return append(items, models.CartItem{ProductID: productID, Qty: qty})
		}
	})
	if err != nil {
		return fmt.Errorf("set cart quantity: %w", err)
	}
	return nil
}

func (s *Store) Increment(ctx context.Context, productID string) error {
	return s.Add(ctx, productID, 1)
}

// Decrement lowers the quantity of productID by one; a line at 1 is removed.
func (s *Store) Decrement(ctx context.Context, productID string) error {
	productID, err := checkID(productID)
	if err != nil {
		return err
	}

	err = s.update(ctx, func(items []models.CartItem) []models.CartItem {
		i := indexOf(items, productID)
		if i < 0 {
			return items
		}
		if items[i].Qty <= 1 {
			return slices.Delete(items, i, i+1)
		}
		items[i].Qty--
		return items
	})
	if err != nil {
		return fmt.Errorf("decrement cart item: %w", err)
	}
	return nil
}

// Clear empties the current cart.
func (s *Store) Clear(ctx context.Context) error {
	key, err := s.key(ctx)
	if err != nil {
		return err
	}
	if err := s.acc.Write(ctx, key, []models.CartItem{}); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Take empties the current cart and returns what it held, in one unit.
func (s *Store) Take(ctx context.Context) ([]models.CartItem, error) {
	key, err := s.key(ctx)
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	err = s.acc.Atomic(ctx, func(ctx context.Context, acc *storage.Accessor) error {
		var err error
		if items, _, err = storage.ReadClean(ctx, acc, key, models.SanitizeCart); err != nil {
			return err
		}
		return acc.Write(ctx, key, []models.CartItem{})
	})
	if err != nil {
		return nil, fmt.Errorf("take cart: %w", err)
	}
	return items, nil
}

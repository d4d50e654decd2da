// Package wishlist keeps the current visitor's saved products as an ordered
// list of unique ids.
package wishlist

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/cart"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/keyspace"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/dmitrijs2005/storefront/internal/storage"
)

type Store struct {
	acc   *storage.Accessor
	scope cart.Scope
	log   logging.Logger
}

func NewStore(acc *storage.Accessor, scope cart.Scope, log logging.Logger) *Store {
	return &Store{acc: acc, scope: scope, log: log}
}

func (s *Store) key(ctx context.Context) (string, error) {
	id, err := s.scope.Identity(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve identity: %w", err)
	}
	return keyspace.Wishlist(id), nil
}

func (s *Store) Items(ctx context.Context) ([]string, error) {
	key, err := s.key(ctx)
	if err != nil {
		return nil, err
	}
	ids, _, err := storage.ReadClean(ctx, s.acc, key, models.SanitizeWishlist)
	return ids, err
}

func (s *Store) Count(ctx context.Context) (int, error) {
	ids, err := s.Items(ctx)
	return len(ids), err
}

func (s *Store) Contains(ctx context.Context, productID string) (bool, error) {
	ids, err := s.Items(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, strings.TrimSpace(productID)), nil
}

func (s *Store) update(ctx context.Context, productID string, fn func(ids []string, id string) []string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return common.ErrEmptyProductID
	}
	key, err := s.key(ctx)
	if err != nil {
		return err
	}

	return s.acc.Atomic(ctx, func(ctx context.Context, acc *storage.Accessor) error {
		ids, _, err := storage.ReadClean(ctx, acc, key, models.SanitizeWishlist)
		if err != nil {
			return err
		}
		ids = fn(ids, productID)
		if ids == nil {
			ids = []string{}
		}
		return acc.Write(ctx, key, ids)
	})
}

func add(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func remove(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}

// Add saves productID; saving it twice keeps a single entry.
func (s *Store) Add(ctx context.Context, productID string) error {
	if err := s.update(ctx, productID, add); err != nil {
		return fmt.Errorf("add to wishlist: %w", err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, productID string) error {
	if err := s.update(ctx, productID, remove); err != nil {
		return fmt.Errorf("remove from wishlist: %w", err)
	}
	return nil
}

// Toggle saves productID if absent and removes it otherwise. It reports
// whether the product is saved afterwards.
func (s *Store) Toggle(ctx context.Context, productID string) (bool, error) {
	var added bool
	err := s.update(ctx, productID, func(ids []string, id string) []string {
		if slices.Contains(ids, id) {
			added = false
			return remove(ids, id)
		}
		added = true
		return append(ids, id)
	})
	if err != nil {
		return false, fmt.Errorf("toggle wishlist: %w", err)
	}
	s.log.Debug(ctx, "wishlist toggled", "product", strings.TrimSpace(productID), "saved", added)
	return added, nil
}

func (s *Store) Clear(ctx context.Context) error {
	key, err := s.key(ctx)
	if err != nil {
		return err
	}
	if err := s.acc.Write(ctx, key, []string{}); err != nil {
		return fmt.Errorf("clear wishlist: %w", err)
	}
	return nil
}

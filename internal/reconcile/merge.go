// Package reconcile moves cart and wishlist state between the guest and an
// identity across login and logout without losing or duplicating entries.
package reconcile

import "github.com/dmitrijs2005/storefront/internal/models"

// MergeCollection folds guest into identity. Entries whose keys already
// appear are combined in place (existing first); new keys are appended in
// guest order. Neither input is modified and the result has unique keys
// as long as identity does.
func MergeCollection[T any, K comparable](guest, identity []T, key func(T) K, combine func(existing, incoming T) T) []T {
	out := make([]T, len(identity), len(identity)+len(guest))
	copy(out, identity)

	index := make(map[K]int, len(out))
	for i, it := range out {
		index[key(it)] = i
	}

	for _, g := range guest {
		k := key(g)
		if i, ok := index[k]; ok {
			out[i] = combine(out[i], g)
			continue
		}
		index[k] = len(out)
		out = append(out, g)
	}
	return out
}

// MergeCart sums quantities of matching products.
func MergeCart(guest, identity []models.CartItem) []models.CartItem {
	return MergeCollection(guest, identity,
		func(it models.CartItem) string { return it.ProductID },
		func(existing, incoming models.CartItem) models.CartItem {
			existing.Qty += incoming.Qty
			return existing
		})
}

// MergeWishlist is an order-preserving union.
func MergeWishlist(guest, identity []string) []string {
	return MergeCollection(guest, identity,
		func(id string) string { return id },
		func(existing, _ string) string { return existing })
}

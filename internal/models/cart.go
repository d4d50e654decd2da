package models

import "strings"

// CartItem is one cart line. The product id is persisted as "id".
type CartItem struct {
	ProductID string `json:"id"`
	Qty       int    `json:"qty"`
}

// TotalQty sums the quantities of items.
func TotalQty(items []CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Qty
	}
	return n
}

// SanitizeCart drops lines with an empty product id or a quantity below one
// and folds repeated ids into the first line. It reports whether items broke
// any of these rules; when they did not, items is returned as is.
func SanitizeCart(items []CartItem) ([]CartItem, bool) {
	out := make([]CartItem, 0, len(items))
	index := make(map[string]int, len(items))
	changed := false

	for _, it := range items {
		id := strings.TrimSpace(it.ProductID)
		if id == "" || it.Qty < 1 {
			changed = true
			continue
		}
		if id != it.ProductID {
			it.ProductID = id
			changed = true
		}
		if i, ok := index[id]; ok {
			out[i].Qty += it.Qty
			changed = true
			continue
		}
		index[id] = len(out)
		out = append(out, it)
	}

	if !changed {
		return items, false
	}
	return out, true
}

// SanitizeWishlist drops empty ids and repeats, keeping first occurrences.
func SanitizeWishlist(ids []string) ([]string, bool) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	changed := false

	for _, id := range ids {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" || seen[trimmed] {
			changed = true
			continue
		}
		if trimmed != id {
			changed = true
		}
		seen[trimmed] = true
		out = append(out, trimmed)
	}

	if !changed {
		return ids, false
	}
	return out, true
}

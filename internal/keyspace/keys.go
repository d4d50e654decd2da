// Package keyspace names every key the storefront persists in a visitor's
// store. Keys for cart and wishlist are pure functions of the identity.
package keyspace

import "github.com/dmitrijs2005/storefront/internal/models"

const (
	Auth   = "auth"
	Users  = "users"
	Coupon = "coupon"
)

// Kind is a per-identity collection.
type Kind string

const (
	KindCart     Kind = "cart"
	KindWishlist Kind = "wishlist"
)

// Live is the key of the identity's current collection.
func Live(kind Kind, id models.Identity) string {
	if id.IsGuest() {
		id = models.Guest
	}
	return string(kind) + "_" + string(id)
}

// Backup is the key of the snapshot taken at logout for email.
func Backup(kind Kind, email string) string {
	return "backup_" + string(kind) + "_" + email
}

func Cart(id models.Identity) string     { return Live(KindCart, id) }
func Wishlist(id models.Identity) string { return Live(KindWishlist, id) }

package reconcile

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/keyspace"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/metrics"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/dmitrijs2005/storefront/internal/storage"
)

// Reconciler runs the login and logout pipelines for cart and wishlist.
// Its methods take the Accessor of the caller's Atomic unit and never open
// units of their own.
type Reconciler struct {
	log logging.Logger
	rec metrics.Recorder
}

func New(log logging.Logger, rec metrics.Recorder) *Reconciler {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Reconciler{log: log, rec: rec}
}

// Login restores email's backups and then merges the guest stores into it.
func (r *Reconciler) Login(ctx context.Context, acc *storage.Accessor, email string) error {
	if err := r.Restore(ctx, acc, email); err != nil {
		return err
	}
	return r.MergeGuest(ctx, acc, email)
}

// Logout snapshots email's live stores into backups and resets the guest
// stores. The caller clears the session between the two steps.
func (r *Reconciler) Logout(ctx context.Context, acc *storage.Accessor, email string, clearSession func(context.Context, *storage.Accessor) error) error {
	if email != "" {
		if err := r.Backup(ctx, acc, email); err != nil {
			return err
		}
	}
	if err := clearSession(ctx, acc); err != nil {
		return err
	}
	return r.ResetGuest(ctx, acc)
}

// Restore moves each backup over the live store and drops the backup.
func (r *Reconciler) Restore(ctx context.Context, acc *storage.Accessor, email string) error {
	if err := restoreKind(ctx, r, acc, keyspace.KindCart, email, models.SanitizeCart); err != nil {
		return err
	}
	return restoreKind(ctx, r, acc, keyspace.KindWishlist, email, models.SanitizeWishlist)
}

// MergeGuest folds the guest stores into email's live stores and deletes
// the guest stores.
func (r *Reconciler) MergeGuest(ctx context.Context, acc *storage.Accessor, email string) error {
	if err := mergeKind(ctx, r, acc, keyspace.KindCart, email, models.SanitizeCart, MergeCart); err != nil {
		return err
	}
	return mergeKind(ctx, r, acc, keyspace.KindWishlist, email, models.SanitizeWishlist, MergeWishlist)
}

// Backup snapshots non-empty live stores of email. An empty store leaves no
// backup behind.
func (r *Reconciler) Backup(ctx context.Context, acc *storage.Accessor, email string) error {
	if err := backupKind(ctx, r, acc, keyspace.KindCart, email, models.SanitizeCart); err != nil {
		return err
	}
	return backupKind(ctx, r, acc, keyspace.KindWishlist, email, models.SanitizeWishlist)
}

// ResetGuest leaves the guest with empty stores.
func (r *Reconciler) ResetGuest(ctx context.Context, acc *storage.Accessor) error {
	if err := acc.Write(ctx, keyspace.Cart(models.Guest), []models.CartItem{}); err != nil {
		return err
	}
	return acc.Write(ctx, keyspace.Wishlist(models.Guest), []string{})
}

func restoreKind[T any](ctx context.Context, r *Reconciler, acc *storage.Accessor, kind keyspace.Kind, email string, clean func([]T) ([]T, bool)) error {
	backupKey := keyspace.Backup(kind, email)

	present, err := acc.Has(ctx, backupKey)
	if err != nil || !present {
		return err
	}

	items, ok, err := storage.ReadClean(ctx, acc, backupKey, clean)
	if err != nil {
		return err
	}
	if ok {
		if err := acc.Write(ctx, keyspace.Live(kind, models.Identity(email)), items); err != nil {
			return err
		}
		r.rec.BackupRestored(string(kind))
		r.log.Debug(ctx, "backup restored", "kind", kind, "email", email, "items", len(items))
	}
	return acc.Delete(ctx, backupKey)
}

func mergeKind[T any](ctx context.Context, r *Reconciler, acc *storage.Accessor, kind keyspace.Kind, email string, clean func([]T) ([]T, bool), merge func(guest, identity []T) []T) error {
	guestKey := keyspace.Live(kind, models.Guest)

	guest, _, err := storage.ReadClean(ctx, acc, guestKey, clean)
	if err != nil {
		return err
	}
	if len(guest) > 0 {
		liveKey := keyspace.Live(kind, models.Identity(email))
		live, _, err := storage.ReadClean(ctx, acc, liveKey, clean)
		if err != nil {
			return err
		}
		if err := acc.Write(ctx, liveKey, merge(guest, live)); err != nil {
			return err
		}
		r.rec.GuestItemsMerged(string(kind), len(guest))
		r.log.Debug(ctx, "guest items merged", "kind", kind, "email", email, "items", len(guest))
	}
	return acc.Delete(ctx, guestKey)
}

func backupKind[T any](ctx context.Context, r *Reconciler, acc *storage.Accessor, kind keyspace.Kind, email string, clean func([]T) ([]T, bool)) error {
	backupKey := keyspace.Backup(kind, email)

	live, _, err := storage.ReadClean(ctx, acc, keyspace.Live(kind, models.Identity(email)), clean)
	if err != nil {
		return err
	}
	if len(live) == 0 {
		return acc.Delete(ctx, backupKey)
	}
	r.log.Debug(ctx, "backup taken", "kind", kind, "email", email, "items", len(live))
	return acc.Write(ctx, backupKey, live)
}

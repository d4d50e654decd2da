// Package metrics counts session and reconciliation events.
package metrics

// Recorder receives storefront events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	Login(provider string)
	Logout()
	SessionExpired()
	// GuestItemsMerged counts guest entries folded into an identity store.
	GuestItemsMerged(kind string, n int)
	BackupRestored(kind string)
	CheckoutCompleted()
}

// Nop discards everything.
type Nop struct{}

func (Nop) Login(string)                 {}
func (Nop) Logout()                      {}
func (Nop) SessionExpired()              {}
func (Nop) GuestItemsMerged(string, int) {}
func (Nop) BackupRestored(string)        {}
func (Nop) CheckoutCompleted()           {}

package models

// Identity scopes cart and wishlist storage: either Guest or an email.
type Identity string

// Guest is the anonymous identity.
const Guest Identity = "guest"

// IsGuest reports whether id is the anonymous identity.
func (id Identity) IsGuest() bool {
	return id == Guest || id == ""
}

// IdentityRef is what a login is performed with.
type IdentityRef struct {
	Email      string
	Name       string
	Provider   Provider
	Credential string
}

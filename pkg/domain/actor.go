package domain

// Actor is the authenticated principal attempting an operation, derived from
// a verified credential token by the transport layer. The zero value is an
// anonymous caller.
type Actor struct {
	// ID is the acting user's id.
	ID UserID
	// IsAdmin mirrors the user's admin flag at token issuance time.
	IsAdmin bool
}

// IsAnonymous reports whether the actor carries no identity.
func (a Actor) IsAnonymous() bool { return a.ID.IsZero() }

package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"stays/pkg/serrors"
)

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// String returns the canonical string form of the id.
func (id UserID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the id is unset.
func (id UserID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText encodes the id as its canonical UUID string.
func (id UserID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses a canonical UUID string.
func (id *UserID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

const nameMaxLen = 50

// User represents a registered account. A user owns zero or more places and
// may author reviews on places owned by others.
type User struct {
	// ID is the unique identifier of the user.
	ID UserID `json:"id"`

	// FirstName and LastName are display names, 1 to 50 characters, non-blank.
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	// Email is the login identity, globally unique, stored lower-cased.
	Email string `json:"email"`
	// Credential is the opaque password hash. It is never serialized outward.
	Credential string `json:"-"`
	// IsAdmin grants the user every right the authorization policy checks for.
	IsAdmin bool `json:"isAdmin"`

	// CreatedAt is the time the user registered.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Normalize trims surrounding whitespace and lower-cases the email. It is
// called before Validate so the stored form is canonical.
func (u *User) Normalize() {
	u.FirstName = strings.TrimSpace(u.FirstName)
	u.LastName = strings.TrimSpace(u.LastName)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

// Validate checks every field constraint and returns a validation error
// naming the first offending field.
func (u User) Validate() error {
	if err := validateName("firstName", u.FirstName); err != nil {
		return err
	}
	if err := validateName("lastName", u.LastName); err != nil {
		return err
	}
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if u.Credential == "" {
		return serrors.OnField("password", "must not be empty")
	}

	return nil
}

// ValidateEmail checks that the address parses as a single RFC 5322 address
// without a display name.
func ValidateEmail(email string) error {
	if email == "" {
		return serrors.OnField("email", "must not be empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return serrors.OnField("email", "must be a valid email address")
	}

	return nil
}

func validateName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return serrors.OnField(field, "must not be blank")
	}
	if len(value) > nameMaxLen {
		return serrors.OnField(field, "must be at most %d characters", nameMaxLen)
	}

	return nil
}

package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"stays/pkg/serrors"
)

// AmenityID uniquely identifies an amenity.
type AmenityID uuid.UUID

// String returns the canonical string form of the id.
func (id AmenityID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the id is unset.
func (id AmenityID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText encodes the id as its canonical UUID string.
func (id AmenityID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses a canonical UUID string.
func (id *AmenityID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

const amenityNameMaxLen = 50

// Amenity is a named feature (e.g. "Wi-Fi") shared across places. Names are
// unique ignoring case.
type Amenity struct {
	// ID is the unique identifier of the amenity.
	ID AmenityID `json:"id"`

	// Name is 1 to 50 characters, non-blank.
	Name string `json:"name"`

	// CreatedAt is the time the amenity was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Normalize trims surrounding whitespace from the name.
func (a *Amenity) Normalize() {
	a.Name = strings.TrimSpace(a.Name)
}

// Validate checks the name constraint.
func (a Amenity) Validate() error {
	return ValidateAmenityName(a.Name)
}

// ValidateAmenityName checks that the name is non-blank and at most 50
// characters.
func ValidateAmenityName(name string) error {
	if strings.TrimSpace(name) == "" {
		return serrors.OnField("name", "must not be blank")
	}
	if len(name) > amenityNameMaxLen {
		return serrors.OnField("name", "must be at most %d characters", amenityNameMaxLen)
	}

	return nil
}

package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"stays/pkg/serrors"
)

// PlaceID uniquely identifies a rental place.
type PlaceID uuid.UUID

// String returns the canonical string form of the id.
func (id PlaceID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the id is unset.
func (id PlaceID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText encodes the id as its canonical UUID string.
func (id PlaceID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses a canonical UUID string.
func (id *PlaceID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

const (
	titleMaxLen  = 100
	latitudeMin  = -90
	latitudeMax  = 90
	longitudeMin = -180
	longitudeMax = 180
)

// Place is a rental listing owned by a single user. Amenities are referenced
// by id (shared across places); reviews reference the place from their side.
type Place struct {
	// ID is the unique identifier of the place.
	ID PlaceID `json:"id"`
	// OwnerID references the user who owns this listing.
	OwnerID UserID `json:"ownerId"`

	// Title is 1 to 100 characters, non-blank.
	Title string `json:"title"`
	// Description is optional free text.
	Description string `json:"description"`
	// Price is the nightly price, strictly positive.
	Price float64 `json:"price"`
	// Latitude is in degrees, within [-90, 90].
	Latitude float64 `json:"latitude"`
	// Longitude is in degrees, within [-180, 180].
	Longitude float64 `json:"longitude"`

	// AmenityIDs is the set of amenities attached to the place. Every id must
	// reference an existing amenity.
	AmenityIDs []AmenityID `json:"amenityIds"`

	// CreatedAt is the time the listing was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Normalize trims surrounding whitespace from textual fields.
func (p *Place) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
}

// Validate checks every field constraint and returns a validation error
// naming the first offending field.
func (p Place) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return serrors.OnField("title", "must not be blank")
	}
	if len(p.Title) > titleMaxLen {
		return serrors.OnField("title", "must be at most %d characters", titleMaxLen)
	}
	if err := ValidatePrice(p.Price); err != nil {
		return err
	}
	if err := ValidateCoordinates(p.Latitude, p.Longitude); err != nil {
		return err
	}
	if p.OwnerID.IsZero() {
		return serrors.OnField("ownerId", "must reference an existing user")
	}

	return nil
}

// ValidatePrice checks that the price is strictly positive.
func ValidatePrice(price float64) error {
	if price <= 0 {
		return serrors.OnField("price", "must be greater than 0")
	}

	return nil
}

// ValidateCoordinates checks latitude and longitude bounds.
func ValidateCoordinates(latitude, longitude float64) error {
	if latitude < latitudeMin || latitude > latitudeMax {
		return serrors.OnField("latitude", "must be between %d and %d", latitudeMin, latitudeMax)
	}
	if longitude < longitudeMin || longitude > longitudeMax {
		return serrors.OnField("longitude", "must be between %d and %d", longitudeMin, longitudeMax)
	}

	return nil
}

package storage

import (
	"context"

	"stays/pkg/domain"
)

// PlaceUpdates describes the optional fields that can be applied to an
// existing place. Only non-nil fields are updated. AmenityIDs, when
// provided, replaces the full set of attached amenities.
type PlaceUpdates struct {
	// Title, when provided, replaces the stored title.
	Title *string
	// Description, when provided, replaces the stored description. An empty
	// string clears it.
	Description *string
	// Price, when provided, replaces the nightly price.
	Price *float64
	// Latitude, when provided, replaces the latitude.
	Latitude *float64
	// Longitude, when provided, replaces the longitude.
	Longitude *float64
	// AmenityIDs, when provided, replaces the attached amenity set.
	AmenityIDs *[]domain.AmenityID
}

// PlaceStorage defines CRUD and lookup operations for places, including the
// place-amenity links.
type PlaceStorage interface {
	// StorePlace inserts a place together with its amenity links and returns
	// the stored row including generated fields.
	StorePlace(ctx context.Context, place domain.Place) (*domain.Place, error)
	// PlaceByID fetches a place by id with its amenity ids resolved.
	// Returns nil when not found.
	PlaceByID(ctx context.Context, id domain.PlaceID) (*domain.Place, error)
	// Places returns all places in creation order.
	Places(ctx context.Context) ([]domain.Place, error)
	// PlacesByOwner returns all places owned by the given user in creation order.
	PlacesByOwner(ctx context.Context, ownerID domain.UserID) ([]domain.Place, error)
	// UpdatePlace applies the provided field set to the place with the given
	// id and returns the updated row. Returns nil when the id is unknown.
	UpdatePlace(ctx context.Context, id domain.PlaceID, updates PlaceUpdates) (*domain.Place, error)
	// DeletePlace removes the place and detaches its amenities. Dependent
	// reviews are the caller's responsibility (the service cascades them in
	// the same transaction). Reports whether a row was removed.
	DeletePlace(ctx context.Context, id domain.PlaceID) (bool, error)
}

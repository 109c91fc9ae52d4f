package storage

import (
	"context"

	"stays/pkg/domain"
)

// AmenityUpdates describes the optional fields that can be applied to an
// existing amenity.
type AmenityUpdates struct {
	// Name, when provided, replaces the stored name.
	Name *string
}

// AmenityStorage defines CRUD and lookup operations for amenities.
type AmenityStorage interface {
	// StoreAmenity inserts an amenity and returns the stored row including
	// generated fields.
	StoreAmenity(ctx context.Context, amenity domain.Amenity) (*domain.Amenity, error)
	// AmenityByID fetches an amenity by id. Returns nil when not found.
	AmenityByID(ctx context.Context, id domain.AmenityID) (*domain.Amenity, error)
	// AmenityByName fetches an amenity by name, matched case-insensitively.
	// Returns nil when not found.
	AmenityByName(ctx context.Context, name string) (*domain.Amenity, error)
	// Amenities returns all amenities in creation order.
	Amenities(ctx context.Context) ([]domain.Amenity, error)
	// UpdateAmenity applies the provided field set to the amenity with the
	// given id and returns the updated row. Returns nil when the id is unknown.
	UpdateAmenity(ctx context.Context, id domain.AmenityID, updates AmenityUpdates) (*domain.Amenity, error)
	// DeleteAmenity removes the amenity and its place links. Reports whether
	// a row was removed.
	DeleteAmenity(ctx context.Context, id domain.AmenityID) (bool, error)
}

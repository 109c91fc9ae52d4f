// Package directory implements the use cases of the rental directory: user
// accounts, places, shared amenities and reviews. It is the only layer that
// enforces business rules; transports decode payloads and derive an actor,
// storage persists entities, and everything in between happens here.
package directory

import (
	"stays/internal/config"
	"stays/pkg/credential"
	"stays/pkg/storage"
)

// PlaceCreatePolicy decides which actors may create places.
type PlaceCreatePolicy string

const (
	// PlaceCreateOwner lets any authenticated user create listings they own.
	PlaceCreateOwner PlaceCreatePolicy = "owner"
	// PlaceCreateAdmin restricts place creation to admins.
	PlaceCreateAdmin PlaceCreatePolicy = "admin"
)

// Options configure business policy of the directory service.
type Options struct {
	// PlaceCreatePolicy decides which actors may create places.
	PlaceCreatePolicy PlaceCreatePolicy
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		PlaceCreatePolicy: PlaceCreatePolicy(cfg.Directory.PlaceCreatePolicy),
	}
}

// directory is the concrete implementation of the Directory interface.
// It coordinates persistence with the storage layer and credential hashing.
type directory struct {
	// options holds runtime business policy.
	options Options
	// storage is the persistence layer used to store all entities.
	storage storage.Storage
	// hasher hashes and verifies user credentials.
	hasher credential.Hasher
}

// New creates a new Directory instance backed by the provided storage and
// credential hasher, configured with the given options.
func New(storage storage.Storage, hasher credential.Hasher, options Options) Directory {
	return &directory{
		options: options,
		storage: storage,
		hasher:  hasher,
	}
}

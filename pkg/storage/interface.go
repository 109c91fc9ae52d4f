// Package storage defines the persistence contract the directory service
// relies on. It abstracts per-entity CRUD and transaction management so that
// different backings (in-memory map, PostgreSQL) can provide concrete
// implementations. Lookups return nil rather than an error when an entity is
// absent; callers decide whether absence is exceptional.
package storage

import "context"

// AllStorage is a composite interface that includes all per-entity storage
// capabilities required by the directory service.
type AllStorage interface {
	UserStorage
	PlaceStorage
	AmenityStorage
	ReviewStorage
}

// TxStorage describes a storage handle that operates within a transaction.
// It exposes the same capabilities as AllStorage plus commit and rollback.
// Implementations become unusable after Commit or Rollback is called.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}

// Storage describes a non-transactional storage handle with the ability to
// start transactions and release underlying resources.
type Storage interface {
	AllStorage

	// Close releases any resources held by the implementation (e.g. a
	// connection pool). After Close, the instance must not be used.
	Close() error

	// Begin starts a new transaction and returns a TxStorage scoped to it.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx begins a transaction, invokes the callback with a transactional
	// handle, and commits on success or rolls back if the callback errors.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}

package storage

import (
	"context"

	"stays/pkg/domain"
)

// UserUpdates describes the optional fields that can be applied to an
// existing user. Only non-nil fields are updated; updated_at is re-stamped
// whenever at least one field is set.
type UserUpdates struct {
	// FirstName, when provided, replaces the stored first name.
	FirstName *string
	// LastName, when provided, replaces the stored last name.
	LastName *string
	// Email, when provided, replaces the stored email address.
	Email *string
	// Credential, when provided, replaces the stored password hash.
	Credential *string
	// IsAdmin, when provided, replaces the admin flag.
	IsAdmin *bool
}

// UserStorage defines CRUD and lookup operations for users.
type UserStorage interface {
	// StoreUser inserts a user and returns the stored row as it exists in the
	// backing, including generated fields. updated_at starts equal to
	// created_at.
	StoreUser(ctx context.Context, user domain.User) (*domain.User, error)
	// UserByID fetches a user by id. Returns nil when not found.
	UserByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	// UserByEmail fetches a user by email, matched case-insensitively.
	// Returns nil when not found.
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
	// Users returns all users in creation order.
	Users(ctx context.Context) ([]domain.User, error)
	// UpdateUser applies the provided field set to the user with the given id
	// and returns the updated row. Returns nil when the id is unknown.
	UpdateUser(ctx context.Context, id domain.UserID, updates UserUpdates) (*domain.User, error)
	// DeleteUser removes the user. Reports whether a row was removed.
	DeleteUser(ctx context.Context, id domain.UserID) (bool, error)
}

package directory

import (
	"context"
	"fmt"

	"stays/pkg/domain"
	"stays/pkg/serrors"
	"stays/pkg/storage"
)

// RegisterUser creates a new regular account. The email is normalized and
// checked for uniqueness inside the same transaction as the insert, so two
// concurrent registrations of the same address cannot both succeed.
func (d directory) RegisterUser(ctx context.Context, in RegisterUserInput) (*domain.User, error) {
	user := domain.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}
	user.Normalize()

	if in.Password == "" {
		return nil, serrors.OnField("password", "must not be empty")
	}
	hash, err := d.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}
	user.Credential = hash

	if err := user.Validate(); err != nil {
		return nil, err
	}

	var stored *domain.User
	if err := d.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		existing, err := tx.UserByEmail(ctx, user.Email)
		if err != nil {
			return fmt.Errorf("could not check email: %w", err)
		}
		if existing != nil {
			return serrors.With(serrors.ErrConflict, "email already registered")
		}

		stored, err = tx.StoreUser(ctx, user)
		if err != nil {
			return fmt.Errorf("could not store user: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return stored, nil
}

// Authenticate returns the user matching the email and password. Unknown
// emails and wrong passwords both map to the same not-found error so callers
// cannot distinguish which part was wrong.
func (d directory) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := d.storage.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil || !d.hasher.Verify(password, user.Credential) {
		return nil, serrors.With(serrors.ErrNotFound, "invalid credentials")
	}

	return user, nil
}

// ResetPassword replaces the credential of the user identified by email. Only
// the user themselves or an admin may do so.
func (d directory) ResetPassword(ctx context.Context,
	actor domain.Actor,
	email, newPassword string) (*domain.User, error) {
	if newPassword == "" {
		return nil, serrors.OnField("password", "must not be empty")
	}

	user, err := d.storage.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrNotFound, "user not found")
	}
	if !canManage(actor, user.ID) {
		return nil, serrors.With(serrors.ErrForbidden, "cannot reset another user's password")
	}

	hash, err := d.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	updated, err := d.storage.UpdateUser(ctx, user.ID, storage.UserUpdates{Credential: &hash})
	if err != nil {
		return nil, fmt.Errorf("could not update user: %w", err)
	}
	if updated == nil {
		return nil, serrors.With(serrors.ErrNotFound, "user not found")
	}

	return updated, nil
}

// User fetches a single user by id. It returns a not-found error when no
// matching user exists.
func (d directory) User(ctx context.Context, id domain.UserID) (*domain.User, error) {
	user, err := d.storage.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrNotFound, "user not found")
	}

	return user, nil
}

// Users returns all users in creation order. Reserved to authenticated
// actors.
func (d directory) Users(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if !canListUsers(actor) {
		return nil, serrors.With(serrors.ErrUnauthorized, "authentication required")
	}

	users, err := d.storage.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list users: %w", err)
	}

	return users, nil
}

// UpdateUser applies a partial update to a user. The full updated entity is
// validated before anything is written, and an email change re-checks
// uniqueness inside the update transaction.
func (d directory) UpdateUser(ctx context.Context,
	actor domain.Actor,
	id domain.UserID,
	in UpdateUserInput) (*domain.User, error) {
	if !canManage(actor, id) {
		return nil, serrors.With(serrors.ErrForbidden, "cannot modify another user")
	}
	if in.IsAdmin != nil && !actor.IsAdmin {
		return nil, serrors.With(serrors.ErrForbidden, "only admins may change the admin flag")
	}

	user, err := d.storage.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrNotFound, "user not found")
	}

	updates := storage.UserUpdates{IsAdmin: in.IsAdmin}

	next := *user
	if in.FirstName != nil {
		next.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		next.LastName = *in.LastName
	}
	if in.Email != nil {
		next.Email = *in.Email
	}
	next.Normalize()
	if in.Password != nil {
		if *in.Password == "" {
			return nil, serrors.OnField("password", "must not be empty")
		}
		hash, err := d.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("could not hash password: %w", err)
		}
		next.Credential = hash
		updates.Credential = &next.Credential
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		updates.FirstName = &next.FirstName
	}
	if in.LastName != nil {
		updates.LastName = &next.LastName
	}
	emailChanged := in.Email != nil && next.Email != user.Email
	if emailChanged {
		updates.Email = &next.Email
	}

	var updated *domain.User
	if err := d.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		if emailChanged {
			existing, err := tx.UserByEmail(ctx, next.Email)
			if err != nil {
				return fmt.Errorf("could not check email: %w", err)
			}
			if existing != nil && existing.ID != id {
				return serrors.With(serrors.ErrConflict, "email already registered")
			}
		}

		updated, err = tx.UpdateUser(ctx, id, updates)
		if err != nil {
			return fmt.Errorf("could not update user: %w", err)
		}
		if updated == nil {
			return serrors.With(serrors.ErrNotFound, "user not found")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

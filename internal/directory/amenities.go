package directory

import (
	"context"
	"fmt"

	"stays/pkg/domain"
	"stays/pkg/serrors"
	"stays/pkg/storage"
)

// CreateAmenity creates a shared amenity. Names are unique ignoring case; the
// check runs in the same transaction as the insert.
func (d directory) CreateAmenity(ctx context.Context, in CreateAmenityInput) (*domain.Amenity, error) {
	amenity := domain.Amenity{Name: in.Name}
	amenity.Normalize()
	if err := amenity.Validate(); err != nil {
		return nil, err
	}

	var stored *domain.Amenity
	if err := d.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		existing, err := tx.AmenityByName(ctx, amenity.Name)
		if err != nil {
			return fmt.Errorf("could not check amenity name: %w", err)
		}
		if existing != nil {
			return serrors.With(serrors.ErrConflict, "amenity %q already exists", existing.Name)
		}

		stored, err = tx.StoreAmenity(ctx, amenity)
		if err != nil {
			return fmt.Errorf("could not store amenity: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return stored, nil
}

// Amenity fetches a single amenity by id. It returns a not-found error when
// no matching amenity exists.
func (d directory) Amenity(ctx context.Context, id domain.AmenityID) (*domain.Amenity, error) {
	amenity, err := d.storage.AmenityByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get amenity: %w", err)
	}
	if amenity == nil {
		return nil, serrors.With(serrors.ErrNotFound, "amenity not found")
	}

	return amenity, nil
}

// Amenities returns all amenities in creation order.
func (d directory) Amenities(ctx context.Context) ([]domain.Amenity, error) {
	amenities, err := d.storage.Amenities(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list amenities: %w", err)
	}

	return amenities, nil
}

// UpdateAmenity renames an amenity. Admin only; the new name must remain
// unique ignoring case.
func (d directory) UpdateAmenity(ctx context.Context,
	actor domain.Actor,
	id domain.AmenityID,
	in UpdateAmenityInput) (*domain.Amenity, error) {
	if !actor.IsAdmin {
		return nil, serrors.With(serrors.ErrForbidden, "only admins may modify amenities")
	}

	amenity, err := d.storage.AmenityByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get amenity: %w", err)
	}
	if amenity == nil {
		return nil, serrors.With(serrors.ErrNotFound, "amenity not found")
	}

	updates := storage.AmenityUpdates{}
	next := *amenity
	if in.Name != nil {
		next.Name = *in.Name
		next.Normalize()
		if err := next.Validate(); err != nil {
			return nil, err
		}
		updates.Name = &next.Name
	}

	var updated *domain.Amenity
	if err := d.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		if updates.Name != nil {
			existing, err := tx.AmenityByName(ctx, *updates.Name)
			if err != nil {
				return fmt.Errorf("could not check amenity name: %w", err)
			}
			if existing != nil && existing.ID != id {
				return serrors.With(serrors.ErrConflict, "amenity %q already exists", existing.Name)
			}
		}

		updated, err = tx.UpdateAmenity(ctx, id, updates)
		if err != nil {
			return fmt.Errorf("could not update amenity: %w", err)
		}
		if updated == nil {
			return serrors.With(serrors.ErrNotFound, "amenity not found")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteAmenity removes an amenity and detaches it from every place that
// references it. Admin only.
func (d directory) DeleteAmenity(ctx context.Context, actor domain.Actor, id domain.AmenityID) error {
	if !actor.IsAdmin {
		return serrors.With(serrors.ErrForbidden, "only admins may modify amenities")
	}

	removed, err := d.storage.DeleteAmenity(ctx, id)
	if err != nil {
		return fmt.Errorf("could not delete amenity: %w", err)
	}
	if !removed {
		return serrors.With(serrors.ErrNotFound, "amenity not found")
	}

	return nil
}

package directory

import (
	"context"
	"fmt"

	"stays/pkg/domain"
	"stays/pkg/serrors"
	"stays/pkg/storage"
)

// CreatePlace creates a listing for the actor (or, for admins, on behalf of
// another owner). Every referenced amenity id is resolved inside the insert
// transaction so the stored link set can never point at a missing amenity.
func (d directory) CreatePlace(ctx context.Context,
	actor domain.Actor,
	in CreatePlaceInput) (*PlaceDetails, error) {
	if actor.IsAnonymous() {
		return nil, serrors.With(serrors.ErrUnauthorized, "authentication required")
	}
	if !canCreatePlace(actor, d.options.PlaceCreatePolicy) {
		return nil, serrors.With(serrors.ErrForbidden, "place creation is restricted to admins")
	}

	ownerID := actor.ID
	if in.OwnerID != nil && *in.OwnerID != actor.ID {
		if !actor.IsAdmin {
			return nil, serrors.With(serrors.ErrForbidden, "cannot create a place for another owner")
		}
		ownerID = *in.OwnerID
	}

	place := domain.Place{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		AmenityIDs:  dedupeAmenityIDs(in.AmenityIDs),
	}
	place.Normalize()
	if err := place.Validate(); err != nil {
		return nil, err
	}

	var details *PlaceDetails
	if err := d.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		owner, err := tx.UserByID(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("could not get owner: %w", err)
		}
		if owner == nil {
			return serrors.With(serrors.ErrNotFound, "owner not found")
		}

		amenities, err := resolveAmenities(ctx, tx, place.AmenityIDs)
		if err != nil {
			return err
		}

		stored, err := tx.StorePlace(ctx, place)
		if err != nil {
			return fmt.Errorf("could not store place: %w", err)
		}

		details = &PlaceDetails{
			Place:     *stored,
			Owner:     *owner,
			Amenities: amenities,
			Reviews:   []domain.Review{},
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return details, nil
}

// Place fetches a place with its owner, amenities and reviews resolved. It
// returns a not-found error when no matching place exists.
func (d directory) Place(ctx context.Context, id domain.PlaceID) (*PlaceDetails, error) {
	place, err := d.storage.PlaceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get place: %w", err)
	}
	if place == nil {
		return nil, serrors.With(serrors.ErrNotFound, "place not found")
	}

	return d.placeDetails(ctx, d.storage, *place)
}

// Places returns all places in creation order, without nested projections.
func (d directory) Places(ctx context.Context) ([]domain.Place, error) {
	places, err := d.storage.Places(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list places: %w", err)
	}

	return places, nil
}

// UpdatePlace applies a partial update to a place. Owner or admin only. A new
// amenity set is resolved inside the update transaction.
func (d directory) UpdatePlace(ctx context.Context,
	actor domain.Actor,
	id domain.PlaceID,
	in UpdatePlaceInput) (*PlaceDetails, error) {
	place, err := d.storage.PlaceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get place: %w", err)
	}
	if place == nil {
		return nil, serrors.With(serrors.ErrNotFound, "place not found")
	}
	if !canManage(actor, place.OwnerID) {
		return nil, serrors.With(serrors.ErrForbidden, "cannot modify a place you do not own")
	}

	next := *place
	if in.Title != nil {
		next.Title = *in.Title
	}
	if in.Description != nil {
		next.Description = *in.Description
	}
	if in.Price != nil {
		next.Price = *in.Price
	}
	if in.Latitude != nil {
		next.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		next.Longitude = *in.Longitude
	}
	next.Normalize()
	if err := next.Validate(); err != nil {
		return nil, err
	}

	updates := storage.PlaceUpdates{
		Price:     in.Price,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}
	if in.Title != nil {
		updates.Title = &next.Title
	}
	if in.Description != nil {
		updates.Description = &next.Description
	}
	if in.AmenityIDs != nil {
		ids := dedupeAmenityIDs(*in.AmenityIDs)
		updates.AmenityIDs = &ids
	}

	var details *PlaceDetails
	if err := d.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		if updates.AmenityIDs != nil {
			if _, err := resolveAmenities(ctx, tx, *updates.AmenityIDs); err != nil {
				return err
			}
		}

		updated, err := tx.UpdatePlace(ctx, id, updates)
		if err != nil {
			return fmt.Errorf("could not update place: %w", err)
		}
		if updated == nil {
			return serrors.With(serrors.ErrNotFound, "place not found")
		}

		details, err = d.placeDetails(ctx, tx, *updated)

		return err
	}); err != nil {
		return nil, err
	}

	return details, nil
}

// DeletePlace removes a place, its amenity links and its reviews in one
// transaction. Owner or admin only.
func (d directory) DeletePlace(ctx context.Context, actor domain.Actor, id domain.PlaceID) error {
	place, err := d.storage.PlaceByID(ctx, id)
	if err != nil {
		return fmt.Errorf("could not get place: %w", err)
	}
	if place == nil {
		return serrors.With(serrors.ErrNotFound, "place not found")
	}
	if !canManage(actor, place.OwnerID) {
		return serrors.With(serrors.ErrForbidden, "cannot delete a place you do not own")
	}

	return d.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		if _, err := tx.DeleteReviewsByPlace(ctx, id); err != nil {
			return fmt.Errorf("could not delete reviews: %w", err)
		}

		removed, err := tx.DeletePlace(ctx, id)
		if err != nil {
			return fmt.Errorf("could not delete place: %w", err)
		}
		if !removed {
			return serrors.With(serrors.ErrNotFound, "place not found")
		}

		return nil
	})
}

// placeDetails assembles the read projection of a place from the given
// storage handle.
func (d directory) placeDetails(ctx context.Context,
	s storage.AllStorage,
	place domain.Place) (*PlaceDetails, error) {
	owner, err := s.UserByID(ctx, place.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("could not get owner: %w", err)
	}
	if owner == nil {
		return nil, fmt.Errorf("place %s references missing owner %s", place.ID, place.OwnerID)
	}

	amenities, err := resolveAmenities(ctx, s, place.AmenityIDs)
	if err != nil {
		return nil, err
	}

	reviews, err := s.ReviewsByPlace(ctx, place.ID)
	if err != nil {
		return nil, fmt.Errorf("could not get reviews: %w", err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	return &PlaceDetails{
		Place:     place,
		Owner:     *owner,
		Amenities: amenities,
		Reviews:   reviews,
	}, nil
}

// resolveAmenities looks up every id and fails with a not-found error naming
// the first missing one. The returned slice preserves the id order.
func resolveAmenities(ctx context.Context,
	s storage.AllStorage,
	ids []domain.AmenityID) ([]domain.Amenity, error) {
	amenities := make([]domain.Amenity, 0, len(ids))
	for _, id := range ids {
		amenity, err := s.AmenityByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("could not get amenity: %w", err)
		}
		if amenity == nil {
			return nil, serrors.With(serrors.ErrNotFound, "amenity %s not found", id)
		}
		amenities = append(amenities, *amenity)
	}

	return amenities, nil
}

// dedupeAmenityIDs removes duplicate ids while preserving first-seen order.
func dedupeAmenityIDs(ids []domain.AmenityID) []domain.AmenityID {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[domain.AmenityID]struct{}, len(ids))
	out := make([]domain.AmenityID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

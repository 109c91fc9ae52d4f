package directory

import (
	"context"
	"fmt"

	"stays/pkg/domain"
	"stays/pkg/serrors"
	"stays/pkg/storage"
)

// CreateReview adds a review authored by the actor. The place must exist, the
// actor must not own it, and at most one review per author and place is
// allowed. All three checks run in the same transaction as the insert.
func (d directory) CreateReview(ctx context.Context,
	actor domain.Actor,
	in CreateReviewInput) (*domain.Review, error) {
	if actor.IsAnonymous() {
		return nil, serrors.With(serrors.ErrUnauthorized, "authentication required")
	}

	review := domain.Review{
		AuthorID: actor.ID,
		PlaceID:  in.PlaceID,
		Text:     in.Text,
		Rating:   in.Rating,
	}
	review.Normalize()
	if err := review.Validate(); err != nil {
		return nil, err
	}

	var stored *domain.Review
	if err := d.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		place, err := tx.PlaceByID(ctx, in.PlaceID)
		if err != nil {
			return fmt.Errorf("could not get place: %w", err)
		}
		if place == nil {
			return serrors.With(serrors.ErrNotFound, "place not found")
		}
		if place.OwnerID == actor.ID {
			return serrors.With(serrors.ErrValidation, "cannot review your own place")
		}

		existing, err := tx.ReviewByAuthorAndPlace(ctx, actor.ID, in.PlaceID)
		if err != nil {
			return fmt.Errorf("could not check existing review: %w", err)
		}
		if existing != nil {
			return serrors.With(serrors.ErrConflict, "place already reviewed by this user")
		}

		stored, err = tx.StoreReview(ctx, review)
		if err != nil {
			return fmt.Errorf("could not store review: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return stored, nil
}

// Review fetches a single review by id. It returns a not-found error when no
// matching review exists.
func (d directory) Review(ctx context.Context, id domain.ReviewID) (*domain.Review, error) {
	review, err := d.storage.ReviewByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get review: %w", err)
	}
	if review == nil {
		return nil, serrors.With(serrors.ErrNotFound, "review not found")
	}

	return review, nil
}

// Reviews returns all reviews in creation order.
func (d directory) Reviews(ctx context.Context) ([]domain.Review, error) {
	reviews, err := d.storage.Reviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list reviews: %w", err)
	}

	return reviews, nil
}

// PlaceReviews returns the reviews of a place in creation order. The place
// must exist; an empty review list is not an error.
func (d directory) PlaceReviews(ctx context.Context, placeID domain.PlaceID) ([]domain.Review, error) {
	place, err := d.storage.PlaceByID(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("could not get place: %w", err)
	}
	if place == nil {
		return nil, serrors.With(serrors.ErrNotFound, "place not found")
	}

	reviews, err := d.storage.ReviewsByPlace(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("could not get reviews: %w", err)
	}

	return reviews, nil
}

// UpdateReview applies a partial update to a review. Author or admin only.
func (d directory) UpdateReview(ctx context.Context,
	actor domain.Actor,
	id domain.ReviewID,
	in UpdateReviewInput) (*domain.Review, error) {
	review, err := d.storage.ReviewByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get review: %w", err)
	}
	if review == nil {
		return nil, serrors.With(serrors.ErrNotFound, "review not found")
	}
	if !canManage(actor, review.AuthorID) {
		return nil, serrors.With(serrors.ErrForbidden, "cannot modify a review you did not write")
	}

	next := *review
	if in.Text != nil {
		next.Text = *in.Text
	}
	if in.Rating != nil {
		next.Rating = *in.Rating
	}
	next.Normalize()
	if err := next.Validate(); err != nil {
		return nil, err
	}

	updates := storage.ReviewUpdates{Rating: in.Rating}
	if in.Text != nil {
		updates.Text = &next.Text
	}

	updated, err := d.storage.UpdateReview(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("could not update review: %w", err)
	}
	if updated == nil {
		return nil, serrors.With(serrors.ErrNotFound, "review not found")
	}

	return updated, nil
}

// DeleteReview removes a review. Author or admin only.
func (d directory) DeleteReview(ctx context.Context, actor domain.Actor, id domain.ReviewID) error {
	review, err := d.storage.ReviewByID(ctx, id)
	if err != nil {
		return fmt.Errorf("could not get review: %w", err)
	}
	if review == nil {
		return serrors.With(serrors.ErrNotFound, "review not found")
	}
	if !canManage(actor, review.AuthorID) {
		return serrors.With(serrors.ErrForbidden, "cannot delete a review you did not write")
	}

	removed, err := d.storage.DeleteReview(ctx, id)
	if err != nil {
		return fmt.Errorf("could not delete review: %w", err)
	}
	if !removed {
		return serrors.With(serrors.ErrNotFound, "review not found")
	}

	return nil
}

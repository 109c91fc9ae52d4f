package storage

import (
	"context"

	"stays/pkg/domain"
)

// ReviewUpdates describes the optional fields that can be applied to an
// existing review.
type ReviewUpdates struct {
	// Text, when provided, replaces the review body.
	Text *string
	// Rating, when provided, replaces the rating.
	Rating *int
}

// ReviewStorage defines CRUD and lookup operations for reviews.
type ReviewStorage interface {
	// StoreReview inserts a review and returns the stored row including
	// generated fields.
	StoreReview(ctx context.Context, review domain.Review) (*domain.Review, error)
	// ReviewByID fetches a review by id. Returns nil when not found.
	ReviewByID(ctx context.Context, id domain.ReviewID) (*domain.Review, error)
	// ReviewByAuthorAndPlace fetches the review a user wrote on a place, if
	// any. Returns nil when not found. At most one such review exists.
	ReviewByAuthorAndPlace(ctx context.Context,
		authorID domain.UserID,
		placeID domain.PlaceID) (*domain.Review, error)
	// Reviews returns all reviews in creation order.
	Reviews(ctx context.Context) ([]domain.Review, error)
	// ReviewsByPlace returns all reviews of the given place in creation order.
	ReviewsByPlace(ctx context.Context, placeID domain.PlaceID) ([]domain.Review, error)
	// UpdateReview applies the provided field set to the review with the
	// given id and returns the updated row. Returns nil when the id is unknown.
	UpdateReview(ctx context.Context, id domain.ReviewID, updates ReviewUpdates) (*domain.Review, error)
	// DeleteReview removes the review. Reports whether a row was removed.
	DeleteReview(ctx context.Context, id domain.ReviewID) (bool, error)
	// DeleteReviewsByPlace removes every review of the given place and
	// returns the number removed. Used when a place deletion cascades.
	DeleteReviewsByPlace(ctx context.Context, placeID domain.PlaceID) (int64, error)
}

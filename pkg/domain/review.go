package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"stays/pkg/serrors"
)

// ReviewID uniquely identifies a review.
type ReviewID uuid.UUID

// String returns the canonical string form of the id.
func (id ReviewID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the id is unset.
func (id ReviewID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText encodes the id as its canonical UUID string.
func (id ReviewID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText parses a canonical UUID string.
func (id *ReviewID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// Rating bounds, inclusive.
const (
	RatingMin = 1
	RatingMax = 5
)

// Review is a rating and comment a user leaves on a place they do not own.
// A user writes at most one review per place.
type Review struct {
	// ID is the unique identifier of the review.
	ID ReviewID `json:"id"`
	// AuthorID references the user who wrote the review.
	AuthorID UserID `json:"authorId"`
	// PlaceID references the reviewed place.
	PlaceID PlaceID `json:"placeId"`

	// Text is the review body, non-blank.
	Text string `json:"text"`
	// Rating is an integer between 1 and 5 inclusive.
	Rating int `json:"rating"`

	// CreatedAt is the time the review was written.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Normalize trims surrounding whitespace from the text.
func (r *Review) Normalize() {
	r.Text = strings.TrimSpace(r.Text)
}

// Validate checks every field constraint and returns a validation error
// naming the first offending field.
func (r Review) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return serrors.OnField("text", "must not be blank")
	}
	if err := ValidateRating(r.Rating); err != nil {
		return err
	}
	if r.AuthorID.IsZero() {
		return serrors.OnField("authorId", "must reference an existing user")
	}
	if r.PlaceID.IsZero() {
		return serrors.OnField("placeId", "must reference an existing place")
	}

	return nil
}

// ValidateRating checks the rating bounds.
func ValidateRating(rating int) error {
	if rating < RatingMin || rating > RatingMax {
		return serrors.OnField("rating", "must be between %d and %d", RatingMin, RatingMax)
	}

	return nil
}

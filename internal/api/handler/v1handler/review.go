package v1handler

import (
	"net/http"

	"github.com/google/uuid"

	"stays/internal/directory"
	"stays/pkg/domain"
)

type createReviewRequest struct {
	PlaceID uuid.UUID `json:"placeId"`
	Text    string    `json:"text"`
	Rating  int       `json:"rating"`
}

// CreateReview adds a review authored by the actor.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)

		return
	}

	review, err := h.deps.Directory.CreateReview(r.Context(),
		GetActorFromContext(r.Context()),
		directory.CreateReviewInput{
			PlaceID: domain.PlaceID(req.PlaceID),
			Text:    req.Text,
			Rating:  req.Rating,
		})
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusCreated, review)
}

// ListReviews returns every review.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.deps.Directory.Reviews(r.Context())
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// GetReview returns a single review.
func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	review, err := h.deps.Directory.Review(r.Context(), domain.ReviewID(id))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, review)
}

type updateReviewRequest struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

// UpdateReview applies a partial update to a review. Author or admin only.
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	var req updateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)

		return
	}

	review, err := h.deps.Directory.UpdateReview(r.Context(),
		GetActorFromContext(r.Context()),
		domain.ReviewID(id),
		directory.UpdateReviewInput{Text: req.Text, Rating: req.Rating})
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, review)
}

// DeleteReview removes a review. Author or admin only.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	if err := h.deps.Directory.DeleteReview(r.Context(),
		GetActorFromContext(r.Context()),
		domain.ReviewID(id)); err != nil {
		writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

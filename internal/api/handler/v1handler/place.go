package v1handler

import (
	"net/http"

	"github.com/google/uuid"

	"stays/internal/directory"
	"stays/pkg/domain"
)

type createPlaceRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	OwnerID     *uuid.UUID  `json:"ownerId"`
	AmenityIDs  []uuid.UUID `json:"amenityIds"`
}

// CreatePlace creates a listing owned by the actor (or, for admins, by the
// requested owner).
func (h *Handler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	var req createPlaceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)

		return
	}

	in := directory.CreatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		AmenityIDs:  toAmenityIDs(req.AmenityIDs),
	}
	if req.OwnerID != nil {
		ownerID := domain.UserID(*req.OwnerID)
		in.OwnerID = &ownerID
	}

	place, err := h.deps.Directory.CreatePlace(r.Context(), GetActorFromContext(r.Context()), in)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusCreated, place)
}

// ListPlaces returns every listing without nested projections.
func (h *Handler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := h.deps.Directory.Places(r.Context())
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, places)
}

// GetPlace returns a listing with its owner, amenities and reviews resolved.
func (h *Handler) GetPlace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	place, err := h.deps.Directory.Place(r.Context(), domain.PlaceID(id))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, place)
}

type updatePlaceRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Price       *float64     `json:"price"`
	Latitude    *float64     `json:"latitude"`
	Longitude   *float64     `json:"longitude"`
	AmenityIDs  *[]uuid.UUID `json:"amenityIds"`
}

// UpdatePlace applies a partial update to a listing.
func (h *Handler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	var req updatePlaceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)

		return
	}

	in := directory.UpdatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}
	if req.AmenityIDs != nil {
		ids := toAmenityIDs(*req.AmenityIDs)
		in.AmenityIDs = &ids
	}

	place, err := h.deps.Directory.UpdatePlace(r.Context(),
		GetActorFromContext(r.Context()),
		domain.PlaceID(id),
		in)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, place)
}

// DeletePlace removes a listing, cascading its reviews.
func (h *Handler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	if err := h.deps.Directory.DeletePlace(r.Context(),
		GetActorFromContext(r.Context()),
		domain.PlaceID(id)); err != nil {
		writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListPlaceReviews returns the reviews of one listing.
func (h *Handler) ListPlaceReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	reviews, err := h.deps.Directory.PlaceReviews(r.Context(), domain.PlaceID(id))
	if err != nil {
		writeError(w, r, err)

		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	writeJSON(w, http.StatusOK, reviews)
}

func toAmenityIDs(ids []uuid.UUID) []domain.AmenityID {
	if len(ids) == 0 {
		return nil
	}

	out := make([]domain.AmenityID, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.AmenityID(id))
	}

	return out
}

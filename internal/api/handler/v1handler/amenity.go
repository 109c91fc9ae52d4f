package v1handler

import (
	"net/http"

	"stays/internal/directory"
	"stays/pkg/domain"
)

type createAmenityRequest struct {
	Name string `json:"name"`
}

// CreateAmenity creates a shared amenity with a globally unique name.
func (h *Handler) CreateAmenity(w http.ResponseWriter, r *http.Request) {
	var req createAmenityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)

		return
	}

	amenity, err := h.deps.Directory.CreateAmenity(r.Context(), directory.CreateAmenityInput{Name: req.Name})
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusCreated, amenity)
}

// ListAmenities returns every amenity.
func (h *Handler) ListAmenities(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.deps.Directory.Amenities(r.Context())
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, amenities)
}

// GetAmenity returns a single amenity.
func (h *Handler) GetAmenity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	amenity, err := h.deps.Directory.Amenity(r.Context(), domain.AmenityID(id))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, amenity)
}

type updateAmenityRequest struct {
	Name *string `json:"name"`
}

// UpdateAmenity renames an amenity. Admin only.
func (h *Handler) UpdateAmenity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	var req updateAmenityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)

		return
	}

	amenity, err := h.deps.Directory.UpdateAmenity(r.Context(),
		GetActorFromContext(r.Context()),
		domain.AmenityID(id),
		directory.UpdateAmenityInput{Name: req.Name})
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, amenity)
}

// DeleteAmenity removes an amenity and detaches it from every place. Admin
// only.
func (h *Handler) DeleteAmenity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	if err := h.deps.Directory.DeleteAmenity(r.Context(),
		GetActorFromContext(r.Context()),
		domain.AmenityID(id)); err != nil {
		writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

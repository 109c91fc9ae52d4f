package v1handler

import (
	"net/http"

	"stays/internal/directory"
	"stays/pkg/domain"
)

type registerUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// RegisterUser creates a new account. Registration is open; the admin flag is
// never granted here.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)

		return
	}

	user, err := h.deps.Directory.RegisterUser(r.Context(), directory.RegisterUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// ListUsers returns every account. Requires authentication.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.deps.Directory.Users(r.Context(), GetActorFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetUser returns a single public profile.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	user, err := h.deps.Directory.User(r.Context(), domain.UserID(id))
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	IsAdmin   *bool   `json:"isAdmin"`
}

// UpdateUser applies a partial update to an account.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)

		return
	}

	user, err := h.deps.Directory.UpdateUser(r.Context(),
		GetActorFromContext(r.Context()),
		domain.UserID(id),
		directory.UpdateUserInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
			IsAdmin:   req.IsAdmin,
		})
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, user)
}

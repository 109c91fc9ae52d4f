package v1handler

import (
	"net/http"
	"time"

	"stays/pkg/serrors"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login verifies credentials and returns a signed access token. The response
// for a wrong password and an unknown email is identical.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)

		return
	}

	user, err := h.deps.Directory.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// hide whether the email exists
		writeError(w, r, serrors.With(serrors.ErrUnauthorized, "invalid credentials"))

		return
	}

	token, expiresAt, err := h.deps.Tokens.Issue(user)
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expiresAt})
}

type resetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPassword replaces the password of the account identified by email.
// Allowed for the account itself or an admin.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)

		return
	}

	actor := GetActorFromContext(r.Context())
	if _, err := h.deps.Directory.ResetPassword(r.Context(), actor, req.Email, req.Password); err != nil {
		writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

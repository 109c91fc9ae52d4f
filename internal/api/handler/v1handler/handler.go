// Package v1handler implements the v1 HTTP API: request decoding, actor
// derivation from bearer tokens, and mapping of semantic errors onto HTTP
// status codes. All business rules live in the directory service; handlers
// stay thin.
package v1handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stays/internal/directory"
	"stays/pkg/logger"
	"stays/pkg/serrors"
)

// Deps carries the collaborators handlers need.
type Deps struct {
	// Directory is the domain service every endpoint delegates to.
	Directory directory.Directory
	// Tokens issues signed access tokens on login.
	Tokens *TokenIssuer
}

// Handler serves the v1 routes.
type Handler struct {
	deps Deps
}

// New creates a Handler with the given dependencies.
func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register attaches every v1 route to the mux. The sec handler wraps each
// route so an actor (possibly anonymous) is always present in the context.
func (h *Handler) Register(mux *http.ServeMux, sec *SecHandler) {
	route := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, sec.Middleware(fn))
	}

	route("POST /v1/auth/login", h.Login)
	route("POST /v1/auth/reset_password", h.ResetPassword)

	route("POST /v1/users", h.RegisterUser)
	route("GET /v1/users", h.ListUsers)
	route("GET /v1/users/{id}", h.GetUser)
	route("PUT /v1/users/{id}", h.UpdateUser)

	route("POST /v1/places", h.CreatePlace)
	route("GET /v1/places", h.ListPlaces)
	route("GET /v1/places/{id}", h.GetPlace)
	route("PUT /v1/places/{id}", h.UpdatePlace)
	route("DELETE /v1/places/{id}", h.DeletePlace)
	route("GET /v1/places/{id}/reviews", h.ListPlaceReviews)

	route("POST /v1/amenities", h.CreateAmenity)
	route("GET /v1/amenities", h.ListAmenities)
	route("GET /v1/amenities/{id}", h.GetAmenity)
	route("PUT /v1/amenities/{id}", h.UpdateAmenity)
	route("DELETE /v1/amenities/{id}", h.DeleteAmenity)

	route("POST /v1/reviews", h.CreateReview)
	route("GET /v1/reviews", h.ListReviews)
	route("GET /v1/reviews/{id}", h.GetReview)
	route("PUT /v1/reviews/{id}", h.UpdateReview)
	route("DELETE /v1/reviews/{id}", h.DeleteReview)
}

// errorBody is the uniform error envelope of the v1 API.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// statusOf maps a semantic error kind to an HTTP status code.
func statusOf(err error) int {
	switch {
	case errors.Is(err, serrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, serrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, serrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, serrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, serrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders the error envelope. Internal failures are logged and
// their details withheld from the response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)

	body := errorBody{Error: err.Error()}
	var serr *serrors.Error
	if errors.As(err, &serr) {
		body.Field = serr.Field()
	}
	if status == http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed", zap.Error(err))
		body = errorBody{Error: "internal server error"}
	}

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON strictly decodes the request body into dst, rejecting unknown
// fields so typos surface as 400s instead of silently ignored input.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return serrors.Wrap(serrors.ErrValidation, err, "invalid request body")
	}

	return nil
}

// pathID parses the {id} path segment as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, serrors.OnField("id", "must be a valid UUID")
	}

	return id, nil
}

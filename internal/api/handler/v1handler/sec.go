package v1handler

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"stays/internal/config"
	"stays/pkg/domain"
	"stays/pkg/serrors"
)

// CtxKey is a string-based type used for storing values in request contexts.
type CtxKey string

// ActorKey is the context key under which the authenticated actor is stored.
const ActorKey CtxKey = "Actor"

// SecHandlerOptions configure token verification.
type SecHandlerOptions struct {
	// PublicKey is the PEM-encoded RSA public key tokens are verified against.
	PublicKey string
}

// NewSecHandlerOptions constructs options from the application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

// SecHandler verifies bearer tokens and derives the acting principal.
type SecHandler struct {
	key *rsa.PublicKey
}

// NewSecHandler parses the configured public key and returns a verifier.
func NewSecHandler(options *SecHandlerOptions) (*SecHandler, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(options.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &SecHandler{key: key}, nil
}

// ActorFromToken verifies the token signature and claims and returns the
// actor it encodes. Only RS256 is accepted.
func (s *SecHandler) ActorFromToken(token string) (domain.Actor, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}

		return s.key, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Actor{}, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Actor{}, serrors.With(serrors.ErrUnauthorized, "invalid token subject")
	}

	return domain.Actor{ID: domain.UserID(userID), IsAdmin: claims.IsAdmin}, nil
}

// Middleware derives an actor from the Authorization header and stores it in
// the request context. Requests without a bearer token proceed as anonymous;
// the directory service decides which operations require identity. A token
// that is present but invalid is rejected outright.
func (s *SecHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := domain.Actor{}

		if auth := r.Header.Get("Authorization"); auth != "" {
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok {
				writeError(w, r, serrors.With(serrors.ErrUnauthorized, "malformed authorization header"))

				return
			}

			var err error
			actor, err = s.ActorFromToken(token)
			if err != nil {
				writeError(w, r, err)

				return
			}
		}

		ctx := context.WithValue(r.Context(), ActorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetActorFromContext returns the actor stored by Middleware, or an anonymous
// actor when none is present.
func GetActorFromContext(ctx context.Context) domain.Actor {
	if actor, ok := ctx.Value(ActorKey).(domain.Actor); ok {
		return actor
	}

	return domain.Actor{}
}

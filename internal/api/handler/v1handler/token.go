package v1handler

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stays/internal/config"
	"stays/pkg/domain"
)

// Claims are the token claims of the v1 API: standard registered claims plus
// the actor's admin flag captured at issuance time.
type Claims struct {
	jwt.RegisteredClaims

	IsAdmin bool `json:"is_admin,omitempty"`
}

// TokenIssuerOptions configure token signing.
type TokenIssuerOptions struct {
	// PrivateKey is the PEM-encoded RSA private key used to sign tokens.
	PrivateKey string
	// TTL is how long issued tokens remain valid.
	TTL time.Duration
}

// NewTokenIssuerOptions constructs options from the application config.
func NewTokenIssuerOptions(cfg *config.Config) *TokenIssuerOptions {
	return &TokenIssuerOptions{
		PrivateKey: cfg.JWT.PrivateKey,
		TTL:        cfg.JWT.TTL,
	}
}

// TokenIssuer signs RS256 access tokens for authenticated users.
type TokenIssuer struct {
	key *rsa.PrivateKey
	ttl time.Duration
}

// NewTokenIssuer parses the configured private key and returns an issuer.
func NewTokenIssuer(options *TokenIssuerOptions) (*TokenIssuer, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(options.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA private key: %w", err)
	}

	return &TokenIssuer{key: key, ttl: options.TTL}, nil
}

// Issue signs a token for the user and returns it with its expiry time.
func (i *TokenIssuer) Issue(user *domain.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		IsAdmin: user.IsAdmin,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(i.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("could not sign token: %w", err)
	}

	return signed, expiresAt, nil
}

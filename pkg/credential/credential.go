// Package credential hashes and verifies passwords. The directory service
// only ever sees the opaque hash; plaintext passwords stop at this boundary.
package credential

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher derives opaque credentials from passwords and verifies passwords
// against stored credentials.
type Hasher interface {
	// Hash derives an opaque credential from the plaintext password.
	Hash(password string) (string, error)
	// Verify reports whether the password matches the stored credential.
	Verify(password, credential string) bool
}

// BcryptHasher implements Hasher using bcrypt.
type BcryptHasher struct {
	// Cost is the bcrypt work factor. Zero means bcrypt.DefaultCost.
	Cost int
}

var _ Hasher = BcryptHasher{}

// Hash derives a bcrypt hash from the password.
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}

	return string(b), nil
}

// Verify reports whether the password matches the bcrypt hash.
func (h BcryptHasher) Verify(password, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(password)) == nil
}

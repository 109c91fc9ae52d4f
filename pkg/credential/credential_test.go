package credential_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stays/pkg/credential"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	h := credential.BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash, "plaintext must not survive hashing")

	require.True(t, h.Verify("s3cret", hash))
	require.False(t, h.Verify("wrong", hash))
	require.False(t, h.Verify("s3cret", "not-a-hash"))
}

func TestBcryptHasherDistinctHashes(t *testing.T) {
	t.Parallel()

	h := credential.BcryptHasher{Cost: bcrypt.MinCost}

	h1, err := h.Hash("same")
	require.NoError(t, err)
	h2, err := h.Hash("same")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2, "bcrypt salts every hash")
}

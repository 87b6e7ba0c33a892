package password_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"accountd/internal/pkg/password"
)

func randSecret(t *testing.T, n int) string {
	t.Helper()
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return string(buf)
}

func TestHashCompareRoundTrip(t *testing.T) {
	hasher := password.NewHasher(bcrypt.MinCost)

	for _, n := range []int{0, 1, 7, 8, 20, 64} {
		secret := randSecret(t, n)

		hash, err := hasher.Hash(secret)
		require.NoError(t, err)
		require.NotEqual(t, secret, hash)

		ok, err := hasher.Compare(hash, secret)
		require.NoError(t, err)
		require.True(t, ok, "round trip failed for length %d", n)

		other := secret + "x"
		ok, err = hasher.Compare(hash, other)
		require.NoError(t, err)
		require.False(t, ok, "unexpected match for length %d", n)
	}
}

func TestCompareDistinctRandomSecrets(t *testing.T) {
	hasher := password.NewHasher(bcrypt.MinCost)

	secret := randSecret(t, 16)
	hash, err := hasher.Hash(secret)
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		other := randSecret(t, 16)
		if other == secret {
			continue
		}
		ok, err := hasher.Compare(hash, other)
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestCompareMalformedHashIsError(t *testing.T) {
	hasher := password.NewHasher(bcrypt.MinCost)

	ok, err := hasher.Compare("not-a-bcrypt-hash", "whatever")
	require.Error(t, err)
	require.False(t, ok)
}

func TestHasherCostFallback(t *testing.T) {
	hasher := password.NewHasher(-1)

	hash, err := hasher.Hash("some secret")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, cost)
}

package key

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTweakDeterministic(t *testing.T) {
	first, err := DeriveTweak("alice.near", "ethereum-1")
	require.NoError(t, err)
	second, err := DeriveTweak("alice.near", "ethereum-1")
	require.NoError(t, err)

	assert.Zero(t, first.Cmp(second))
	assert.Positive(t, first.Sign())
}

func TestDeriveTweakDistinctInputs(t *testing.T) {
	base, err := DeriveTweak("alice.near", "ethereum-1")
	require.NoError(t, err)

	otherPath, err := DeriveTweak("alice.near", "ethereum-2")
	require.NoError(t, err)
	assert.NotZero(t, base.Cmp(otherPath))

	otherAccount, err := DeriveTweak("bob.near", "ethereum-1")
	require.NoError(t, err)
	assert.NotZero(t, base.Cmp(otherAccount))

	// The separator between account and path is part of the hash input:
	// moving a character across it must change the tweak.
	shifted, err := DeriveTweak("alice.near,e", "thereum-1")
	require.NoError(t, err)
	assert.NotZero(t, base.Cmp(shifted))
}

func TestDeriveDeterministic(t *testing.T) {
	parent, err := FromSecretHex(testSecretHex)
	require.NoError(t, err)

	first, err := Derive(parent, "alice.near", "ethereum-1")
	require.NoError(t, err)
	second, err := Derive(parent, "alice.near", "ethereum-1")
	require.NoError(t, err)

	assert.True(t, first.PublicPoint().Equal(second.PublicPoint()))
	firstSecret, err := first.Secret()
	require.NoError(t, err)
	secondSecret, err := second.Secret()
	require.NoError(t, err)
	assert.Zero(t, firstSecret.Cmp(secondSecret))
}

func TestDeriveSecretAndPublicAgree(t *testing.T) {
	tests := []struct {
		name    string
		secret  *big.Int
		account string
		path    string
	}{
		{
			name:    "small secret",
			secret:  big.NewInt(1),
			account: "alice.near",
			path:    "ethereum-1",
		},
		{
			name:    "large secret",
			secret:  mustHexInt(t, testSecretHex),
			account: "bob.near",
			path:    "bitcoin-0",
		},
		{
			name:    "empty path",
			secret:  mustHexInt(t, testSecretHex),
			account: "carol.near",
			path:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withSecret, err := FromSecret(tt.secret)
			require.NoError(t, err)
			publicOnly := FromPublicPoint(withSecret.PublicPoint())

			fromSecret, err := Derive(withSecret, tt.account, tt.path)
			require.NoError(t, err)
			fromPublic, err := Derive(publicOnly, tt.account, tt.path)
			require.NoError(t, err)

			// Both derivation paths land on the same point.
			assert.True(t, fromSecret.PublicPoint().Equal(fromPublic.PublicPoint()))

			// And the derived secret reproduces that point: secret·G == point.
			childSecret, err := fromSecret.Secret()
			require.NoError(t, err)
			rebuilt, err := FromSecret(childSecret)
			require.NoError(t, err)
			assert.True(t, rebuilt.PublicPoint().Equal(fromPublic.PublicPoint()))
		})
	}
}

func TestDerivePublicOnlyLifecycle(t *testing.T) {
	parent, err := FromSecretHex(testSecretHex)
	require.NoError(t, err)
	publicOnly := FromPublicPoint(parent.PublicPoint())

	assert.False(t, publicOnly.CanSign())
	_, err = publicOnly.Secret()
	assert.ErrorIs(t, err, ErrNoSecretKey)
	_, err = publicOnly.SecretBytes()
	assert.ErrorIs(t, err, ErrNoSecretKey)

	child, err := Derive(publicOnly, "alice.near", "ethereum-1")
	require.NoError(t, err)
	assert.False(t, child.CanSign())
	_, err = child.Secret()
	assert.ErrorIs(t, err, ErrNoSecretKey)
}

func TestDeriveWithSecretLifecycle(t *testing.T) {
	parent, err := FromSecretHex(testSecretHex)
	require.NoError(t, err)
	assert.True(t, parent.CanSign())

	child, err := Derive(parent, "alice.near", "ethereum-1")
	require.NoError(t, err)
	assert.True(t, child.CanSign())

	secretBytes, err := child.SecretBytes()
	require.NoError(t, err)
	rebuilt, err := FromSecretBytes(secretBytes)
	require.NoError(t, err)
	assert.True(t, rebuilt.PublicPoint().Equal(child.PublicPoint()))
}

func TestDeriveNonCollision(t *testing.T) {
	parent, err := FromSecretHex(testSecretHex)
	require.NoError(t, err)

	paths := []string{"ethereum-1", "ethereum-2", "bitcoin-0", ""}
	seen := make(map[string]string)
	for _, path := range paths {
		child, err := Derive(parent, "alice.near", path)
		require.NoError(t, err)
		wire := child.NEARString()
		previous, dup := seen[wire]
		assert.False(t, dup, "paths %q and %q derived the same key", previous, path)
		seen[wire] = path
	}
}

func TestFromSecretRejectsOutOfRange(t *testing.T) {
	_, err := FromSecret(big.NewInt(0))
	assert.Error(t, err)

	_, err = FromSecret(nil)
	assert.Error(t, err)

	_, err = FromSecretHex("zz")
	assert.Error(t, err)

	_, err = FromSecretHex("abcd")
	assert.Error(t, err)
}

func TestGenerateKey(t *testing.T) {
	k, err := GenerateKey()
	require.NoError(t, err)
	assert.True(t, k.CanSign())

	secret, err := k.Secret()
	require.NoError(t, err)
	rebuilt, err := FromSecret(secret)
	require.NoError(t, err)
	assert.True(t, rebuilt.PublicPoint().Equal(k.PublicPoint()))
}

func mustHexInt(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 16)
	require.True(t, ok)
	return v
}

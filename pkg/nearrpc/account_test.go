package nearrpc

import (
	"crypto/ed25519"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccountKey(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	seed[0] = 0x11
	secret := ed25519.NewKeyFromSeed(seed)

	key, err := ParseAccountKey("alice.testnet", ed25519KeyPrefix+base58.Encode(secret))
	require.NoError(t, err)
	assert.Equal(t, "alice.testnet", key.AccountID)
	assert.Equal(t, ed25519KeyPrefix+base58.Encode(secret.Public().(ed25519.PublicKey)), key.PublicKeyString())

	// Signatures round-trip against the public half.
	message := []byte("digest")
	sig := key.sign(message)
	assert.True(t, ed25519.Verify(secret.Public().(ed25519.PublicKey), message, sig))
}

func TestParseAccountKeyRejectsBadInput(t *testing.T) {
	seed := make([]byte, ed25519.SeedSize)
	secret := ed25519.NewKeyFromSeed(seed)
	valid := ed25519KeyPrefix + base58.Encode(secret)

	_, err := ParseAccountKey("", valid)
	assert.Error(t, err)

	_, err = ParseAccountKey("alice.testnet", "secp256k1:"+base58.Encode(secret))
	assert.Error(t, err)

	_, err = ParseAccountKey("alice.testnet", ed25519KeyPrefix+base58.Encode(secret[:32]))
	assert.Error(t, err)
}

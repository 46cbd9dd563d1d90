package nearrpc

import (
	"crypto/ed25519"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/pkg/errors"
)

const ed25519KeyPrefix = "ed25519:"

// AccountKey is a NEAR account's full-access ed25519 key, used to sign the
// function-call transactions that carry sign requests.
type AccountKey struct {
	AccountID string
	secret    ed25519.PrivateKey
}

// ParseAccountKey parses the standard "ed25519:" + base58(64-byte secret)
// key string.
func ParseAccountKey(accountID, secretKey string) (*AccountKey, error) {
	if accountID == "" {
		return nil, errors.New("account id is required")
	}
	body, ok := strings.CutPrefix(secretKey, ed25519KeyPrefix)
	if !ok {
		return nil, errors.Errorf("secret key does not have the %q prefix", ed25519KeyPrefix)
	}
	decoded := base58.Decode(body)
	if len(decoded) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("secret key must decode to %d bytes, got %d", ed25519.PrivateKeySize, len(decoded))
	}
	return &AccountKey{
		AccountID: accountID,
		secret:    ed25519.PrivateKey(decoded),
	}, nil
}

// PublicKeyString returns the key's public half in NEAR wire format.
func (k *AccountKey) PublicKeyString() string {
	return ed25519KeyPrefix + base58.Encode(k.publicKeyBytes())
}

func (k *AccountKey) publicKeyBytes() []byte {
	return []byte(k.secret.Public().(ed25519.PublicKey))
}

func (k *AccountKey) sign(message []byte) []byte {
	return ed25519.Sign(k.secret, message)
}

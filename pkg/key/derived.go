package key

import (
	"encoding/hex"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"
)

const secretKeySize = 32

// DerivedKey is a public-key point optionally paired with its secret scalar.
// Public-only keys come from wire-format input and cannot sign; keys built
// from a secret always satisfy secret·G == point.
type DerivedKey struct {
	point  *CurvePoint
	secret *big.Int
}

// FromPublicPoint wraps an already-parsed point as a public-only key.
func FromPublicPoint(p *CurvePoint) *DerivedKey {
	return &DerivedKey{point: p}
}

// FromNEARPublicKey parses a wire-format key into a public-only key.
func FromNEARPublicKey(s string) (*DerivedKey, error) {
	p, err := ParseNEARPublicKey(s)
	if err != nil {
		return nil, err
	}
	return &DerivedKey{point: p}, nil
}

// FromSecret builds a key from a secret scalar in (0, n).
func FromSecret(k *big.Int) (*DerivedKey, error) {
	if k == nil {
		return nil, errors.New("secret scalar is nil")
	}
	if k.Sign() <= 0 || k.Cmp(btcec.S256().N) >= 0 {
		return nil, errors.New("secret scalar out of range (must be in (0, n))")
	}
	point, err := scalarBaseMult(k)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute public point")
	}
	return &DerivedKey{point: point, secret: new(big.Int).Set(k)}, nil
}

// FromSecretBytes builds a key from a fixed-width big-endian secret.
func FromSecretBytes(b [secretKeySize]byte) (*DerivedKey, error) {
	return FromSecret(new(big.Int).SetBytes(b[:]))
}

// FromSecretHex builds a key from a 64-character hex secret.
func FromSecretHex(s string) (*DerivedKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "secret is not valid hex")
	}
	if len(raw) != secretKeySize {
		return nil, errors.Errorf("secret must be %d bytes, got %d", secretKeySize, len(raw))
	}
	var fixed [secretKeySize]byte
	copy(fixed[:], raw)
	return FromSecretBytes(fixed)
}

// GenerateKey creates a key with a fresh random secret.
func GenerateKey() (*DerivedKey, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate secret scalar")
	}
	return FromSecret(priv.ToECDSA().D)
}

// PublicPoint returns the public-key point.
func (k *DerivedKey) PublicPoint() *CurvePoint {
	return k.point
}

// CanSign reports whether the key carries a secret scalar.
func (k *DerivedKey) CanSign() bool {
	return k.secret != nil
}

// Secret returns a copy of the secret scalar, or ErrNoSecretKey for
// public-only keys.
func (k *DerivedKey) Secret() (*big.Int, error) {
	if k.secret == nil {
		return nil, ErrNoSecretKey
	}
	return new(big.Int).Set(k.secret), nil
}

// SecretBytes returns the secret scalar as fixed-width big-endian bytes.
func (k *DerivedKey) SecretBytes() ([secretKeySize]byte, error) {
	var out [secretKeySize]byte
	if k.secret == nil {
		return out, ErrNoSecretKey
	}
	k.secret.FillBytes(out[:])
	return out, nil
}

// NEARString encodes the public point in the contract wire format.
func (k *DerivedKey) NEARString() string {
	return k.point.NEARString()
}

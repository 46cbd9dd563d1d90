package key

import (
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/decred/dcrd/dcrec/edwards/v2"
)

// Wire-format prefixes used by the MPC contract for public keys. The key body
// is base58 of the raw key material without any format tag byte.
const (
	Secp256k1KeyPrefix = "secp256k1:"
	Ed25519KeyPrefix   = "ed25519:"
)

const (
	uncompressedPointSize = 65 // 0x04 | X | Y
	compressedPointSize   = 33 // 0x02/0x03 | X
	wirePointSize         = 64 // X | Y, no tag byte
	ed25519KeySize        = 32
)

// CurvePoint is an immutable secp256k1 public-key point.
type CurvePoint struct {
	pub *btcec.PublicKey
}

// ParsePoint parses a 65-byte uncompressed point (leading 0x04 tag).
func ParsePoint(raw []byte) (*CurvePoint, error) {
	if len(raw) != uncompressedPointSize {
		return nil, malformedKeyf("uncompressed point must be %d bytes, got %d", uncompressedPointSize, len(raw))
	}
	if raw[0] != 0x04 {
		return nil, malformedKeyf("uncompressed point must start with 0x04, got 0x%02x", raw[0])
	}
	pub, err := btcec.ParsePubKey(raw)
	if err != nil {
		return nil, malformedKeyf("invalid secp256k1 point: %v", err)
	}
	return &CurvePoint{pub: pub}, nil
}

// ParseCompressedPoint parses a 33-byte compressed point.
func ParseCompressedPoint(raw []byte) (*CurvePoint, error) {
	if len(raw) != compressedPointSize {
		return nil, malformedKeyf("compressed point must be %d bytes, got %d", compressedPointSize, len(raw))
	}
	pub, err := btcec.ParsePubKey(raw)
	if err != nil {
		return nil, malformedKeyf("invalid secp256k1 point: %v", err)
	}
	return &CurvePoint{pub: pub}, nil
}

// ParseNEARPublicKey parses the contract wire format
// "secp256k1:" + base58(X || Y). Wrong prefix or wrong decoded length fails
// before any curve math runs.
func ParseNEARPublicKey(s string) (*CurvePoint, error) {
	body, ok := strings.CutPrefix(s, Secp256k1KeyPrefix)
	if !ok {
		return nil, malformedKeyf("public key %q does not have the %q prefix", s, Secp256k1KeyPrefix)
	}
	decoded := base58.Decode(body)
	if len(decoded) != wirePointSize {
		return nil, malformedKeyf("decoded key body must be %d bytes, got %d", wirePointSize, len(decoded))
	}
	raw := make([]byte, 0, uncompressedPointSize)
	raw = append(raw, 0x04)
	raw = append(raw, decoded...)
	return ParsePoint(raw)
}

// ParseEd25519PublicKey parses "ed25519:" + base58(32-byte key) and validates
// that the bytes encode a point on the edwards curve. Additive derivation is
// not defined for these keys; they only ever come back from contract views.
func ParseEd25519PublicKey(s string) ([]byte, error) {
	body, ok := strings.CutPrefix(s, Ed25519KeyPrefix)
	if !ok {
		return nil, malformedKeyf("public key %q does not have the %q prefix", s, Ed25519KeyPrefix)
	}
	decoded := base58.Decode(body)
	if len(decoded) != ed25519KeySize {
		return nil, malformedKeyf("decoded key body must be %d bytes, got %d", ed25519KeySize, len(decoded))
	}
	if _, err := edwards.ParsePubKey(decoded); err != nil {
		return nil, malformedKeyf("invalid ed25519 point: %v", err)
	}
	out := make([]byte, ed25519KeySize)
	copy(out, decoded)
	return out, nil
}

// Add returns p + q in the curve group.
func (p *CurvePoint) Add(q *CurvePoint) (*CurvePoint, error) {
	px, py := p.coords()
	qx, qy := q.coords()
	x, y := btcec.S256().Add(px, py, qx, qy)
	return pointFromCoords(x, y)
}

// UncompressedBytes returns the 65-byte 0x04-tagged encoding.
func (p *CurvePoint) UncompressedBytes() []byte {
	return p.pub.SerializeUncompressed()
}

// CompressedBytes returns the 33-byte encoding.
func (p *CurvePoint) CompressedBytes() []byte {
	return p.pub.SerializeCompressed()
}

// NEARString encodes the point in the contract wire format.
func (p *CurvePoint) NEARString() string {
	return Secp256k1KeyPrefix + base58.Encode(p.UncompressedBytes()[1:])
}

// Equal reports whether two points are the same group element.
func (p *CurvePoint) Equal(q *CurvePoint) bool {
	return p.pub.IsEqual(q.pub)
}

func (p *CurvePoint) coords() (*big.Int, *big.Int) {
	ecdsaKey := p.pub.ToECDSA()
	return ecdsaKey.X, ecdsaKey.Y
}

// pointFromCoords rebuilds a validated point from affine coordinates.
func pointFromCoords(x, y *big.Int) (*CurvePoint, error) {
	if x.Sign() == 0 && y.Sign() == 0 {
		return nil, malformedKeyf("point at infinity")
	}
	raw := make([]byte, uncompressedPointSize)
	raw[0] = 0x04
	xBytes := x.Bytes()
	yBytes := y.Bytes()
	copy(raw[33-len(xBytes):33], xBytes)
	copy(raw[65-len(yBytes):65], yBytes)
	pub, err := btcec.ParsePubKey(raw)
	if err != nil {
		return nil, malformedKeyf("invalid secp256k1 point: %v", err)
	}
	return &CurvePoint{pub: pub}, nil
}

// scalarBaseMult returns k·G as a point.
func scalarBaseMult(k *big.Int) (*CurvePoint, error) {
	x, y := btcec.S256().ScalarBaseMult(k.Bytes())
	return pointFromCoords(x, y)
}

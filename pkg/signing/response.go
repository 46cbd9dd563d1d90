package signing

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"
)

const (
	affinePointSize      = 33 // compressed point, 1 tag byte + x
	scalarSize           = 32
	ed25519SignatureSize = 64
	maxRecoveryID        = 3
)

// ECDSASignature is a secp256k1 signature recovered from the contract wire
// format: r comes from the x-coordinate of the returned compressed point, s
// is the scalar, and the recovery id (0..3) is carried through unchanged.
type ECDSASignature struct {
	R          *big.Int
	S          *big.Int
	RecoveryID byte
}

// Bytes returns the 65-byte R || S || V encoding.
func (sig *ECDSASignature) Bytes() []byte {
	out := make([]byte, 65)
	sig.R.FillBytes(out[:32])
	sig.S.FillBytes(out[32:64])
	out[64] = sig.RecoveryID
	return out
}

// Ed25519Signature is the 64-byte signature exactly as the network returned
// it.
type Ed25519Signature [ed25519SignatureSize]byte

// Verify checks the signature against a 32-byte ed25519 public key.
func (sig Ed25519Signature) Verify(publicKey []byte, message []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, sig[:])
}

// Signature is the scheme-tagged result of an accepted sign request. Exactly
// one of ECDSA and Ed25519 is set, matching Scheme.
type Signature struct {
	Scheme  Scheme
	ECDSA   *ECDSASignature
	Ed25519 *Ed25519Signature
}

// Wire shape of the contract's signature record. The record arrives base64
// encoded inside the call's success payload, JSON encoded inside that.
type signatureWire struct {
	Scheme     string           `json:"scheme"`
	BigR       *affinePointWire `json:"big_r"`
	S          *scalarWire      `json:"s"`
	RecoveryID *uint8           `json:"recovery_id"`
	Signature  []int            `json:"signature"`
}

type affinePointWire struct {
	AffinePoint string `json:"affine_point"`
}

type scalarWire struct {
	Scalar string `json:"scalar"`
}

// parseSignatureResponse decodes base64 → JSON → scheme dispatch. Unknown
// scheme tags and shape violations are malformed-response failures: the
// request was already paid for.
func parseSignatureResponse(successValue string) (*Signature, error) {
	raw, err := base64.StdEncoding.DecodeString(successValue)
	if err != nil {
		return nil, errors.Wrap(err, "success value is not valid base64")
	}
	var wire signatureWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, errors.Wrap(err, "success value is not valid JSON")
	}

	switch Scheme(wire.Scheme) {
	case SchemeSecp256k1:
		return parseSecp256k1Signature(&wire)
	case SchemeEd25519:
		return parseEd25519Signature(&wire)
	default:
		return nil, errors.Errorf("unknown signature scheme tag %q", wire.Scheme)
	}
}

func parseSecp256k1Signature(wire *signatureWire) (*Signature, error) {
	if wire.BigR == nil || wire.S == nil || wire.RecoveryID == nil {
		return nil, errors.New("Secp256k1 signature is missing big_r, s or recovery_id")
	}

	point, err := hex.DecodeString(wire.BigR.AffinePoint)
	if err != nil {
		return nil, errors.Wrap(err, "affine_point is not valid hex")
	}
	if len(point) != affinePointSize {
		return nil, errors.Errorf("affine_point must be %d bytes, got %d", affinePointSize, len(point))
	}

	scalar, err := hex.DecodeString(wire.S.Scalar)
	if err != nil {
		return nil, errors.Wrap(err, "scalar is not valid hex")
	}
	if len(scalar) != scalarSize {
		return nil, errors.Errorf("scalar must be %d bytes, got %d", scalarSize, len(scalar))
	}

	if *wire.RecoveryID > maxRecoveryID {
		return nil, errors.Errorf("recovery_id must be 0..%d, got %d", maxRecoveryID, *wire.RecoveryID)
	}

	// The scheme only ever returns the x-coordinate; the compression tag byte
	// is discarded.
	return &Signature{
		Scheme: SchemeSecp256k1,
		ECDSA: &ECDSASignature{
			R:          new(big.Int).SetBytes(point[1:]),
			S:          new(big.Int).SetBytes(scalar),
			RecoveryID: *wire.RecoveryID,
		},
	}, nil
}

func parseEd25519Signature(wire *signatureWire) (*Signature, error) {
	if len(wire.Signature) != ed25519SignatureSize {
		return nil, errors.Errorf("Ed25519 signature must be %d bytes, got %d", ed25519SignatureSize, len(wire.Signature))
	}
	var sig Ed25519Signature
	for i, b := range wire.Signature {
		if b < 0 || b > 255 {
			return nil, errors.Errorf("Ed25519 signature byte %d out of range: %d", i, b)
		}
		sig[i] = byte(b)
	}
	return &Signature{Scheme: SchemeEd25519, Ed25519: &sig}, nil
}

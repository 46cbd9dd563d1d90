package key

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// tweakDerivationPrefix is the fixed protocol/version tag the MPC network
// prepends to the derivation string. The exact bytes are a wire contract:
// changing them silently diverges from the network's own derivation.
const tweakDerivationPrefix = "near-mpc-recovery v0.1.0 epsilon derivation:"

// DeriveTweak computes the per-(account, path) scalar
// ε = SHA3-256(prefix || accountID || "," || path) mod n. Pure function:
// identical inputs always yield the identical scalar.
func DeriveTweak(accountID, path string) (*big.Int, error) {
	digest := sha3.Sum256([]byte(tweakDerivationPrefix + accountID + "," + path))

	// Modular reduction, never truncation. A zero result is cryptographically
	// negligible for real hash outputs but must still be a hard failure.
	tweak := new(big.Int).SetBytes(digest[:])
	tweak.Mod(tweak, btcec.S256().N)
	if tweak.Sign() == 0 {
		return nil, errors.New("derivation tweak reduced to zero")
	}
	return tweak, nil
}

// Derive produces the child key for (accountID, path):
//
//	childPoint  = ε·G + parentPoint
//	childSecret = (ε + parentSecret) mod n   (only if the parent has a secret)
//
// Public-only and with-secret derivation are consistent: deriving from a
// parent secret and from the matching parent point yields the same child
// point bit for bit.
func Derive(parent *DerivedKey, accountID, path string) (*DerivedKey, error) {
	if parent == nil {
		return nil, errors.New("parent key is nil")
	}

	tweak, err := DeriveTweak(accountID, path)
	if err != nil {
		return nil, err
	}

	tweakPoint, err := scalarBaseMult(tweak)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute tweak point")
	}
	childPoint, err := parent.point.Add(tweakPoint)
	if err != nil {
		return nil, errors.Wrap(err, "failed to add tweak point")
	}

	if parent.secret == nil {
		return &DerivedKey{point: childPoint}, nil
	}

	childSecret := new(big.Int).Add(tweak, parent.secret)
	childSecret.Mod(childSecret, btcec.S256().N)
	if childSecret.Sign() == 0 {
		return nil, errors.New("derived secret reduced to zero")
	}
	return &DerivedKey{point: childPoint, secret: childSecret}, nil
}

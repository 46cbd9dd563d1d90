package key

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoSecretKey is returned when a secret-key operation is attempted on a
// public-only DerivedKey.
var ErrNoSecretKey = errors.New("derived key has no secret key")

// MalformedKeyError reports a wire-format public key that could not be parsed.
// It is always raised before any curve operation is attempted.
type MalformedKeyError struct {
	Reason string
}

func (e *MalformedKeyError) Error() string {
	return "malformed key: " + e.Reason
}

func malformedKeyf(format string, args ...interface{}) error {
	return &MalformedKeyError{Reason: fmt.Sprintf(format, args...)}
}

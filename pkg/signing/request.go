package signing

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Status is the lifecycle state of a single sign attempt. There is no state
// shared across attempts; each request moves through its own machine once.
type Status string

const (
	StatusBuilding   Status = "building"
	StatusValidating Status = "validating"
	StatusSubmitted  Status = "submitted"
	StatusCompleted  Status = "completed"
	StatusRejected   Status = "rejected"
)

var ErrInvalidTransition = errors.New("invalid state transition")

func canTransition(current, next Status) bool {
	switch current {
	case StatusBuilding:
		return next == StatusValidating
	case StatusValidating:
		return next == StatusSubmitted || next == StatusRejected
	case StatusSubmitted:
		return next == StatusCompleted || next == StatusRejected
	case StatusCompleted, StatusRejected:
		return false
	default:
		return false
	}
}

// signAttempt tracks one request through the lifecycle. The id correlates log
// lines and error reports for concurrent attempts.
type signAttempt struct {
	id     string
	req    *SignRequest
	status Status
	reason string
}

func newSignAttempt(req *SignRequest) *signAttempt {
	return &signAttempt{
		id:     uuid.NewString(),
		req:    req,
		status: StatusBuilding,
	}
}

func (a *signAttempt) transition(next Status) error {
	if !canTransition(a.status, next) {
		return errors.Wrapf(ErrInvalidTransition, "from %s to %s", a.status, next)
	}
	a.status = next
	return nil
}

func (a *signAttempt) reject(reason string) {
	a.status = StatusRejected
	a.reason = reason
}

// validate checks the request shape and decodes the message. It returns the
// payload bytes and the effective domain id (filling in the per-scheme
// default when the caller left it unset). Any failure here means nothing was
// submitted and no cost was incurred.
func (r *SignRequest) validate(defaults map[Scheme]uint32) ([]byte, uint32, error) {
	if strings.TrimSpace(r.Path) == "" {
		return nil, 0, errors.New("path must not be empty or whitespace-only")
	}
	if !r.Scheme.Valid() {
		return nil, 0, errors.Errorf("unsupported scheme %q", r.Scheme)
	}

	payload, err := hex.DecodeString(r.Message)
	if err != nil {
		return nil, 0, errors.Wrap(err, "message is not valid hex")
	}

	switch r.Scheme {
	case SchemeSecp256k1:
		if len(payload) != ECDSAMessageSize {
			return nil, 0, errors.Errorf("ECDSA message must be exactly %d bytes, got %d", ECDSAMessageSize, len(payload))
		}
	case SchemeEd25519:
		if len(payload) < MinEdDSAMessageSize || len(payload) > MaxEdDSAMessageSize {
			return nil, 0, errors.Errorf("EdDSA message must be %d..%d bytes, got %d", MinEdDSAMessageSize, MaxEdDSAMessageSize, len(payload))
		}
	}

	domainID, ok := r.effectiveDomainID(defaults)
	if !ok {
		return nil, 0, errors.Errorf("no default domain id configured for scheme %q", r.Scheme)
	}
	return payload, domainID, nil
}

func (r *SignRequest) effectiveDomainID(defaults map[Scheme]uint32) (uint32, bool) {
	if r.DomainID != nil {
		return *r.DomainID, true
	}
	id, ok := defaults[r.Scheme]
	return id, ok
}

// wireArgs builds the exact JSON body for the sign call.
func (r *SignRequest) wireArgs(payload []byte, domainID uint32) signArgs {
	wire := signRequestWire{
		DomainID: domainID,
		Path:     r.Path,
	}
	msg := hex.EncodeToString(payload)
	switch r.Scheme {
	case SchemeSecp256k1:
		wire.PayloadV2 = payloadV2Wire{Ecdsa: msg}
	case SchemeEd25519:
		wire.PayloadV2 = payloadV2Wire{Eddsa: msg}
	}
	return signArgs{Request: wire}
}

func (r *SignRequest) String() string {
	domain := "default"
	if r.DomainID != nil {
		domain = fmt.Sprintf("%d", *r.DomainID)
	}
	return fmt.Sprintf("SignRequest{path=%s scheme=%s domain=%s}", r.Path, r.Scheme, domain)
}

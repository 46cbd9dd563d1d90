package signing

import (
	"context"
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Contract method names.
const (
	methodSign             = "sign"
	methodPublicKey        = "public_key"
	methodDerivedPublicKey = "derived_public_key"
	methodLatestKeyVersion = "latest_key_version"
)

// Defaults attached to the sign call. Signing is computationally heavy on the
// remote side: underfunding the call is indistinguishable from a network
// timeout, so the gas budget is deliberately generous.
const DefaultSignGas uint64 = 250_000_000_000_000 // 250 Tgas

// DefaultSignDeposit is the contract's minimum deposit, 1 yoctoNEAR.
func DefaultSignDeposit() *big.Int { return big.NewInt(1) }

// CallOptions carries the funding attached to a state-changing call.
type CallOptions struct {
	Deposit *big.Int
	Gas     uint64
}

// Transport is the injected remote-procedure layer. View is a free read of
// contract state; Call submits a signed, funded function call and blocks
// until the remote execution is finalized, returning the base64-encoded
// success value. Timeouts, cancellation and retries are the transport's (and
// caller's) concern — this layer imposes none of its own.
type Transport interface {
	View(ctx context.Context, contractID, method string, args []byte) ([]byte, error)
	Call(ctx context.Context, contractID, method string, args []byte, opts CallOptions) (string, error)
}

// Client talks to one chain-signatures contract. It holds no state across
// requests; concurrent calls are independent and unordered, and resubmitting
// an identical request produces an independent second signature.
type Client struct {
	transport      Transport
	contractID     string
	domainDefaults map[Scheme]uint32
	gas            uint64
	deposit        *big.Int
}

// Option configures a Client.
type Option func(*Client)

// WithDomainDefaults overrides the scheme → domain-id convention.
func WithDomainDefaults(defaults map[Scheme]uint32) Option {
	return func(c *Client) {
		c.domainDefaults = defaults
	}
}

// WithGas overrides the gas budget attached to sign calls.
func WithGas(gas uint64) Option {
	return func(c *Client) {
		c.gas = gas
	}
}

// WithDeposit overrides the deposit attached to sign calls.
func WithDeposit(deposit *big.Int) Option {
	return func(c *Client) {
		c.deposit = deposit
	}
}

// NewClient creates a client for the given contract. The contract id is an
// explicit configuration value; there is no ambient network → contract table
// here (see internal/config for the named defaults).
func NewClient(transport Transport, contractID string, opts ...Option) *Client {
	c := &Client{
		transport:  transport,
		contractID: contractID,
		domainDefaults: map[Scheme]uint32{
			SchemeSecp256k1: DefaultSecp256k1DomainID,
			SchemeEd25519:   DefaultEd25519DomainID,
		},
		gas:     DefaultSignGas,
		deposit: DefaultSignDeposit(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sign validates the request, submits it and converts the response. Requests
// that fail validation are rejected before submission and incur no cost;
// transport and malformed-response failures happen after cost is incurred
// and carry a distinct ErrorType so the caller can decide whether
// resubmission is safe.
func (c *Client) Sign(ctx context.Context, req *SignRequest) (*Signature, error) {
	attempt := newSignAttempt(req)
	if err := attempt.transition(StatusValidating); err != nil {
		return nil, err
	}

	payload, domainID, err := req.validate(c.domainDefaults)
	if err != nil {
		attempt.reject(err.Error())
		return nil, NewValidationError(attempt.id, err.Error())
	}

	args, err := json.Marshal(req.wireArgs(payload, domainID))
	if err != nil {
		attempt.reject(err.Error())
		return nil, NewValidationError(attempt.id, errors.Wrap(err, "failed to encode sign args").Error())
	}

	if err := attempt.transition(StatusSubmitted); err != nil {
		return nil, err
	}
	log.Debug().
		Str("request_id", attempt.id).
		Str("contract_id", c.contractID).
		Str("path", req.Path).
		Str("scheme", string(req.Scheme)).
		Uint32("domain_id", domainID).
		Msg("submitting sign request")

	successValue, err := c.transport.Call(ctx, c.contractID, methodSign, args, CallOptions{
		Deposit: c.deposit,
		Gas:     c.gas,
	})
	if err != nil {
		attempt.reject(err.Error())
		return nil, NewTransportError(attempt.id, err)
	}

	sig, err := parseSignatureResponse(successValue)
	if err != nil {
		attempt.reject(err.Error())
		return nil, NewMalformedResponseError(attempt.id, err.Error())
	}

	if err := attempt.transition(StatusCompleted); err != nil {
		return nil, err
	}
	log.Debug().
		Str("request_id", attempt.id).
		Str("scheme", string(sig.Scheme)).
		Msg("sign request completed")
	return sig, nil
}

// PublicKey fetches a domain's root public key in wire format. A nil
// domainID asks for the contract's default domain.
func (c *Client) PublicKey(ctx context.Context, domainID *uint32) (string, error) {
	var key string
	if err := c.view(ctx, methodPublicKey, publicKeyArgs{DomainID: domainID}, &key); err != nil {
		return "", err
	}
	return key, nil
}

// DerivedPublicKey fetches the public key the network derives for
// (predecessor, path). When domainID is nil the argument is omitted from the
// call and the contract uses its default domain; this must agree bit for bit
// with local derivation from the matching root key.
func (c *Client) DerivedPublicKey(ctx context.Context, predecessor, path string, domainID *uint32) (string, error) {
	args := derivedPublicKeyArgs{
		Predecessor: predecessor,
		Path:        path,
		DomainID:    domainID,
	}
	var key string
	if err := c.view(ctx, methodDerivedPublicKey, args, &key); err != nil {
		return "", err
	}
	return key, nil
}

// LatestKeyVersion fetches the newest domain/key version.
func (c *Client) LatestKeyVersion(ctx context.Context) (uint64, error) {
	var version uint64
	if err := c.view(ctx, methodLatestKeyVersion, struct{}{}, &version); err != nil {
		return 0, err
	}
	return version, nil
}

func (c *Client) view(ctx context.Context, method string, args interface{}, out interface{}) error {
	encoded, err := json.Marshal(args)
	if err != nil {
		return NewValidationError("", errors.Wrapf(err, "failed to encode %s args", method).Error())
	}
	result, err := c.transport.View(ctx, c.contractID, method, encoded)
	if err != nil {
		return NewTransportError("", err)
	}
	if err := json.Unmarshal(result, out); err != nil {
		return NewMalformedResponseError("", errors.Wrapf(err, "failed to decode %s result", method).Error())
	}
	return nil
}

package signing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultDomains() map[Scheme]uint32 {
	return map[Scheme]uint32{
		SchemeSecp256k1: DefaultSecp256k1DomainID,
		SchemeEd25519:   DefaultEd25519DomainID,
	}
}

func hexBytes(n int) string {
	return strings.Repeat("ab", n)
}

func TestSignRequestValidate(t *testing.T) {
	tests := []struct {
		name       string
		req        SignRequest
		wantDomain uint32
		wantErr    bool
	}{
		{
			name:       "valid ECDSA 32 bytes",
			req:        SignRequest{Path: "ethereum-1", Message: hexBytes(32), Scheme: SchemeSecp256k1},
			wantDomain: 0,
		},
		{
			name:    "ECDSA 31 bytes rejected",
			req:     SignRequest{Path: "ethereum-1", Message: hexBytes(31), Scheme: SchemeSecp256k1},
			wantErr: true,
		},
		{
			name:    "ECDSA 33 bytes rejected",
			req:     SignRequest{Path: "ethereum-1", Message: hexBytes(33), Scheme: SchemeSecp256k1},
			wantErr: true,
		},
		{
			name:       "EdDSA 32 bytes accepted",
			req:        SignRequest{Path: "solana-1", Message: hexBytes(32), Scheme: SchemeEd25519},
			wantDomain: 1,
		},
		{
			name:    "EdDSA 31 bytes rejected",
			req:     SignRequest{Path: "solana-1", Message: hexBytes(31), Scheme: SchemeEd25519},
			wantErr: true,
		},
		{
			name:       "EdDSA 1232 bytes accepted",
			req:        SignRequest{Path: "solana-1", Message: hexBytes(1232), Scheme: SchemeEd25519},
			wantDomain: 1,
		},
		{
			name:    "EdDSA 1233 bytes rejected",
			req:     SignRequest{Path: "solana-1", Message: hexBytes(1233), Scheme: SchemeEd25519},
			wantErr: true,
		},
		{
			name:    "empty path rejected",
			req:     SignRequest{Path: "", Message: hexBytes(32), Scheme: SchemeSecp256k1},
			wantErr: true,
		},
		{
			name:    "whitespace path rejected",
			req:     SignRequest{Path: "  \t ", Message: hexBytes(32), Scheme: SchemeSecp256k1},
			wantErr: true,
		},
		{
			name:    "invalid hex rejected",
			req:     SignRequest{Path: "ethereum-1", Message: "not-hex", Scheme: SchemeSecp256k1},
			wantErr: true,
		},
		{
			name:    "unknown scheme rejected",
			req:     SignRequest{Path: "ethereum-1", Message: hexBytes(32), Scheme: Scheme("Bls12381")},
			wantErr: true,
		},
		{
			name:       "explicit domain overrides default",
			req:        SignRequest{Path: "ethereum-1", Message: hexBytes(32), Scheme: SchemeSecp256k1, DomainID: uint32Ptr(7)},
			wantDomain: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, domainID, err := tt.req.validate(defaultDomains())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDomain, domainID)
			assert.Equal(t, len(tt.req.Message)/2, len(payload))
		})
	}
}

func TestValidateRequiresDomainDefault(t *testing.T) {
	req := SignRequest{Path: "solana-1", Message: hexBytes(32), Scheme: SchemeEd25519}
	_, _, err := req.validate(map[Scheme]uint32{SchemeSecp256k1: 0})
	assert.Error(t, err)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusBuilding, StatusValidating, true},
		{StatusBuilding, StatusSubmitted, false},
		{StatusValidating, StatusSubmitted, true},
		{StatusValidating, StatusRejected, true},
		{StatusValidating, StatusCompleted, false},
		{StatusSubmitted, StatusCompleted, true},
		{StatusSubmitted, StatusRejected, true},
		{StatusCompleted, StatusSubmitted, false},
		{StatusRejected, StatusValidating, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, canTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestSignAttemptLifecycle(t *testing.T) {
	attempt := newSignAttempt(&SignRequest{Path: "p"})
	assert.Equal(t, StatusBuilding, attempt.status)
	assert.NotEmpty(t, attempt.id)

	require.NoError(t, attempt.transition(StatusValidating))
	require.NoError(t, attempt.transition(StatusSubmitted))
	require.NoError(t, attempt.transition(StatusCompleted))

	err := attempt.transition(StatusSubmitted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func uint32Ptr(v uint32) *uint32 {
	return &v
}

package signing

import (
	"fmt"
	"strings"
)

// ProtocolError represents a failed sign or view interaction. The Type tells
// a caller whether the failure happened before submission (no cost incurred)
// or after (cost already paid, resubmission may not be safe).
type ProtocolError struct {
	Type      ErrorType
	Message   string
	RequestID string
	Original  error
}

type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	// ErrTypeValidation: rejected locally before submission. Cheap, always
	// recoverable by fixing the request.
	ErrTypeValidation
	// ErrTypeTransport: network or remote execution failure, passed through
	// verbatim. Not retried internally.
	ErrTypeTransport
	// ErrTypeMalformedResponse: the remote accepted the request but returned
	// a payload this client cannot decode. Cost already incurred.
	ErrTypeMalformedResponse
)

func (e *ProtocolError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type.String(), e.Message))
	if e.RequestID != "" {
		sb.WriteString(fmt.Sprintf(" [request: %s]", e.RequestID))
	}
	if e.Original != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Original))
	}
	return sb.String()
}

func (e *ProtocolError) Unwrap() error {
	return e.Original
}

func (t ErrorType) String() string {
	switch t {
	case ErrTypeValidation:
		return "VALIDATION"
	case ErrTypeTransport:
		return "TRANSPORT"
	case ErrTypeMalformedResponse:
		return "MALFORMED_RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// NewValidationError creates a pre-submission rejection.
func NewValidationError(requestID string, msg string) *ProtocolError {
	return &ProtocolError{
		Type:      ErrTypeValidation,
		Message:   msg,
		RequestID: requestID,
	}
}

// NewTransportError wraps a transport failure verbatim.
func NewTransportError(requestID string, err error) *ProtocolError {
	return &ProtocolError{
		Type:      ErrTypeTransport,
		Message:   "transport error",
		RequestID: requestID,
		Original:  err,
	}
}

// NewMalformedResponseError creates a post-submission decode rejection.
func NewMalformedResponseError(requestID string, msg string) *ProtocolError {
	return &ProtocolError{
		Type:      ErrTypeMalformedResponse,
		Message:   msg,
		RequestID: requestID,
	}
}

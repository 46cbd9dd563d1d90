package signing

// Scheme selects the signature scheme a request is signed under. The values
// match the tags used on the contract wire.
type Scheme string

const (
	// SchemeSecp256k1 is ECDSA over secp256k1.
	SchemeSecp256k1 Scheme = "Secp256k1"
	// SchemeEd25519 is EdDSA over edwards25519.
	SchemeEd25519 Scheme = "Ed25519"
)

// Valid reports whether the scheme is one this client knows how to request.
func (s Scheme) Valid() bool {
	return s == SchemeSecp256k1 || s == SchemeEd25519
}

// Payload size limits per scheme, in bytes.
const (
	ECDSAMessageSize    = 32
	MinEdDSAMessageSize = 32
	MaxEdDSAMessageSize = 1232
)

// Default domain ids per scheme. This is an operational convention of the
// deployed contract, not a protocol law: override it per client with
// WithDomainDefaults or per request with SignRequest.DomainID. The contract
// exposes no way to query a domain's scheme, so the mapping has to be known
// out of band.
const (
	DefaultSecp256k1DomainID uint32 = 0
	DefaultEd25519DomainID   uint32 = 1
)

// SignRequest is an intent to sign Message (hex-encoded) under the key
// derived for Path. DomainID selects the MPC keyspace; nil means "default
// for the scheme".
type SignRequest struct {
	Path     string
	Message  string
	Scheme   Scheme
	DomainID *uint32
}

// Wire shapes for the sign call. These are a fixed contract: the scheme key
// inside payload_v2 controls which branch the remote network signs under.
type signArgs struct {
	Request signRequestWire `json:"request"`
}

type signRequestWire struct {
	DomainID  uint32        `json:"domain_id"`
	Path      string        `json:"path"`
	PayloadV2 payloadV2Wire `json:"payload_v2"`
}

type payloadV2Wire struct {
	Ecdsa string `json:"Ecdsa,omitempty"`
	Eddsa string `json:"Eddsa,omitempty"`
}

// View-call argument shapes.
type publicKeyArgs struct {
	DomainID *uint32 `json:"domain_id,omitempty"`
}

type derivedPublicKeyArgs struct {
	Predecessor string  `json:"predecessor"`
	Path        string  `json:"path"`
	DomainID    *uint32 `json:"domain_id,omitempty"`
}

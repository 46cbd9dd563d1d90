package nearrpc

import (
	"crypto/sha256"
	"encoding/base64"
	"math/big"

	"github.com/near/borsh-go"
	"github.com/pkg/errors"
)

const ed25519KeyType uint8 = 0

// Borsh wire shapes of a NEAR transaction. Field and variant order is fixed
// by the protocol.
type publicKeyWire struct {
	KeyType uint8
	Data    [32]byte
}

type signatureWire struct {
	KeyType uint8
	Data    [64]byte
}

type functionCallAction struct {
	MethodName string
	Args       []byte
	Gas        uint64
	Deposit    big.Int // u128
}

// actionWire covers the full protocol enum so the variant indices line up;
// only FunctionCall is ever built here.
type actionWire struct {
	Enum           borsh.Enum `borsh_enum:"true"`
	CreateAccount  struct{}
	DeployContract struct{ Code []byte }
	FunctionCall   functionCallAction
	Transfer       struct{ Deposit big.Int }
	Stake          struct {
		Stake     big.Int
		PublicKey publicKeyWire
	}
	AddKey    struct{}
	DeleteKey struct{ PublicKey publicKeyWire }
	DeleteAccount struct {
		BeneficiaryID string
	}
}

const actionFunctionCall borsh.Enum = 2

type transactionWire struct {
	SignerID   string
	PublicKey  publicKeyWire
	Nonce      uint64
	ReceiverID string
	BlockHash  [32]byte
	Actions    []actionWire
}

type signedTransactionWire struct {
	Transaction transactionWire
	Signature   signatureWire
}

// encodeSignedFunctionCall builds a single-action function-call transaction,
// signs its SHA-256 digest with the account key and returns the
// base64-encoded signed transaction ready for send_tx.
func encodeSignedFunctionCall(
	key *AccountKey,
	nonce uint64,
	receiverID string,
	blockHash [32]byte,
	method string,
	args []byte,
	gas uint64,
	deposit *big.Int,
) (string, error) {
	var pub publicKeyWire
	pub.KeyType = ed25519KeyType
	copy(pub.Data[:], key.publicKeyBytes())

	if deposit == nil {
		deposit = big.NewInt(0)
	}
	action := actionWire{Enum: actionFunctionCall}
	action.FunctionCall = functionCallAction{
		MethodName: method,
		Args:       args,
		Gas:        gas,
		Deposit:    *deposit,
	}

	tx := transactionWire{
		SignerID:   key.AccountID,
		PublicKey:  pub,
		Nonce:      nonce,
		ReceiverID: receiverID,
		BlockHash:  blockHash,
		Actions:    []actionWire{action},
	}

	raw, err := borsh.Serialize(tx)
	if err != nil {
		return "", errors.Wrap(err, "failed to serialize transaction")
	}
	digest := sha256.Sum256(raw)

	var sig signatureWire
	sig.KeyType = ed25519KeyType
	copy(sig.Data[:], key.sign(digest[:]))

	signed, err := borsh.Serialize(signedTransactionWire{
		Transaction: tx,
		Signature:   sig,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to serialize signed transaction")
	}
	return base64.StdEncoding.EncodeToString(signed), nil
}

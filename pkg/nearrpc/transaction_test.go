package nearrpc

import (
	"encoding/base64"
	"math/big"
	"testing"

	"github.com/near/borsh-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSignedFunctionCall(t *testing.T) {
	key := testAccountKey(t)
	var blockHash [32]byte
	blockHash[31] = 0x99

	encoded, err := encodeSignedFunctionCall(
		key, 42, "v1.signer-prod.testnet", blockHash,
		"sign", []byte(`{"request":{}}`), 250_000_000_000_000, big.NewInt(1),
	)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	var signed signedTransactionWire
	require.NoError(t, borsh.Deserialize(&signed, raw))

	tx := signed.Transaction
	assert.Equal(t, "caller.testnet", tx.SignerID)
	assert.Equal(t, ed25519KeyType, tx.PublicKey.KeyType)
	assert.Equal(t, uint64(42), tx.Nonce)
	assert.Equal(t, "v1.signer-prod.testnet", tx.ReceiverID)
	assert.Equal(t, blockHash, tx.BlockHash)

	require.Len(t, tx.Actions, 1)
	action := tx.Actions[0]
	assert.Equal(t, actionFunctionCall, action.Enum)
	assert.Equal(t, "sign", action.FunctionCall.MethodName)
	assert.Equal(t, []byte(`{"request":{}}`), action.FunctionCall.Args)
	assert.Equal(t, uint64(250_000_000_000_000), action.FunctionCall.Gas)
	assert.Zero(t, action.FunctionCall.Deposit.Cmp(big.NewInt(1)))
}

func TestEncodeSignedFunctionCallNilDeposit(t *testing.T) {
	key := testAccountKey(t)
	var blockHash [32]byte

	encoded, err := encodeSignedFunctionCall(key, 1, "c.testnet", blockHash, "sign", nil, 0, nil)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	var signed signedTransactionWire
	require.NoError(t, borsh.Deserialize(&signed, raw))
	assert.Zero(t, signed.Transaction.Actions[0].FunctionCall.Deposit.Sign())
}

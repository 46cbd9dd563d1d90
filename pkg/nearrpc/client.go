package nearrpc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/r-near/omni-transactions-sdk/pkg/signing"
)

// Client is a signing.Transport over NEAR JSON-RPC. View calls work without
// an account key; state-changing calls need one to sign the carrying
// transaction. The client adds no retry or timeout policy of its own —
// deadlines come from the ctx and the injected http.Client.
type Client struct {
	endpoint string
	http     *http.Client
	key      *AccountKey
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithAccountKey attaches the key used to sign state-changing calls.
func WithAccountKey(key *AccountKey) Option {
	return func(c *Client) {
		c.key = key
	}
}

// NewClient creates a client for one RPC endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ signing.Transport = (*Client)(nil)

type rpcEnvelope struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Name    string          `json:"name"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *rpcError) Error() string {
	if len(e.Data) > 0 {
		return e.Name + ": " + e.Message + ": " + string(e.Data)
	}
	return e.Name + ": " + e.Message
}

func (c *Client) rpc(ctx context.Context, method string, params interface{}, out interface{}) error {
	body, err := json.Marshal(rpcEnvelope{
		JSONRPC: "2.0",
		ID:      "omni-transactions-sdk",
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode rpc request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build rpc request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "rpc request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read rpc response")
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("rpc endpoint returned HTTP %d: %s", resp.StatusCode, string(raw))
	}

	var envelope rpcResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return errors.Wrap(err, "failed to decode rpc response")
	}
	if envelope.Error != nil {
		return envelope.Error
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return errors.Wrapf(err, "failed to decode %s result", method)
	}
	return nil
}

// View calls a read-only contract method at final finality and returns the
// raw result bytes (JSON produced by the contract).
func (c *Client) View(ctx context.Context, contractID, method string, args []byte) ([]byte, error) {
	params := map[string]interface{}{
		"request_type": "call_function",
		"finality":     "final",
		"account_id":   contractID,
		"method_name":  method,
		"args_base64":  base64.StdEncoding.EncodeToString(args),
	}
	var out struct {
		Result []int    `json:"result"`
		Error  string   `json:"error"`
		Logs   []string `json:"logs"`
	}
	if err := c.rpc(ctx, "query", params, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, errors.Errorf("view call %s failed: %s", method, out.Error)
	}
	return bytesFromInts(out.Result)
}

// Call submits a funded function call and waits for finality, returning the
// base64-encoded success value.
func (c *Client) Call(ctx context.Context, contractID, method string, args []byte, opts signing.CallOptions) (string, error) {
	if c.key == nil {
		return "", errors.New("an account key is required for state-changing calls")
	}

	nonce, blockHash, err := c.nextNonce(ctx)
	if err != nil {
		return "", err
	}

	signedTx, err := encodeSignedFunctionCall(c.key, nonce, contractID, blockHash, method, args, opts.Gas, opts.Deposit)
	if err != nil {
		return "", err
	}

	log.Debug().
		Str("signer_id", c.key.AccountID).
		Str("contract_id", contractID).
		Str("method", method).
		Uint64("nonce", nonce).
		Msg("broadcasting function call")

	var out struct {
		Status json.RawMessage `json:"status"`
	}
	params := map[string]interface{}{
		"signed_tx_base64": signedTx,
		"wait_until":       "FINAL",
	}
	if err := c.rpc(ctx, "send_tx", params, &out); err != nil {
		return "", err
	}
	return successValue(out.Status)
}

// nextNonce reads the signing key's access-key nonce and a recent block hash.
func (c *Client) nextNonce(ctx context.Context) (uint64, [32]byte, error) {
	var blockHash [32]byte
	params := map[string]interface{}{
		"request_type": "view_access_key",
		"finality":     "final",
		"account_id":   c.key.AccountID,
		"public_key":   c.key.PublicKeyString(),
	}
	var out struct {
		Nonce     uint64 `json:"nonce"`
		BlockHash string `json:"block_hash"`
	}
	if err := c.rpc(ctx, "query", params, &out); err != nil {
		return 0, blockHash, err
	}
	decoded := base58.Decode(out.BlockHash)
	if len(decoded) != len(blockHash) {
		return 0, blockHash, errors.Errorf("block hash must decode to %d bytes, got %d", len(blockHash), len(decoded))
	}
	copy(blockHash[:], decoded)
	return out.Nonce + 1, blockHash, nil
}

// successValue extracts SuccessValue from a final execution status, mapping
// Failure through verbatim.
func successValue(status json.RawMessage) (string, error) {
	if len(status) == 0 {
		return "", errors.New("execution outcome has no status")
	}
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(status, &tagged); err != nil {
		return "", errors.Wrap(err, "failed to decode execution status")
	}
	if failure, ok := tagged["Failure"]; ok {
		return "", errors.Errorf("execution failed: %s", string(failure))
	}
	raw, ok := tagged["SuccessValue"]
	if !ok {
		return "", errors.Errorf("unexpected execution status: %s", string(status))
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", errors.Wrap(err, "failed to decode success value")
	}
	return value, nil
}

func bytesFromInts(in []int) ([]byte, error) {
	out := make([]byte, len(in))
	for i, b := range in {
		if b < 0 || b > 255 {
			return nil, errors.Errorf("result byte %d out of range: %d", i, b)
		}
		out[i] = byte(b)
	}
	return out, nil
}

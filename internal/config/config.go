package config

import (
	"os"

	"github.com/rs/zerolog/log"
)

// Network names a NEAR network.
type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkTestnet Network = "testnet"
)

// Named per-network defaults. These are starting points, not ambient state:
// every value can be overridden through the environment or by constructing a
// Client config directly.
var (
	defaultContractIDs = map[Network]string{
		NetworkMainnet: "v1.signer",
		NetworkTestnet: "v1.signer-prod.testnet",
	}
	defaultRPCURLs = map[Network]string{
		NetworkMainnet: "https://rpc.mainnet.near.org",
		NetworkTestnet: "https://rpc.testnet.near.org",
	}
)

// DefaultContractID returns the chain-signatures contract deployed on the
// given network.
func DefaultContractID(n Network) string {
	return defaultContractIDs[n]
}

// DefaultRPCURL returns the public RPC endpoint for the given network.
func DefaultRPCURL(n Network) string {
	return defaultRPCURLs[n]
}

// Client holds everything needed to construct a transport and a signing
// client.
type Client struct {
	Network         Network
	RPCURL          string
	ContractID      string
	SignerAccountID string
	SignerSecretKey string
}

// DefaultClientConfigFromEnv reads the client config from the environment,
// falling back to the selected network's defaults.
func DefaultClientConfigFromEnv() Client {
	network := Network(getEnv("CHAINSIG_NETWORK", string(NetworkTestnet)))
	if _, ok := defaultContractIDs[network]; !ok {
		log.Warn().Str("network", string(network)).Msg("unknown network, no contract/rpc defaults available")
	}
	return Client{
		Network:         network,
		RPCURL:          getEnv("CHAINSIG_RPC_URL", DefaultRPCURL(network)),
		ContractID:      getEnv("CHAINSIG_CONTRACT_ID", DefaultContractID(network)),
		SignerAccountID: getEnv("CHAINSIG_SIGNER_ACCOUNT_ID", ""),
		SignerSecretKey: getEnv("CHAINSIG_SIGNER_SECRET_KEY", ""),
	}
}

func getEnv(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

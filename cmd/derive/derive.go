package derive

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/r-near/omni-transactions-sdk/internal/config"
	"github.com/r-near/omni-transactions-sdk/pkg/chain"
	"github.com/r-near/omni-transactions-sdk/pkg/key"
	"github.com/r-near/omni-transactions-sdk/pkg/nearrpc"
	"github.com/r-near/omni-transactions-sdk/pkg/signing"
)

func New() *cobra.Command {
	var account string
	var path string
	var rootKey string

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive a child public key for (account, path) from the contract's root key",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runDerive(cmd.Context(), account, path, rootKey); err != nil {
				log.Fatal().Err(err).Msg("derivation failed")
			}
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Account identifier the child key belongs to")
	cmd.Flags().StringVar(&path, "path", "", "Derivation path, e.g. ethereum-1")
	cmd.Flags().StringVar(&rootKey, "root-key", "", "Root public key in wire format (fetched from the contract when empty)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

func runDerive(ctx context.Context, account, path, rootKey string) error {
	if rootKey == "" {
		cfg := config.DefaultClientConfigFromEnv()
		transport := nearrpc.NewClient(cfg.RPCURL)
		client := signing.NewClient(transport, cfg.ContractID)
		fetched, err := client.PublicKey(ctx, nil)
		if err != nil {
			return err
		}
		rootKey = fetched
	}

	parent, err := key.FromNEARPublicKey(rootKey)
	if err != nil {
		return err
	}
	child, err := key.Derive(parent, account, path)
	if err != nil {
		return err
	}
	address, err := chain.EthereumAddress(child.PublicPoint().UncompressedBytes())
	if err != nil {
		return err
	}

	fmt.Printf("derived public key: %s\n", child.NEARString())
	fmt.Printf("ethereum address:   %s\n", address)
	return nil
}

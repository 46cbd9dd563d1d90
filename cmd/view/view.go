package view

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/r-near/omni-transactions-sdk/internal/config"
	"github.com/r-near/omni-transactions-sdk/pkg/nearrpc"
	"github.com/r-near/omni-transactions-sdk/pkg/signing"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Read-only contract queries",
	}
	cmd.AddCommand(newPublicKeyCmd())
	cmd.AddCommand(newDerivedKeyCmd())
	cmd.AddCommand(newLatestVersionCmd())
	return cmd
}

func newClient() *signing.Client {
	cfg := config.DefaultClientConfigFromEnv()
	return signing.NewClient(nearrpc.NewClient(cfg.RPCURL), cfg.ContractID)
}

func domainFlag(cmd *cobra.Command, domainID *int64) {
	cmd.Flags().Int64Var(domainID, "domain", -1, "Domain id (contract default when negative)")
}

func optionalDomain(domainID int64) *uint32 {
	if domainID < 0 {
		return nil
	}
	id := uint32(domainID)
	return &id
}

func newPublicKeyCmd() *cobra.Command {
	var domainID int64
	cmd := &cobra.Command{
		Use:   "public-key",
		Short: "Fetch a domain's root public key",
		Run: func(cmd *cobra.Command, args []string) {
			key, err := newClient().PublicKey(cmd.Context(), optionalDomain(domainID))
			if err != nil {
				log.Fatal().Err(err).Msg("public_key query failed")
			}
			fmt.Println(key)
		},
	}
	domainFlag(cmd, &domainID)
	return cmd
}

func newDerivedKeyCmd() *cobra.Command {
	var account string
	var path string
	var domainID int64
	cmd := &cobra.Command{
		Use:   "derived-key",
		Short: "Fetch the public key the network derives for (account, path)",
		Run: func(cmd *cobra.Command, args []string) {
			key, err := newClient().DerivedPublicKey(cmd.Context(), account, path, optionalDomain(domainID))
			if err != nil {
				log.Fatal().Err(err).Msg("derived_public_key query failed")
			}
			fmt.Println(key)
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "Account identifier")
	cmd.Flags().StringVar(&path, "path", "", "Derivation path")
	domainFlag(cmd, &domainID)
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

func newLatestVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest-version",
		Short: "Fetch the latest domain/key version",
		Run: func(cmd *cobra.Command, args []string) {
			version, err := newClient().LatestKeyVersion(cmd.Context())
			if err != nil {
				log.Fatal().Err(err).Msg("latest_key_version query failed")
			}
			fmt.Println(version)
		},
	}
}

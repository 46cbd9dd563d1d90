package sign

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/r-near/omni-transactions-sdk/internal/config"
	"github.com/r-near/omni-transactions-sdk/pkg/nearrpc"
	"github.com/r-near/omni-transactions-sdk/pkg/signing"
)

func New() *cobra.Command {
	var path string
	var message string
	var scheme string
	var domainID int64

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Request a signature from the MPC network",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runSign(cmd.Context(), path, message, scheme, domainID); err != nil {
				log.Fatal().Err(err).Msg("sign request failed")
			}
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Derivation path to sign under")
	cmd.Flags().StringVar(&message, "message", "", "Message to sign, hex encoded")
	cmd.Flags().StringVar(&scheme, "scheme", "secp256k1", "Signature scheme: secp256k1 or ed25519")
	cmd.Flags().Int64Var(&domainID, "domain", -1, "Domain id (defaults by scheme when negative)")
	_ = cmd.MarkFlagRequired("path")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func runSign(ctx context.Context, path, message, scheme string, domainID int64) error {
	cfg := config.DefaultClientConfigFromEnv()
	if cfg.SignerAccountID == "" || cfg.SignerSecretKey == "" {
		return errors.New("CHAINSIG_SIGNER_ACCOUNT_ID and CHAINSIG_SIGNER_SECRET_KEY must be set")
	}

	accountKey, err := nearrpc.ParseAccountKey(cfg.SignerAccountID, cfg.SignerSecretKey)
	if err != nil {
		return err
	}
	transport := nearrpc.NewClient(cfg.RPCURL, nearrpc.WithAccountKey(accountKey))
	client := signing.NewClient(transport, cfg.ContractID)

	req := &signing.SignRequest{
		Path:    path,
		Message: message,
	}
	switch scheme {
	case "secp256k1":
		req.Scheme = signing.SchemeSecp256k1
	case "ed25519":
		req.Scheme = signing.SchemeEd25519
	default:
		return errors.Errorf("unsupported scheme %q", scheme)
	}
	if domainID >= 0 {
		id := uint32(domainID)
		req.DomainID = &id
	}

	sig, err := client.Sign(ctx, req)
	if err != nil {
		return err
	}

	switch sig.Scheme {
	case signing.SchemeSecp256k1:
		fmt.Printf("signature (r||s||v): %s\n", hex.EncodeToString(sig.ECDSA.Bytes()))
	case signing.SchemeEd25519:
		fmt.Printf("signature: %s\n", hex.EncodeToString(sig.Ed25519[:]))
	}
	return nil
}

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/r-near/omni-transactions-sdk/cmd/derive"
	"github.com/r-near/omni-transactions-sdk/cmd/sign"
	"github.com/r-near/omni-transactions-sdk/cmd/view"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := &cobra.Command{
		Use:   "chainsig",
		Short: "Client for the NEAR chain-signatures MPC contract",
	}
	root.AddCommand(derive.New())
	root.AddCommand(sign.New())
	root.AddCommand(view.New())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

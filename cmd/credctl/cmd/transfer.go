package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"credvault/internal/app/server/config"
	"credvault/internal/domain/credential"
	"credvault/internal/infrastructure/storage/postgres"
	"credvault/internal/utils/logger"
)

var (
	transferFrom string
	transferTo   string
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Move all credentials owned by one project to another",
	Long: `Moves ownership of every credential owned by the source project to the
destination project in a single transaction. Non-owner sharings move along
unless the destination already has its own relation to the credential.

Runs directly against the database and therefore skips the scope checks the
HTTP API enforces; it is meant for operators cleaning up after a project is
deleted.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		conf := config.MustLoad()
		log := logger.New(conf.Env)

		storage, err := postgres.New(conf)
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}
		defer storage.Close()

		repo := postgres.NewCredentialRepository(storage, log)
		transfer := credential.NewTransfer(repo, storage, log)

		if err := transfer.All(cmd.Context(), transferFrom, transferTo); err != nil {
			return fmt.Errorf("transfer: %w", err)
		}

		fmt.Printf("%s moved ownership from %s to %s\n", color.GreenString("✓"), transferFrom, transferTo)
		return nil
	},
}

func init() {
	transferCmd.Flags().StringVar(&transferFrom, "from", "", "source project id")
	transferCmd.Flags().StringVar(&transferTo, "to", "", "destination project id")
	_ = transferCmd.MarkFlagRequired("from")
	_ = transferCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(transferCmd)
}

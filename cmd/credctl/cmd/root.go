package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "credctl",
	Short: "Operator tooling for the credential vault",
	Long: `credctl bundles the operations that do not belong on the HTTP API:
generating encryption keys, validating credential type definitions and
bulk-moving credential ownership between projects.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

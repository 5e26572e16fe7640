package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"credvault/internal/app/server/config"
	"credvault/internal/domain/schema"
	"credvault/internal/utils/logger"
)

var typesDir string

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Validate and list the credential type definitions",
	Long: `Loads every type definition from the directory and resolves each one
through its extends chain, reporting unknown parents and cycles before the
server trips over them at runtime.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		registry, err := schema.LoadDir(typesDir)
		if err != nil {
			return err
		}

		log := logger.New(config.EnvProd)
		resolver := schema.NewResolver(registry, log)

		var failed int
		for _, name := range registry.Names() {
			properties, err := resolver.Resolve(name)
			if err != nil {
				failed++
				fmt.Printf("%s %s: %v\n", color.RedString("✗"), name, err)
				continue
			}
			fmt.Printf("%s %s (%d properties)\n", color.GreenString("✓"), name, len(properties))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d types failed to resolve", failed, len(registry.Names()))
		}
		return nil
	},
}

func init() {
	typesCmd.Flags().StringVarP(&typesDir, "dir", "d", "types", "directory of type definition files")
	rootCmd.AddCommand(typesCmd)
}

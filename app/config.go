package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/config"
)

var dumpJSON bool

func init() { //nolint: gochecknoinits
	configCmd.Flags().BoolVar(&dumpJSON, "json", false, "print JSON, usable as "+config.EnvConfigJSON)

	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		var err error

		cfg, err = config.ReadConfig(configPath)

		return err //nolint:wrapcheck
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		dump := config.DumpConfig
		if dumpJSON {
			dump = config.DumpConfigJSON
		}

		out, err := dump(cfg)
		if err != nil {
			return err //nolint:wrapcheck
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

		return err //nolint:wrapcheck
	},
}

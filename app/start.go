package app

import (
	"github.com/spf13/cobra"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode (seed demo data, fast shutdown)")

	rootCmd.AddCommand(startCmd)
}

var startCmd = &cobra.Command{
	Use:     "start",
	Short:   "Start the GoRecipe-Admin web service",
	PreRunE: loadConfig,
	RunE: func(_ *cobra.Command, _ []string) error {
		d, err := daemon.New(&cfg)
		if err != nil {
			return err //nolint:wrapcheck
		}

		return d.Start() //nolint:wrapcheck
	},
}

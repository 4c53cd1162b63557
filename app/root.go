// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/config"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/logger"
)

var (
	configPath string // directory holding main.toml
	devMode    bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "go-recipe-admin",
	Short: "GoRecipe-Admin serves a REST API over a recipe database",
	Long: `GoRecipe-Admin serves a REST API over a recipe database
with filtering, sorting, paging, relation population and full text search.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "directory of main.toml (default ./etc/)")
}

// loadConfig reads the configuration and sets up logging from it.
func loadConfig(_ *cobra.Command, _ []string) error {
	var err error
	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err //nolint:wrapcheck
	}

	if devMode {
		cfg.DevMode = true
	}

	return logger.Init(cfg.Log) //nolint:wrapcheck
}

// Execute runs the root command and flushes the log shippers afterwards.
func Execute() error {
	err := rootCmd.Execute()

	if cerr := logger.Close(); cerr != nil {
		logger.ErrorHandler(cerr)
	}

	return err //nolint:wrapcheck
}

package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/database"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/models"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/search"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Short:   "Create the tables and text search indexes, then exit",
	PreRunE: loadConfig,
	RunE: func(_ *cobra.Command, _ []string) error {
		text, err := search.ForEngine(cfg.DB.Search())
		if err != nil {
			return err //nolint:wrapcheck
		}

		db, err := database.Open(cfg)
		if err != nil {
			return err //nolint:wrapcheck
		}

		defer func() {
			if err := database.Close(db); err != nil {
				log.Error().Err(err).Msg("close database")
			}
		}()

		if err = database.Migrate(db, text, models.RecipeSchema()); err != nil {
			return err //nolint:wrapcheck
		}

		log.Info().Str("engine", cfg.DB.GormEngine).Str("search", text.Name()).Msg("migration done")

		return nil
	},
}

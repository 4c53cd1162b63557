package app

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/models"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the recipe resource descriptor as YAML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s := models.RecipeSchema()
		if err := s.Validate(); err != nil {
			return err //nolint:wrapcheck
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2) //nolint:mnd

		if err := enc.Encode(s); err != nil {
			return err //nolint:wrapcheck
		}

		return enc.Close() //nolint:wrapcheck
	},
}

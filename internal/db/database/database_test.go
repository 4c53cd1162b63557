package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/config"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/models"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/search"
)

func TestDialector(t *testing.T) {
	testCases := []struct {
		engine   string
		expected string
		wantErr  bool
	}{
		{engine: config.EngineMySQL, expected: "mysql"},
		{engine: config.EnginePostgres, expected: "postgres"},
		{engine: config.EngineSQLite, expected: "sqlite"},
		{engine: "oracle", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.engine, func(t *testing.T) {
			d, err := Dialector(config.DB{GormEngine: tc.engine, Name: "recipes"})
			if tc.wantErr {
				require.ErrorIs(t, err, config.ErrUnknownGormEngine)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, d.Name())
		})
	}
}

func TestOpenAndMigrate(t *testing.T) {
	cfg := config.Config{
		DB: config.DB{
			GormEngine:   config.EngineSQLite,
			Name:         filepath.Join(t.TempDir(), "recipes.db"),
			MaxOpenConns: 1,
		},
	}

	db, err := Open(cfg)
	require.NoError(t, err)

	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db, search.SQLite{}, models.RecipeSchema()))

	for _, table := range []string{
		models.TableRecipes, models.TableChefs, models.TableTags, models.TableSteps,
		models.TableNutritionFacts, models.TableImages, models.TableUploadFiles,
		models.TableUploadFileMorph, models.TableRecipesTags, models.TableRecipesRelated,
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	assert.True(t, db.Migrator().HasColumn(&models.Recipe{}, "is_vegan"))

	// migrating twice is a no-op
	require.NoError(t, Migrate(db, search.SQLite{}, models.RecipeSchema()))
}

func TestMigrateNil(t *testing.T) {
	require.ErrorIs(t, Migrate(nil, search.SQLite{}), ErrDBNil)
}

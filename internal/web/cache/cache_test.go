package cache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/config"
)

func TestNewRejectsSQLite(t *testing.T) {
	_, err := New(config.Config{DB: config.DB{GormEngine: config.EngineSQLite, Name: "recipes.db"}})
	require.ErrorIs(t, err, ErrUnsupportedEngine)
}

func TestNewUnknownEngine(t *testing.T) {
	_, err := New(config.Config{DB: config.DB{GormEngine: "oracle"}})
	require.ErrorIs(t, err, config.ErrUnknownGormEngine)
}

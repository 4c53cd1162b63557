package daemon

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/config"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/database"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/models"
)

func testConfig() *config.Config {
	return &config.Config{
		DevMode: true,
		Title:   "test",
		DB: config.DB{
			GormEngine:   config.EngineSQLite,
			Name:         ":memory:",
			MaxOpenConns: 1,
		},
		Webserver: config.Webserver{
			Port:         8080,
			URL:          "http://localhost:8080",
			CacheEnabled: true,
		},
	}
}

func TestNewNilConfig(t *testing.T) {
	d, err := New(nil)
	require.ErrorIs(t, err, ErrConfigNil)
	assert.Nil(t, d)
}

func TestNewWiresService(t *testing.T) {
	d, err := New(testConfig())
	require.NoError(t, err)

	t.Cleanup(func() { _ = database.Close(d.db) })

	var chefs, tags int64

	require.NoError(t, d.db.Model(&models.Chef{}).Count(&chefs).Error)
	require.NoError(t, d.db.Model(&models.Tag{}).Count(&tags).Error)
	assert.EqualValues(t, 2, chefs)
	assert.EqualValues(t, 3, tags)

	resp, err := d.webService.App.Test(httptest.NewRequest("GET", "/recipes/count", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	// sqlite has no shared cache storage
	assert.Empty(t, resp.Header.Get("X-Cache"))
}

func TestSeedIsIdempotent(t *testing.T) {
	d, err := New(testConfig())
	require.NoError(t, err)

	t.Cleanup(func() { _ = database.Close(d.db) })

	require.NoError(t, seed(d.db))

	var chefs int64

	require.NoError(t, d.db.Model(&models.Chef{}).Count(&chefs).Error)
	assert.EqualValues(t, 2, chefs)
}

func TestResponseCacheDisabled(t *testing.T) {
	cfg := testConfig()
	assert.Nil(t, responseCache(cfg))

	cfg.Webserver.CacheEnabled = false
	assert.Nil(t, responseCache(cfg))
}

// Package cache selects the storage of the http response cache. Responses
// are kept in the same database the resources live in.
package cache

import (
	"time"

	"github.com/gofiber/fiber/v2"
	mysqlstorage "github.com/gofiber/storage/mysql/v2"
	postgresstorage "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/config"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/dsn"
)

const gcInterval = 10 * time.Second

// ErrUnsupportedEngine is returned for engines without a shared storage.
var ErrUnsupportedEngine = errors.New("response cache has no storage for engine")

// New returns the storage for cfg.DB.GormEngine. sqlite is rejected: a
// second connection would fight the resources over the database lock.
func New(cfg config.Config) (storage fiber.Storage, err error) {
	uri, err := dsn.Create(cfg.DB)
	if err != nil {
		return nil, err
	}

	table := cfg.Webserver.CacheTable

	// the storages panic when they can not connect
	defer func() {
		if r := recover(); r != nil {
			storage, err = nil, errors.Errorf("response cache storage: %v", r)
		}
	}()

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return mysqlstorage.New(mysqlstorage.Config{
			ConnectionURI: uri,
			Table:         table,
			GCInterval:    gcInterval,
		}), nil
	case config.EnginePostgres:
		return postgresstorage.New(postgresstorage.Config{
			ConnectionURI: uri,
			Table:         table,
			GCInterval:    gcInterval,
		}), nil
	default:
		return nil, errors.Wrap(ErrUnsupportedEngine, cfg.DB.GormEngine)
	}
}

// Package database opens the configured gorm engine and migrates the schema.
package database

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/config"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/dsn"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/models"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/schema"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/search"
	adapter "github.com/GoRecipe-Admin/GoRecipe-Admin/internal/logger/adapter/gorm"
)

// ErrDBNil is returned by Migrate for a nil handle.
var ErrDBNil = errors.New("database handle is nil")

// Dialector returns the gorm dialector of cfg.GormEngine.
func Dialector(cfg config.DB) (gorm.Dialector, error) {
	source, err := dsn.Create(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.GormEngine {
	case config.EngineMySQL:
		return mysql.Open(source), nil
	case config.EnginePostgres:
		return postgres.Open(source), nil
	default:
		return sqlite.Open(source), nil
	}
}

// Open connects to the configured database and applies the pool settings.
func Open(cfg config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DB)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if cfg.Log.SQL {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: adapter.New(nil, level, cfg.DB.SlowThreshold),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", cfg.DB.GormEngine)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql db")
	}

	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}

	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}

	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	log.Info().Str("engine", cfg.DB.GormEngine).Str("host", cfg.DB.Host).Str("name", cfg.DB.Name).
		Msg("database connected")

	return db, nil
}

// Migrate creates every table and the indexes text search relies on for
// each of the given resources.
func Migrate(db *gorm.DB, text search.TextSearch, resources ...*schema.Schema) error {
	if db == nil {
		return ErrDBNil
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}

	for _, s := range resources {
		if err := text.Migrate(db, s.Table, search.Columns(s)); err != nil {
			return errors.Wrapf(err, "text search index of %s", s.Table)
		}
	}

	return nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err //nolint:wrapcheck
	}

	return sqlDB.Close() //nolint:wrapcheck
}

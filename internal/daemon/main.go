// Package daemon wires the database, the recipe access layer and the web
// service together and runs them until a shutdown signal arrives.
package daemon

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/config"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/controller/resource"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/database"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/models"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/search"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/web"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/web/cache"
)

// ErrConfigNil is returned by New without a configuration.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// New opens and migrates the database, builds the recipe access layer and
// the web service on top of it.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	db, err := database.Open(*cfg)
	if err != nil {
		return nil, err
	}

	d, err := build(cfg, db)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}

	return d, nil
}

func build(cfg *config.Config, db *gorm.DB) (*Daemon, error) {
	text, err := search.ForEngine(cfg.DB.Search())
	if err != nil {
		return nil, err
	}

	recipes := models.RecipeSchema()

	if err = database.Migrate(db, text, recipes); err != nil {
		return nil, err
	}

	if cfg.DevMode {
		if err = seed(db); err != nil {
			return nil, errors.Wrap(err, "seed dev data")
		}
	}

	res, err := resource.New(recipes, text)
	if err != nil {
		return nil, err
	}

	webService, err := web.New(cfg, db, res, responseCache(cfg))
	if err != nil {
		return nil, err
	}

	return &Daemon{cfg: cfg, db: db, webService: webService}, nil
}

// responseCache returns nil when caching is off or has no storage, the
// service then runs uncached.
func responseCache(cfg *config.Config) fiber.Storage {
	if !cfg.Webserver.CacheEnabled {
		return nil
	}

	storage, err := cache.New(*cfg)
	if err != nil {
		log.Warn().Err(err).Msg("response cache disabled")
		return nil
	}

	return storage
}

// Start serves http until SIGINT or SIGTERM, then shuts down gracefully.
func (d *Daemon) Start() error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- d.webService.Start()
	}()

	go func() {
		d.webService.WaitShutdown()
	}()

	err := <-errCh

	if cerr := database.Close(d.db); cerr != nil {
		log.Error().Err(cerr).Msg("close database")
	}

	return err
}

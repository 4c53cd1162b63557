// Package web runs the fiber http service: the recipes REST routes, the
// response cache, /metrics and /checkalive.
package web

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/config"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/controller/resource"
	accesslog "github.com/GoRecipe-Admin/GoRecipe-Admin/internal/logger/adapter/fiber"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/web/handler"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/web/handler/recipe"
)

const (
	// CheckAlivePath answers 200 while the service takes traffic.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus registry.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// New creates the web service. storage may be nil, the response cache is
// then disabled.
func New(cfg *config.Config, db *gorm.DB, res *resource.Service, storage fiber.Storage) (*Service, error) {
	if cfg == nil || db == nil || res == nil {
		return nil, errors.New(handler.ErrNilACDFatalLogMsg) //nolint:err113
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192, //nolint:mnd
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			BodyLimit:      cfg.Webserver.BodyLimit,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	// dev instances skip the load balancer grace period
	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	if storage != nil && cfg.Webserver.CacheEnabled {
		app.Use(recipe.Path, cache.New(cache.Config{
			Expiration:   cfg.Webserver.CacheExpiration,
			CacheControl: true,
			Storage:      storage,
			KeyGenerator: func(c *fiber.Ctx) string {
				return utils.CopyString(c.OriginalURL())
			},
		}))

		log.Info().Dur("expiration", cfg.Webserver.CacheExpiration).Msg("response cache enabled")
	}

	if err := recipe.New(res, storage).Init(app, cfg, db); err != nil {
		return nil, err
	}

	return service, nil
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

// Start listens on the configured port until the app is shut down.
func (s *Service) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Webserver.Port)

	log.Info().Str("addr", addr).Str("url", strings.TrimRight(s.cfg.Webserver.URL, "/")).Msg("http server starting")

	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err //nolint:wrapcheck
	}

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and stops the app gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// let load balancers see the failing checkalive before the listener closes
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

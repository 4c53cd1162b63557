// Package fiber provides the zerolog based access log middleware together
// with per route request metrics.
package fiber

import (
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/logger"
)

// Config of the access log middleware.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Config of the logger.
	Config logger.Log

	// Output receives the access log in addition to the configured targets.
	//
	// Optional. Default: nil
	Output io.Writer

	// CacheControlError is set on responses the error handler could not render.
	CacheControlError string

	// CheckAliveURI is not logged if Config.DisableCheckAlive is set.
	CheckAliveURI string
}

// ConfigDefault is the default config.
var ConfigDefault = Config{ //nolint:gochecknoglobals
	CacheControlError: "max-age=0",
}

var (
	metricsOnce     sync.Once                //nolint:gochecknoglobals
	requestsTotal   *prometheus.CounterVec   //nolint:gochecknoglobals
	requestDuration *prometheus.HistogramVec //nolint:gochecknoglobals
)

func registerMetrics() {
	metricsOnce.Do(func() {
		requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of http requests, by method, route and status code.",
		}, []string{"method", "route", "status"})

		requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of http requests, by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})
	})
}

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.CacheControlError == "" {
		cfg.CacheControlError = ConfigDefault.CacheControlError
	}

	return cfg
}

// New creates the access logging middleware.
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)

	registerMetrics()

	var writers []io.Writer

	if cfg.Output != nil {
		writers = append(writers, cfg.Output)
	}

	if cfg.Config.File.Enabled && cfg.Config.File.Access.File != "" {
		w, err := logger.RollingFile(cfg.Config.File.Path, cfg.Config.File.Access)
		if err != nil {
			log.Error().Err(err).Msg("access log file disabled")
		} else {
			writers = append(writers, w)
		}
	}

	if cfg.Config.Console.Enabled && cfg.Config.EnableAccessLogToConsole {
		if cfg.Config.Console.UseConsoleWriter {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:          os.Stdout,
				TimeFormat:   zerolog.TimeFieldFormat,
				PartsExclude: []string{zerolog.LevelFieldName},
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	access := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(zerolog.NoLevel)

	return func(ctx *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(ctx) {
			return ctx.Next()
		}

		start := time.Now()

		chainErr := ctx.Next()
		if chainErr != nil {
			if err := ctx.App().ErrorHandler(ctx, chainErr); err != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError) //nolint:errcheck
				ctx.Response().Header.Set(fiber.HeaderCacheControl, cfg.CacheControlError)
			}
		}

		elapsed := time.Since(start)
		status := ctx.Response().StatusCode()

		ctx.Response().Header.Set("X-Performance", strconv.FormatFloat(elapsed.Seconds(), 'f', 6, 64))

		route := ctx.Route().Path
		requestsTotal.WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).Inc()
		requestDuration.WithLabelValues(ctx.Method(), route).Observe(elapsed.Seconds())

		if cfg.Config.DisableCheckAlive && ctx.Path() == cfg.CheckAliveURI {
			return nil
		}

		// fasthttp normalizes the path, log what the client asked for
		uri := string(ctx.Request().RequestURI())

		event := access.Log().
			Str("IP", ctx.IP()).
			Int("status", status).
			Float64("X-Performance", elapsed.Seconds()).
			Str("URI", uri).
			Str("route", route).
			Str("method", ctx.Method()).
			Bytes("host", ctx.Request().Host()).
			Str(fiber.HeaderXForwardedFor, ctx.Get(fiber.HeaderXForwardedFor)).
			Str(fiber.HeaderUserAgent, ctx.Get(fiber.HeaderUserAgent)).
			Str(fiber.HeaderReferer, ctx.Get(fiber.HeaderReferer))

		if chainErr != nil {
			event = event.Err(chainErr)
		}

		event.Send()

		return nil
	}
}

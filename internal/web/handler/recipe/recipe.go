// Package recipe is the REST controller of the recipes resource.
package recipe

import (
	"errors"
	"net/url"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/config"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/controller/resource"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/query"
	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/web/handler"
)

const (
	// Path is the route group of the resource.
	Path = "/recipes"

	// CountPath is the count route inside the group.
	CountPath = "/count"
)

// ErrNotInitialized is returned by Init when the service was built without a resource.
var ErrNotInitialized = errors.New("recipe handler has no resource service")

var (
	metricsOnce sync.Once              //nolint:gochecknoglobals
	operations  *prometheus.CounterVec //nolint:gochecknoglobals
)

// Service is the recipes handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	resource *resource.Service
	cache    fiber.Storage
}

// New returns the handler for res. cache, when not nil, is reset after
// every successful write.
func New(res *resource.Service, cache fiber.Storage) *Service {
	metricsOnce.Do(func() {
		operations = promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "recipe_operations_total",
			Help: "Number of recipe operations, by operation and outcome.",
		}, []string{"operation", "outcome"})
	})

	return &Service{resource: res, cache: cache}
}

// Init registers the routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg) //nolint:err113
	}

	if s.resource == nil {
		return ErrNotInitialized
	}

	s.cfg = cfg
	s.db = db

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Find)
		router.Get(CountPath, s.Count)
		router.Get("/:"+handler.IDParam, s.FindOne)
		router.Post(handler.RouterRootPath, s.Create)
		router.Put("/:"+handler.IDParam, s.Update)
		router.Delete("/:"+handler.IDParam, s.Destroy)
	})

	return nil
}

// Find lists recipes, or searches them when _q is present.
func (s *Service) Find(c *fiber.Ctx) error {
	params, err := queryParams(c)
	if err != nil {
		return s.fail(c, "find", err)
	}

	var records []resource.Record

	if params.Get(query.ParamSearch) != "" {
		records, err = s.resource.Search(s.db, params)
		if err != nil {
			return s.fail(c, "search", err)
		}

		return s.ok(c, "search", records)
	}

	records, err = s.resource.FetchAll(s.db, params, query.Populate(params))
	if err != nil {
		return s.fail(c, "find", err)
	}

	return s.ok(c, "find", records)
}

// FindOne returns one recipe.
func (s *Service) FindOne(c *fiber.Ctx) error {
	record, err := s.resource.Fetch(s.db, c.Params(handler.IDParam))
	if err != nil {
		return s.fail(c, "findOne", err)
	}

	return s.ok(c, "findOne", record)
}

// Count returns the number of recipes matching the filters.
func (s *Service) Count(c *fiber.Ctx) error {
	params, err := queryParams(c)
	if err != nil {
		return s.fail(c, "count", err)
	}

	n, err := s.resource.Count(s.db, params)
	if err != nil {
		return s.fail(c, "count", err)
	}

	return s.ok(c, "count", n)
}

// Create adds a recipe from the JSON body.
func (s *Service) Create(c *fiber.Ctx) error {
	values, err := body(c)
	if err != nil {
		return s.fail(c, "create", err)
	}

	record, err := s.resource.Add(s.db, values)
	if err != nil {
		return s.fail(c, "create", err)
	}

	s.invalidate()

	return s.ok(c, "create", record)
}

// Update edits a recipe from the JSON body.
func (s *Service) Update(c *fiber.Ctx) error {
	values, err := body(c)
	if err != nil {
		return s.fail(c, "update", err)
	}

	record, err := s.resource.Edit(s.db, c.Params(handler.IDParam), values)
	if err != nil {
		return s.fail(c, "update", err)
	}

	s.invalidate()

	return s.ok(c, "update", record)
}

// Destroy removes a recipe and returns what it was.
func (s *Service) Destroy(c *fiber.Ctx) error {
	record, err := s.resource.Remove(s.db, c.Params(handler.IDParam))
	if err != nil {
		return s.fail(c, "destroy", err)
	}

	s.invalidate()

	return s.ok(c, "destroy", record)
}

func (s *Service) ok(c *fiber.Ctx, operation string, payload any) error {
	operations.WithLabelValues(operation, "ok").Inc()

	return c.JSON(payload)
}

// fail maps access layer errors to status codes.
func (s *Service) fail(c *fiber.Ctx, operation string, err error) error {
	status := Status(err)
	operations.WithLabelValues(operation, "error").Inc()

	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("operation", operation).Msg("recipe operation failed")

		return handler.SendError(c, status, "An internal server error occurred")
	}

	return handler.SendError(c, status, err.Error())
}

// invalidate drops cached GET responses after a write.
func (s *Service) invalidate() {
	if s.cache == nil {
		return
	}

	if err := s.cache.Reset(); err != nil {
		log.Warn().Err(err).Msg("failed to reset response cache")
	}
}

// Status returns the http status of an access layer error.
func Status(err error) int {
	switch {
	case resource.IsNotFound(err):
		return fiber.StatusNotFound
	case errors.Is(err, resource.ErrValidation), errors.Is(err, resource.ErrIDEmpty), errors.Is(err, errBadRequest):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func queryParams(c *fiber.Ctx) (url.Values, error) {
	params, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return nil, errors.Join(errBadRequest, err)
	}

	return params, nil
}

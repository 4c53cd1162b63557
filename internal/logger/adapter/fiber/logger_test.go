package fiber_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/logger"
	adapter "github.com/GoRecipe-Admin/GoRecipe-Admin/internal/logger/adapter/fiber"
)

// accessLine is the json format of one access log line.
type accessLine struct {
	IP     string `json:"IP"`
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Route  string `json:"route"`
	Method string `json:"method"`
	Host   string `json:"host"`
	Error  string `json:"error"`
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		targetPath string
		config     adapter.Config
		expected   *accessLine
	}{
		{
			name:       "get recipes",
			method:     fiber.MethodGet,
			targetPath: "/recipes",
			expected: &accessLine{
				IP: "0.0.0.0", Status: fiber.StatusOK, URI: "/recipes",
				Route: "/recipes", Method: fiber.MethodGet, Host: "example.com",
			},
		},
		{
			name:       "query string is kept",
			method:     fiber.MethodGet,
			targetPath: "/recipes?_q=soup&_limit=5",
			expected: &accessLine{
				IP: "0.0.0.0", Status: fiber.StatusOK, URI: "/recipes?_q=soup&_limit=5",
				Route: "/recipes", Method: fiber.MethodGet, Host: "example.com",
			},
		},
		{
			name:       "multi slash is logged unchanged",
			method:     fiber.MethodGet,
			targetPath: "//recipes//x",
			expected: &accessLine{
				IP: "0.0.0.0", Status: fiber.StatusNotFound, URI: "//recipes//x",
				Method: fiber.MethodGet, Host: "example.com",
			},
		},
		{
			name:       "handler error is rendered and logged",
			method:     fiber.MethodDelete,
			targetPath: "/recipes/abc",
			expected: &accessLine{
				IP: "0.0.0.0", Status: fiber.StatusTeapot, URI: "/recipes/abc",
				Route: "/recipes/:id", Method: fiber.MethodDelete, Host: "example.com", Error: "no tea",
			},
		},
		{
			name:       "checkalive is skipped",
			method:     fiber.MethodGet,
			targetPath: "/checkalive",
			config: adapter.Config{
				Config:        logger.Log{DisableCheckAlive: true},
				CheckAliveURI: "/checkalive",
			},
		},
		{
			name:       "next skips the middleware",
			method:     fiber.MethodGet,
			targetPath: "/recipes",
			config: adapter.Config{
				Next: func(c *fiber.Ctx) bool { return strings.HasPrefix(c.Path(), "/recipes") },
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			cfg := tc.config
			cfg.Output = &buf

			app := fiber.New()
			app.Use(adapter.New(cfg))
			app.Get("/recipes", func(c *fiber.Ctx) error { return c.SendString("[]") })
			app.Get("/checkalive", func(c *fiber.Ctx) error { return c.SendString("OK") })
			app.Delete("/recipes/:id", func(_ *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "no tea") })

			resp, err := app.Test(httptest.NewRequest(tc.method, tc.targetPath, nil))
			require.NoError(t, err)

			defer func() { _ = resp.Body.Close() }()

			if tc.expected == nil {
				assert.Empty(t, buf.String())
				return
			}

			var line accessLine

			require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())

			// unmatched paths report the middleware route
			if tc.expected.Route == "" {
				line.Route = ""
			}

			assert.Equal(t, *tc.expected, line)
			assert.Equal(t, tc.expected.Status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Performance"))
		})
	}
}

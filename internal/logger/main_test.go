package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/logger"
)

func TestLogger(t *testing.T) {
	testCases := []struct {
		name             string
		cfg              logger.Log
		shouldHaveOutPut bool
		outPutIsJSON     bool
	}{
		{
			name: "no logger enabled log level not set",
			cfg: logger.Log{
				ServiceName: "test",
				AppName:     "test",
			},
		},
		{
			name: "console enabled console writer enabled",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			shouldHaveOutPut: true,
		},
		{
			name: "console enabled console writer disabled info expect json",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
		{
			name: "trace with caller expect json stack",
			cfg: logger.Log{
				LogLevel:     "trace",
				ServiceName:  "test",
				AppName:      "test",
				ReportCaller: true,
				Console:      logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureOutput(t, tc.cfg)

			if !tc.shouldHaveOutPut {
				assert.Empty(t, out)
				return
			}

			require.NotEmpty(t, out)

			if !tc.outPutIsJSON {
				return
			}

			for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
				var event map[string]any

				require.NoError(t, json.Unmarshal([]byte(line), &event), "line %q", line)
				assert.Equal(t, "test", event["app"])
			}
		})
	}
}

func TestInitErrors(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      logger.Log
		expected error
	}{
		{
			name:     "missing service",
			cfg:      logger.Log{LogLevel: "info", AppName: "test"},
			expected: logger.ErrServiceNameIsEmpty,
		},
		{
			name:     "missing app",
			cfg:      logger.Log{LogLevel: "info", ServiceName: "test"},
			expected: logger.ErrAppNameIsEmpty,
		},
		{
			name: "datadog without key",
			cfg: logger.Log{
				LogLevel: "info", ServiceName: "test", AppName: "test",
				DataDog: logger.DataDog{Enabled: true},
			},
			expected: logger.ErrDataDogAPIKeyIsEmpty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, logger.Init(tc.cfg), tc.expected)
		})
	}

	require.Error(t, logger.Init(logger.Log{LogLevel: "loud", ServiceName: "test", AppName: "test"}))
}

func TestRollingFiles(t *testing.T) {
	dir := t.TempDir()

	l, err := logger.New(logger.Log{
		LogLevel:    "debug",
		ServiceName: "test",
		AppName:     "test",
		File: logger.LogFile{
			Enabled: true,
			Path:    dir,
			Info:    logger.Rotation{File: "info.log", MaxSize: 1},
			Error:   logger.Rotation{File: "error.log", MaxSize: 1},
		},
	})
	require.NoError(t, err)

	l.Info().Msg("recipe created")
	l.Error().Err(errors.New("boom")).Msg("recipe failed") //nolint:goerr113
	l.Warn().Msg("dropped, no warn file configured")

	info, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "recipe created")
	assert.NotContains(t, string(info), "recipe failed")

	errs, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errs), "boom")

	assert.NoFileExists(t, filepath.Join(dir, "warn.log"))
}

func TestPrometheusHook(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer

	hook := logger.NewPrometheusHook("test")
	l := zerolog.New(&buf).Hook(hook)

	// the counter is shared process wide, compare deltas
	warn := hook.Counter().WithLabelValues(zerolog.WarnLevel.String())
	before := testutil.ToFloat64(warn)

	l.Warn().Msg("one")
	l.Warn().Msg("two")
	l.Log().Msg("no level")

	assert.InDelta(t, before+2, testutil.ToFloat64(warn), 0)
}

func captureOutput(t *testing.T, cfg logger.Log) string {
	t.Helper()

	stdout, stderr := os.Stdout, os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout, os.Stderr = w, w

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer

		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	initErr := logger.Init(cfg)

	log.Info().Msg("this info message should be seen...")
	log.Error().Err(errors.New("a test error")).Msg("this err message should be seen...") //nolint:goerr113
	log.Trace().Msg("this trace message should be seen at trace level...")

	_ = w.Close()
	os.Stdout, os.Stderr = stdout, stderr

	require.NoError(t, initErr)

	return <-outC
}

// Package logger configures the global zerolog logger from the Log config:
// console output, rolling files per level group, and shipping to datadog.
package logger

import (
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	shippersMu sync.Mutex  //nolint:gochecknoglobals
	shippers   []io.Closer //nolint:gochecknoglobals
)

// LevelWriter splits output by level. See WriteLevel about the separation.
type LevelWriter struct {
	ErrorWriter io.Writer
	InfoWriter  io.Writer
	TraceWriter io.Writer
	WarnWriter  io.Writer
}

// WriteLevel selects the target writer for level l.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	var w io.Writer

	switch {
	case l == zerolog.Disabled:
		return 0, nil
	case l == zerolog.TraceLevel:
		w = lw.TraceWriter
	case l == zerolog.WarnLevel:
		w = lw.WarnWriter
	case l > zerolog.WarnLevel: // error, fatal and panic
		w = lw.ErrorWriter
	default: // debug and info
		w = lw.InfoWriter
	}

	if w == nil {
		return len(p), nil
	}

	return w.Write(p) //nolint:wrapcheck
}

// Write sends level-less events to the info writer.
func (lw *LevelWriter) Write(p []byte) (int, error) {
	return lw.WriteLevel(zerolog.InfoLevel, p)
}

// Init builds the logger described by cfg and installs it as log.Logger.
// With no output enabled every event is dropped.
func Init(cfg Log) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}

	log.Logger = l

	return nil
}

// New builds the logger described by cfg.
func New(cfg Log) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), errors.Wrapf(err, "loglevel %s is not supported", cfg.LogLevel)
	}

	if cfg.ServiceName == "" {
		return zerolog.Nop(), ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return zerolog.Nop(), ErrAppNameIsEmpty
	}

	var writers []io.Writer

	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg))
	}

	if cfg.File.Enabled {
		w, err := newRollingLevelFiles(cfg.File)
		if err != nil {
			return zerolog.Nop(), err
		}

		writers = append(writers, w)
	}

	if cfg.DataDog.Enabled {
		w, err := NewDataDogWriter(cfg.DataDog, cfg.ServiceName)
		if err != nil {
			return zerolog.Nop(), err
		}

		writers = append(writers, w)

		shippersMu.Lock()
		shippers = append(shippers, w)
		shippersMu.Unlock()
	}

	// stack traces only pay off at trace level
	stack := level == zerolog.TraceLevel
	if stack {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
	}

	zerolog.SetGlobalLevel(level)
	zerolog.ErrorHandler = ErrorHandler //nolint:reassign

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Hook(NewPrometheusHook(cfg.ServiceName)).
		With().
		Timestamp().
		Str("app", cfg.AppName)

	switch {
	case cfg.ReportCaller && stack:
		ctx = ctx.Stack().Caller()
	case cfg.ReportCaller:
		ctx = ctx.Caller()
	case stack:
		ctx = ctx.Stack()
	}

	return ctx.Logger(), nil
}

// Close flushes and stops the background shippers of every logger built
// by New.
func Close() error {
	shippersMu.Lock()
	pending := shippers
	shippers = nil
	shippersMu.Unlock()

	var errs []error

	for _, c := range pending {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return stderrors.Join(errs...)
}

// RollingFile returns a lumberjack writer for one rotation config below dir.
// dir is created if missing.
func RollingFile(dir string, r Rotation) (io.Writer, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:mnd
			return nil, errors.Wrapf(err, "can't create log directory %s", dir)
		}
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, r.File),
		MaxSize:    r.MaxSize,
		MaxAge:     r.MaxAge,
		MaxBackups: r.MaxBackups,
		LocalTime:  false,
		Compress:   r.Compress,
	}, nil
}

func newRollingLevelFiles(cfg LogFile) (io.Writer, error) {
	var (
		lw  LevelWriter
		err error
	)

	targets := []struct {
		w *io.Writer
		r Rotation
	}{
		{&lw.ErrorWriter, cfg.Error},
		{&lw.InfoWriter, cfg.Info},
		{&lw.TraceWriter, cfg.Trace},
		{&lw.WarnWriter, cfg.Warn},
	}

	for _, t := range targets {
		if t.r.File == "" {
			continue
		}

		if *t.w, err = RollingFile(cfg.Path, t.r); err != nil {
			return nil, err
		}
	}

	return &lw, nil
}

// NewConsoleWriter sends info and debug to stdout and everything else to stderr,
// human readable if UseConsoleWriter is set.
func NewConsoleWriter(cfg Log) io.Writer {
	out := func(w io.Writer) io.Writer {
		if !cfg.Console.UseConsoleWriter {
			return w
		}

		return zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    false,
			TimeFormat: zerolog.TimeFieldFormat,
		}
	}

	return &LevelWriter{
		ErrorWriter: out(os.Stderr),
		InfoWriter:  out(os.Stdout),
		TraceWriter: out(os.Stderr),
		WarnWriter:  out(os.Stderr),
	}
}

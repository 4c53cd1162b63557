// Package gorm routes gorm's statement log into zerolog.
package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowThreshold marks statements logged as slow.
const DefaultSlowThreshold = 200 * time.Millisecond

// Logger implements gorm's logger.Interface on top of a zerolog logger.
type Logger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	zl            *zerolog.Logger
}

// New returns a logger at level. A nil zl writes to the global log.Logger
// as it is at the time of the call.
func New(zl *zerolog.Logger, level gormlogger.LogLevel, slowThreshold time.Duration) *Logger {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowThreshold
	}

	return &Logger{level: level, slowThreshold: slowThreshold, zl: zl}
}

func (l *Logger) logger() *zerolog.Logger {
	if l.zl != nil {
		return l.zl
	}

	return &log.Logger
}

// LogMode implements logger.Interface.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *l
	c.level = level

	return &c
}

// Info implements logger.Interface.
func (l *Logger) Info(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.logger().Info().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Warn implements logger.Interface.
func (l *Logger) Warn(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.logger().Warn().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Error implements logger.Interface.
func (l *Logger) Error(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.logger().Error().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Trace implements logger.Interface. Failed statements log at error, slow
// ones at warn, and all others at debug when the level is Info.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	var event *zerolog.Event

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		event = l.logger().Error().Err(err)
	case elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		event = l.logger().Warn().Dur("threshold", l.slowThreshold)
	case l.level >= gormlogger.Info:
		event = l.logger().Debug()
	default:
		return
	}

	sql, rows := fc()

	event.Str("component", "gorm").
		Dur("elapsed", elapsed).
		Int64("rows", rows).
		Str("sql", sql).
		Msg("statement")
}

package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

// gormZap routes gorm's logging through the app logger. SQL text is only
// emitted at Info level because interpolated statements carry password
// hashes and tokens.
type gormZap struct {
	log   *logger.Logger
	level gormLogger.LogLevel
	slow  time.Duration
}

func NewGormLogger(log *logger.Logger, slow time.Duration, level gormLogger.LogLevel) gormLogger.Interface {
	if slow <= 0 {
		slow = time.Second
	}
	return &gormZap{log: log.With("component", "gorm"), level: level, slow: slow}
}

func (g *gormZap) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *g
	cp.level = level
	return &cp
}

func (g *gormZap) Info(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormLogger.Info {
		g.log.Info(msg, "args", args)
	}
}

func (g *gormZap) Warn(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormLogger.Warn {
		g.log.Warn(msg, "args", args)
	}
}

func (g *gormZap) Error(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormLogger.Error {
		g.log.Error(msg, "args", args)
	}
}

func (g *gormZap) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && g.level >= gormLogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		_, rows := fc()
		g.log.Error("Query failed", "error", err, "rows", rows, "duration_ms", elapsed.Milliseconds())
	case elapsed > g.slow && g.level >= gormLogger.Warn:
		_, rows := fc()
		g.log.Warn("Slow query", "rows", rows, "duration_ms", elapsed.Milliseconds(), "threshold_ms", g.slow.Milliseconds())
	case g.level >= gormLogger.Info:
		sql, rows := fc()
		g.log.Debug("Query", "sql", sql, "rows", rows, "duration_ms", elapsed.Milliseconds())
	}
}

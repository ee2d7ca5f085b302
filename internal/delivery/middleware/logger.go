// Package middleware contains the transport independent echo middleware.
package middleware

import (
	"log/slog"

	"storefront/config"

	"github.com/labstack/echo/v4"
	slogecho "github.com/samber/slog-echo"
)

// LoggerMiddleware writes one access log line per request.
type LoggerMiddleware struct {
	handler echo.MiddlewareFunc
}

// NewLoggerMiddleware builds the access logger. Debug mode logs successful
// requests at info level with the user agent; otherwise they are logged at debug.
// Paths in skip are never logged.
func NewLoggerMiddleware(logger *slog.Logger, cfg *config.Config, skip ...string) *LoggerMiddleware {
	defaultLevel := slog.LevelDebug
	if cfg.Env.Debug {
		defaultLevel = slog.LevelInfo
	}

	logCfg := slogecho.Config{
		DefaultLevel:     defaultLevel,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
		WithUserAgent:    cfg.Env.Debug,
	}
	if len(skip) > 0 {
		logCfg.Filters = []slogecho.Filter{slogecho.IgnorePath(skip...)}
	}

	return &LoggerMiddleware{
		handler: slogecho.NewWithConfig(logger.With(slog.String("component", "http")), logCfg),
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return m.handler(next)
}

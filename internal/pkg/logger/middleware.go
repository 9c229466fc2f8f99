package logger

import (
	"time"

	"github.com/labstack/echo/v4"
)

// EchoMiddleware creates request-logging middleware for Echo
func EchoMiddleware(logger *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			path := c.Request().URL.Path
			raw := c.Request().URL.RawQuery

			err := next(c)

			latency := time.Since(start)
			statusCode := c.Response().Status
			if raw != "" {
				path = path + "?" + raw
			}

			entry := logger.With(
				Int("status", statusCode),
				String("latency", latency.String()),
				Int64("latency_ms", latency.Milliseconds()),
				String("client_ip", c.RealIP()),
				String("method", c.Request().Method),
				String("path", path),
				String("request_id", c.Response().Header().Get("X-Request-ID")),
			)

			if statusCode >= 500 {
				if err != nil {
					entry.With(Err(err)).Error("Server error")
				} else {
					entry.Error("Server error")
				}
			} else if statusCode >= 400 {
				entry.Warn("Client error")
			} else {
				entry.Info("Request processed")
			}

			return err
		}
	}
}

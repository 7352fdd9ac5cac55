package middleware

import (
	"time"

	applogger "GreeksBoard/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs one line per HTTP request.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)
			if err != nil {
				// let echo write the error so the logged status is the final one
				c.Error(err)
			}

			fields := []applogger.Field{
				applogger.String("method", req.Method),
				applogger.String("uri", req.RequestURI),
				applogger.String("remote_ip", c.RealIP()),
				applogger.Int("status", c.Response().Status),
				applogger.Int64("bytes", c.Response().Size),
				applogger.Duration("duration_ms", time.Since(start)),
			}
			if err != nil {
				l.Warn("http request", append(fields, applogger.Error(err))...)
				return nil
			}
			l.Info("http request", fields...)
			return nil
		}
	}
}

package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLogger tags every request with a generated id and logs one
// structured line per completed request.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			requestID := uuid.NewString()
			c.Response().Header().Set("X-Request-ID", requestID)

			err := next(c)

			entry := logrus.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"status":     c.Response().Status,
				"ip":         c.RealIP(),
				"duration":   time.Since(start).String(),
			})
			if err != nil {
				entry.WithError(err).Error("request failed")
			} else {
				entry.Info("request completed")
			}
			return err
		}
	}
}

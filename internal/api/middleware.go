package api

import (
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/gifasm/internal/logger"
)

// WithLogger makes log available to handlers through the request context.
func WithLogger(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context(), log)))
			return next(c)
		}
	}
}

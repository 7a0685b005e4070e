// internal/api/v2/middleware.go
package api

import (
	"time"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and durations per route.
func (c *Controller) MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			status := ctx.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			// Use the route template, not the raw URL, to bound label cardinality
			c.metrics.HTTP.RecordRequest(ctx.Request().Method, ctx.Path(), status, time.Since(start).Seconds())
			return err
		}
	}
}

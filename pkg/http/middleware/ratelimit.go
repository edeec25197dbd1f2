package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// KeyLimiter decides per client key.
type KeyLimiter interface {
	Allow(key string) bool
}

// RateLimit rejects requests over the limit with 429. onLimited may be nil.
func RateLimit(l KeyLimiter, onLimited func(c echo.Context)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if l.Allow(c.RealIP()) {
				return next(c)
			}
			if onLimited != nil {
				onLimited(c)
			}
			c.Response().Header().Set("Retry-After", "60")
			return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
				"status":  http.StatusTooManyRequests,
				"message": http.StatusText(http.StatusTooManyRequests),
			})
		}
	}
}

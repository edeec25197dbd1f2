package api

import (
	"context"
	"net/http"
	"time"

	xhttp "MarketIntel/pkg/http"
	applogger "MarketIntel/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler serves /api/health.
type HealthHandler struct {
	logger  *applogger.Logger
	version string
	checks  []HealthCheck
	timeout time.Duration
}

func NewHealthHandler(logger *applogger.Logger, version string, checks ...HealthCheck) *HealthHandler {
	if logger == nil {
		logger = applogger.Nop()
	}
	return &HealthHandler{logger: logger, version: version, checks: checks, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/health", h.Health)
}

// Health answers 200 when every dependency responds and 503 otherwise.
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	status := "healthy"
	deps := make(map[string]string, len(h.checks))
	for _, chk := range h.checks {
		if err := chk.Check(ctx); err != nil {
			h.logger.Warn("health check failed", applogger.String("dependency", chk.Name), applogger.Error(err))
			deps[chk.Name] = "disconnected"
			status = "unhealthy"
			continue
		}
		deps[chk.Name] = "connected"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	return xhttp.DataResponse(c, code, map[string]interface{}{
		"status":       status,
		"version":      h.version,
		"dependencies": deps,
	})
}

package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/betimvpp/NlwSpacetimeServer/internal/config"
	"github.com/betimvpp/NlwSpacetimeServer/internal/middleware"
	"github.com/betimvpp/NlwSpacetimeServer/internal/server"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// healthProbe checks one dependency.
type healthProbe struct {
	name  string
	check func(ctx context.Context) error
}

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	probes  []healthProbe
	timeout time.Duration
}

// NewHealthHandler probes the dependencies enabled in
// observability.health_checks.
func NewHealthHandler(s *server.Server) *HealthHandler {
	obs := s.Config.Observability

	var probes []healthProbe
	if obs.HealthCheckEnabled(config.HealthCheckDatabase) && s.DB != nil {
		probes = append(probes, healthProbe{
			name:  config.HealthCheckDatabase,
			check: func(ctx context.Context) error { return s.DB.Pool.Ping(ctx) },
		})
	}
	if obs.HealthCheckEnabled(config.HealthCheckRedis) && s.Redis != nil {
		probes = append(probes, healthProbe{
			name:  config.HealthCheckRedis,
			check: func(ctx context.Context) error { return s.Redis.Ping(ctx).Err() },
		})
	}

	return &HealthHandler{
		Handler: NewHandler(s),
		probes:  probes,
		timeout: obs.HealthChecks.Timeout,
	}
}

// CheckHealth answers 200 when every probe passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{}, len(h.probes))
	response := map[string]interface{}{
		"status":      statusHealthy,
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	for _, probe := range h.probes {
		result, ok := h.runProbe(c.Request().Context(), &logger, probe)
		checks[probe.name] = result
		if !ok {
			isHealthy = false
		}
	}

	if !isHealthy {
		response["status"] = statusUnhealthy

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordEvent(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		h.recordEvent(map[string]interface{}{
			"check_type":    "response",
			"operation":     "health_check",
			"error_type":    "json_response_error",
			"error_message": err.Error(),
		})

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) runProbe(parent context.Context, logger *zerolog.Logger, probe healthProbe) (map[string]interface{}, bool) {
	ctx, cancel := context.WithTimeout(parent, h.timeout)
	defer cancel()

	probeStart := time.Now()
	err := probe.check(ctx)
	elapsed := time.Since(probeStart)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", probe.name).
			Dur("response_time", elapsed).
			Msg("dependency health check failed")

		h.recordEvent(map[string]interface{}{
			"check_type":       probe.name,
			"operation":        "health_check",
			"error_type":       probe.name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return map[string]interface{}{
			"status":        statusUnhealthy,
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}, false
	}

	logger.Debug().
		Str("check", probe.name).
		Dur("response_time", elapsed).
		Msg("dependency health check passed")

	return map[string]interface{}{
		"status":        statusHealthy,
		"response_time": elapsed.String(),
	}, true
}

func (h *HealthHandler) recordEvent(params map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", params)
	}
}

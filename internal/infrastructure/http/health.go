package http

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const healthTimeout = 5 * time.Second

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheck checks one component. A failing critical check makes the service unhealthy,
// any other failure only degrades it.
type HealthCheck struct {
	Name     string
	Critical bool
	Check    func(ctx context.Context) error
}

// ComponentHealth represents health status of a single component
type ComponentHealth struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the JSON response for health check
type HealthResponse struct {
	Status     HealthStatus      `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentHealth `json:"components"`
}

// HealthHandler handles health check requests
type HealthHandler struct {
	checks []HealthCheck
	logger zerolog.Logger
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(checks []HealthCheck, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		logger: logger,
	}
}

// Handle serves GET /health
func (h *HealthHandler) Handle(ctx *fasthttp.RequestCtx) {
	checkCtx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()

	response := h.Check(checkCtx)

	statusCode := fasthttp.StatusOK
	if response.Status == HealthStatusUnhealthy {
		statusCode = fasthttp.StatusServiceUnavailable
	}

	logEvent := h.logger.Debug()
	switch response.Status {
	case HealthStatusUnhealthy:
		logEvent = h.logger.Warn()
	case HealthStatusDegraded:
		logEvent = h.logger.Info()
	}
	logEvent.
		Str("status", string(response.Status)).
		Int("status_code", statusCode).
		Interface("components", response.Components).
		Msg("Health check completed")

	body, err := json.Marshal(response)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode health check response")
		ctx.Error("internal error", fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(statusCode)
	ctx.SetBody(body)
}

// Check runs every health check and derives the overall status
func (h *HealthHandler) Check(ctx context.Context) HealthResponse {
	components := make([]ComponentHealth, 0, len(h.checks))
	status := HealthStatusHealthy

	for _, check := range h.checks {
		component := ComponentHealth{Name: check.Name, Healthy: true}

		if err := check.Check(ctx); err != nil {
			component.Healthy = false
			component.Message = err.Error()

			if check.Critical {
				status = HealthStatusUnhealthy
			} else if status == HealthStatusHealthy {
				status = HealthStatusDegraded
			}
		}

		components = append(components, component)
	}

	return HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Components: components,
	}
}

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Version is stamped at build time with -ldflags
var Version = "dev"

var timeNow = time.Now

// Pinger reports whether a dependency answers
type Pinger func(ctx context.Context) error

// HealthHandler reports liveness and dependency status
type HealthHandler struct {
	service string
	checks  map[string]Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{service: service, checks: checks}
}

// Health answers 200 when every dependency is reachable and 503 otherwise
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for name, ping := range h.checks {
		if err := ping(ctx); err != nil {
			deps[name] = "unavailable"
			status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	body := gin.H{
		"status":  status,
		"service": h.service,
		"version": Version,
		"time":    timeNow().UTC().Format(time.RFC3339),
	}
	if len(deps) > 0 {
		body["dependencies"] = deps
	}
	c.JSON(code, body)
}

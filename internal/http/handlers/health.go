package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadyFunc reports whether a backing dependency can serve traffic.
type ReadyFunc func(ctx context.Context) error

type HealthHandler struct {
	version string
	ready   ReadyFunc
}

// NewHealthHandler builds the liveness and readiness handler. A nil ready
// func makes readiness mirror liveness.
func NewHealthHandler(version string, ready ReadyFunc) *HealthHandler {
	return &HealthHandler{version: version, ready: ready}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.ready != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "version": h.version})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "version": h.version})
}

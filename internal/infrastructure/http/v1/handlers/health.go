package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lavka/internal/domain/profile"
)

// HealthHandler provides liveness and readiness endpoints.
type HealthHandler struct {
	profiles *profile.Service
	started  time.Time
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(profiles *profile.Service) *HealthHandler {
	return &HealthHandler{profiles: profiles, started: time.Now()}
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"profiles": len(h.profiles.List(c.Request.Context())),
	})
}

func (h *HealthHandler) Info(c *gin.Context) {
	lastSaved := ""
	if t := h.profiles.LastSaved(); !t.IsZero() {
		lastSaved = t.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, gin.H{
		"uptime_seconds": int(time.Since(h.started).Seconds()),
		"last_saved":     lastSaved,
	})
}

// Package handlers provides HTTP request handlers for API v1.
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lavka/internal/core/apperror"
	"lavka/internal/core/types"
)

// BaseHandler provides common handler helpers.
type BaseHandler struct{}

// NewBaseHandler creates a base handler.
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// Error records an error for the ErrorHandler middleware to render.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// BindJSON binds the request body, recording a validation error on failure.
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithCause(err))
		return false
	}
	return true
}

// ParseIntQuery parses an integer query parameter with a default.
func (h *BaseHandler) ParseIntQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// ParseDateQuery parses a required YYYY-MM-DD query parameter.
func (h *BaseHandler) ParseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		h.Error(c, apperror.NewValidation("missing date parameter").WithDetail("field", name))
		return time.Time{}, false
	}
	t, err := types.ParseDate(raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid date format, expected YYYY-MM-DD").
			WithDetail("field", name).
			WithDetail("value", raw))
		return time.Time{}, false
	}
	return t, true
}

// ProfileName returns the profile path parameter.
func (h *BaseHandler) ProfileName(c *gin.Context) string {
	return c.Param("profile")
}

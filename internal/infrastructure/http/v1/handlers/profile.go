package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lavka/internal/domain/profile"
	"lavka/internal/infrastructure/http/v1/dto"
)

// ProfileHandler handles profile collection endpoints.
type ProfileHandler struct {
	*BaseHandler
	profiles *profile.Service
}

// NewProfileHandler creates a profile handler.
func NewProfileHandler(base *BaseHandler, profiles *profile.Service) *ProfileHandler {
	return &ProfileHandler{BaseHandler: base, profiles: profiles}
}

func (h *ProfileHandler) List(c *gin.Context) {
	names := h.profiles.List(c.Request.Context())
	c.JSON(http.StatusOK, dto.ProfileListResponse{Profiles: names})
}

func (h *ProfileHandler) Create(c *gin.Context) {
	var req dto.CreateProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.profiles.Create(c.Request.Context(), req.Name); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"name": req.Name})
}

func (h *ProfileHandler) Get(c *gin.Context) {
	name := h.ProfileName(c)
	p, err := h.profiles.Get(c.Request.Context(), name)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProfile(name, p))
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profiles.Delete(c.Request.Context(), h.ProfileName(c)); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lavka/internal/core/types"
	"lavka/internal/domain/profile"
	"lavka/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	*BaseHandler
	profiles *profile.Service
}

// NewProductHandler creates a product handler.
func NewProductHandler(base *BaseHandler, profiles *profile.Service) *ProductHandler {
	return &ProductHandler{BaseHandler: base, profiles: profiles}
}

func (h *ProductHandler) List(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context(), h.ProfileName(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	out := make([]dto.ProductResponse, 0, len(p.Products))
	for _, product := range p.Products {
		out = append(out, dto.FromProduct(product))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.profiles.AddProduct(c.Request.Context(), h.ProfileName(c),
		req.Name, types.NewMoney(req.CostPrice), types.NewMoney(req.Profit))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromProduct(product))
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.profiles.EditProduct(c.Request.Context(), h.ProfileName(c),
		c.Param("name"), req.Name, types.NewMoney(req.CostPrice), types.NewMoney(req.Profit))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProduct(product))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	err := h.profiles.DeleteProduct(c.Request.Context(), h.ProfileName(c), c.Param("name"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

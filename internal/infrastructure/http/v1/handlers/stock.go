package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"lavka/internal/core/types"
	"lavka/internal/domain/inventory"
	"lavka/internal/domain/profile"
	"lavka/internal/domain/reports"
	"lavka/internal/infrastructure/http/v1/dto"
)

// StockHandler handles warehouse endpoints.
type StockHandler struct {
	*BaseHandler
	profiles  *profile.Service
	inventory *inventory.Service
	reports   *reports.Service
}

// NewStockHandler creates a stock handler.
func NewStockHandler(base *BaseHandler, profiles *profile.Service, inv *inventory.Service, rep *reports.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, profiles: profiles, inventory: inv, reports: rep}
}

func (h *StockHandler) List(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context(), h.ProfileName(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	names := make([]string, 0, len(p.Stock))
	for name := range p.Stock {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]dto.StockEntryResponse, 0, len(names))
	for _, name := range names {
		out = append(out, dto.FromStockEntry(name, p.Stock[name]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *StockHandler) Restock(c *gin.Context) {
	var req dto.RestockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.inventory.Restock(c.Request.Context(), h.ProfileName(c),
		req.Product, types.NewQuantity(req.Quantity), types.NewMoney(req.UnitPrice))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromStockEntry(req.Product, entry))
}

func (h *StockHandler) Adjust(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.inventory.Adjust(c.Request.Context(), h.ProfileName(c),
		req.Product, types.NewQuantity(req.Quantity), types.NewMoney(req.UnitPrice))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromStockEntry(req.Product, entry))
}

func (h *StockHandler) History(c *gin.Context) {
	events, err := h.reports.StockHistory(c.Request.Context(), h.ProfileName(c), c.Param("name"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromStockHistory(events))
}

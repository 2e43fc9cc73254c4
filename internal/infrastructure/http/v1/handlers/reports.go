package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lavka/internal/domain/reports"
	"lavka/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles analytics endpoints.
type ReportsHandler struct {
	*BaseHandler
	reports *reports.Service
}

// NewReportsHandler creates a reports handler.
func NewReportsHandler(base *BaseHandler, rep *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, reports: rep}
}

func (h *ReportsHandler) Sales(c *gin.Context) {
	from, ok := h.ParseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := h.ParseDateQuery(c, "to")
	if !ok {
		return
	}

	report, err := h.reports.SalesAnalysis(c.Request.Context(), h.ProfileName(c),
		from, to, c.Query("product"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSalesReport(report))
}

func (h *ReportsHandler) DailyStats(c *gin.Context) {
	rows, err := h.reports.DailyStats(c.Request.Context(), h.ProfileName(c))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromDailyStatsRows(rows))
}

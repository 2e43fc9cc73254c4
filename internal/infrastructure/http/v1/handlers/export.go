package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lavka/internal/infrastructure/export"
)

// ExportHandler streams a compressed dump of the whole database document.
type ExportHandler struct {
	*BaseHandler
	exporter *export.Exporter
}

// NewExportHandler creates an export handler.
func NewExportHandler(base *BaseHandler, exporter *export.Exporter) *ExportHandler {
	return &ExportHandler{BaseHandler: base, exporter: exporter}
}

func (h *ExportHandler) Dump(c *gin.Context) {
	data, err := h.exporter.Dump(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("profiles-%s.json.zst", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/zstd", data)
}

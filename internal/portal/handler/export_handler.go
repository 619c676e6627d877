package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shariin1057/vendor-valuate/internal/portal/service"
)

// ExportHandler 数据导出处理器
type ExportHandler struct {
	svc *service.ExportService
}

func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

func exportFilters(c *gin.Context) map[string]string {
	return map[string]string{
		"vendor_id":   c.Query("vendor_id"),
		"vendor_type": c.Query("vendor_type"),
		"period":      c.Query("period"),
		"department":  c.Query("department"),
	}
}

// ExportCSV 导出评估 CSV
// GET /api/v1/export/evaluations.csv
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	data, err := h.svc.ExportCSV(c.Request.Context(), exportFilters(c))
	if err != nil {
		InternalError(c, "export failed: "+err.Error())
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+service.CSVFilename+"\"")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportXLSX 导出评估 xlsx
// GET /api/v1/export/evaluations.xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	f, filename, err := h.svc.ExportXLSX(c.Request.Context(), exportFilters(c))
	if err != nil {
		InternalError(c, "export failed: "+err.Error())
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}

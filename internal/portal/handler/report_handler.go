package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shariin1057/vendor-valuate/internal/portal/service"
)

// ReportHandler 合并报告处理器
type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// ListReports 报告列表
// GET /api/v1/reports?period=xxx&vendor_type=xxx
func (h *ReportHandler) ListReports(c *gin.Context) {
	filters := map[string]string{
		"period":      c.Query("period"),
		"vendor_type": c.Query("vendor_type"),
		"vendor_id":   c.Query("vendor_id"),
	}

	items, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		InternalError(c, "failed to list reports: "+err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

// GetReport 单个供应商+周期的报告
// GET /api/v1/reports/:vendorId/:period
func (h *ReportHandler) GetReport(c *gin.Context) {
	report, err := h.svc.Get(c.Request.Context(), c.Param("vendorId"), c.Param("period"))
	if err != nil {
		if errors.Is(err, service.ErrReportNotReady) {
			NotFound(c, err.Error())
			return
		}
		InternalError(c, "failed to load report: "+err.Error())
		return
	}
	Success(c, report)
}

// DownloadReportPDF 下载报告 PDF
// GET /api/v1/reports/:vendorId/:period/pdf
func (h *ReportHandler) DownloadReportPDF(c *gin.Context) {
	data, filename, err := h.svc.RenderPDF(c.Request.Context(), c.Param("vendorId"), c.Param("period"))
	if err != nil {
		if errors.Is(err, service.ErrReportNotReady) {
			NotFound(c, err.Error())
			return
		}
		InternalError(c, "failed to render report: "+err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shariin1057/vendor-valuate/internal/portal/service"
)

// DashboardHandler 工作台视图处理器
type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// PendingVendors 当前评估人部门的待评估供应商
// GET /api/v1/dashboard/pending?period=xxx
func (h *DashboardHandler) PendingVendors(c *gin.Context) {
	period := c.Query("period")
	if period == "" {
		BadRequest(c, "period is required")
		return
	}

	vendors, err := h.svc.PendingVendors(c.Request.Context(), GetDepartment(c), period)
	if err != nil {
		InternalError(c, "failed to load pending vendors: "+err.Error())
		return
	}
	Success(c, gin.H{"items": vendors})
}

// Progress 各供应商周期内的部门完成度
// GET /api/v1/dashboard/progress?period=xxx&vendor_type=xxx
func (h *DashboardHandler) Progress(c *gin.Context) {
	filters := map[string]string{
		"period":      c.Query("period"),
		"vendor_type": c.Query("vendor_type"),
	}

	items, err := h.svc.Progress(c.Request.Context(), filters)
	if err != nil {
		InternalError(c, "failed to load progress: "+err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

// Analytics 跨供应商统计
// GET /api/v1/dashboard/analytics?period=xxx&vendor_type=xxx&department=xxx
func (h *DashboardHandler) Analytics(c *gin.Context) {
	filters := map[string]string{
		"period":      c.Query("period"),
		"vendor_type": c.Query("vendor_type"),
		"department":  c.Query("department"),
	}

	result, err := h.svc.Analytics(c.Request.Context(), filters)
	if err != nil {
		InternalError(c, "failed to compute analytics: "+err.Error())
		return
	}
	Success(c, result)
}

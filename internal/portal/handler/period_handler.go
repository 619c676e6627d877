package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
	"github.com/shariin1057/vendor-valuate/internal/portal/service"
)

// PeriodHandler 评估周期处理器
type PeriodHandler struct {
	svc *service.PeriodService
}

func NewPeriodHandler(svc *service.PeriodService) *PeriodHandler {
	return &PeriodHandler{svc: svc}
}

// ListPeriods 周期列表
// GET /api/v1/periods?status=open
func (h *PeriodHandler) ListPeriods(c *gin.Context) {
	var err error
	var items interface{}
	if c.Query("status") == "open" {
		items, err = h.svc.ListOpen(c.Request.Context())
	} else {
		items, err = h.svc.List(c.Request.Context())
	}
	if err != nil {
		InternalError(c, "failed to list periods: "+err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

// OpenPeriod 新开周期
// POST /api/v1/periods
func (h *PeriodHandler) OpenPeriod(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	period, err := h.svc.Open(c.Request.Context(), GetActor(c), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrPeriodExists) {
			Conflict(c, err.Error())
			return
		}
		InternalError(c, "failed to open period: "+err.Error())
		return
	}

	Created(c, period)
}

// TogglePeriod 切换周期开关
// POST /api/v1/periods/:id/toggle
func (h *PeriodHandler) TogglePeriod(c *gin.Context) {
	period, err := h.svc.Toggle(c.Request.Context(), GetActor(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "period not found")
			return
		}
		InternalError(c, "failed to toggle period: "+err.Error())
		return
	}
	Success(c, period)
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shariin1057/vendor-valuate/internal/portal/service"
)

// TemplateHandler 评估模板处理器
type TemplateHandler struct {
	svc *service.TemplateService
}

func NewTemplateHandler(svc *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{svc: svc}
}

// ListTemplates 模板列表
// GET /api/v1/templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		InternalError(c, "failed to list templates: "+err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

// GetTemplate 按供应商类型解析模板
// GET /api/v1/templates/:vendorType
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	tmpl, err := h.svc.ResolveByType(c.Request.Context(), c.Param("vendorType"))
	if err != nil {
		if errors.Is(err, service.ErrNoTemplate) {
			NotFound(c, err.Error())
			return
		}
		InternalError(c, "failed to resolve template: "+err.Error())
		return
	}
	Success(c, tmpl)
}

// SaveTemplate 保存模板（按供应商类型覆盖）
// PUT /api/v1/templates
func (h *TemplateHandler) SaveTemplate(c *gin.Context) {
	var req service.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := service.ValidateStructure(req.Structure); err != nil {
		BadRequest(c, err.Error())
		return
	}

	tmpl, err := h.svc.Save(c.Request.Context(), GetActor(c), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidVendorType) {
			BadRequest(c, err.Error())
			return
		}
		InternalError(c, "failed to save template: "+err.Error())
		return
	}

	Success(c, tmpl)
}

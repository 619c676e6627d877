package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shariin1057/vendor-valuate/internal/portal/service"
)

// BrandingHandler 品牌配置处理器
type BrandingHandler struct {
	svc *service.BrandingService
}

func NewBrandingHandler(svc *service.BrandingService) *BrandingHandler {
	return &BrandingHandler{svc: svc}
}

// GetBranding 当前品牌配置
// GET /api/v1/branding
func (h *BrandingHandler) GetBranding(c *gin.Context) {
	branding, err := h.svc.Get(c.Request.Context())
	if err != nil {
		InternalError(c, "failed to load branding: "+err.Error())
		return
	}
	Success(c, branding)
}

// SaveBranding 更新品牌配置
// PUT /api/v1/branding
func (h *BrandingHandler) SaveBranding(c *gin.Context) {
	var req service.SaveBrandingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	branding, err := h.svc.Save(c.Request.Context(), GetActor(c), &req)
	if err != nil {
		InternalError(c, "failed to save branding: "+err.Error())
		return
	}
	Success(c, branding)
}

package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
	"github.com/shariin1057/vendor-valuate/internal/portal/service"
)

// VendorHandler 供应商处理器
type VendorHandler struct {
	svc *service.VendorService
}

func NewVendorHandler(svc *service.VendorService) *VendorHandler {
	return &VendorHandler{svc: svc}
}

// ListVendors 供应商列表
// GET /api/v1/vendors?status=xxx&vendor_type=xxx
func (h *VendorHandler) ListVendors(c *gin.Context) {
	filters := map[string]string{
		"status":      c.Query("status"),
		"vendor_type": c.Query("vendor_type"),
	}

	items, err := h.svc.List(c.Request.Context(), filters)
	if err != nil {
		InternalError(c, "failed to list vendors: "+err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

// GetVendor 供应商详情
// GET /api/v1/vendors/:id
func (h *VendorHandler) GetVendor(c *gin.Context) {
	vendor, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		NotFound(c, "vendor not found")
		return
	}
	Success(c, vendor)
}

// CreateVendor 创建供应商
// POST /api/v1/vendors
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	var req service.SaveVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	vendor, err := h.svc.Create(c.Request.Context(), GetActor(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVendorNameTaken):
			Conflict(c, err.Error())
		case errors.Is(err, service.ErrInvalidVendorType):
			BadRequest(c, err.Error())
		default:
			InternalError(c, "failed to create vendor: "+err.Error())
		}
		return
	}

	Created(c, vendor)
}

// UpdateVendor 更新供应商
// PUT /api/v1/vendors/:id
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	var req service.SaveVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	vendor, err := h.svc.Update(c.Request.Context(), GetActor(c), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "vendor not found")
		case errors.Is(err, service.ErrVendorNameTaken):
			Conflict(c, err.Error())
		case errors.Is(err, service.ErrInvalidVendorType):
			BadRequest(c, err.Error())
		default:
			InternalError(c, "failed to update vendor: "+err.Error())
		}
		return
	}

	Success(c, vendor)
}

// ToggleVendor 切换供应商状态
// POST /api/v1/vendors/:id/toggle
func (h *VendorHandler) ToggleVendor(c *gin.Context) {
	vendor, err := h.svc.ToggleStatus(c.Request.Context(), GetActor(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "vendor not found")
			return
		}
		InternalError(c, "failed to toggle vendor: "+err.Error())
		return
	}
	Success(c, vendor)
}

// DeleteVendor 删除供应商
// DELETE /api/v1/vendors/:id
func (h *VendorHandler) DeleteVendor(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), GetActor(c), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "vendor not found")
			return
		}
		InternalError(c, "failed to delete vendor: "+err.Error())
		return
	}
	Success(c, nil)
}

// BulkUpsertVendors 批量导入供应商
// POST /api/v1/vendors/bulk
func (h *VendorHandler) BulkUpsertVendors(c *gin.Context) {
	var req struct {
		Vendors []service.SaveVendorRequest `json:"vendors" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	count, err := h.svc.BulkUpsert(c.Request.Context(), GetActor(c), req.Vendors)
	if err != nil {
		if errors.Is(err, service.ErrInvalidVendorType) {
			BadRequest(c, err.Error())
			return
		}
		InternalError(c, "failed to import vendors: "+err.Error())
		return
	}

	Success(c, gin.H{"upserted": count})
}

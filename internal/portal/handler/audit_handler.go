package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
)

// AuditReader 审计日志读取与清空
type AuditReader interface {
	FindAll(ctx context.Context, page, pageSize int) ([]entity.AuditLog, int64, error)
	Clear(ctx context.Context) error
}

// AuditHandler 审计日志处理器
type AuditHandler struct {
	repo AuditReader
}

func NewAuditHandler(repo AuditReader) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// ListAuditLogs 审计日志列表，最新在前
// GET /api/v1/audit-logs?page=1&page_size=20
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	page, pageSize := GetPagination(c)

	items, total, err := h.repo.FindAll(c.Request.Context(), page, pageSize)
	if err != nil {
		InternalError(c, "failed to list audit logs: "+err.Error())
		return
	}

	Success(c, ListResponse{
		Items: items,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      int(total),
			TotalPages: totalPages(total, pageSize),
		},
	})
}

// ClearAuditLogs 清空审计日志
// DELETE /api/v1/audit-logs
func (h *AuditHandler) ClearAuditLogs(c *gin.Context) {
	if err := h.repo.Clear(c.Request.Context()); err != nil {
		InternalError(c, "failed to clear audit logs: "+err.Error())
		return
	}
	Success(c, nil)
}

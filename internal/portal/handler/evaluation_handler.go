package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/service"
)

// EvaluationHandler 评估处理器
type EvaluationHandler struct {
	svc *service.EvaluationService
}

func NewEvaluationHandler(svc *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{svc: svc}
}

// ListEvaluations 评估列表
// GET /api/v1/evaluations?vendor_id=&vendor_type=&period=&department=&evaluator_id=&page=1&page_size=20
func (h *EvaluationHandler) ListEvaluations(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"vendor_id":    c.Query("vendor_id"),
		"vendor_type":  c.Query("vendor_type"),
		"period":       c.Query("period"),
		"department":   c.Query("department"),
		"evaluator_id": c.Query("evaluator_id"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, "failed to list evaluations: "+err.Error())
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

// GetEvaluation 评估详情
// GET /api/v1/evaluations/:id
func (h *EvaluationHandler) GetEvaluation(c *gin.Context) {
	eval, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		NotFound(c, "evaluation not found")
		return
	}
	Success(c, eval)
}

// MyEvaluations 当前评估人的提交历史
// GET /api/v1/evaluations/mine
func (h *EvaluationHandler) MyEvaluations(c *gin.Context) {
	items, err := h.svc.GetEvaluatorHistory(c.Request.Context(), GetUserID(c))
	if err != nil {
		InternalError(c, "failed to list evaluations: "+err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

// PreviewScore 预览候选评分的部门得分，不落库
// POST /api/v1/evaluations/preview
func (h *EvaluationHandler) PreviewScore(c *gin.Context) {
	var req service.SubmitEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	score, err := h.svc.Preview(c.Request.Context(), GetDepartment(c), &req)
	if err != nil {
		h.writeSubmitError(c, err)
		return
	}
	Success(c, gin.H{"score": score})
}

// SubmitEvaluation 提交部门评估
// POST /api/v1/evaluations
func (h *EvaluationHandler) SubmitEvaluation(c *gin.Context) {
	var req service.SubmitEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	evaluator := &entity.User{
		ID:          GetUserID(c),
		DisplayName: GetUserName(c),
		Department:  GetDepartment(c),
	}

	result, err := h.svc.Submit(c.Request.Context(), GetActor(c), evaluator, &req)
	if err != nil {
		h.writeSubmitError(c, err)
		return
	}

	Created(c, result)
}

// writeSubmitError 把提交管线的失败映射到响应状态
func (h *EvaluationHandler) writeSubmitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVendorNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrNoTemplate):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrVendorInactive),
		errors.Is(err, service.ErrPeriodNotOpen),
		errors.Is(err, service.ErrDeptNotRequired):
		Forbidden(c, err.Error())
	case errors.Is(err, service.ErrUnratedCriteria),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrJustificationNeeded),
		errors.Is(err, service.ErrUnknownCriteria):
		BadRequest(c, err.Error())
	default:
		InternalError(c, "failed to process evaluation: "+err.Error())
	}
}

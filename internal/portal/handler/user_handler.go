package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
	"github.com/shariin1057/vendor-valuate/internal/portal/service"
)

// UserHandler 用户管理处理器
type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ListUsers 用户列表
// GET /api/v1/users?role=xxx&department=xxx&page=1&page_size=20
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, pageSize := GetPagination(c)
	filters := map[string]string{
		"role":       c.Query("role"),
		"department": c.Query("department"),
	}

	items, total, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		InternalError(c, "failed to list users: "+err.Error())
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

// GetUser 用户详情
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		NotFound(c, "user not found")
		return
	}
	Success(c, user)
}

// CreateUser 创建用户
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.svc.Create(c.Request.Context(), GetActor(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			Conflict(c, err.Error())
		case errors.Is(err, service.ErrInvalidRole):
			BadRequest(c, err.Error())
		default:
			InternalError(c, "failed to create user: "+err.Error())
		}
		return
	}

	Created(c, user)
}

// UpdateUser 更新用户
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.svc.Update(c.Request.Context(), GetActor(c), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "user not found")
		case errors.Is(err, service.ErrEmailTaken):
			Conflict(c, err.Error())
		case errors.Is(err, service.ErrInvalidRole):
			BadRequest(c, err.Error())
		default:
			InternalError(c, "failed to update user: "+err.Error())
		}
		return
	}

	Success(c, user)
}

// ToggleUser 启用/停用用户
// POST /api/v1/users/:id/toggle
func (h *UserHandler) ToggleUser(c *gin.Context) {
	user, err := h.svc.ToggleActive(c.Request.Context(), GetActor(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "user not found")
			return
		}
		InternalError(c, "failed to toggle user: "+err.Error())
		return
	}
	Success(c, user)
}

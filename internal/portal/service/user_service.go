package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
)

// ErrEmailTaken 邮箱已被占用
var ErrEmailTaken = errors.New("a user with this email already exists")

// ErrInvalidRole 角色非法
var ErrInvalidRole = errors.New("role must be admin or evaluator")

// UserService 用户管理（仅管理员）
type UserService struct {
	repo  *repository.UserRepository
	audit *repository.AuditLogRepository
}

func NewUserService(repo *repository.UserRepository, audit *repository.AuditLogRepository) *UserService {
	return &UserService{repo: repo, audit: audit}
}

func (s *UserService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.User, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateUserRequest 创建/更新用户请求
type CreateUserRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required"`
	Role       string `json:"role" binding:"required"`
	Department string `json:"department"`
}

func validateRole(role string) error {
	if role != entity.RoleAdmin && role != entity.RoleEvaluator {
		return ErrInvalidRole
	}
	return nil
}

func (s *UserService) Create(ctx context.Context, actor entity.Actor, req *CreateUserRequest) (*entity.User, error) {
	if err := validateRole(req.Role); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user := &entity.User{
		ID:          uuid.New().String()[:32],
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		DisplayName: strings.TrimSpace(req.Name),
		Role:        req.Role,
		Department:  strings.TrimSpace(req.Department),
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, entity.AuditActionCreate, "User",
		fmt.Sprintf("Created user: %s", user.DisplayName))
	return user, nil
}

func (s *UserService) Update(ctx context.Context, actor entity.Actor, id string, req *CreateUserRequest) (*entity.User, error) {
	if err := validateRole(req.Role); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing.ID != user.ID {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.DisplayName = strings.TrimSpace(req.Name)
	user.Role = req.Role
	user.Department = strings.TrimSpace(req.Department)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, entity.AuditActionUpdate, "User",
		fmt.Sprintf("Updated user: %s", user.DisplayName))
	return user, nil
}

// ToggleActive 启用/停用用户
func (s *UserService) ToggleActive(ctx context.Context, actor entity.Actor, id string) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = !user.IsActive
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	state := "inactive"
	if user.IsActive {
		state = "active"
	}
	s.audit.Record(ctx, actor, entity.AuditActionUpdate, "User",
		fmt.Sprintf("Set %s to %s", user.DisplayName, state))
	return user, nil
}

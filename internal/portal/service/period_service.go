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

// ErrPeriodExists 周期名称已存在
var ErrPeriodExists = errors.New("a period with this name already exists")

// PeriodService 评估周期管理
type PeriodService struct {
	repo  *repository.PeriodRepository
	audit *repository.AuditLogRepository
}

func NewPeriodService(repo *repository.PeriodRepository, audit *repository.AuditLogRepository) *PeriodService {
	return &PeriodService{repo: repo, audit: audit}
}

func (s *PeriodService) List(ctx context.Context) ([]entity.Period, error) {
	return s.repo.FindAll(ctx)
}

func (s *PeriodService) ListOpen(ctx context.Context) ([]entity.Period, error) {
	return s.repo.FindOpen(ctx)
}

// Open 新开一个评估周期，初始状态 Open
func (s *PeriodService) Open(ctx context.Context, actor entity.Actor, name string) (*entity.Period, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("period name is required")
	}
	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, ErrPeriodExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	period := &entity.Period{
		ID:     uuid.New().String()[:32],
		Name:   name,
		Status: entity.PeriodStatusOpen,
	}
	if err := s.repo.Create(ctx, period); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, entity.AuditActionCreate, "Period",
		fmt.Sprintf("Opened new period: %s", period.Name))
	return period, nil
}

// Toggle 在 Open / Locked 之间切换；锁定后不再接受提交
func (s *PeriodService) Toggle(ctx context.Context, actor entity.Actor, id string) (*entity.Period, error) {
	period, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if period.Status == entity.PeriodStatusOpen {
		period.Status = entity.PeriodStatusLocked
	} else {
		period.Status = entity.PeriodStatusOpen
	}
	if err := s.repo.Update(ctx, period); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, entity.AuditActionUpdate, "Period",
		fmt.Sprintf("Toggled period %s to %s", period.Name, period.Status))
	return period, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
)

var (
	ErrNoTemplate        = errors.New("no evaluation template found for vendor type")
	ErrDeptNotRequired   = errors.New("department is not required for this vendor type")
	ErrInvalidWeights    = errors.New("template weights must sum to 100")
	ErrInvalidVendorType = errors.New("unknown vendor type")
)

// weightTolerance 权重求和的浮点容差
const weightTolerance = 0.01

// TemplateService 评估模板服务
type TemplateService struct {
	repo  *repository.TemplateRepository
	audit *repository.AuditLogRepository
}

func NewTemplateService(repo *repository.TemplateRepository, audit *repository.AuditLogRepository) *TemplateService {
	return &TemplateService{repo: repo, audit: audit}
}

// List 获取全部模板
func (s *TemplateService) List(ctx context.Context) ([]entity.EvaluationTemplate, error) {
	return s.repo.FindAll(ctx)
}

// ResolveByType 按供应商类型解析模板
func (s *TemplateService) ResolveByType(ctx context.Context, vendorType string) (*entity.EvaluationTemplate, error) {
	tmpl, err := s.repo.FindByVendorType(ctx, vendorType)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoTemplate, vendorType)
		}
		return nil, err
	}
	return tmpl, nil
}

// SectionFor 在模板结构中查找某部门的评分段（部门名不区分大小写）
func SectionFor(tmpl *entity.EvaluationTemplate, department string) (*entity.TemplateDepartment, error) {
	for i := range tmpl.Structure {
		if strings.EqualFold(tmpl.Structure[i].DepartmentName, department) {
			return &tmpl.Structure[i], nil
		}
	}
	return nil, fmt.Errorf("%w: department %q, vendor type %s", ErrDeptNotRequired, department, tmpl.VendorType)
}

// SaveTemplateRequest 保存模板请求
type SaveTemplateRequest struct {
	VendorType string                   `json:"vendor_type" binding:"required"`
	Structure  entity.TemplateStructure `json:"structure" binding:"required"`
}

// Save 校验并保存模板（按供应商类型覆盖）
func (s *TemplateService) Save(ctx context.Context, actor entity.Actor, req *SaveTemplateRequest) (*entity.EvaluationTemplate, error) {
	if !entity.IsValidVendorType(req.VendorType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVendorType, req.VendorType)
	}
	if err := ValidateStructure(req.Structure); err != nil {
		return nil, err
	}

	tmpl := &entity.EvaluationTemplate{
		ID:         uuid.New().String()[:32],
		VendorType: req.VendorType,
		Structure:  req.Structure,
		UpdatedBy:  actor.ID,
	}

	if err := s.repo.Upsert(ctx, tmpl); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, entity.AuditActionUpdate, "Template",
		fmt.Sprintf("Updated template for %s", tmpl.VendorType))
	return tmpl, nil
}

// ValidateStructure 校验模板结构：部门权重合计 100，各部门内评分项权重合计 100，
// 部门名与评分项ID不得重复。
func ValidateStructure(structure entity.TemplateStructure) error {
	if len(structure) == 0 {
		return errors.New("template structure must contain at least one department")
	}

	seenDepts := make(map[string]bool, len(structure))
	seenCriteria := make(map[string]bool)
	var deptSum float64

	for _, dept := range structure {
		name := strings.ToLower(strings.TrimSpace(dept.DepartmentName))
		if name == "" {
			return errors.New("department name must not be empty")
		}
		if seenDepts[name] {
			return fmt.Errorf("duplicate department in template: %s", dept.DepartmentName)
		}
		seenDepts[name] = true
		deptSum += dept.DepartmentWeight

		if len(dept.Criteria) == 0 {
			return fmt.Errorf("department %s must contain at least one criterion", dept.DepartmentName)
		}

		var critSum float64
		for _, crit := range dept.Criteria {
			if crit.CriteriaID == "" || crit.CriteriaName == "" {
				return fmt.Errorf("department %s contains a criterion without id or name", dept.DepartmentName)
			}
			if seenCriteria[crit.CriteriaID] {
				return fmt.Errorf("duplicate criterion id in template: %s", crit.CriteriaID)
			}
			seenCriteria[crit.CriteriaID] = true
			critSum += crit.Weightage
		}
		if math.Abs(critSum-100) > weightTolerance {
			return fmt.Errorf("%w: criteria weights in %s sum to %.2f", ErrInvalidWeights, dept.DepartmentName, critSum)
		}
	}

	if math.Abs(deptSum-100) > weightTolerance {
		return fmt.Errorf("%w: department weights sum to %.2f", ErrInvalidWeights, deptSum)
	}
	return nil
}

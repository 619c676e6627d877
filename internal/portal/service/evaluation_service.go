package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
)

var (
	ErrVendorNotFound = errors.New("vendor not found")
	ErrVendorInactive = errors.New("vendor is not active")
	ErrPeriodNotOpen  = errors.New("period is not open for submissions")
)

// EvaluationService 评估提交服务
type EvaluationService struct {
	repo          *repository.EvaluationRepository
	vendorRepo    *repository.VendorRepository
	periodRepo    *repository.PeriodRepository
	templateSvc   *TemplateService
	consolidation *ConsolidationService
	audit         *repository.AuditLogRepository
}

func NewEvaluationService(
	repo *repository.EvaluationRepository,
	vendorRepo *repository.VendorRepository,
	periodRepo *repository.PeriodRepository,
	templateSvc *TemplateService,
	consolidation *ConsolidationService,
	audit *repository.AuditLogRepository,
) *EvaluationService {
	return &EvaluationService{
		repo:          repo,
		vendorRepo:    vendorRepo,
		periodRepo:    periodRepo,
		templateSvc:   templateSvc,
		consolidation: consolidation,
		audit:         audit,
	}
}

// CriterionScoreInput 单项评分输入
type CriterionScoreInput struct {
	CriteriaID string `json:"criteria_id" binding:"required"`
	Score      int    `json:"score" binding:"required"`
	Comment    string `json:"comment"`
}

// SubmitEvaluationRequest 提交评估请求
type SubmitEvaluationRequest struct {
	VendorID    string                `json:"vendor_id" binding:"required"`
	Period      string                `json:"period" binding:"required"`
	Scores      []CriterionScoreInput `json:"scores" binding:"required"`
	EvidenceURL string                `json:"evidence_url"`
}

// SubmitResult 提交结果；周期内全部门齐全时携带新生成的合并报告
type SubmitResult struct {
	Evaluation *entity.Evaluation         `json:"evaluation"`
	Report     *entity.ConsolidatedReport `json:"report,omitempty"`
}

// List 获取评估列表
func (s *EvaluationService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Evaluation, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

// Get 获取评估详情
func (s *EvaluationService) Get(ctx context.Context, id string) (*entity.Evaluation, error) {
	return s.repo.FindByID(ctx, id)
}

// GetEvaluatorHistory 获取评估人的提交历史
func (s *EvaluationService) GetEvaluatorHistory(ctx context.Context, evaluatorID string) ([]entity.Evaluation, error) {
	return s.repo.FindByEvaluator(ctx, evaluatorID)
}

// Preview 计算候选评分集的部门得分，不落库
func (s *EvaluationService) Preview(ctx context.Context, department string, req *SubmitEvaluationRequest) (float64, error) {
	_, section, _, err := s.resolveSection(ctx, department, req.VendorID)
	if err != nil {
		return 0, err
	}
	ratings, _ := splitScores(req.Scores)
	return ScoreSection(section, ratings), nil
}

// Submit 校验并持久化一次部门评估（替换同三元组旧记录），随后同步触发合并引擎。
// 任一校验失败都不写入。
func (s *EvaluationService) Submit(ctx context.Context, actor entity.Actor, evaluator *entity.User, req *SubmitEvaluationRequest) (*SubmitResult, error) {
	vendor, section, _, err := s.resolveSection(ctx, evaluator.Department, req.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor.Status != entity.VendorStatusActive {
		return nil, fmt.Errorf("%w: %s", ErrVendorInactive, vendor.VendorName)
	}

	period, err := s.periodRepo.FindByName(ctx, req.Period)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPeriodNotOpen, req.Period)
		}
		return nil, err
	}
	if period.Status != entity.PeriodStatusOpen {
		return nil, fmt.Errorf("%w: %s", ErrPeriodNotOpen, period.Name)
	}

	ratings, comments := splitScores(req.Scores)
	if err := ValidateRatings(section, ratings, comments); err != nil {
		return nil, err
	}

	scores := make(entity.ScoreList, 0, len(section.Criteria))
	for _, crit := range section.Criteria {
		scores = append(scores, entity.CriterionScore{
			CriteriaID: crit.CriteriaID,
			Score:      ratings[crit.CriteriaID],
			Comment:    comments[crit.CriteriaID],
		})
	}

	eval := &entity.Evaluation{
		ID:            uuid.New().String()[:32],
		VendorID:      vendor.ID,
		VendorName:    vendor.VendorName,
		VendorType:    vendor.VendorType,
		Period:        period.Name,
		Department:    section.DepartmentName,
		EvaluatorID:   evaluator.ID,
		EvaluatorName: evaluator.DisplayName,
		Status:        entity.EvaluationStatusSubmitted,
		Scores:        scores,
		OverallScore:  ScoreSection(section, ratings),
		EvidenceURL:   req.EvidenceURL,
		SubmittedAt:   time.Now(),
	}

	if err := s.repo.Replace(ctx, eval); err != nil {
		return nil, fmt.Errorf("persist evaluation: %w", err)
	}

	s.audit.Record(ctx, actor, entity.AuditActionSubmit, "Evaluation",
		fmt.Sprintf("Submitted evaluation for %s", vendor.VendorName))

	report, err := s.consolidation.Run(ctx, actor, vendor, period.Name)
	if err != nil {
		return nil, fmt.Errorf("consolidate: %w", err)
	}

	return &SubmitResult{Evaluation: eval, Report: report}, nil
}

// resolveSection 解析供应商及其模板中评估人部门的评分段
func (s *EvaluationService) resolveSection(ctx context.Context, department, vendorID string) (*entity.Vendor, *entity.TemplateDepartment, *entity.EvaluationTemplate, error) {
	vendor, err := s.vendorRepo.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, nil, ErrVendorNotFound
		}
		return nil, nil, nil, err
	}

	tmpl, err := s.templateSvc.ResolveByType(ctx, vendor.VendorType)
	if err != nil {
		return nil, nil, nil, err
	}

	section, err := SectionFor(tmpl, department)
	if err != nil {
		return nil, nil, nil, err
	}
	return vendor, section, tmpl, nil
}

func splitScores(inputs []CriterionScoreInput) (map[string]int, map[string]string) {
	ratings := make(map[string]int, len(inputs))
	comments := make(map[string]string, len(inputs))
	for _, in := range inputs {
		ratings[in.CriteriaID] = in.Score
		if in.Comment != "" {
			comments[in.CriteriaID] = in.Comment
		}
	}
	return ratings, comments
}

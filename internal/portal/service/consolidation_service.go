package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
)

// ConsolidationService 合并引擎：判定某供应商+周期是否已齐全，
// 齐全时从当前评估快照重算最终加权报告并整体覆盖写入。
type ConsolidationService struct {
	evalRepo     *repository.EvaluationRepository
	templateRepo *repository.TemplateRepository
	reportRepo   *repository.ReportRepository
	audit        *repository.AuditLogRepository
}

func NewConsolidationService(
	evalRepo *repository.EvaluationRepository,
	templateRepo *repository.TemplateRepository,
	reportRepo *repository.ReportRepository,
	audit *repository.AuditLogRepository,
) *ConsolidationService {
	return &ConsolidationService{
		evalRepo:     evalRepo,
		templateRepo: templateRepo,
		reportRepo:   reportRepo,
		audit:        audit,
	}
}

// Run 对 (vendor, period) 重算合并状态。模板要求的每个部门都有评估时生成并
// 持久化报告，返回该报告；未齐全时返回 (nil, nil)。每次评估提交后同步调用，
// 报告始终反映全部门评估的最新快照。
func (s *ConsolidationService) Run(ctx context.Context, actor entity.Actor, vendor *entity.Vendor, period string) (*entity.ConsolidatedReport, error) {
	evals, err := s.evalRepo.FindByVendorPeriod(ctx, vendor.ID, period)
	if err != nil {
		return nil, fmt.Errorf("load evaluations: %w", err)
	}

	tmpl, err := s.templateRepo.FindByVendorType(ctx, vendor.VendorType)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}

	byDept := make(map[string]*entity.Evaluation, len(evals))
	for i := range evals {
		byDept[evals[i].Department] = &evals[i]
	}

	// Completion predicate: every template department has a submission.
	// Departments outside the template are ignored both here and below.
	for _, name := range tmpl.DepartmentNames() {
		if _, ok := byDept[name]; !ok {
			return nil, nil
		}
	}

	report := buildReport(vendor, period, tmpl, byDept)
	if err := s.reportRepo.Upsert(ctx, report); err != nil {
		return nil, fmt.Errorf("persist report: %w", err)
	}

	s.audit.Record(ctx, actor, entity.AuditActionCreate, "Report",
		fmt.Sprintf("Generated consolidated report for %s", vendor.VendorName))
	return report, nil
}

// buildReport 从评估快照构建报告，确定性地按模板结构顺序迭代
func buildReport(vendor *entity.Vendor, period string, tmpl *entity.EvaluationTemplate, byDept map[string]*entity.Evaluation) *entity.ConsolidatedReport {
	var finalScore float64
	breakdown := make(entity.BreakdownList, 0, len(tmpl.Structure))
	details := make(entity.CriterionDetailList, 0)

	for _, dept := range tmpl.Structure {
		eval := byDept[dept.DepartmentName]
		finalScore += eval.OverallScore * dept.DepartmentWeight / 100

		breakdown = append(breakdown, entity.DepartmentBreakdown{
			DepartmentName: dept.DepartmentName,
			Weight:         dept.DepartmentWeight,
			Score:          eval.OverallScore,
			EvaluatorName:  eval.EvaluatorName,
			SubmittedAt:    eval.SubmittedAt,
		})

		critDefs := make(map[string]*entity.TemplateCriteria, len(dept.Criteria))
		for i := range dept.Criteria {
			critDefs[dept.Criteria[i].CriteriaID] = &dept.Criteria[i]
		}
		for _, score := range eval.Scores {
			def, ok := critDefs[score.CriteriaID]
			if !ok {
				continue
			}
			details = append(details, entity.CriterionDetail{
				Department: dept.DepartmentName,
				Criteria:   def.CriteriaName,
				Score:      score.Score,
				Weight:     def.Weightage,
				Comment:    score.Comment,
			})
		}
	}

	return &entity.ConsolidatedReport{
		ID:                 uuid.New().String()[:32],
		VendorID:           vendor.ID,
		VendorName:         vendor.VendorName,
		VendorType:         vendor.VendorType,
		Period:             period,
		FinalWeightedScore: finalScore,
		DeptBreakdown:      breakdown,
		DetailedCriteria:   details,
		GeneratedAt:        time.Now(),
	}
}

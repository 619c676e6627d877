package service

import (
	"context"
	"sort"
	"strings"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
)

// DashboardService 工作队列与汇总视图，纯读投影
type DashboardService struct {
	vendorRepo   *repository.VendorRepository
	templateRepo *repository.TemplateRepository
	evalRepo     *repository.EvaluationRepository
}

func NewDashboardService(
	vendorRepo *repository.VendorRepository,
	templateRepo *repository.TemplateRepository,
	evalRepo *repository.EvaluationRepository,
) *DashboardService {
	return &DashboardService{
		vendorRepo:   vendorRepo,
		templateRepo: templateRepo,
		evalRepo:     evalRepo,
	}
}

// PendingVendors 某部门在某周期的待评估供应商：活跃、模板要求该部门、
// 且该部门尚未对其提交
func (s *DashboardService) PendingVendors(ctx context.Context, department, period string) ([]entity.Vendor, error) {
	vendors, err := s.vendorRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	templates, err := s.templateRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	byType := make(map[string]*entity.EvaluationTemplate, len(templates))
	for i := range templates {
		byType[templates[i].VendorType] = &templates[i]
	}

	pending := make([]entity.Vendor, 0, len(vendors))
	for _, vendor := range vendors {
		tmpl, ok := byType[vendor.VendorType]
		if !ok {
			continue
		}
		section, err := SectionFor(tmpl, department)
		if err != nil {
			continue
		}
		// 用模板里的规范部门名查询，提交时存储的就是它
		submitted, err := s.evalRepo.ExistsForDepartment(ctx, vendor.ID, period, section.DepartmentName)
		if err != nil {
			return nil, err
		}
		if !submitted {
			pending = append(pending, vendor)
		}
	}
	return pending, nil
}

// DepartmentProgress 某供应商+周期内单个部门的进度
type DepartmentProgress struct {
	DepartmentName string  `json:"department_name"`
	Weight         float64 `json:"weight"`
	Done           bool    `json:"done"`
	Score          float64 `json:"score"`
}

// VendorPeriodProgress 某供应商+周期的合并进度
type VendorPeriodProgress struct {
	VendorID    string               `json:"vendor_id"`
	VendorName  string               `json:"vendor_name"`
	VendorType  string               `json:"vendor_type"`
	Period      string               `json:"period"`
	Completed   bool                 `json:"completed"`
	FinalScore  float64              `json:"final_score"` // running weighted score over submitted departments
	Departments []DepartmentProgress `json:"departments"`
}

// Progress 按 (vendor, period) 分组的合并进度列表
func (s *DashboardService) Progress(ctx context.Context, filters map[string]string) ([]VendorPeriodProgress, error) {
	evals, err := s.evalRepo.FindFiltered(ctx, filters)
	if err != nil {
		return nil, err
	}

	vendors, err := s.vendorRepo.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	vendorByID := make(map[string]*entity.Vendor, len(vendors))
	for i := range vendors {
		vendorByID[vendors[i].ID] = &vendors[i]
	}

	templates, err := s.templateRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	tmplByType := make(map[string]*entity.EvaluationTemplate, len(templates))
	for i := range templates {
		tmplByType[templates[i].VendorType] = &templates[i]
	}

	type groupKey struct{ vendorID, period string }
	grouped := make(map[groupKey][]entity.Evaluation)
	for _, e := range evals {
		key := groupKey{e.VendorID, e.Period}
		grouped[key] = append(grouped[key], e)
	}

	result := make([]VendorPeriodProgress, 0, len(grouped))
	for key, subs := range grouped {
		vendor, ok := vendorByID[key.vendorID]
		if !ok {
			continue
		}
		tmpl, ok := tmplByType[vendor.VendorType]
		if !ok {
			continue
		}

		byDept := make(map[string]*entity.Evaluation, len(subs))
		for i := range subs {
			byDept[subs[i].Department] = &subs[i]
		}

		progress := VendorPeriodProgress{
			VendorID:   vendor.ID,
			VendorName: vendor.VendorName,
			VendorType: vendor.VendorType,
			Period:     key.period,
			Completed:  true,
		}
		for _, dept := range tmpl.Structure {
			dp := DepartmentProgress{
				DepartmentName: dept.DepartmentName,
				Weight:         dept.DepartmentWeight,
			}
			if sub, ok := byDept[dept.DepartmentName]; ok {
				dp.Done = true
				dp.Score = sub.OverallScore
				progress.FinalScore += sub.OverallScore * dept.DepartmentWeight / 100
			} else {
				progress.Completed = false
			}
			progress.Departments = append(progress.Departments, dp)
		}
		result = append(result, progress)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Period != result[j].Period {
			return result[i].Period > result[j].Period
		}
		return result[i].VendorName < result[j].VendorName
	})
	return result, nil
}

// VendorAverage 供应商平均分
type VendorAverage struct {
	VendorName string  `json:"vendor_name"`
	Score      float64 `json:"score"`
	Count      int     `json:"count"`
}

// AnalyticsResult 跨供应商统计
type AnalyticsResult struct {
	TotalEvaluations int             `json:"total_evaluations"`
	UniqueVendors    int             `json:"unique_vendors"`
	AverageScore     float64         `json:"average_score"`
	TopVendors       []VendorAverage `json:"top_vendors"`
	DepartmentCounts map[string]int  `json:"department_counts"`
}

// topVendorLimit 排行榜长度上限
const topVendorLimit = 10

// Analytics 对筛选后的评估集合做统计汇总
func (s *DashboardService) Analytics(ctx context.Context, filters map[string]string) (*AnalyticsResult, error) {
	evals, err := s.evalRepo.FindFiltered(ctx, filters)
	if err != nil {
		return nil, err
	}

	result := &AnalyticsResult{
		TotalEvaluations: len(evals),
		DepartmentCounts: make(map[string]int),
	}

	vendorSeen := make(map[string]bool)
	vendorTotals := make(map[string]*VendorAverage)
	var sum float64

	for _, e := range evals {
		sum += e.OverallScore
		vendorSeen[e.VendorID] = true
		result.DepartmentCounts[e.Department]++

		avg, ok := vendorTotals[e.VendorName]
		if !ok {
			avg = &VendorAverage{VendorName: e.VendorName}
			vendorTotals[e.VendorName] = avg
		}
		avg.Score += e.OverallScore
		avg.Count++
	}

	result.UniqueVendors = len(vendorSeen)
	if len(evals) > 0 {
		result.AverageScore = sum / float64(len(evals))
	}

	top := make([]VendorAverage, 0, len(vendorTotals))
	for _, avg := range vendorTotals {
		top = append(top, VendorAverage{
			VendorName: avg.VendorName,
			Score:      avg.Score / float64(avg.Count),
			Count:      avg.Count,
		})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Score != top[j].Score {
			return top[i].Score > top[j].Score
		}
		return strings.ToLower(top[i].VendorName) < strings.ToLower(top[j].VendorName)
	})
	if len(top) > topVendorLimit {
		top = top[:topVendorLimit]
	}
	result.TopVendors = top

	return result, nil
}

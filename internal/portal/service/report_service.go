package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
)

// ErrReportNotReady 所需部门尚未全部提交
var ErrReportNotReady = errors.New("report not yet generated")

// ReportService 汇总报告查询与 PDF 渲染
type ReportService struct {
	reportRepo   *repository.ReportRepository
	brandingRepo *repository.BrandingRepository
}

func NewReportService(reportRepo *repository.ReportRepository, brandingRepo *repository.BrandingRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo, brandingRepo: brandingRepo}
}

func (s *ReportService) List(ctx context.Context, filters map[string]string) ([]entity.ConsolidatedReport, error) {
	return s.reportRepo.FindAll(ctx, filters)
}

func (s *ReportService) Get(ctx context.Context, vendorID, period string) (*entity.ConsolidatedReport, error) {
	report, err := s.reportRepo.FindByVendorPeriod(ctx, vendorID, period)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReportNotReady
		}
		return nil, err
	}
	return report, nil
}

// RenderPDF 把汇总报告渲染为单页 PDF
func (s *ReportService) RenderPDF(ctx context.Context, vendorID, period string) ([]byte, string, error) {
	report, err := s.Get(ctx, vendorID, period)
	if err != nil {
		return nil, "", err
	}

	branding, err := s.brandingRepo.Get(ctx)
	if err != nil {
		branding = entity.DefaultBranding()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s - %s %s", branding.SystemName, report.VendorName, report.Period), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, branding.SystemName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Consolidated Vendor Performance Report", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Vendor: %s (%s)", report.VendorName, report.VendorType), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Period: %s", report.Period), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Final Weighted Score: %.2f / 100", report.FinalWeightedScore), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated at %s", report.GeneratedAt.Format(time.RFC3339)), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// 部门得分表
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(217, 225, 242)
	pdf.CellFormat(60, 8, "Department", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Weight %", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 8, "Score", "1", 0, "R", true, 0, "")
	pdf.CellFormat(60, 8, "Evaluator", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, dept := range report.DeptBreakdown {
		pdf.CellFormat(60, 7, dept.DepartmentName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.0f", dept.Weight), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", dept.Score), "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 7, dept.EvaluatorName, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// 指标明细
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(45, 8, "Department", "1", 0, "L", true, 0, "")
	pdf.CellFormat(65, 8, "Criteria", "1", 0, "L", true, 0, "")
	pdf.CellFormat(18, 8, "Rating", "1", 0, "R", true, 0, "")
	pdf.CellFormat(22, 8, "Weight %", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Comment", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, crit := range report.DetailedCriteria {
		pdf.CellFormat(45, 6, crit.Department, "1", 0, "L", false, 0, "")
		pdf.CellFormat(65, 6, crit.Criteria, "1", 0, "L", false, 0, "")
		pdf.CellFormat(18, 6, fmt.Sprintf("%d", crit.Score), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, fmt.Sprintf("%.0f", crit.Weight), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, crit.Comment, "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render pdf: %w", err)
	}

	filename := fmt.Sprintf("report_%s_%s.pdf", report.VendorID, report.Period)
	return buf.Bytes(), filename, nil
}

package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
)

// ExportService 评估数据导出（CSV / XLSX）
type ExportService struct {
	evalRepo *repository.EvaluationRepository
}

func NewExportService(evalRepo *repository.EvaluationRepository) *ExportService {
	return &ExportService{evalRepo: evalRepo}
}

// CSVFilename 下载文件名固定
const CSVFilename = "all_evaluations_export.csv"

var exportHeaders = []string{
	"EvaluationID", "VendorName", "VendorType", "Period",
	"Department", "Evaluator", "Score", "Date",
}

// ExportCSV 导出全部（或筛选后）评估为 CSV。
// 历史消费方只对 VendorName 一列加引号，其余列裸值，encoding/csv
// 的按需加引号策略会破坏既有解析，这里手工拼行保持字节兼容。
func (s *ExportService) ExportCSV(ctx context.Context, filters map[string]string) ([]byte, error) {
	evals, err := s.evalRepo.FindFiltered(ctx, filters)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(strings.Join(exportHeaders, ","))
	b.WriteString("\n")

	for _, e := range evals {
		fields := []string{
			e.ID,
			`"` + strings.ReplaceAll(e.VendorName, `"`, `""`) + `"`,
			e.VendorType,
			e.Period,
			e.Department,
			e.EvaluatorName,
			strconv.FormatFloat(e.OverallScore, 'f', -1, 64),
			e.SubmittedAt.Format(time.RFC3339),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}

// ExportXLSX 导出评估为带样式的 xlsx
func (s *ExportService) ExportXLSX(ctx context.Context, filters map[string]string) (*excelize.File, string, error) {
	evals, err := s.evalRepo.FindFiltered(ctx, filters)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Evaluations"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	var sum float64
	for rowIdx, e := range evals {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.ID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.VendorName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), e.VendorType)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), e.Period)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), e.Department)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), e.EvaluatorName)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), e.OverallScore)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), e.SubmittedAt.Format(time.RFC3339))
		sum += e.OverallScore
	}

	summaryRow := len(evals) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Summary")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("Total evaluations: %d", len(evals)))
	if len(evals) > 0 {
		f.SetCellValue(sheet, fmt.Sprintf("G%d", summaryRow), sum/float64(len(evals)))
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("H%d", summaryRow), summaryStyle)

	colWidths := []float64{34, 26, 20, 12, 16, 18, 8, 22}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("evaluations_%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}

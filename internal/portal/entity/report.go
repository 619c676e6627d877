package entity

import (
	"database/sql/driver"
	"time"
)

// DepartmentBreakdown 合并报告中一个部门的汇总行
type DepartmentBreakdown struct {
	DepartmentName string    `json:"department_name"`
	Weight         float64   `json:"weight"`
	Score          float64   `json:"score"`
	EvaluatorName  string    `json:"evaluator_name"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// BreakdownList 部门汇总行（JSONB）
type BreakdownList []DepartmentBreakdown

func (l BreakdownList) Value() (driver.Value, error) {
	return jsonbValue(l)
}

func (l *BreakdownList) Scan(value interface{}) error {
	return jsonbScan(l, value)
}

// CriterionDetail 合并报告的单项评分明细行
type CriterionDetail struct {
	Department string  `json:"department"`
	Criteria   string  `json:"criteria"`
	Score      int     `json:"score"`
	Weight     float64 `json:"weight"`
	Comment    string  `json:"comment,omitempty"`
}

// CriterionDetailList 评分明细行（JSONB）
type CriterionDetailList []CriterionDetail

func (l CriterionDetailList) Value() (driver.Value, error) {
	return jsonbValue(l)
}

func (l *CriterionDetailList) Scan(value interface{}) error {
	return jsonbScan(l, value)
}

// ConsolidatedReport 供应商某周期的最终加权报告，每个 (vendor, period) 一份。
// 任一部门的后续重新提交会从当前评估快照整体重算，不做增量修补。
type ConsolidatedReport struct {
	ID                 string              `json:"id" gorm:"primaryKey;size:32"`
	VendorID           string              `json:"vendor_id" gorm:"size:32;not null;uniqueIndex:idx_report_vendor_period"`
	VendorName         string              `json:"vendor_name" gorm:"size:200;not null"`
	VendorType         string              `json:"vendor_type" gorm:"size:50;not null"`
	Period             string              `json:"period" gorm:"size:50;not null;uniqueIndex:idx_report_vendor_period"`
	FinalWeightedScore float64             `json:"final_weighted_score" gorm:"type:decimal(5,2);not null"`
	DeptBreakdown      BreakdownList       `json:"department_breakdown" gorm:"type:jsonb;not null"`
	DetailedCriteria   CriterionDetailList `json:"detailed_criteria" gorm:"type:jsonb;not null"`
	GeneratedAt        time.Time           `json:"generated_at" gorm:"not null"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func (ConsolidatedReport) TableName() string {
	return "vv_consolidated_reports"
}

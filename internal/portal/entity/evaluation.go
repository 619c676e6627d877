package entity

import (
	"database/sql/driver"
	"time"
)

// CriterionScore 单项评分（1-5 原始分）
type CriterionScore struct {
	CriteriaID string `json:"criteria_id"`
	Score      int    `json:"score"`
	Comment    string `json:"comment,omitempty"`
}

// ScoreList 评分列表（JSONB）
type ScoreList []CriterionScore

func (s ScoreList) Value() (driver.Value, error) {
	return jsonbValue(s)
}

func (s *ScoreList) Scan(value interface{}) error {
	return jsonbScan(s, value)
}

// Evaluation 部门评估提交，每个 (vendor, period, department) 至多一条。
// 同一三元组的再次提交整体替换旧记录，历史部门分不做版本化。
type Evaluation struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	VendorID      string    `json:"vendor_id" gorm:"size:32;not null;uniqueIndex:idx_eval_triple"`
	VendorName    string    `json:"vendor_name" gorm:"size:200;not null"`
	VendorType    string    `json:"vendor_type" gorm:"size:50;not null;index"`
	Period        string    `json:"period" gorm:"size:50;not null;uniqueIndex:idx_eval_triple"`
	Department    string    `json:"department" gorm:"size:100;not null;uniqueIndex:idx_eval_triple"`
	EvaluatorID   string    `json:"evaluator_id" gorm:"size:32;not null;index"`
	EvaluatorName string    `json:"evaluator_name" gorm:"size:100;not null"`
	Status        string    `json:"status" gorm:"size:20;not null;default:Submitted"`
	Scores        ScoreList `json:"scores" gorm:"type:jsonb;not null"`
	OverallScore  float64   `json:"overall_score" gorm:"type:decimal(5,2);not null"` // weighted 0-100 department score
	EvidenceURL   string    `json:"evidence_url,omitempty" gorm:"size:512"`
	SubmittedAt   time.Time `json:"submitted_at" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Evaluation) TableName() string {
	return "vv_evaluations"
}

// 评估状态
const (
	EvaluationStatusSubmitted = "Submitted"
)

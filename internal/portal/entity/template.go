package entity

import (
	"database/sql/driver"
	"time"
)

// TemplateCriteria 部门评分项
type TemplateCriteria struct {
	CriteriaID   string  `json:"criteria_id"`
	CriteriaName string  `json:"criteria_name"`
	Elaboration  string  `json:"elaboration"`
	Weightage    float64 `json:"weightage"` // percentage within the department, nominally sums to 100
}

// TemplateDepartment 模板中一个部门的评分段
type TemplateDepartment struct {
	DepartmentName   string             `json:"department_name"`
	DepartmentWeight float64            `json:"department_weight"` // percentage of the final score
	Criteria         []TemplateCriteria `json:"criteria"`
}

// TemplateStructure 模板结构（JSONB）
type TemplateStructure []TemplateDepartment

func (s TemplateStructure) Value() (driver.Value, error) {
	return jsonbValue(s)
}

func (s *TemplateStructure) Scan(value interface{}) error {
	return jsonbScan(s, value)
}

// EvaluationTemplate 评估模板，每种供应商类型一份
type EvaluationTemplate struct {
	ID         string            `json:"id" gorm:"primaryKey;size:32"`
	VendorType string            `json:"vendor_type" gorm:"size:50;uniqueIndex;not null"`
	Structure  TemplateStructure `json:"structure" gorm:"type:jsonb;not null"`
	UpdatedBy  string            `json:"updated_by" gorm:"size:32"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (EvaluationTemplate) TableName() string {
	return "vv_templates"
}

// DepartmentNames 模板要求的部门名列表（按结构顺序）
func (t *EvaluationTemplate) DepartmentNames() []string {
	names := make([]string, 0, len(t.Structure))
	for _, d := range t.Structure {
		names = append(names, d.DepartmentName)
	}
	return names
}

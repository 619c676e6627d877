package entity

import "time"

// Period 评估周期
type Period struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Name      string    `json:"name" gorm:"size:50;uniqueIndex;not null"` // e.g. 2024-Q1
	Status    string    `json:"status" gorm:"size:20;not null;default:Open"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Period) TableName() string {
	return "vv_periods"
}

// 周期状态
const (
	PeriodStatusOpen   = "Open"
	PeriodStatusLocked = "Locked"
)

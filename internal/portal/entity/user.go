package entity

import "time"

// User 系统用户
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Email       string    `json:"email" gorm:"size:128;uniqueIndex;not null"`
	DisplayName string    `json:"display_name" gorm:"size:100;not null"`
	Role        string    `json:"role" gorm:"size:20;not null;default:evaluator"` // admin/evaluator
	Department  string    `json:"department" gorm:"size:100"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "vv_users"
}

// 用户角色
const (
	RoleAdmin     = "admin"
	RoleEvaluator = "evaluator"
)

// Actor identifies the user performing a mutating action, carried
// explicitly from the authenticated request into services.
type Actor struct {
	ID   string
	Name string
}

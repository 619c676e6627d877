package entity

import "time"

// AuditLog 审计日志，追加写入。Seq 单调递增，容量上限按插入顺序淘汰最旧记录。
type AuditLog struct {
	Seq       int64     `json:"seq" gorm:"primaryKey;autoIncrement"`
	Action    string    `json:"action" gorm:"size:20;not null"` // CREATE/UPDATE/DELETE/LOGIN/SUBMIT
	Entity    string    `json:"entity" gorm:"size:50;not null"`
	Details   string    `json:"details" gorm:"type:text"`
	ActorID   string    `json:"actor_id" gorm:"size:32;not null"`
	ActorName string    `json:"actor_name" gorm:"size:100;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuditLog) TableName() string {
	return "vv_audit_logs"
}

// 审计动作
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
	AuditActionLogin  = "LOGIN"
	AuditActionSubmit = "SUBMIT"
)

// MaxAuditLogEntries 审计日志保留条数上限
const MaxAuditLogEntries = 500

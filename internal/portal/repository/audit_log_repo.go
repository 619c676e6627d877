package repository

import (
	"context"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"gorm.io/gorm"
)

// AuditLogRepository 审计日志仓库
type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Append 追加一条审计记录并裁剪超出上限的最旧记录（按插入顺序）
func (r *AuditLogRepository) Append(ctx context.Context, log *entity.AuditLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return err
		}
		// FIFO cap: keep only the newest MaxAuditLogEntries rows by seq.
		return tx.Exec(
			"DELETE FROM vv_audit_logs WHERE seq < (SELECT seq FROM vv_audit_logs ORDER BY seq DESC LIMIT 1 OFFSET ?)",
			entity.MaxAuditLogEntries-1,
		).Error
	})
}

// Record 便捷记录审计日志，写入失败只影响日志本身
func (r *AuditLogRepository) Record(ctx context.Context, actor entity.Actor, action, entityKind, details string) {
	_ = r.Append(ctx, &entity.AuditLog{
		Action:    action,
		Entity:    entityKind,
		Details:   details,
		ActorID:   actor.ID,
		ActorName: actor.Name,
	})
}

// FindAll 查询审计日志，最新在前
func (r *AuditLogRepository) FindAll(ctx context.Context, page, pageSize int) ([]entity.AuditLog, int64, error) {
	var items []entity.AuditLog
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.AuditLog{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("seq DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// Clear 清空审计日志
func (r *AuditLogRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM vv_audit_logs").Error
}

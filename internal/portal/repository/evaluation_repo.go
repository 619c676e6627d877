package repository

import (
	"context"
	"errors"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"gorm.io/gorm"
)

// EvaluationRepository 评估记录仓库
type EvaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// FindAll 查询评估列表
func (r *EvaluationRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Evaluation, int64, error) {
	var items []entity.Evaluation
	var total int64

	query := r.filtered(ctx, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("submitted_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindFiltered 查询符合条件的全部评估（导出、汇总视图用）
func (r *EvaluationRepository) FindFiltered(ctx context.Context, filters map[string]string) ([]entity.Evaluation, error) {
	var items []entity.Evaluation
	err := r.filtered(ctx, filters).Order("submitted_at DESC").Find(&items).Error
	return items, err
}

func (r *EvaluationRepository) filtered(ctx context.Context, filters map[string]string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Evaluation{})

	if vendorID := filters["vendor_id"]; vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if vendorType := filters["vendor_type"]; vendorType != "" {
		query = query.Where("vendor_type = ?", vendorType)
	}
	if period := filters["period"]; period != "" {
		query = query.Where("period = ?", period)
	}
	if dept := filters["department"]; dept != "" {
		query = query.Where("department = ?", dept)
	}
	if evaluatorID := filters["evaluator_id"]; evaluatorID != "" {
		query = query.Where("evaluator_id = ?", evaluatorID)
	}
	return query
}

// FindByID 根据ID查找评估
func (r *EvaluationRepository) FindByID(ctx context.Context, id string) (*entity.Evaluation, error) {
	var eval entity.Evaluation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&eval).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &eval, nil
}

// FindByVendorPeriod 查询某供应商某周期的全部部门评估
func (r *EvaluationRepository) FindByVendorPeriod(ctx context.Context, vendorID, period string) ([]entity.Evaluation, error) {
	var items []entity.Evaluation
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND period = ?", vendorID, period).
		Order("submitted_at ASC").
		Find(&items).Error
	return items, err
}

// FindByEvaluator 查询某评估人的提交历史
func (r *EvaluationRepository) FindByEvaluator(ctx context.Context, evaluatorID string) ([]entity.Evaluation, error) {
	var items []entity.Evaluation
	err := r.db.WithContext(ctx).
		Where("evaluator_id = ?", evaluatorID).
		Order("submitted_at DESC").
		Find(&items).Error
	return items, err
}

// ExistsForDepartment 判断某部门在某供应商+周期下是否已提交
func (r *EvaluationRepository) ExistsForDepartment(ctx context.Context, vendorID, period, department string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Evaluation{}).
		Where("vendor_id = ? AND period = ? AND department = ?", vendorID, period, department).
		Count(&count).Error
	return count > 0, err
}

// Replace 写入评估；同一 (vendor, period, department) 的旧记录先删除再插入，
// 使重新提交整体替换而不追加。
func (r *EvaluationRepository) Replace(ctx context.Context, eval *entity.Evaluation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("vendor_id = ? AND period = ? AND department = ?",
				eval.VendorID, eval.Period, eval.Department).
			Delete(&entity.Evaluation{}).Error; err != nil {
			return err
		}
		return tx.Create(eval).Error
	})
}

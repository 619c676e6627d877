package repository

import (
	"context"
	"errors"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"gorm.io/gorm"
)

// TemplateRepository 评估模板仓库
type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// FindAll 查询全部模板
func (r *TemplateRepository) FindAll(ctx context.Context) ([]entity.EvaluationTemplate, error) {
	var items []entity.EvaluationTemplate
	err := r.db.WithContext(ctx).Order("vendor_type ASC").Find(&items).Error
	return items, err
}

// FindByVendorType 根据供应商类型查找模板
func (r *TemplateRepository) FindByVendorType(ctx context.Context, vendorType string) (*entity.EvaluationTemplate, error) {
	var tmpl entity.EvaluationTemplate
	err := r.db.WithContext(ctx).Where("vendor_type = ?", vendorType).First(&tmpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tmpl, nil
}

// Upsert 按供应商类型写入模板，已存在则整体替换结构
func (r *TemplateRepository) Upsert(ctx context.Context, tmpl *entity.EvaluationTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entity.EvaluationTemplate
		err := tx.Where("vendor_type = ?", tmpl.VendorType).First(&existing).Error
		switch {
		case err == nil:
			tmpl.ID = existing.ID
			tmpl.CreatedAt = existing.CreatedAt
			return tx.Save(tmpl).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(tmpl).Error
		default:
			return err
		}
	})
}

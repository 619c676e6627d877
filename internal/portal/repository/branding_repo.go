package repository

import (
	"context"
	"errors"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"gorm.io/gorm"
)

// BrandingRepository 品牌配置仓库
type BrandingRepository struct {
	db *gorm.DB
}

func NewBrandingRepository(db *gorm.DB) *BrandingRepository {
	return &BrandingRepository{db: db}
}

// Get 读取品牌配置，未设置时返回默认值
func (r *BrandingRepository) Get(ctx context.Context) (*entity.Branding, error) {
	var branding entity.Branding
	err := r.db.WithContext(ctx).Where("id = ?", entity.BrandingID).First(&branding).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.DefaultBranding(), nil
		}
		return nil, err
	}
	return &branding, nil
}

// Save 保存品牌配置（固定单行）
func (r *BrandingRepository) Save(ctx context.Context, branding *entity.Branding) error {
	branding.ID = entity.BrandingID
	return r.db.WithContext(ctx).Save(branding).Error
}

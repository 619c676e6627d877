package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"gorm.io/gorm"
)

// VendorRepository 供应商仓库
type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// FindAll 查询供应商列表
func (r *VendorRepository) FindAll(ctx context.Context, filters map[string]string) ([]entity.Vendor, error) {
	var items []entity.Vendor

	query := r.db.WithContext(ctx).Model(&entity.Vendor{})

	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}
	if vendorType := filters["vendor_type"]; vendorType != "" {
		query = query.Where("vendor_type = ?", vendorType)
	}

	err := query.Order("vendor_name ASC").Find(&items).Error
	return items, err
}

// FindActive 查询全部活跃供应商
func (r *VendorRepository) FindActive(ctx context.Context) ([]entity.Vendor, error) {
	return r.FindAll(ctx, map[string]string{"status": entity.VendorStatusActive})
}

// FindByID 根据ID查找供应商
func (r *VendorRepository) FindByID(ctx context.Context, id string) (*entity.Vendor, error) {
	var vendor entity.Vendor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// FindByName 根据名称查找供应商
func (r *VendorRepository) FindByName(ctx context.Context, name string) (*entity.Vendor, error) {
	var vendor entity.Vendor
	err := r.db.WithContext(ctx).Where("vendor_name = ?", name).First(&vendor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

// Create 创建供应商
func (r *VendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

// Update 更新供应商
func (r *VendorRepository) Update(ctx context.Context, vendor *entity.Vendor) error {
	return r.db.WithContext(ctx).Save(vendor).Error
}

// Delete 删除供应商
func (r *VendorRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Vendor{}, "id = ?", id).Error
}

// UpsertBulk 批量写入供应商，按ID或名称匹配已有记录
func (r *VendorRepository) UpsertBulk(ctx context.Context, vendors []entity.Vendor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range vendors {
			v := vendors[i]
			var existing entity.Vendor
			err := tx.Where("id = ? OR vendor_name = ?", v.ID, v.VendorName).First(&existing).Error
			switch {
			case err == nil:
				v.ID = existing.ID
				v.CreatedAt = existing.CreatedAt
				if err := tx.Save(&v).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if v.ID == "" {
					v.ID = uuid.New().String()[:32]
				}
				if err := tx.Create(&v).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
}

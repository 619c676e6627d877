package repository

import (
	"context"
	"errors"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"gorm.io/gorm"
)

// PeriodRepository 评估周期仓库
type PeriodRepository struct {
	db *gorm.DB
}

func NewPeriodRepository(db *gorm.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// FindAll 查询全部周期
func (r *PeriodRepository) FindAll(ctx context.Context) ([]entity.Period, error) {
	var items []entity.Period
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

// FindOpen 查询开放中的周期
func (r *PeriodRepository) FindOpen(ctx context.Context) ([]entity.Period, error) {
	var items []entity.Period
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.PeriodStatusOpen).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

// FindByID 根据ID查找周期
func (r *PeriodRepository) FindByID(ctx context.Context, id string) (*entity.Period, error) {
	var period entity.Period
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&period).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &period, nil
}

// FindByName 根据名称查找周期
func (r *PeriodRepository) FindByName(ctx context.Context, name string) (*entity.Period, error) {
	var period entity.Period
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&period).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &period, nil
}

// Create 创建周期
func (r *PeriodRepository) Create(ctx context.Context, period *entity.Period) error {
	return r.db.WithContext(ctx).Create(period).Error
}

// Update 更新周期
func (r *PeriodRepository) Update(ctx context.Context, period *entity.Period) error {
	return r.db.WithContext(ctx).Save(period).Error
}

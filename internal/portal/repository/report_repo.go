package repository

import (
	"context"
	"errors"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"gorm.io/gorm"
)

// ReportRepository 合并报告仓库
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// FindAll 查询报告列表
func (r *ReportRepository) FindAll(ctx context.Context, filters map[string]string) ([]entity.ConsolidatedReport, error) {
	var items []entity.ConsolidatedReport

	query := r.db.WithContext(ctx).Model(&entity.ConsolidatedReport{})

	if vendorID := filters["vendor_id"]; vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	if period := filters["period"]; period != "" {
		query = query.Where("period = ?", period)
	}
	if vendorType := filters["vendor_type"]; vendorType != "" {
		query = query.Where("vendor_type = ?", vendorType)
	}

	err := query.Order("generated_at DESC").Find(&items).Error
	return items, err
}

// FindByVendorPeriod 查找某供应商某周期的报告
func (r *ReportRepository) FindByVendorPeriod(ctx context.Context, vendorID, period string) (*entity.ConsolidatedReport, error) {
	var report entity.ConsolidatedReport
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND period = ?", vendorID, period).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// Upsert 按 (vendor, period) 写入报告，已存在则整体覆盖
func (r *ReportRepository) Upsert(ctx context.Context, report *entity.ConsolidatedReport) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entity.ConsolidatedReport
		err := tx.Where("vendor_id = ? AND period = ?", report.VendorID, report.Period).
			First(&existing).Error
		switch {
		case err == nil:
			report.ID = existing.ID
			report.CreatedAt = existing.CreatedAt
			return tx.Save(report).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(report).Error
		default:
			return err
		}
	})
}

package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 仓库集合
type Repositories struct {
	User       *UserRepository
	Vendor     *VendorRepository
	Template   *TemplateRepository
	Period     *PeriodRepository
	Evaluation *EvaluationRepository
	Report     *ReportRepository
	AuditLog   *AuditLogRepository
	Branding   *BrandingRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Vendor:     NewVendorRepository(db),
		Template:   NewTemplateRepository(db),
		Period:     NewPeriodRepository(db),
		Evaluation: NewEvaluationRepository(db),
		Report:     NewReportRepository(db),
		AuditLog:   NewAuditLogRepository(db),
		Branding:   NewBrandingRepository(db),
	}
}

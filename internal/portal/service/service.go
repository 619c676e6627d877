package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	"github.com/shariin1057/vendor-valuate/internal/config"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
)

// Services 服务集合
type Services struct {
	Auth          *AuthService
	User          *UserService
	Vendor        *VendorService
	Template      *TemplateService
	Period        *PeriodService
	Evaluation    *EvaluationService
	Consolidation *ConsolidationService
	Dashboard     *DashboardService
	Report        *ReportService
	Export        *ExportService
	Evidence      *EvidenceService
	Branding      *BrandingService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config) *Services {
	// 初始化MinIO客户端
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			// 没有对象存储时退回本地磁盘
			minioClient = nil
		}
	}

	templateSvc := NewTemplateService(repos.Template, repos.AuditLog)
	consolidationSvc := NewConsolidationService(repos.Evaluation, repos.Template, repos.Report, repos.AuditLog)

	return &Services{
		Auth:          NewAuthService(repos.User, repos.AuditLog, rdb, cfg),
		User:          NewUserService(repos.User, repos.AuditLog),
		Vendor:        NewVendorService(repos.Vendor, repos.AuditLog),
		Template:      templateSvc,
		Period:        NewPeriodService(repos.Period, repos.AuditLog),
		Evaluation:    NewEvaluationService(repos.Evaluation, repos.Vendor, repos.Period, templateSvc, consolidationSvc, repos.AuditLog),
		Consolidation: consolidationSvc,
		Dashboard:     NewDashboardService(repos.Vendor, repos.Template, repos.Evaluation),
		Report:        NewReportService(repos.Report, repos.Branding),
		Export:        NewExportService(repos.Evaluation),
		Evidence:      NewEvidenceService(minioClient, cfg.MinIO.Bucket, cfg.Storage.LocalDir),
		Branding:      NewBrandingService(repos.Branding, repos.AuditLog),
	}
}

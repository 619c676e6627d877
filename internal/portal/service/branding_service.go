package service

import (
	"context"
	"strings"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
)

// BrandingService 系统品牌配置（单行）
type BrandingService struct {
	repo  *repository.BrandingRepository
	audit *repository.AuditLogRepository
}

func NewBrandingService(repo *repository.BrandingRepository, audit *repository.AuditLogRepository) *BrandingService {
	return &BrandingService{repo: repo, audit: audit}
}

func (s *BrandingService) Get(ctx context.Context) (*entity.Branding, error) {
	return s.repo.Get(ctx)
}

// SaveBrandingRequest 更新品牌配置请求
type SaveBrandingRequest struct {
	SystemName     string `json:"system_name" binding:"required"`
	LogoURL        string `json:"logo_url"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	AccentColor    string `json:"accent_color"`
}

func (s *BrandingService) Save(ctx context.Context, actor entity.Actor, req *SaveBrandingRequest) (*entity.Branding, error) {
	// 以当前配置为基底，未提交的字段保持原值
	branding, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	branding.SystemName = strings.TrimSpace(req.SystemName)
	if req.LogoURL != "" {
		branding.LogoURL = req.LogoURL
	}
	if req.PrimaryColor != "" {
		branding.PrimaryColor = req.PrimaryColor
	}
	if req.SecondaryColor != "" {
		branding.SecondaryColor = req.SecondaryColor
	}
	if req.AccentColor != "" {
		branding.AccentColor = req.AccentColor
	}

	if err := s.repo.Save(ctx, branding); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, entity.AuditActionUpdate, "Branding", "System branding updated")
	return branding, nil
}

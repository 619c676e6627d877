package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
)

// ErrVendorNameTaken 供应商名称已存在
var ErrVendorNameTaken = errors.New("a vendor with this name already exists")

// VendorService 供应商管理
type VendorService struct {
	repo  *repository.VendorRepository
	audit *repository.AuditLogRepository
}

func NewVendorService(repo *repository.VendorRepository, audit *repository.AuditLogRepository) *VendorService {
	return &VendorService{repo: repo, audit: audit}
}

func (s *VendorService) List(ctx context.Context, filters map[string]string) ([]entity.Vendor, error) {
	return s.repo.FindAll(ctx, filters)
}

func (s *VendorService) Get(ctx context.Context, id string) (*entity.Vendor, error) {
	return s.repo.FindByID(ctx, id)
}

// SaveVendorRequest 创建/更新供应商请求
type SaveVendorRequest struct {
	VendorName   string `json:"vendor_name" binding:"required"`
	VendorType   string `json:"vendor_type" binding:"required"`
	ContactEmail string `json:"contact_email"`
}

func (s *VendorService) Create(ctx context.Context, actor entity.Actor, req *SaveVendorRequest) (*entity.Vendor, error) {
	if !entity.IsValidVendorType(req.VendorType) {
		return nil, ErrInvalidVendorType
	}
	if _, err := s.repo.FindByName(ctx, req.VendorName); err == nil {
		return nil, ErrVendorNameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	vendor := &entity.Vendor{
		ID:           uuid.New().String()[:32],
		VendorName:   strings.TrimSpace(req.VendorName),
		VendorType:   req.VendorType,
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		Status:       entity.VendorStatusActive,
	}
	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, entity.AuditActionCreate, "Vendor",
		fmt.Sprintf("Created vendor: %s", vendor.VendorName))
	return vendor, nil
}

func (s *VendorService) Update(ctx context.Context, actor entity.Actor, id string, req *SaveVendorRequest) (*entity.Vendor, error) {
	if !entity.IsValidVendorType(req.VendorType) {
		return nil, ErrInvalidVendorType
	}
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindByName(ctx, req.VendorName); err == nil && existing.ID != vendor.ID {
		return nil, ErrVendorNameTaken
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	vendor.VendorName = strings.TrimSpace(req.VendorName)
	vendor.VendorType = req.VendorType
	vendor.ContactEmail = strings.TrimSpace(req.ContactEmail)
	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, entity.AuditActionUpdate, "Vendor",
		fmt.Sprintf("Updated vendor: %s", vendor.VendorName))
	return vendor, nil
}

// ToggleStatus 在 Active / Inactive 之间切换
func (s *VendorService) ToggleStatus(ctx context.Context, actor entity.Actor, id string) (*entity.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if vendor.Status == entity.VendorStatusActive {
		vendor.Status = entity.VendorStatusInactive
	} else {
		vendor.Status = entity.VendorStatusActive
	}
	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor, entity.AuditActionUpdate, "Vendor",
		fmt.Sprintf("Set %s to %s", vendor.VendorName, vendor.Status))
	return vendor, nil
}

func (s *VendorService) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actor, entity.AuditActionDelete, "Vendor",
		fmt.Sprintf("Deleted vendor ID: %s", id))
	return nil
}

// BulkUpsert 批量导入，按 id 或名称匹配既有记录
func (s *VendorService) BulkUpsert(ctx context.Context, actor entity.Actor, reqs []SaveVendorRequest) (int, error) {
	vendors := make([]entity.Vendor, 0, len(reqs))
	for _, req := range reqs {
		if !entity.IsValidVendorType(req.VendorType) {
			return 0, fmt.Errorf("%w: %s", ErrInvalidVendorType, req.VendorType)
		}
		vendors = append(vendors, entity.Vendor{
			VendorName:   strings.TrimSpace(req.VendorName),
			VendorType:   req.VendorType,
			ContactEmail: strings.TrimSpace(req.ContactEmail),
			Status:       entity.VendorStatusActive,
		})
	}

	if err := s.repo.UpsertBulk(ctx, vendors); err != nil {
		return 0, err
	}

	s.audit.Record(ctx, actor, entity.AuditActionUpdate, "Vendor",
		fmt.Sprintf("Bulk upserted %d vendors", len(vendors)))
	return len(vendors), nil
}

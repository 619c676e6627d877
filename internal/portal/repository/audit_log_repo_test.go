package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/testutil"
)

func TestAuditLogAppendCapsOldest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewAuditLogRepository(db)
	ctx := context.Background()

	// Fill to one below the cap directly, then push over it through Append.
	seed := make([]entity.AuditLog, 0, entity.MaxAuditLogEntries-1)
	for i := 0; i < entity.MaxAuditLogEntries-1; i++ {
		seed = append(seed, entity.AuditLog{
			Action:  entity.AuditActionCreate,
			Entity:  "vendor",
			Details: fmt.Sprintf("seed entry %d", i),
		})
	}
	if err := db.CreateInBatches(seed, 100).Error; err != nil {
		t.Fatalf("seed audit logs: %v", err)
	}

	for i := 0; i < 3; i++ {
		err := repo.Append(ctx, &entity.AuditLog{
			Action:  entity.AuditActionCreate,
			Entity:  "vendor",
			Details: fmt.Sprintf("overflow entry %d", i),
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	var count int64
	db.Model(&entity.AuditLog{}).Count(&count)
	if count != entity.MaxAuditLogEntries {
		t.Fatalf("audit log count = %d, want %d", count, entity.MaxAuditLogEntries)
	}

	// The oldest seeded rows were dropped first.
	var oldest entity.AuditLog
	db.Order("seq ASC").First(&oldest)
	if oldest.Details != "seed entry 2" {
		t.Errorf("oldest surviving entry = %q, want %q", oldest.Details, "seed entry 2")
	}

	var newest entity.AuditLog
	db.Order("seq DESC").First(&newest)
	if newest.Details != "overflow entry 2" {
		t.Errorf("newest entry = %q, want %q", newest.Details, "overflow entry 2")
	}
}

func TestAuditLogFindAllNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewAuditLogRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		repo.Record(ctx, entity.Actor{ID: "u1", Name: "Admin"},
			entity.AuditActionUpdate, "vendor", fmt.Sprintf("entry %d", i))
	}

	items, total, err := repo.FindAll(ctx, 1, 3)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(items) != 3 {
		t.Fatalf("page size = %d, want 3", len(items))
	}
	if items[0].Details != "entry 4" {
		t.Errorf("first item = %q, want newest entry", items[0].Details)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	_, total, _ = repo.FindAll(ctx, 1, 10)
	if total != 0 {
		t.Errorf("total after clear = %d, want 0", total)
	}
}

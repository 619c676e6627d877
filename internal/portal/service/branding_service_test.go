package service

import (
	"context"
	"testing"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
	"github.com/shariin1057/vendor-valuate/internal/portal/testutil"
)

func TestBrandingSavePreservesStoredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewBrandingService(repos.Branding, repos.AuditLog)
	ctx := context.Background()
	actor := entity.Actor{ID: "u1", Name: "Admin"}

	_, err := svc.Save(ctx, actor, &SaveBrandingRequest{
		SystemName:   "Acme Vendor Portal",
		LogoURL:      "https://cdn.example.com/logo.png",
		PrimaryColor: "#112233",
	})
	if err != nil {
		t.Fatalf("initial save: %v", err)
	}

	// A later rename must not reset the customized logo and color.
	updated, err := svc.Save(ctx, actor, &SaveBrandingRequest{
		SystemName: "Acme Supplier Portal",
	})
	if err != nil {
		t.Fatalf("partial save: %v", err)
	}

	if updated.SystemName != "Acme Supplier Portal" {
		t.Errorf("system name = %q", updated.SystemName)
	}
	if updated.LogoURL != "https://cdn.example.com/logo.png" {
		t.Errorf("logo url = %q, want the stored value preserved", updated.LogoURL)
	}
	if updated.PrimaryColor != "#112233" {
		t.Errorf("primary color = %q, want the stored value preserved", updated.PrimaryColor)
	}

	stored, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.PrimaryColor != "#112233" || stored.LogoURL != "https://cdn.example.com/logo.png" {
		t.Errorf("stored branding lost customizations: %+v", stored)
	}

	// Unset fields still come back as defaults.
	if stored.SecondaryColor != entity.DefaultBranding().SecondaryColor {
		t.Errorf("secondary color = %q, want default", stored.SecondaryColor)
	}
}

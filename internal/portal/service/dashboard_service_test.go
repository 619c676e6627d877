package service

import (
	"context"
	"testing"
	"time"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
	"github.com/shariin1057/vendor-valuate/internal/portal/testutil"
	"gorm.io/gorm"
)

func seedEvaluation(t *testing.T, db *gorm.DB, id, vendorID, vendorName, period, department string, score float64) {
	t.Helper()
	err := db.Create(&entity.Evaluation{
		ID:            id,
		VendorID:      vendorID,
		VendorName:    vendorName,
		VendorType:    entity.VendorTypeTransport,
		Period:        period,
		Department:    department,
		EvaluatorID:   "eval-" + department,
		EvaluatorName: department + " Lead",
		Status:        entity.EvaluationStatusSubmitted,
		Scores:        entity.ScoreList{{CriteriaID: "op1", Score: 4}},
		OverallScore:  score,
		SubmittedAt:   time.Now(),
	}).Error
	if err != nil {
		t.Fatalf("seed evaluation %s: %v", id, err)
	}
}

func setupDashboardTest(t *testing.T) (*DashboardService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := NewDashboardService(repos.Vendor, repos.Template, repos.Evaluation)

	structure := entity.TemplateStructure{
		{
			DepartmentName:   "Operations",
			DepartmentWeight: 60,
			Criteria: []entity.TemplateCriteria{
				{CriteriaID: "op1", CriteriaName: "Delivery", Weightage: 100},
			},
		},
		{
			DepartmentName:   "Finance",
			DepartmentWeight: 40,
			Criteria: []entity.TemplateCriteria{
				{CriteriaID: "fi1", CriteriaName: "Invoicing", Weightage: 100},
			},
		},
	}
	testutil.SeedTemplate(t, db, "tpl-001", entity.VendorTypeTransport, structure)
	testutil.SeedVendor(t, db, "ven-001", "Acme Logistics", entity.VendorTypeTransport)
	testutil.SeedVendor(t, db, "ven-002", "Borealis Freight", entity.VendorTypeTransport)

	return svc, db
}

func TestPendingVendors(t *testing.T) {
	svc, db := setupDashboardTest(t)
	ctx := context.Background()

	// Operations already evaluated ven-001 but not ven-002.
	seedEvaluation(t, db, "ev-001", "ven-001", "Acme Logistics", "2026-Q1", "Operations", 82)

	pending, err := svc.PendingVendors(ctx, "Operations", "2026-Q1")
	if err != nil {
		t.Fatalf("pending vendors: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "ven-002" {
		t.Fatalf("pending = %+v, want only ven-002", pending)
	}

	// A department the template does not require has nothing pending.
	pending, err = svc.PendingVendors(ctx, "Security", "2026-Q1")
	if err != nil {
		t.Fatalf("pending vendors: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending for unrequired department = %d vendors, want 0", len(pending))
	}
}

func TestPendingVendorsDepartmentCaseInsensitive(t *testing.T) {
	svc, db := setupDashboardTest(t)
	ctx := context.Background()

	// Submission stored under the template's canonical department name.
	seedEvaluation(t, db, "ev-001", "ven-001", "Acme Logistics", "2026-Q1", "Operations", 82)

	// A caller whose user record carries different casing still sees the
	// vendor as done, not pending.
	pending, err := svc.PendingVendors(ctx, "operations", "2026-Q1")
	if err != nil {
		t.Fatalf("pending vendors: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "ven-002" {
		t.Fatalf("pending = %+v, want only ven-002", pending)
	}
}

func TestPendingVendorsSkipsInactive(t *testing.T) {
	svc, db := setupDashboardTest(t)

	db.Model(&entity.Vendor{}).Where("id = ?", "ven-002").
		Update("status", entity.VendorStatusInactive)

	pending, err := svc.PendingVendors(context.Background(), "Operations", "2026-Q1")
	if err != nil {
		t.Fatalf("pending vendors: %v", err)
	}
	for _, v := range pending {
		if v.ID == "ven-002" {
			t.Errorf("inactive vendor listed as pending")
		}
	}
}

func TestProgress(t *testing.T) {
	svc, db := setupDashboardTest(t)

	// ven-001 complete, ven-002 waiting on Finance.
	seedEvaluation(t, db, "ev-001", "ven-001", "Acme Logistics", "2026-Q1", "Operations", 80)
	seedEvaluation(t, db, "ev-002", "ven-001", "Acme Logistics", "2026-Q1", "Finance", 90)
	seedEvaluation(t, db, "ev-003", "ven-002", "Borealis Freight", "2026-Q1", "Operations", 70)

	rows, err := svc.Progress(context.Background(), map[string]string{"period": "2026-Q1"})
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("progress rows = %d, want 2", len(rows))
	}

	// Same period sorts by vendor name.
	acme, borealis := rows[0], rows[1]
	if acme.VendorName != "Acme Logistics" || borealis.VendorName != "Borealis Freight" {
		t.Fatalf("unexpected order: %s, %s", rows[0].VendorName, rows[1].VendorName)
	}

	if !acme.Completed {
		t.Errorf("acme should be completed")
	}
	// 80*0.6 + 90*0.4 = 84
	if acme.FinalScore != 84.0 {
		t.Errorf("acme final score = %v, want 84.0", acme.FinalScore)
	}
	if len(acme.Departments) != 2 {
		t.Fatalf("acme departments = %d, want 2", len(acme.Departments))
	}

	if borealis.Completed {
		t.Errorf("borealis should not be completed")
	}
	// Only Operations counted: 70*0.6 = 42
	if borealis.FinalScore != 42.0 {
		t.Errorf("borealis running score = %v, want 42.0", borealis.FinalScore)
	}
	var financeDone bool
	for _, dp := range borealis.Departments {
		if dp.DepartmentName == "Finance" {
			financeDone = dp.Done
		}
	}
	if financeDone {
		t.Errorf("finance marked done without a submission")
	}
}

func TestAnalytics(t *testing.T) {
	svc, db := setupDashboardTest(t)

	seedEvaluation(t, db, "ev-001", "ven-001", "Acme Logistics", "2026-Q1", "Operations", 80)
	seedEvaluation(t, db, "ev-002", "ven-001", "Acme Logistics", "2026-Q1", "Finance", 90)
	seedEvaluation(t, db, "ev-003", "ven-002", "Borealis Freight", "2026-Q1", "Operations", 70)

	result, err := svc.Analytics(context.Background(), nil)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}

	if result.TotalEvaluations != 3 {
		t.Errorf("total evaluations = %d, want 3", result.TotalEvaluations)
	}
	if result.UniqueVendors != 2 {
		t.Errorf("unique vendors = %d, want 2", result.UniqueVendors)
	}
	if result.AverageScore != 80.0 {
		t.Errorf("average score = %v, want 80.0", result.AverageScore)
	}
	if result.DepartmentCounts["Operations"] != 2 || result.DepartmentCounts["Finance"] != 1 {
		t.Errorf("department counts = %v", result.DepartmentCounts)
	}

	if len(result.TopVendors) != 2 {
		t.Fatalf("top vendors = %d, want 2", len(result.TopVendors))
	}
	// Acme averages 85, Borealis 70.
	if result.TopVendors[0].VendorName != "Acme Logistics" || result.TopVendors[0].Score != 85.0 {
		t.Errorf("top vendor = %+v, want Acme Logistics at 85.0", result.TopVendors[0])
	}
}

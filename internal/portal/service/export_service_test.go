package service

import (
	"context"
	"testing"
	"time"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
	"github.com/shariin1057/vendor-valuate/internal/portal/testutil"
)

func TestExportCSV(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewEvaluationRepository(db)
	svc := NewExportService(repo)

	submitted := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	eval := &entity.Evaluation{
		ID:            "eval-csv-001",
		VendorID:      "ven-001",
		VendorName:    `Acme "Logistics", Ltd`,
		VendorType:    entity.VendorTypeTransport,
		Period:        "2026-Q1",
		Department:    "Operations",
		EvaluatorID:   "usr-001",
		EvaluatorName: "Jordan Lee",
		Status:        entity.EvaluationStatusSubmitted,
		Scores:        entity.ScoreList{{CriteriaID: "c1", Score: 4}},
		OverallScore:  82.5,
		SubmittedAt:   submitted,
	}
	if err := db.Create(eval).Error; err != nil {
		t.Fatalf("seed evaluation: %v", err)
	}

	data, err := svc.ExportCSV(context.Background(), nil)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	// Only the vendor name carries quotes; embedded quotes are doubled,
	// scores print without trailing zeros, dates as RFC3339.
	want := "EvaluationID,VendorName,VendorType,Period,Department,Evaluator,Score,Date\n" +
		`eval-csv-001,"Acme ""Logistics"", Ltd",Transport,2026-Q1,Operations,Jordan Lee,82.5,2026-03-15T10:30:00Z` + "\n"
	if string(data) != want {
		t.Errorf("ExportCSV output mismatch\ngot:  %q\nwant: %q", string(data), want)
	}
}

func TestExportCSVWholeNumberScore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewEvaluationRepository(db)
	svc := NewExportService(repo)

	eval := &entity.Evaluation{
		ID:            "eval-csv-002",
		VendorID:      "ven-002",
		VendorName:    "Beta Crew",
		VendorType:    entity.VendorTypeManpowerSupply,
		Period:        "2026-Q1",
		Department:    "Finance",
		EvaluatorID:   "usr-002",
		EvaluatorName: "Sam Ong",
		Status:        entity.EvaluationStatusSubmitted,
		Scores:        entity.ScoreList{{CriteriaID: "f1", Score: 5}},
		OverallScore:  100,
		SubmittedAt:   time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC),
	}
	if err := db.Create(eval).Error; err != nil {
		t.Fatalf("seed evaluation: %v", err)
	}

	data, err := svc.ExportCSV(context.Background(), nil)
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	want := "EvaluationID,VendorName,VendorType,Period,Department,Evaluator,Score,Date\n" +
		`eval-csv-002,"Beta Crew",Manpower Supply,2026-Q1,Finance,Sam Ong,100,2026-03-16T09:00:00Z` + "\n"
	if string(data) != want {
		t.Errorf("ExportCSV output mismatch\ngot:  %q\nwant: %q", string(data), want)
	}
}

func TestExportCSVEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewExportService(repository.NewEvaluationRepository(db))

	data, err := svc.ExportCSV(context.Background(), map[string]string{"period": "2030-Q4"})
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	want := "EvaluationID,VendorName,VendorType,Period,Department,Evaluator,Score,Date\n"
	if string(data) != want {
		t.Errorf("empty export: got %q, want header only", string(data))
	}
}

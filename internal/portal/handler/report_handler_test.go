package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
	"github.com/shariin1057/vendor-valuate/internal/portal/service"
	"github.com/shariin1057/vendor-valuate/internal/portal/testutil"
)

func setupReportTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svc := service.NewReportService(repos.Report, repos.Branding)
	h := NewReportHandler(svc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/reports/:vendorId/:period", h.GetReport)
	api.GET("/reports/:vendorId/:period/pdf", h.DownloadReportPDF)

	return router, db
}

func seedReport(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Create(&entity.ConsolidatedReport{
		ID:                 "rep-001",
		VendorID:           "ven-001",
		VendorName:         "Acme Logistics",
		VendorType:         entity.VendorTypeTransport,
		Period:             "2026-Q1",
		FinalWeightedScore: 85.0,
		DeptBreakdown: entity.BreakdownList{
			{DepartmentName: "Operations", Weight: 100, Score: 85, EvaluatorName: "Ops Lead", SubmittedAt: time.Now()},
		},
		DetailedCriteria: entity.CriterionDetailList{
			{Department: "Operations", Criteria: "Delivery", Score: 4, Weight: 100},
		},
		GeneratedAt: time.Now(),
	}).Error
	if err != nil {
		t.Fatalf("seed report: %v", err)
	}
}

func TestGetReportBeforeGeneration(t *testing.T) {
	router, _ := setupReportTest(t)
	token := testutil.EvaluatorToken("Operations")

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/reports/ven-001/2026-Q1", nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("report before generation: status %d, want 404", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if msg, _ := resp["message"].(string); !strings.Contains(msg, "report not yet generated") {
		t.Errorf("message = %q, want it to mention the report is not yet generated", msg)
	}

	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/reports/ven-001/2026-Q1/pdf", nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("pdf before generation: status %d, want 404", w.Code)
	}
}

func TestGetReportAfterGeneration(t *testing.T) {
	router, db := setupReportTest(t)
	token := testutil.EvaluatorToken("Operations")
	seedReport(t, db)

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/reports/ven-001/2026-Q1", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("report: status %d, body %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data, _ := resp["data"].(map[string]interface{})
	if score, _ := data["final_weighted_score"].(float64); score != 85.0 {
		t.Errorf("final weighted score = %v, want 85.0", score)
	}

	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/reports/ven-001/2026-Q1/pdf", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("pdf: status %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "report_ven-001_2026-Q1.pdf") {
		t.Errorf("content disposition = %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Errorf("body does not look like a PDF")
	}
}

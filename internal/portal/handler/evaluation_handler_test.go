package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
	"github.com/shariin1057/vendor-valuate/internal/portal/repository"
	"github.com/shariin1057/vendor-valuate/internal/portal/service"
	"github.com/shariin1057/vendor-valuate/internal/portal/testutil"
)

func transportStructure() entity.TemplateStructure {
	return entity.TemplateStructure{
		{
			DepartmentName:   "Operations",
			DepartmentWeight: 50,
			Criteria: []entity.TemplateCriteria{
				{CriteriaID: "op1", CriteriaName: "On-time delivery", Weightage: 50},
				{CriteriaID: "op2", CriteriaName: "Responsiveness", Weightage: 30},
				{CriteriaID: "op3", CriteriaName: "Documentation", Weightage: 20},
			},
		},
		{
			DepartmentName:   "Finance",
			DepartmentWeight: 30,
			Criteria: []entity.TemplateCriteria{
				{CriteriaID: "fi1", CriteriaName: "Invoicing accuracy", Weightage: 100},
			},
		},
		{
			DepartmentName:   "Safety",
			DepartmentWeight: 20,
			Criteria: []entity.TemplateCriteria{
				{CriteriaID: "sa1", CriteriaName: "Incident record", Weightage: 100},
			},
		},
	}
}

func setupEvaluationTest(t *testing.T) (*testutil.TestEnv, *repository.Repositories) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	templateSvc := service.NewTemplateService(repos.Template, repos.AuditLog)
	consolidationSvc := service.NewConsolidationService(repos.Evaluation, repos.Template, repos.Report, repos.AuditLog)
	evalSvc := service.NewEvaluationService(repos.Evaluation, repos.Vendor, repos.Period, templateSvc, consolidationSvc, repos.AuditLog)
	h := NewEvaluationHandler(evalSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.POST("/evaluations", h.SubmitEvaluation)
	api.POST("/evaluations/preview", h.PreviewScore)
	api.GET("/evaluations", h.ListEvaluations)

	testutil.SeedVendor(t, db, "ven-001", "Acme Logistics", entity.VendorTypeTransport)
	testutil.SeedPeriod(t, db, "per-001", "2026-Q1")
	testutil.SeedTemplate(t, db, "tpl-001", entity.VendorTypeTransport, transportStructure())

	return &testutil.TestEnv{DB: db, Router: router, T: t}, repos
}

func submitBody(scores []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"vendor_id": "ven-001",
		"period":    "2026-Q1",
		"scores":    scores,
	}
}

func opsScores() []map[string]interface{} {
	return []map[string]interface{}{
		{"criteria_id": "op1", "score": 4},
		{"criteria_id": "op2", "score": 5},
		{"criteria_id": "op3", "score": 3},
	}
}

func TestSubmitEvaluation(t *testing.T) {
	env, _ := setupEvaluationTest(t)
	token := testutil.EvaluatorToken("Operations")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/evaluations", submitBody(opsScores()), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: status %d, body %s", w.Code, w.Body.String())
	}

	var eval entity.Evaluation
	if err := env.DB.Where("vendor_id = ? AND period = ? AND department = ?",
		"ven-001", "2026-Q1", "Operations").First(&eval).Error; err != nil {
		t.Fatalf("evaluation not persisted: %v", err)
	}
	if eval.OverallScore != 82.0 {
		t.Errorf("overall score = %v, want 82.0", eval.OverallScore)
	}
	if eval.Status != entity.EvaluationStatusSubmitted {
		t.Errorf("status = %q, want Submitted", eval.Status)
	}
}

func TestSubmitReplacesPrevious(t *testing.T) {
	env, _ := setupEvaluationTest(t)
	token := testutil.EvaluatorToken("Operations")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/evaluations", submitBody(opsScores()), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("first submit: status %d", w.Code)
	}

	better := []map[string]interface{}{
		{"criteria_id": "op1", "score": 5},
		{"criteria_id": "op2", "score": 5},
		{"criteria_id": "op3", "score": 5},
	}
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/evaluations", submitBody(better), token)
	if w.Code != http.StatusCreated {
		t.Fatalf("second submit: status %d, body %s", w.Code, w.Body.String())
	}

	var count int64
	env.DB.Model(&entity.Evaluation{}).Where("vendor_id = ? AND period = ? AND department = ?",
		"ven-001", "2026-Q1", "Operations").Count(&count)
	if count != 1 {
		t.Fatalf("evaluation count after resubmit = %d, want 1", count)
	}

	var eval entity.Evaluation
	env.DB.Where("vendor_id = ? AND department = ?", "ven-001", "Operations").First(&eval)
	if eval.OverallScore != 100.0 {
		t.Errorf("replaced score = %v, want 100.0", eval.OverallScore)
	}
}

func TestSubmitRejectsUnrated(t *testing.T) {
	env, _ := setupEvaluationTest(t)
	token := testutil.EvaluatorToken("Operations")

	partial := []map[string]interface{}{
		{"criteria_id": "op1", "score": 4},
		{"criteria_id": "op2", "score": 5},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/evaluations", submitBody(partial), token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("partial submission: status %d, want 400", w.Code)
	}

	var count int64
	env.DB.Model(&entity.Evaluation{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected submission persisted %d rows", count)
	}
}

func TestSubmitRejectsLowScoreWithoutComment(t *testing.T) {
	env, _ := setupEvaluationTest(t)
	token := testutil.EvaluatorToken("Operations")

	low := []map[string]interface{}{
		{"criteria_id": "op1", "score": 2},
		{"criteria_id": "op2", "score": 5},
		{"criteria_id": "op3", "score": 3},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/evaluations", submitBody(low), token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("low score without comment: status %d, want 400", w.Code)
	}

	low[0]["comment"] = "two missed pickups in March"
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/evaluations", submitBody(low), token)
	if w.Code != http.StatusCreated {
		t.Errorf("low score with comment: status %d, body %s", w.Code, w.Body.String())
	}
}

func TestSubmitRejectsLockedPeriod(t *testing.T) {
	env, _ := setupEvaluationTest(t)
	token := testutil.EvaluatorToken("Operations")

	env.DB.Model(&entity.Period{}).Where("id = ?", "per-001").
		Update("status", entity.PeriodStatusLocked)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/evaluations", submitBody(opsScores()), token)
	if w.Code != http.StatusForbidden {
		t.Errorf("locked period: status %d, want 403", w.Code)
	}
}

func TestSubmitRejectsForeignDepartment(t *testing.T) {
	env, _ := setupEvaluationTest(t)
	token := testutil.EvaluatorToken("Security")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/evaluations", submitBody(opsScores()), token)
	if w.Code != http.StatusForbidden {
		t.Errorf("department not in template: status %d, want 403", w.Code)
	}
}

func TestConsolidationAfterFinalDepartment(t *testing.T) {
	env, repos := setupEvaluationTest(t)

	// Two of three required departments submitted: no report yet.
	submit := func(dept string, scores []map[string]interface{}) {
		t.Helper()
		w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/evaluations",
			submitBody(scores), testutil.EvaluatorToken(dept))
		if w.Code != http.StatusCreated {
			t.Fatalf("submit for %s: status %d, body %s", dept, w.Code, w.Body.String())
		}
	}

	submit("Operations", opsScores()) // 82.0
	submit("Finance", []map[string]interface{}{{"criteria_id": "fi1", "score": 4}}) // 80.0

	var count int64
	env.DB.Model(&entity.ConsolidatedReport{}).Count(&count)
	if count != 0 {
		t.Fatalf("report generated before all departments submitted")
	}

	submit("Safety", []map[string]interface{}{{"criteria_id": "sa1", "score": 5}}) // 100.0

	reports, err := repos.Report.FindAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("report count = %d, want 1", len(reports))
	}

	// 82*0.5 + 80*0.3 + 100*0.2 = 85.0
	report := reports[0]
	if report.FinalWeightedScore != 85.0 {
		t.Errorf("final weighted score = %v, want 85.0", report.FinalWeightedScore)
	}
	if len(report.DeptBreakdown) != 3 {
		t.Errorf("breakdown rows = %d, want 3", len(report.DeptBreakdown))
	}

	// A resubmission regenerates the same report row rather than adding one.
	submit("Safety", []map[string]interface{}{{"criteria_id": "sa1", "score": 4, "comment": ""}})

	env.DB.Model(&entity.ConsolidatedReport{}).Count(&count)
	if count != 1 {
		t.Errorf("report count after resubmit = %d, want 1", count)
	}
	var updated entity.ConsolidatedReport
	env.DB.Where("vendor_id = ? AND period = ?", "ven-001", "2026-Q1").First(&updated)
	// 82*0.5 + 80*0.3 + 80*0.2 = 81.0
	if updated.FinalWeightedScore != 81.0 {
		t.Errorf("regenerated score = %v, want 81.0", updated.FinalWeightedScore)
	}
}

func TestPreviewDoesNotPersist(t *testing.T) {
	env, _ := setupEvaluationTest(t)
	token := testutil.EvaluatorToken("Operations")

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/evaluations/preview", submitBody(opsScores()), token)
	if w.Code != http.StatusOK {
		t.Fatalf("preview: status %d, body %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data, _ := resp["data"].(map[string]interface{})
	if score, _ := data["score"].(float64); score != 82.0 {
		t.Errorf("preview score = %v, want 82.0", score)
	}

	var count int64
	env.DB.Model(&entity.Evaluation{}).Count(&count)
	if count != 0 {
		t.Errorf("preview persisted %d evaluations", count)
	}
}

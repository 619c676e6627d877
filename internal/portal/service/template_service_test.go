package service

import (
	"errors"
	"testing"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
)

func validStructure() entity.TemplateStructure {
	return entity.TemplateStructure{
		{
			DepartmentName:   "Operations",
			DepartmentWeight: 60,
			Criteria: []entity.TemplateCriteria{
				{CriteriaID: "op1", CriteriaName: "Delivery", Weightage: 70},
				{CriteriaID: "op2", CriteriaName: "Quality", Weightage: 30},
			},
		},
		{
			DepartmentName:   "Finance",
			DepartmentWeight: 40,
			Criteria: []entity.TemplateCriteria{
				{CriteriaID: "fi1", CriteriaName: "Invoicing accuracy", Weightage: 100},
			},
		},
	}
}

func TestValidateStructure(t *testing.T) {
	if err := ValidateStructure(validStructure()); err != nil {
		t.Fatalf("valid structure rejected: %v", err)
	}

	if err := ValidateStructure(nil); err == nil {
		t.Error("empty structure accepted")
	}

	s := validStructure()
	s[0].DepartmentWeight = 55
	if err := ValidateStructure(s); !errors.Is(err, ErrInvalidWeights) {
		t.Errorf("department weights 95: got %v, want ErrInvalidWeights", err)
	}

	s = validStructure()
	s[1].Criteria[0].Weightage = 90
	if err := ValidateStructure(s); !errors.Is(err, ErrInvalidWeights) {
		t.Errorf("criteria weights 90: got %v, want ErrInvalidWeights", err)
	}

	// A tiny float drift stays within tolerance
	s = validStructure()
	s[0].Criteria[0].Weightage = 70.004
	s[0].Criteria[1].Weightage = 29.999
	if err := ValidateStructure(s); err != nil {
		t.Errorf("structure within tolerance rejected: %v", err)
	}

	s = validStructure()
	s[1].DepartmentName = "operations"
	if err := ValidateStructure(s); err == nil {
		t.Error("duplicate department (case-insensitive) accepted")
	}

	s = validStructure()
	s[1].Criteria[0].CriteriaID = "op1"
	if err := ValidateStructure(s); err == nil {
		t.Error("duplicate criterion id accepted")
	}

	s = validStructure()
	s[0].Criteria = nil
	if err := ValidateStructure(s); err == nil {
		t.Error("department without criteria accepted")
	}
}

func TestSectionFor(t *testing.T) {
	tmpl := &entity.EvaluationTemplate{
		VendorType: entity.VendorTypeTransport,
		Structure:  validStructure(),
	}

	section, err := SectionFor(tmpl, "operations")
	if err != nil {
		t.Fatalf("SectionFor case-insensitive lookup failed: %v", err)
	}
	if section.DepartmentName != "Operations" {
		t.Errorf("SectionFor returned %q, want Operations", section.DepartmentName)
	}

	if _, err := SectionFor(tmpl, "Security"); !errors.Is(err, ErrDeptNotRequired) {
		t.Errorf("SectionFor unknown department: got %v, want ErrDeptNotRequired", err)
	}
}

package service

import (
	"errors"
	"math"
	"testing"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
)

func operationsSection() *entity.TemplateDepartment {
	return &entity.TemplateDepartment{
		DepartmentName:   "Operations",
		DepartmentWeight: 50,
		Criteria: []entity.TemplateCriteria{
			{CriteriaID: "c1", CriteriaName: "On-time delivery", Weightage: 50},
			{CriteriaID: "c2", CriteriaName: "Responsiveness", Weightage: 30},
			{CriteriaID: "c3", CriteriaName: "Documentation", Weightage: 20},
		},
	}
}

func TestScoreSection(t *testing.T) {
	section := operationsSection()

	// (4/5)*50 + (5/5)*30 + (3/5)*20 = 40 + 30 + 12 = 82
	got := ScoreSection(section, map[string]int{"c1": 4, "c2": 5, "c3": 3})
	if math.Abs(got-82.0) > 1e-9 {
		t.Errorf("ScoreSection = %v, want 82.0", got)
	}

	// All fives gives the full department weightage
	got = ScoreSection(section, map[string]int{"c1": 5, "c2": 5, "c3": 5})
	if math.Abs(got-100.0) > 1e-9 {
		t.Errorf("ScoreSection all fives = %v, want 100.0", got)
	}

	// All ones gives the floor, not zero
	got = ScoreSection(section, map[string]int{"c1": 1, "c2": 1, "c3": 1})
	if math.Abs(got-20.0) > 1e-9 {
		t.Errorf("ScoreSection all ones = %v, want 20.0", got)
	}
}

func TestValidateRatings(t *testing.T) {
	section := operationsSection()

	valid := map[string]int{"c1": 4, "c2": 5, "c3": 3}
	if err := ValidateRatings(section, valid, nil); err != nil {
		t.Errorf("valid ratings rejected: %v", err)
	}

	// Missing criterion
	err := ValidateRatings(section, map[string]int{"c1": 4, "c2": 5}, nil)
	if !errors.Is(err, ErrUnratedCriteria) {
		t.Errorf("missing rating: got %v, want ErrUnratedCriteria", err)
	}

	// Zero counts as unrated
	err = ValidateRatings(section, map[string]int{"c1": 4, "c2": 5, "c3": 0}, nil)
	if !errors.Is(err, ErrUnratedCriteria) {
		t.Errorf("zero rating: got %v, want ErrUnratedCriteria", err)
	}

	// Out of range
	err = ValidateRatings(section, map[string]int{"c1": 6, "c2": 5, "c3": 3}, nil)
	if !errors.Is(err, ErrInvalidRating) {
		t.Errorf("rating 6: got %v, want ErrInvalidRating", err)
	}
	err = ValidateRatings(section, map[string]int{"c1": -1, "c2": 5, "c3": 3}, nil)
	if !errors.Is(err, ErrInvalidRating) {
		t.Errorf("rating -1: got %v, want ErrInvalidRating", err)
	}

	// Low score requires a comment
	low := map[string]int{"c1": 2, "c2": 5, "c3": 3}
	err = ValidateRatings(section, low, nil)
	if !errors.Is(err, ErrJustificationNeeded) {
		t.Errorf("low score without comment: got %v, want ErrJustificationNeeded", err)
	}
	err = ValidateRatings(section, low, map[string]string{"c1": "   "})
	if !errors.Is(err, ErrJustificationNeeded) {
		t.Errorf("low score with blank comment: got %v, want ErrJustificationNeeded", err)
	}
	if err := ValidateRatings(section, low, map[string]string{"c1": "late twice this quarter"}); err != nil {
		t.Errorf("low score with comment rejected: %v", err)
	}

	// Rating 1 also needs a justification
	err = ValidateRatings(section, map[string]int{"c1": 1, "c2": 5, "c3": 3}, nil)
	if !errors.Is(err, ErrJustificationNeeded) {
		t.Errorf("rating 1 without comment: got %v, want ErrJustificationNeeded", err)
	}

	// Scores for criteria outside the section are rejected
	err = ValidateRatings(section, map[string]int{"c1": 4, "c2": 5, "c3": 3, "cX": 4}, nil)
	if !errors.Is(err, ErrUnknownCriteria) {
		t.Errorf("unknown criterion: got %v, want ErrUnknownCriteria", err)
	}
}

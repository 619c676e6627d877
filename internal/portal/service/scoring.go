package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shariin1057/vendor-valuate/internal/portal/entity"
)

// 评分约束
const (
	MinRating = 1
	MaxRating = 5

	// LowScoreThreshold 低分线，不高于该分数的评分必须附说明
	LowScoreThreshold = 2
)

var (
	ErrUnratedCriteria     = errors.New("all criteria must be scored before submitting")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrJustificationNeeded = errors.New("a justification comment is required for scores of 2 or below")
	ErrUnknownCriteria     = errors.New("score refers to a criterion not in the department section")
)

// ScoreSection converts raw 1-5 ratings into the weighted 0-100 department
// score: sum of (rating/5)*weightage over the section's criteria. Unrated
// criteria contribute zero, so callers validate with ValidateRatings before
// treating the result as a submittable score.
func ScoreSection(section *entity.TemplateDepartment, ratings map[string]int) float64 {
	var total float64
	for _, crit := range section.Criteria {
		raw := ratings[crit.CriteriaID]
		total += float64(raw) / float64(MaxRating) * crit.Weightage
	}
	return total
}

// ValidateRatings 校验一次提交的评分集是否满足提交条件：
// section 内每项都已评分且在 1-5 之间，低分项必须有非空说明。
func ValidateRatings(section *entity.TemplateDepartment, ratings map[string]int, comments map[string]string) error {
	known := make(map[string]bool, len(section.Criteria))
	for _, crit := range section.Criteria {
		known[crit.CriteriaID] = true
		raw, ok := ratings[crit.CriteriaID]
		if !ok || raw == 0 {
			return fmt.Errorf("%w: %s", ErrUnratedCriteria, crit.CriteriaName)
		}
		if raw < MinRating || raw > MaxRating {
			return fmt.Errorf("%w: %s", ErrInvalidRating, crit.CriteriaName)
		}
		if raw <= LowScoreThreshold && strings.TrimSpace(comments[crit.CriteriaID]) == "" {
			return fmt.Errorf("%w: %s", ErrJustificationNeeded, crit.CriteriaName)
		}
	}
	for id := range ratings {
		if !known[id] {
			return fmt.Errorf("%w: %s", ErrUnknownCriteria, id)
		}
	}
	return nil
}

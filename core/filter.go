package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/talentops/ninebox/schema"
)

// ErrInvalidFilter marks a malformed filter field or value.
var ErrInvalidFilter = errors.New("invalid filter")

// FilterEmployees returns the employees whose value for the given field
// matches the given value. Field names follow the analysis dimensions plus
// the two rating fields. Unknown fields, or invalid rating values for the
// rating fields, yield ErrInvalidFilter.
func FilterEmployees(employees []schema.Employee, field, value string) ([]schema.Employee, error) {
	var match func(e *schema.Employee) bool

	switch field {
	case schema.AnalysisLocation:
		match = func(e *schema.Employee) bool { return e.Location == value }
	case schema.AnalysisFunction:
		match = func(e *schema.Employee) bool { return e.Function == value }
	case schema.AnalysisLevel:
		match = func(e *schema.Employee) bool { return e.Level == value }
	case schema.AnalysisManager:
		match = func(e *schema.Employee) bool { return e.ManagerID == value }
	case schema.AnalysisTenure:
		now := time.Now()
		match = func(e *schema.Employee) bool { return e.TenureBand(now) == value }
	case "performance":
		rating, err := schema.ParseRating(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
		match = func(e *schema.Employee) bool { return e.Performance == rating }
	case "potential":
		rating, err := schema.ParseRating(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
		match = func(e *schema.Employee) bool { return e.Potential == rating }
	default:
		return nil, fmt.Errorf("%w: unknown field %q", ErrInvalidFilter, field)
	}

	var filtered []schema.Employee
	for i := range employees {
		if match(&employees[i]) {
			filtered = append(filtered, employees[i].Clone())
		}
	}
	return filtered, nil
}

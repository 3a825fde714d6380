// Package schema has configs, models and shared types for all parts of ninebox.
package schema

import (
	"slices"
	"time"
)

// Employee represents a single person on the talent grid.
// It combines immutable identity fields from the roster import with the
// calibration fields that are mutable during a session.
type Employee struct {
	ID          string    `json:"id"`           // Stable employee identifier from the roster
	Name        string    `json:"name"`         // Display name
	Title       string    `json:"title"`        // Job title
	Level       string    `json:"level"`        // Job level band (e.g. IC3, M2)
	Location    string    `json:"location"`     // Office or region
	Function    string    `json:"function"`     // Business function (e.g. Engineering, Sales)
	ManagerID   string    `json:"manager_id"`   // Employee ID of the direct manager; empty for roots
	ManagerName string    `json:"manager_name"` // Display name of the manager, informational only
	HireDate    time.Time `json:"hire_date"`    // Start date used to derive the tenure band

	Performance Rating `json:"performance"` // Performance rating on the 3-point scale
	Potential   Rating `json:"potential"`   // Potential rating on the 3-point scale
	GridPos     int    `json:"grid_pos"`    // Derived 1-9 grid position

	Flags           []string `json:"flags"`            // Calibration flags from the allowed list
	Notes           string   `json:"notes"`            // Free-form calibration notes
	DevelopmentPlan string   `json:"development_plan"` // Free-form development plan

	ModifiedInSession bool `json:"modified_in_session"` // True when the record differs from the original snapshot
}

// Clone returns a deep copy of the employee, including the flags slice.
func (e *Employee) Clone() Employee {
	clone := *e
	if e.Flags != nil {
		clone.Flags = make([]string, len(e.Flags))
		copy(clone.Flags, e.Flags)
	}
	return clone
}

// HasFlag reports whether the employee currently carries the given flag.
func (e *Employee) HasFlag(flag string) bool {
	return slices.Contains(e.Flags, flag)
}

// SameRating reports whether two employees share performance and potential.
func (e *Employee) SameRating(other *Employee) bool {
	return e.Performance == other.Performance && e.Potential == other.Potential
}

// TenureBand buckets the employee's tenure relative to now into a coarse
// categorical band used as an analysis dimension.
func (e *Employee) TenureBand(now time.Time) string {
	if e.HireDate.IsZero() {
		return "unknown"
	}
	years := now.Sub(e.HireDate).Hours() / (24 * 365)
	switch {
	case years < 1:
		return "<1y"
	case years < 3:
		return "1-3y"
	case years < 5:
		return "3-5y"
	default:
		return "5y+"
	}
}

// AllowedFlags is the fixed list of calibration flags an employee may carry.
var AllowedFlags = []string{
	"flight_risk",
	"ready_now",
	"new_to_role",
	"key_talent",
	"succession_candidate",
}

// IsAllowedFlag reports whether the flag is part of the fixed allowed list.
func IsAllowedFlag(flag string) bool {
	return slices.Contains(AllowedFlags, flag)
}

// CloneEmployees returns a deep copy of a roster slice, preserving order.
func CloneEmployees(employees []Employee) []Employee {
	clones := make([]Employee, len(employees))
	for i := range employees {
		clones[i] = employees[i].Clone()
	}
	return clones
}

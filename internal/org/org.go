// Package org derives reporting structure from the roster. Manager links
// are by employee id; display names are informational only. Bad data (a
// cycle, a dangling manager id) is reported, never treated as an error.
package org

import (
	"slices"
	"sync"

	"github.com/talentops/ninebox/schema"
)

// ValidationResult summarizes structural problems found in the roster.
type ValidationResult struct {
	Total     int        `json:"total"`
	Roots     []string   `json:"roots"`     // Employees with no manager
	Orphans   []string   `json:"orphans"`   // Employees whose manager id is not in the roster
	Cycles    [][]string `json:"cycles"`    // Each cycle as the ordered ids along the loop
	SelfLinks []string   `json:"self_links"` // Employees managing themselves
}

// Healthy reports whether the roster has no structural problems.
func (r *ValidationResult) Healthy() bool {
	return len(r.Orphans) == 0 && len(r.Cycles) == 0 && len(r.SelfLinks) == 0
}

// Service answers reporting-structure queries over a fixed roster. The
// tree is built lazily on first use and memoized; a Service is safe for
// concurrent readers.
type Service struct {
	employees []schema.Employee

	once    sync.Once
	byID    map[string]*schema.Employee
	reports map[string][]string // manager id -> sorted report ids
}

// NewService builds a Service over a snapshot of the roster.
func NewService(employees []schema.Employee) *Service {
	return &Service{employees: schema.CloneEmployees(employees)}
}

func (s *Service) build() {
	s.once.Do(func() {
		s.byID = make(map[string]*schema.Employee, len(s.employees))
		s.reports = make(map[string][]string)
		for i := range s.employees {
			emp := &s.employees[i]
			s.byID[emp.ID] = emp
		}
		for i := range s.employees {
			emp := &s.employees[i]
			if emp.ManagerID == "" {
				continue
			}
			s.reports[emp.ManagerID] = append(s.reports[emp.ManagerID], emp.ID)
		}
		for managerID := range s.reports {
			slices.Sort(s.reports[managerID])
		}
	})
}

// Lookup returns the employee with the given id.
func (s *Service) Lookup(id string) (schema.Employee, bool) {
	s.build()
	emp, ok := s.byID[id]
	if !ok {
		return schema.Employee{}, false
	}
	return emp.Clone(), true
}

// DirectReports returns the sorted ids reporting directly to the manager.
func (s *Service) DirectReports(managerID string) []string {
	s.build()
	reports := s.reports[managerID]
	return slices.Clone(reports)
}

// Subtree returns the ids of everyone under the manager, including
// indirect reports, in breadth-first order. Cycles are tolerated: each id
// is visited at most once.
func (s *Service) Subtree(managerID string) []string {
	s.build()
	seen := map[string]bool{managerID: true}
	var out []string
	queue := slices.Clone(s.reports[managerID])
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
		queue = append(queue, s.reports[id]...)
	}
	return out
}

// ReportingChain walks from the employee up through manager links and
// returns the ids from the employee to the topmost reachable manager.
// The walk stops before revisiting an id, so a cyclic roster yields the
// longest acyclic prefix instead of looping forever.
func (s *Service) ReportingChain(employeeID string) []string {
	s.build()
	if _, ok := s.byID[employeeID]; !ok {
		return nil
	}

	seen := make(map[string]bool)
	var chain []string
	id := employeeID
	for {
		if seen[id] {
			break
		}
		seen[id] = true
		chain = append(chain, id)

		emp, ok := s.byID[id]
		if !ok || emp.ManagerID == "" {
			break
		}
		next, ok := s.byID[emp.ManagerID]
		if !ok {
			break // dangling manager id ends the chain
		}
		id = next.ID
	}
	return chain
}

// Validate scans the roster for structural problems. It always returns a
// result; bad data is findings, not failure.
func (s *Service) Validate() *ValidationResult {
	s.build()
	result := &ValidationResult{Total: len(s.employees)}

	for i := range s.employees {
		emp := &s.employees[i]
		switch {
		case emp.ManagerID == "":
			result.Roots = append(result.Roots, emp.ID)
		case emp.ManagerID == emp.ID:
			result.SelfLinks = append(result.SelfLinks, emp.ID)
		default:
			if _, ok := s.byID[emp.ManagerID]; !ok {
				result.Orphans = append(result.Orphans, emp.ID)
			}
		}
	}
	slices.Sort(result.Roots)
	slices.Sort(result.Orphans)
	slices.Sort(result.SelfLinks)

	result.Cycles = s.findCycles()
	return result
}

// findCycles detects manager-link loops with a three-color walk. Each
// cycle is reported once, starting from its smallest member id.
func (s *Service) findCycles() [][]string {
	const (
		white = 0 // unvisited
		gray  = 1 // on the current path
		black = 2 // fully processed
	)
	state := make(map[string]int, len(s.employees))

	ids := make([]string, 0, len(s.employees))
	for i := range s.employees {
		ids = append(ids, s.employees[i].ID)
	}
	slices.Sort(ids)

	var cycles [][]string
	for _, start := range ids {
		if state[start] != white {
			continue
		}
		var path []string
		id := start
		for {
			if emp, ok := s.byID[id]; !ok || state[id] == black {
				break
			} else if state[id] == gray {
				// Found a loop: slice the path from the first occurrence.
				at := slices.Index(path, id)
				cycles = append(cycles, canonicalCycle(path[at:]))
				break
			} else {
				state[id] = gray
				path = append(path, id)
				if emp.ManagerID == "" || emp.ManagerID == emp.ID {
					// Roots end the walk; self-links are reported
					// separately, not as cycles.
					break
				}
				id = emp.ManagerID
			}
		}
		for _, walked := range path {
			state[walked] = black
		}
	}
	return cycles
}

// canonicalCycle rotates the loop so it starts at its smallest id, making
// cycle reporting deterministic regardless of traversal order.
func canonicalCycle(loop []string) []string {
	at := 0
	for i, id := range loop {
		if id < loop[at] {
			at = i
		}
	}
	out := make([]string, 0, len(loop))
	out = append(out, loop[at:]...)
	out = append(out, loop[:at]...)
	return out
}

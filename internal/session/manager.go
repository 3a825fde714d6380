// Package session holds the in-memory calibration session state machine.
// A Store keeps one active session per user; all mutations go through it so
// the event log stays consistent with the working roster copy.
package session

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/talentops/ninebox/schema"
)

// liveSession pairs a session record with its own mutex so operations on
// different users' sessions never contend with each other.
type liveSession struct {
	mu     sync.Mutex
	record *schema.SessionRecord
	index  map[string]int // employee id -> position in record.Current
}

// Store is an injected, concurrency-safe registry of active sessions keyed
// by user id. The zero value is not usable; construct with NewStore.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*liveSession
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*liveSession)}
}

// Create starts a new session for the user from an imported roster,
// replacing any existing session. The roster is deep-copied twice so the
// original snapshot stays immutable for net-change comparisons.
func (s *Store) Create(userID string, employees []schema.Employee) *schema.SessionRecord {
	now := time.Now().UTC()
	record := &schema.SessionRecord{
		SessionID: uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
		Original:  schema.CloneEmployees(employees),
		Current:   schema.CloneEmployees(employees),
	}

	s.mu.Lock()
	s.sessions[userID] = &liveSession{record: record, index: indexByID(record.Current)}
	s.mu.Unlock()

	return record.Clone()
}

// Restore installs a previously persisted session record, replacing any
// active session for the same user.
func (s *Store) Restore(record *schema.SessionRecord) {
	clone := record.Clone()
	s.mu.Lock()
	s.sessions[clone.UserID] = &liveSession{record: clone, index: indexByID(clone.Current)}
	s.mu.Unlock()
}

// Delete discards the user's active session.
func (s *Store) Delete(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[userID]; !ok {
		return ErrNoActiveSession
	}
	delete(s.sessions, userID)
	return nil
}

// Snapshot returns a deep copy of the user's session for persistence or
// inspection.
func (s *Store) Snapshot(userID string) (*schema.SessionRecord, error) {
	sess, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.record.Clone(), nil
}

// Employees returns a deep copy of the session's working roster.
func (s *Store) Employees(userID string) ([]schema.Employee, error) {
	sess, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return schema.CloneEmployees(sess.record.Current), nil
}

// Events returns a copy of the session's surviving event log.
func (s *Store) Events(userID string) ([]schema.Event, error) {
	sess, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	events := make([]schema.Event, len(sess.record.Events))
	copy(events, sess.record.Events)
	return events, nil
}

// MoveEmployee changes an employee's grid placement and records the move.
// Moving back to the original ratings cancels the event entirely; the
// surviving event always spans original -> current, not the last hop.
func (s *Store) MoveEmployee(userID, employeeID string, performance, potential schema.Rating) (schema.Employee, error) {
	if !performance.Valid() || !potential.Valid() {
		return schema.Employee{}, fmt.Errorf("%w: %s/%s", ErrInvalidRating, performance, potential)
	}

	return s.mutate(userID, employeeID, func(emp, orig *schema.Employee) (*schema.Event, bool) {
		if emp.Performance == performance && emp.Potential == potential {
			return nil, false // no-op
		}
		emp.Performance = performance
		emp.Potential = potential
		emp.GridPos = schema.GridPosition(performance, potential)

		event := &schema.Event{
			EmployeeID:      employeeID,
			Kind:            schema.EventMove,
			FromPerformance: orig.Performance,
			FromPotential:   orig.Potential,
			FromPosition:    orig.GridPos,
			ToPerformance:   performance,
			ToPotential:     potential,
			ToPosition:      emp.GridPos,
		}
		return event, !emp.SameRating(orig)
	})
}

// AddFlag attaches a calibration flag to an employee. Adding a flag the
// employee already carries is a no-op. Re-adding a flag present in the
// original snapshot cancels the prior removal instead of logging anything.
func (s *Store) AddFlag(userID, employeeID, flag string) (schema.Employee, error) {
	if !schema.IsAllowedFlag(flag) {
		return schema.Employee{}, fmt.Errorf("%w: %q", ErrInvalidFlag, flag)
	}

	return s.mutate(userID, employeeID, func(emp, orig *schema.Employee) (*schema.Event, bool) {
		if emp.HasFlag(flag) {
			return nil, false
		}
		emp.Flags = append(emp.Flags, flag)
		if orig.HasFlag(flag) {
			return &schema.Event{EmployeeID: employeeID, Kind: schema.EventFlagRemove, Flag: flag}, false
		}
		return &schema.Event{EmployeeID: employeeID, Kind: schema.EventFlagAdd, Flag: flag}, true
	})
}

// RemoveFlag detaches a calibration flag. Removing an absent flag is a
// no-op; removing a flag added within the session cancels the addition.
func (s *Store) RemoveFlag(userID, employeeID, flag string) (schema.Employee, error) {
	return s.mutate(userID, employeeID, func(emp, orig *schema.Employee) (*schema.Event, bool) {
		if !emp.HasFlag(flag) {
			return nil, false
		}
		emp.Flags = slices.DeleteFunc(emp.Flags, func(f string) bool { return f == flag })
		if !orig.HasFlag(flag) {
			return &schema.Event{EmployeeID: employeeID, Kind: schema.EventFlagAdd, Flag: flag}, false
		}
		return &schema.Event{EmployeeID: employeeID, Kind: schema.EventFlagRemove, Flag: flag}, true
	})
}

// UpdateNotes replaces the employee's calibration notes. Restoring the
// original text cancels the event.
func (s *Store) UpdateNotes(userID, employeeID, notes string) (schema.Employee, error) {
	return s.mutate(userID, employeeID, func(emp, orig *schema.Employee) (*schema.Event, bool) {
		if emp.Notes == notes {
			return nil, false
		}
		emp.Notes = notes
		event := &schema.Event{
			EmployeeID: employeeID,
			Kind:       schema.EventNoteUpdate,
			Before:     orig.Notes,
			After:      notes,
		}
		return event, notes != orig.Notes
	})
}

// UpdatePlan replaces the employee's development plan with the same
// cancellation semantics as UpdateNotes.
func (s *Store) UpdatePlan(userID, employeeID, plan string) (schema.Employee, error) {
	return s.mutate(userID, employeeID, func(emp, orig *schema.Employee) (*schema.Event, bool) {
		if emp.DevelopmentPlan == plan {
			return nil, false
		}
		emp.DevelopmentPlan = plan
		event := &schema.Event{
			EmployeeID: employeeID,
			Kind:       schema.EventPlanUpdate,
			Before:     orig.DevelopmentPlan,
			After:      plan,
		}
		return event, plan != orig.DevelopmentPlan
	})
}

// mutate runs one tracked change under the session lock. The mutator edits
// the working copy in place and returns the event for the change's slot,
// plus whether the change is a net delta against the original snapshot. A
// nil slot means the call changed nothing and the log and timestamps are
// left alone. Otherwise any existing event in the same slot is dropped,
// and the new event is appended only for a net change.
func (s *Store) mutate(userID, employeeID string, fn func(emp, orig *schema.Employee) (*schema.Event, bool)) (schema.Employee, error) {
	sess, err := s.lookup(userID)
	if err != nil {
		return schema.Employee{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	pos, ok := sess.index[employeeID]
	if !ok {
		return schema.Employee{}, fmt.Errorf("%w: %q", ErrEmployeeNotFound, employeeID)
	}
	emp := &sess.record.Current[pos]
	orig := &sess.record.Original[pos]

	slot, net := fn(emp, orig)
	if slot == nil {
		return emp.Clone(), nil
	}

	sess.record.Events = slices.DeleteFunc(sess.record.Events, func(e schema.Event) bool {
		return e.Matches(slot)
	})
	if net {
		slot.Timestamp = time.Now().UTC()
		sess.record.Events = append(sess.record.Events, *slot)
	}
	emp.ModifiedInSession = !sameAsOriginal(emp, orig)
	sess.record.UpdatedAt = time.Now().UTC()

	return emp.Clone(), nil
}

func sameAsOriginal(emp, orig *schema.Employee) bool {
	return emp.SameRating(orig) &&
		emp.Notes == orig.Notes &&
		emp.DevelopmentPlan == orig.DevelopmentPlan &&
		flagSetEqual(emp.Flags, orig.Flags)
}

// flagSetEqual compares flags as sets: session operations may reorder the
// slice relative to the import order.
func flagSetEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, flag := range a {
		if !slices.Contains(b, flag) {
			return false
		}
	}
	return true
}

func (s *Store) lookup(userID string) (*liveSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, fmt.Errorf("%w for user %q", ErrNoActiveSession, userID)
	}
	return sess, nil
}

func indexByID(employees []schema.Employee) map[string]int {
	index := make(map[string]int, len(employees))
	for i, emp := range employees {
		index[emp.ID] = i
	}
	return index
}

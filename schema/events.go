package schema

import "time"

// EventKind tags the variant of a session event.
type EventKind string

// Session event kinds.
const (
	EventMove       EventKind = "move"
	EventFlagAdd    EventKind = "flag_add"
	EventFlagRemove EventKind = "flag_remove"
	EventNoteUpdate EventKind = "note_update"
	EventPlanUpdate EventKind = "plan_update"
)

// Event records one tracked change to an employee within a session.
// Only the fields relevant to the kind are populated: move events carry the
// rating transition, flag events carry Flag, and note/plan events carry the
// Before/After text. An event survives in the log only while it represents
// a net change from the original snapshot.
type Event struct {
	EmployeeID string    `json:"employee_id"`
	Kind       EventKind `json:"kind"`
	Timestamp  time.Time `json:"timestamp"`

	Flag string `json:"flag,omitempty"` // Flag value for flag_add / flag_remove

	FromPerformance Rating `json:"from_performance,omitempty"`
	ToPerformance   Rating `json:"to_performance,omitempty"`
	FromPotential   Rating `json:"from_potential,omitempty"`
	ToPotential     Rating `json:"to_potential,omitempty"`
	FromPosition    int    `json:"from_position,omitempty"`
	ToPosition      int    `json:"to_position,omitempty"`

	Before string `json:"before,omitempty"` // Prior text for note/plan updates
	After  string `json:"after,omitempty"`  // New text for note/plan updates
}

// Matches reports whether two events refer to the same logical slot in the
// event log: same employee and kind, and for flag events the same flag value.
func (e *Event) Matches(other *Event) bool {
	if e.EmployeeID != other.EmployeeID || e.Kind != other.Kind {
		return false
	}
	if e.Kind == EventFlagAdd || e.Kind == EventFlagRemove {
		return e.Flag == other.Flag
	}
	return true
}

package schema

import "time"

// SessionRecord is the serializable shape of a calibration session.
// The core defines this shape; the storage backend only persists it.
// Original is the immutable import snapshot, Current the working copy.
type SessionRecord struct {
	SessionID string     `json:"session_id"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Original  []Employee `json:"original"`
	Current   []Employee `json:"current"`
	Events    []Event    `json:"events"`
}

// Clone returns a deep copy of the record.
func (r *SessionRecord) Clone() *SessionRecord {
	clone := *r
	clone.Original = CloneEmployees(r.Original)
	clone.Current = CloneEmployees(r.Current)
	if r.Events != nil {
		clone.Events = make([]Event, len(r.Events))
		copy(clone.Events, r.Events)
	}
	return &clone
}

package schema

import "time"

// StoreStatus reports the health of the session store.
type StoreStatus struct {
	Backend        string    `json:"backend"`
	Connected      bool      `json:"connected"`
	TotalSessions  int       `json:"total_sessions"`
	LastSavedTime  time.Time `json:"last_saved_time"`
	TableSizeBytes int64     `json:"table_size_bytes"`
}

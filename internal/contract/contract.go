// Package contract provides interfaces and shared utilities for the ninebox CLI's internal architecture.
package contract

import (
	"context"

	"github.com/talentops/ninebox/schema"
)

// SessionStore defines the interface for session persistence.
// The core defines the serializable shape (schema.SessionRecord); the store
// only moves it in and out of a backend. This allows mocking for testing.
type SessionStore interface {
	Save(record *schema.SessionRecord) error
	Load(userID string) (*schema.SessionRecord, error)
	Delete(userID string) error
	Status() (*schema.StoreStatus, error)
	Close() error
}

// StoreManager exposes the configured stores to command and core layers.
type StoreManager interface {
	GetSessionStore() SessionStore
}

// RosterSource loads an ordered sequence of employee records from an
// external collaborator (CSV hand-off from the Excel import layer).
type RosterSource interface {
	Load(ctx context.Context, path string) ([]schema.Employee, error)
}

package sessiondb

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &SessionStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// SessionStoreManager exposes the configured session store and implements
// contract.StoreManager.
type SessionStoreManager struct {
	sync.Mutex
	sessions contract.SessionStore
}

var _ contract.StoreManager = &SessionStoreManager{} // Compile-time check

// GetSessionStore implements the StoreManager interface.
func (m *SessionStoreManager) GetSessionStore() contract.SessionStore {
	m.Lock()
	defer m.Unlock()
	return m.sessions
}

// InitStore initializes the global store manager. Backend may be
// NoneBackend, which installs a no-op store.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		store, err := NewSessionStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize session store: %w", err)
			return
		}

		Manager.Lock()
		Manager.sessions = store
		Manager.Unlock()
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.sessions != nil {
			_ = Manager.sessions.Close()
		}
	})
}

// ClearSessions clears the persisted sessions for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearSessions(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, sessionsTable)

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, sessionsTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported session backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/internal/outwriter"
	"github.com/talentops/ninebox/internal/sessiondb"
	"github.com/talentops/ninebox/schema"
)

// sessionSetup loads minimal configuration needed for session store operations.
// This is used by commands that need store access without full shared setup.
func sessionSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get session-related config values
	backendStr := viper.GetString("session-backend")
	connStr := viper.GetString("session-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the store with the loaded config
	if err := sessiondb.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	cfg.SessionBackend = backend
	cfg.SessionDBConnect = connStr
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// sessionSetupWrapper wraps sessionSetup to provide PreRunE for session commands.
func sessionSetupWrapper(_ *cobra.Command, _ []string) error {
	return sessionSetup()
}

// sessionMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create tables,
// allowing migrations to run on a fresh database.
func sessionMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get session-related config values
	backendStr := viper.GetString("session-backend")
	connStr := viper.GetString("session-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetSessionDBFilePath()
	}

	cfg.SessionBackend = backend
	cfg.SessionDBConnect = connStr

	return nil
}

// sessionMigrateSetupWrapper wraps sessionMigrateSetup to provide PreRunE for migrate command.
func sessionMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return sessionMigrateSetup()
}

// sessionCmd focused on session persistence management.
//
// Note: Session subcommands use minimal initialization (sessionSetup) instead of
// the full sharedSetup used by analysis commands. This avoids roster loading
// and complex config processing for simple store operations.
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persisted review sessions",
	Long: `Manage the persisted talent review sessions.

A review session captures the roster snapshot taken at session start, the
working copy being edited, and the net-change event log. Sessions are
persisted per user so an interrupted review can be resumed.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show session store statistics
  clear   - Remove all persisted sessions
  migrate - Run database schema migrations

Examples:
  # Check session store status
  ninebox session status

  # Clear persisted sessions after a review cycle closes
  ninebox session clear`,
}

// sessionStatusCmd shows session store status.
var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display session store statistics and connection details",
	Long: `Show detailed information about the persisted review sessions.

Displays:
- Backend type and connection status
- Total number of persisted sessions
- Last save timestamp
- Total payload size

Use this to:
- Verify session persistence is enabled and working
- Check which reviews are still in flight
- Debug store connection issues

Examples:
  # Check session store status
  ninebox session status`,
	PreRunE: sessionSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := storeManager.GetSessionStore().Status()
		if err != nil {
			contract.LogFatal("Failed to get session store status", err)
		}
		if err := outwriter.WriteStoreStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to write session store status", err)
		}
	},
}

// sessionClearCmd clears the persisted sessions.
var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all persisted review sessions",
	Long: `Delete all persisted review sessions from the configured backend.

WARNING: This action cannot be undone. In-flight reviews will lose their
event logs and working copies.

Use this when:
- A review cycle has closed and snapshots are published
- The store may be stale or corrupted
- Testing session features

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the sessions table

Examples:
  # Clear SQLite sessions (default)
  ninebox session clear

  # Clear MySQL sessions (set connection string via env variable)
  NINEBOX_SESSION_BACKEND=mysql NINEBOX_SESSION_DB_CONNECT="..." ninebox session clear`,
	PreRunE: sessionSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := cfg.SessionDBConnect
		if dbFilePath == "" {
			dbFilePath = contract.GetSessionDBFilePath()
		}
		if err := sessiondb.ClearSessions(cfg.SessionBackend, dbFilePath, cfg.SessionDBConnect); err != nil {
			contract.LogFatal("Failed to clear sessions", err)
		}
		fmt.Println("Sessions cleared successfully.")
	},
}

// sessionMigrateCmd runs database migrations for the session store.
var sessionMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the session store.

Migrations allow:
- Upgrading to new schema versions when Ninebox is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  ninebox session migrate

  # Rollback to initial state
  ninebox session migrate --target-version 0`,
	PreRunE: sessionMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := sessiondb.MigrateSessions(cfg.SessionBackend, cfg.SessionDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

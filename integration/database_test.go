//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestNineboxWithMySQL tests the ninebox CLI with a MySQL session backend.
func TestNineboxWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "ninebox",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/ninebox?parseTime=true", host, port.Port())
	runSessionBackendSuite(t, "mysql", connStr)
}

// TestNineboxWithPostgres tests the ninebox CLI with a PostgreSQL session backend.
func TestNineboxWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runSessionBackendSuite(t, "postgresql", connStr)
}

// runSessionBackendSuite runs the session lifecycle commands against a server backend.
func runSessionBackendSuite(t *testing.T, backend, connStr string) {
	t.Helper()

	dir := t.TempDir()
	rosterPath := writeSampleRoster(t, dir)

	// Set environment variables
	_ = os.Setenv("NINEBOX_SESSION_BACKEND", backend)
	_ = os.Setenv("NINEBOX_SESSION_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("NINEBOX_SESSION_BACKEND") }()
	defer func() { _ = os.Unsetenv("NINEBOX_SESSION_DB_CONNECT") }()

	// Run ninebox session migrate
	_, err := runNinebox(t, dir, "session", "migrate")
	require.NoError(t, err)

	// Run ninebox session clear
	_, err = runNinebox(t, dir, "session", "clear")
	require.NoError(t, err)

	// Run ninebox analyze against the fixture roster
	_, err = runNinebox(t, dir, "analyze", rosterPath, "--min-sample", "5")
	require.NoError(t, err)

	// Run ninebox session status
	out, err := runNinebox(t, dir, "session", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Connected:      yes")
}

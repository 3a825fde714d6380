// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/internal/session"
)

// NewMCPServer initializes and configures the Ninebox MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Ninebox Talent Intelligence Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:  baseCfg,
		sessions: session.NewStore(),
		mgr:      mgr,
	}

	// --- 1. Tool: run_analysis ---
	s.AddTool(mcp.NewTool("run_analysis",
		mcp.WithDescription("Run chi-square dimension analyses over a talent roster to find rating distribution anomalies."),
		mcp.WithString("roster_path", mcp.Description("Path to the roster CSV file."), mcp.Required()),
		mcp.WithString("dimensions", mcp.Description("Comma-separated analysis subset (location, function, level, tenure, manager). Defaults to all.")),
	), h.handleRunAnalysis)

	// --- 2. Tool: list_insights ---
	s.AddTool(mcp.NewTool("list_insights",
		mcp.WithDescription("Generate prioritized, clustered insights from a talent roster."),
		mcp.WithString("roster_path", mcp.Description("Path to the roster CSV file."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of insights returned.")),
	), h.handleListInsights)

	// --- 3. Tool: grid_summary ---
	s.AddTool(mcp.NewTool("grid_summary",
		mcp.WithDescription("Compute the 3x3 grid population distribution for a talent roster."),
		mcp.WithString("roster_path", mcp.Description("Path to the roster CSV file."), mcp.Required()),
		mcp.WithString("filter_field", mcp.Description("Optional roster field to filter on (location, function, level, manager, tenure, performance, potential).")),
		mcp.WithString("filter_value", mcp.Description("Value the filter field must match.")),
	), h.handleGridSummary)

	// --- 4. Tool: validate_org ---
	s.AddTool(mcp.NewTool("validate_org",
		mcp.WithDescription("Check the reporting structure of a talent roster for cycles, orphans and self-links."),
		mcp.WithString("roster_path", mcp.Description("Path to the roster CSV file."), mcp.Required()),
	), h.handleValidateOrg)

	// --- 5. Tool: start_session ---
	s.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start a calibration review session from a roster. Replaces any active session for the user."),
		mcp.WithString("roster_path", mcp.Description("Path to the roster CSV file."), mcp.Required()),
		mcp.WithString("user", mcp.Description("User id owning the session. Defaults to the configured user.")),
	), h.handleStartSession)

	// --- 6. Tool: resume_session ---
	s.AddTool(mcp.NewTool("resume_session",
		mcp.WithDescription("Resume a persisted calibration session from the session store."),
		mcp.WithString("user", mcp.Description("User id owning the session. Defaults to the configured user.")),
	), h.handleResumeSession)

	// --- 7. Tool: move_employee ---
	s.AddTool(mcp.NewTool("move_employee",
		mcp.WithDescription("Move an employee to a new performance/potential cell in the active session."),
		mcp.WithString("employee_id", mcp.Description("Employee id to move."), mcp.Required()),
		mcp.WithString("performance", mcp.Description("New performance rating (low, medium, high)."), mcp.Required()),
		mcp.WithString("potential", mcp.Description("New potential rating (low, medium, high)."), mcp.Required()),
		mcp.WithString("user", mcp.Description("User id owning the session.")),
	), h.handleMoveEmployee)

	// --- 8. Tool: set_flag ---
	s.AddTool(mcp.NewTool("set_flag",
		mcp.WithDescription("Add a talent flag to an employee in the active session."),
		mcp.WithString("employee_id", mcp.Description("Employee id to flag."), mcp.Required()),
		mcp.WithString("flag", mcp.Description("Flag to add (key_talent, flight_risk, ready_now, new_to_role)."), mcp.Required()),
		mcp.WithString("user", mcp.Description("User id owning the session.")),
	), h.handleSetFlag)

	// --- 9. Tool: clear_flag ---
	s.AddTool(mcp.NewTool("clear_flag",
		mcp.WithDescription("Remove a talent flag from an employee in the active session."),
		mcp.WithString("employee_id", mcp.Description("Employee id to unflag."), mcp.Required()),
		mcp.WithString("flag", mcp.Description("Flag to remove."), mcp.Required()),
		mcp.WithString("user", mcp.Description("User id owning the session.")),
	), h.handleClearFlag)

	// --- 10. Tool: update_notes ---
	s.AddTool(mcp.NewTool("update_notes",
		mcp.WithDescription("Replace the calibration notes of an employee in the active session."),
		mcp.WithString("employee_id", mcp.Description("Employee id to update."), mcp.Required()),
		mcp.WithString("notes", mcp.Description("New notes text. Empty clears the notes.")),
		mcp.WithString("user", mcp.Description("User id owning the session.")),
	), h.handleUpdateNotes)

	// --- 11. Tool: update_plan ---
	s.AddTool(mcp.NewTool("update_plan",
		mcp.WithDescription("Replace the development plan of an employee in the active session."),
		mcp.WithString("employee_id", mcp.Description("Employee id to update."), mcp.Required()),
		mcp.WithString("plan", mcp.Description("New development plan text. Empty clears the plan.")),
		mcp.WithString("user", mcp.Description("User id owning the session.")),
	), h.handleUpdatePlan)

	// --- 12. Tool: session_events ---
	s.AddTool(mcp.NewTool("session_events",
		mcp.WithDescription("List the net-change event log of the active session."),
		mcp.WithString("user", mcp.Description("User id owning the session.")),
	), h.handleSessionEvents)

	// --- 13. Tool: end_session ---
	s.AddTool(mcp.NewTool("end_session",
		mcp.WithDescription("End the active session and delete its persisted record."),
		mcp.WithString("user", mcp.Description("User id owning the session.")),
	), h.handleEndSession)

	return s
}

// StartMCPServer starts the Ninebox MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

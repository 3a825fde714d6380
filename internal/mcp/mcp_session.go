package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/talentops/ninebox/internal/roster"
	"github.com/talentops/ninebox/schema"
)

// Session tool handlers. The MCP server holds one live session per user; the
// persistence adapter keeps the record durable across server restarts.

func (h *toolHandler) userID(request mcp.CallToolRequest) string {
	if user := request.GetString("user", ""); user != "" {
		return user
	}
	return h.baseCfg.UserID
}

// persist saves the current session record through the configured store.
// A missing store is not an error; the session just stays in memory.
func (h *toolHandler) persist(userID string) error {
	if h.mgr == nil {
		return nil
	}
	store := h.mgr.GetSessionStore()
	if store == nil {
		return nil
	}
	record, err := h.sessions.Snapshot(userID)
	if err != nil {
		return err
	}
	return store.Save(record)
}

func (h *toolHandler) handleStartSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rosterPath := request.GetString("roster_path", "")
	if rosterPath == "" {
		return mcp.NewToolResultError("roster_path is required"), nil
	}

	employees, err := roster.NewCSVSource().Load(ctx, rosterPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("roster load failed: %v", err)), nil
	}

	userID := h.userID(request)
	record := h.sessions.Create(userID, employees)
	if err := h.persist(userID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session persist failed: %v", err)), nil
	}

	result := map[string]any{
		"session_id": record.SessionID,
		"user":       record.UserID,
		"employees":  len(record.Current),
	}
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleResumeSession(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.mgr == nil || h.mgr.GetSessionStore() == nil {
		return mcp.NewToolResultError("no session store configured"), nil
	}

	userID := h.userID(request)
	record, err := h.mgr.GetSessionStore().Load(userID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("no persisted session for %q: %v", userID, err)), nil
	}
	h.sessions.Restore(record)

	result := map[string]any{
		"session_id": record.SessionID,
		"user":       record.UserID,
		"employees":  len(record.Current),
		"events":     len(record.Events),
	}
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleMoveEmployee(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	employeeID := request.GetString("employee_id", "")
	if employeeID == "" {
		return mcp.NewToolResultError("employee_id is required"), nil
	}

	performance, err := schema.ParseRating(request.GetString("performance", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid performance: %v", err)), nil
	}
	potential, err := schema.ParseRating(request.GetString("potential", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid potential: %v", err)), nil
	}

	userID := h.userID(request)
	emp, err := h.sessions.MoveEmployee(userID, employeeID, performance, potential)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("move failed: %v", err)), nil
	}
	if err := h.persist(userID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session persist failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(emp, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSetFlag(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.flagTool(request, h.sessions.AddFlag)
}

func (h *toolHandler) handleClearFlag(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.flagTool(request, h.sessions.RemoveFlag)
}

func (h *toolHandler) flagTool(request mcp.CallToolRequest, op func(userID, employeeID, flag string) (schema.Employee, error)) (*mcp.CallToolResult, error) {
	employeeID := request.GetString("employee_id", "")
	if employeeID == "" {
		return mcp.NewToolResultError("employee_id is required"), nil
	}
	flag := request.GetString("flag", "")
	if flag == "" {
		return mcp.NewToolResultError("flag is required"), nil
	}

	userID := h.userID(request)
	emp, err := op(userID, employeeID, flag)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("flag update failed: %v", err)), nil
	}
	if err := h.persist(userID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session persist failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(emp, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleUpdateNotes(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.textTool(request, "notes", h.sessions.UpdateNotes)
}

func (h *toolHandler) handleUpdatePlan(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.textTool(request, "plan", h.sessions.UpdatePlan)
}

func (h *toolHandler) textTool(request mcp.CallToolRequest, field string, op func(userID, employeeID, text string) (schema.Employee, error)) (*mcp.CallToolResult, error) {
	employeeID := request.GetString("employee_id", "")
	if employeeID == "" {
		return mcp.NewToolResultError("employee_id is required"), nil
	}
	text := request.GetString(field, "")

	userID := h.userID(request)
	emp, err := op(userID, employeeID, text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s update failed: %v", field, err)), nil
	}
	if err := h.persist(userID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session persist failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(emp, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSessionEvents(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	events, err := h.sessions.Events(h.userID(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot list events: %v", err)), nil
	}
	jsonData, _ := json.MarshalIndent(events, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEndSession(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID := h.userID(request)
	if err := h.sessions.Delete(userID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot end session: %v", err)), nil
	}
	if h.mgr != nil {
		if store := h.mgr.GetSessionStore(); store != nil {
			if err := store.Delete(userID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("cannot delete persisted session: %v", err)), nil
			}
		}
	}
	return mcp.NewToolResultText(fmt.Sprintf("session for %q ended", userID)), nil
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/talentops/ninebox/core"
	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/internal/org"
	"github.com/talentops/ninebox/internal/roster"
	"github.com/talentops/ninebox/internal/session"
	"github.com/talentops/ninebox/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg  *contract.Config
	sessions *session.Store
	mgr      contract.StoreManager
}

func (h *toolHandler) handleRunAnalysis(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.RosterPath = request.GetString("roster_path", "")
	if cfg.RosterPath == "" {
		return mcp.NewToolResultError("roster_path is required"), nil
	}

	if dims := request.GetString("dimensions", ""); dims != "" {
		parsed, err := parseDimensions(dims)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid dimensions: %v", err)), nil
		}
		cfg.Dimensions = parsed
	}

	results, _, err := core.GetAnalysisResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListInsights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.RosterPath = request.GetString("roster_path", "")
	if cfg.RosterPath == "" {
		return mcp.NewToolResultError("roster_path is required"), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	insights, err := core.GetInsightResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("insight generation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(insights, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGridSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rosterPath := request.GetString("roster_path", "")
	if rosterPath == "" {
		return mcp.NewToolResultError("roster_path is required"), nil
	}

	employees, err := roster.NewCSVSource().Load(ctx, rosterPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("roster load failed: %v", err)), nil
	}

	if field := request.GetString("filter_field", ""); field != "" {
		employees, err = core.FilterEmployees(employees, field, request.GetString("filter_value", ""))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid filter: %v", err)), nil
		}
	}

	summary := core.BuildGridSummary(employees)
	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleValidateOrg(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rosterPath := request.GetString("roster_path", "")
	if rosterPath == "" {
		return mcp.NewToolResultError("roster_path is required"), nil
	}

	employees, err := roster.NewCSVSource().Load(ctx, rosterPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("roster load failed: %v", err)), nil
	}

	result := org.NewService(employees).Validate()
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// parseDimensions splits and validates a comma-separated analysis subset.
func parseDimensions(raw string) ([]string, error) {
	known := make(map[string]bool, len(schema.AnalysisNames))
	for _, name := range schema.AnalysisNames {
		known[name] = true
	}

	var dims []string
	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !known[part] {
			return nil, fmt.Errorf("unknown dimension %q: must be one of %s", part, strings.Join(schema.AnalysisNames, ", "))
		}
		dims = append(dims, part)
	}
	return dims, nil
}

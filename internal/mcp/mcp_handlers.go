package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/schooltools/rankbook/core"
	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	gb      contract.Gradebook
}

// passConfig builds a per-request config from the shared base plus tool arguments.
func (h *toolHandler) passConfig(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if c := request.GetString("class_id", ""); c != "" {
		cfg.ClassID = c
	}
	if t := request.GetString("term", ""); t != "" {
		cfg.Term = schema.Term(t)
	}
	if y := request.GetString("year", ""); y != "" {
		cfg.AcademicYear = y
	}
	if f := request.GetString("formula", ""); f != "" {
		cfg.FormulaID = f
	}
	return cfg
}

func (h *toolHandler) handleComputeClassResults(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.passConfig(request)

	set, err := core.RunClassPass(ctx, cfg, h.gb)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("computation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(set, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStudentResult(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.passConfig(request)
	studentID := request.GetString("student_id", "")
	if studentID == "" {
		return mcp.NewToolResultError("student_id is required"), nil
	}

	// Positions only exist relative to the whole cohort, so run a full pass.
	set, err := core.RunClassPass(ctx, cfg, h.gb)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("computation failed: %v", err)), nil
	}

	for i := range set.Results {
		if set.Results[i].StudentID == studentID {
			jsonData, _ := json.MarshalIndent(&set.Results[i], "", "  ")
			return mcp.NewToolResultText(string(jsonData)), nil
		}
	}

	return mcp.NewToolResultError(fmt.Sprintf("student %s not found in class %s", studentID, cfg.ClassID)), nil
}

// formulaListing pairs a formula with its validation outcome.
type formulaListing struct {
	Formula schema.Formula `json:"formula"`
	Valid   bool           `json:"valid"`
	Error   string         `json:"error,omitempty"`
}

func (h *toolHandler) handleListFormulas(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	formulas, err := h.gb.Formulas(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load formulas: %v", err)), nil
	}

	listings := make([]formulaListing, 0, len(formulas))
	for i := range formulas {
		listing := formulaListing{Formula: formulas[i], Valid: true}
		if err := core.ValidateFormula(&formulas[i]); err != nil {
			listing.Valid = false
			listing.Error = err.Error()
		}
		listings = append(listings, listing)
	}

	jsonData, _ := json.MarshalIndent(listings, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

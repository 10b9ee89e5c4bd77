// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/schooltools/rankbook/internal/contract"
)

// NewMCPServer initializes and configures the Rankbook MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, gb contract.Gradebook) *server.MCPServer {
	s := server.NewMCPServer(
		"Rankbook Result Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		gb:      gb,
	}

	// --- 1. Tool: compute_class_results ---
	s.AddTool(mcp.NewTool("compute_class_results",
		mcp.WithDescription("Compute ranked term results for a whole class from raw assessment marks."),
		mcp.WithString("class_id", mcp.Description("Class identifier to compute results for."), mcp.Required()),
		mcp.WithString("term", mcp.Description("School term."), mcp.Enum("First Term", "Second Term", "Third Term", "Final")),
		mcp.WithString("year", mcp.Description("Academic year (e.g. '2025/2026').")),
		mcp.WithString("formula", mcp.Description("Formula ID to combine marks with. Defaults to the active formula.")),
	), h.handleComputeClassResults)

	// --- 2. Tool: get_student_result ---
	s.AddTool(mcp.NewTool("get_student_result",
		mcp.WithDescription("Compute one student's term report card, including class position."),
		mcp.WithString("class_id", mcp.Description("Class the student is enrolled in."), mcp.Required()),
		mcp.WithString("student_id", mcp.Description("Student identifier."), mcp.Required()),
		mcp.WithString("term", mcp.Description("School term."), mcp.Enum("First Term", "Second Term", "Third Term", "Final")),
		mcp.WithString("year", mcp.Description("Academic year.")),
		mcp.WithString("formula", mcp.Description("Formula ID to combine marks with.")),
	), h.handleGetStudentResult)

	// --- 3. Tool: list_formulas ---
	s.AddTool(mcp.NewTool("list_formulas",
		mcp.WithDescription("List the configured grading formulas and whether each is valid."),
	), h.handleListFormulas)

	return s
}

// StartMCPServer starts the Rankbook MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, gb contract.Gradebook) error {
	s := NewMCPServer(baseCfg, gb)
	return server.ServeStdio(s)
}

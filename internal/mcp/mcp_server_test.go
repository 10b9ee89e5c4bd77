package mcp_test

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/internal/gradebook"
	mcp_internal "github.com/schooltools/rankbook/internal/mcp"
	"github.com/schooltools/rankbook/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		ClassID:        "P7A",
		Term:           schema.FirstTerm,
		AcademicYear:   "2025/2026",
		FormulaID:      schema.ActiveFormulaID,
		Workers:        4,
		StudentTimeout: 5 * time.Second,
		Scale:          schema.DefaultGradeScale(),
	}
}

func seededGradebook() *gradebook.MemoryGradebook {
	gb := gradebook.NewMemory()
	gb.AddFormula(schema.Formula{
		ID: "standard", Name: "Standard weighting",
		Weights:      map[string]float64{schema.TestTypeMidterm: 0.3, schema.TestTypeEndterm: 0.7},
		PassingScore: 50, IsActive: true,
	})
	gb.AddAssignment(schema.Assignment{ID: "A-MATH", TeacherID: "T001", SubjectID: "MATH", ClassID: "P7A", AcademicYear: "2025/2026", Term: schema.FirstTerm})
	for i, studentID := range []string{"S001", "S002"} {
		gb.Enroll("P7A", schema.FirstTerm, "2025/2026", studentID)
		base := float64(60 + 20*i)
		gb.AddMark(schema.AssessmentMark{AssignmentID: "A-MATH", StudentID: studentID, TestType: schema.TestTypeMidterm, Score: base, MaxScore: 100})
		gb.AddMark(schema.AssessmentMark{AssignmentID: "A-MATH", StudentID: studentID, TestType: schema.TestTypeEndterm, Score: base + 5, MaxScore: 100})
	}
	return gb
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestMCPServerTools(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), seededGradebook())
	ctx := context.Background()

	t.Run("compute_class_results returns ranked set", func(t *testing.T) {
		tool := s.GetTool("compute_class_results")
		require.NotNil(t, tool, "Tool compute_class_results should exist")

		res, err := tool.Handler(ctx, callRequest("compute_class_results", map[string]any{
			"class_id": "P7A",
		}))
		require.NoError(t, err)
		assert.False(t, res.IsError)

		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"formula_id": "standard"`)
		assert.Contains(t, text, `"student_id": "S002"`)
		assert.Contains(t, text, `"position_in_class": 1`)
	})

	t.Run("compute_class_results unknown class", func(t *testing.T) {
		tool := s.GetTool("compute_class_results")
		require.NotNil(t, tool)

		res, err := tool.Handler(ctx, callRequest("compute_class_results", map[string]any{
			"class_id": "P9Z",
		}))
		require.NoError(t, err, "tool logic failures surface as error results, not raw errors")
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "no enrolled students")
	})

	t.Run("get_student_result missing student_id", func(t *testing.T) {
		tool := s.GetTool("get_student_result")
		require.NotNil(t, tool, "Tool get_student_result should exist")

		res, err := tool.Handler(ctx, callRequest("get_student_result", map[string]any{
			"class_id": "P7A",
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "student_id is required")
	})

	t.Run("get_student_result found", func(t *testing.T) {
		tool := s.GetTool("get_student_result")
		require.NotNil(t, tool)

		res, err := tool.Handler(ctx, callRequest("get_student_result", map[string]any{
			"class_id":   "P7A",
			"student_id": "S001",
		}))
		require.NoError(t, err)
		assert.False(t, res.IsError)

		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"student_id": "S001"`)
		assert.Contains(t, text, `"position_in_class": 2`)
		assert.Contains(t, text, `"total_students_in_class": 2`)
	})

	t.Run("get_student_result unknown student", func(t *testing.T) {
		tool := s.GetTool("get_student_result")
		require.NotNil(t, tool)

		res, err := tool.Handler(ctx, callRequest("get_student_result", map[string]any{
			"class_id":   "P7A",
			"student_id": "S999",
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "not found")
	})

	t.Run("list_formulas reports validity", func(t *testing.T) {
		gb := seededGradebook()
		gb.AddFormula(schema.Formula{
			ID: "broken", Name: "Broken",
			Weights: map[string]float64{schema.TestTypeQuiz: -1},
		})
		s := mcp_internal.NewMCPServer(baseConfig(), gb)

		tool := s.GetTool("list_formulas")
		require.NotNil(t, tool, "Tool list_formulas should exist")

		res, err := tool.Handler(ctx, callRequest("list_formulas", nil))
		require.NoError(t, err)
		assert.False(t, res.IsError)

		text := res.Content[0].(mcp.TextContent).Text
		assert.Contains(t, text, `"valid": true`)
		assert.Contains(t, text, `"valid": false`)
		assert.Contains(t, text, "negative weight")
	})
}

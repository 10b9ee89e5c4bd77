package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteStudentResult outputs one student's detailed term breakdown,
// dispatching based on the output format configured.
func WriteStudentResult(result *schema.StudentResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStudentCSV(w, result, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStudentTable(w, result, cfg, fmtFloat)
		}, "Wrote table")
	}
	return nil
}

// writeStudentCSV emits one row per subject in the breakdown.
func writeStudentCSV(w io.Writer, result *schema.StudentResult, fmtFloat func(float64) string) error {
	header := []string{"subject_id", "teacher_id", "score", "grade", "mark_count", "status"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range result.Subjects {
			row := []string{
				s.SubjectID,
				s.TeacherID,
				fmtFloat(s.Score),
				s.Grade,
				strconv.Itoa(s.MarkCount),
				string(s.Status),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// writeStudentTable generates the human-readable report card view.
func writeStudentTable(w io.Writer, result *schema.StudentResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "Student %s | %s %s | Status: %s\n\n",
		result.StudentID, result.Term, result.AcademicYear, result.Status); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Subject", "Teacher", "Score", "Grade", "Marks", "Status"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, s := range result.Subjects {
		grade := s.Grade
		status := string(s.Status)
		if cfg.UseColors {
			grade = contract.GetColorGrade(s.Grade)
			status = contract.GetColorStatus(s.Status)
		}
		score := "-"
		if s.Status == schema.StatusRanked {
			score = fmtFloat(s.Score)
		}
		data = append(data, []string{
			contract.TruncateName(s.SubjectID, nameWidth),
			contract.TruncateName(s.TeacherID, nameWidth),
			score,
			grade,
			strconv.Itoa(s.MarkCount),
			status,
		})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("failed to add table rows: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if _, err := fmt.Fprintf(w, "\nTotal: %s  Average: %s  Position: %s  Grades: %s\n",
		fmtFloat(result.TotalScore), fmtFloat(result.AverageScore),
		formatPosition(result.PositionInClass, result.TotalStudentsInClass),
		schema.FormatGradeCounts(result.GradeCounts, cfg.Scale)); err != nil {
		return err
	}
	if result.Remarks != "" {
		if _, err := fmt.Fprintf(w, "Remarks: %s\n", result.Remarks); err != nil {
			return err
		}
	}
	return nil
}

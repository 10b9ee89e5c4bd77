package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteClassResults outputs a ranked class result set, dispatching
// based on the output format configured.
func WriteClassResults(set *schema.ClassResultSet, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, set)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClassCSV(w, set, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClassTable(w, set, cfg, fmtFloat)
		}, "Wrote table")
	}
	return nil
}

// writeClassCSV emits one row per student in ranked order.
func writeClassCSV(w io.Writer, set *schema.ClassResultSet, fmtFloat func(float64) string) error {
	header := []string{"position", "student_id", "average_score", "total_score", "graded_subjects", "total_subjects", "grades", "status"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i := range set.Results {
			r := &set.Results[i]
			row := []string{
				strconv.Itoa(r.PositionInClass),
				r.StudentID,
				fmtFloat(r.AverageScore),
				fmtFloat(r.TotalScore),
				strconv.Itoa(r.GradedSubjects()),
				strconv.Itoa(len(r.Subjects)),
				schema.FormatGradeCounts(r.GradeCounts, schema.DefaultGradeScale()),
				string(r.Status),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

// writeClassTable generates and writes the human-readable ranking table.
func writeClassTable(w io.Writer, set *schema.ClassResultSet, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Pos", "Student", "Average", "Total", "Grades", "Status"}
	if cfg.Detail {
		headers = append(headers, "Graded", "Remarks")
	}
	table.Header(headers)

	// 2. Right-align numbers for a minimal look
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for i := range set.Results {
		r := &set.Results[i]
		status := string(r.Status)
		if cfg.UseColors {
			status = contract.GetColorStatus(r.Status)
		}
		row := []string{
			formatPosition(r.PositionInClass, r.TotalStudentsInClass),
			contract.TruncateName(r.StudentID, nameWidth),
			fmtFloat(r.AverageScore),
			fmtFloat(r.TotalScore),
			schema.FormatGradeCounts(r.GradeCounts, cfg.Scale),
			status,
		}
		if cfg.Detail {
			row = append(row,
				fmt.Sprintf("%d/%d", r.GradedSubjects(), len(r.Subjects)),
				r.Remarks,
			)
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("failed to add table rows: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\nRanked %d students (class %s, %s %s) under formula %s in %v\n",
		len(set.Results), set.ClassID, set.Term, set.AcademicYear, set.FormulaID, set.Duration.Round(time.Millisecond))
	return err
}

package outwriter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/schema"

	"github.com/olekukonko/tablewriter"
)

// WriteFormulas lists formula definitions with their validation state.
// The validity slice is parallel to formulas; a nil entry means the
// formula passed validation.
func WriteFormulas(formulas []schema.Formula, validity []error, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, formulas)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeFormulaTable(w, formulas, validity)
	}, "Wrote table")
}

func writeFormulaTable(w io.Writer, formulas []schema.Formula, validity []error) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Name", "Weights", "Pass Mark", "Active", "Valid"})

	var data [][]string
	for i := range formulas {
		f := &formulas[i]
		valid := "yes"
		if validity[i] != nil {
			valid = fmt.Sprintf("no: %v", validity[i])
		}
		active := ""
		if f.IsActive {
			active = "yes"
		}
		data = append(data, []string{
			f.ID,
			f.Name,
			formatWeights(f.Weights),
			fmt.Sprintf("%.0f", f.PassingScore),
			active,
			valid,
		})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("failed to add table rows: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err := fmt.Fprintf(w, "\n%d formulas\n", len(formulas))
	return err
}

// formatWeights formats a weight map like "0.30*Mid-term+0.70*End-term"
// with assessment types in stable order.
func formatWeights(weights map[string]float64) string {
	labels := make([]string, 0, len(weights))
	for label := range weights {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var parts []string
	for _, label := range labels {
		parts = append(parts, fmt.Sprintf("%.2f*%s", weights[label], label))
	}
	return strings.Join(parts, "+")
}

// WriteScale prints the grade bands a pass classifies under.
func WriteScale(scale schema.GradeScale, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, scale)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Grade", "Range"})

		var data [][]string
		upper := 100.0
		for i, b := range scale {
			rangeStr := fmt.Sprintf("[%.0f, %.0f)", b.Min, upper)
			if i == 0 {
				rangeStr = fmt.Sprintf("[%.0f, %.0f]", b.Min, upper)
			}
			letter := b.Letter
			if cfg.UseColors {
				letter = contract.GetColorGrade(b.Letter)
			}
			data = append(data, []string{letter, rangeStr})
			upper = b.Min
		}
		if err := table.Bulk(data); err != nil {
			return fmt.Errorf("failed to add table rows: %w", err)
		}
		return table.Render()
	}, "Wrote table")
}

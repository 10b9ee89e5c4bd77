// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"

	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/schema"
	"golang.org/x/term"
)

// PrintPassHeader announces the parameters of a computation pass before
// results stream in. Suppressed for machine-readable output modes so
// piping JSON/CSV stays clean.
func PrintPassHeader(cfg *contract.Config) {
	if cfg.Output != schema.TextOut || cfg.OutputFile != "" {
		return
	}
	fmt.Printf("rankbook: Computing results for class %s\n", cfg.ClassID)
	fmt.Printf("Term: %s %s | Formula: %s | Workers: %d\n\n", cfg.Term, cfg.AcademicYear, describeFormula(cfg), cfg.Workers)
}

func describeFormula(cfg *contract.Config) string {
	if cfg.InlineFormula != nil {
		return cfg.InlineFormula.Name + " (config override)"
	}
	return cfg.FormulaID
}

// getMaxTableNameWidth calculates the maximum width for student and
// subject identifiers in table output based on terminal width.
func getMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the fixed columns with borders and padding
	baseWidth := 45 // Rank + Average + Total + Grades + Status
	if cfg.Detail {
		baseWidth += 30 // Subjects + Graded + Remarks
	}

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}

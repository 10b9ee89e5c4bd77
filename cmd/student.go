package cmd

import (
	"errors"

	"github.com/schooltools/rankbook/core"
	"github.com/schooltools/rankbook/internal/contract"
	"github.com/spf13/cobra"
)

// studentCmd builds a single student's report card.
var studentCmd = &cobra.Command{
	Use:   "student <class-id>",
	Short: "Compute one student's term report card.",
	Long: `Compute a single student's term result, including class position.

The whole class is still aggregated, because a position only means something
relative to the rest of the cohort. The output is the student's per-subject
breakdown plus total, average, grade tally and position.

Examples:
  # Report card for one student
  rankbook student P7A --student S042 --year 2025/2026

  # Same, as JSON for the parent portal
  rankbook student P7A --student S042 --year 2025/2026 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.StudentID == "" {
			contract.LogFatal("Cannot compute student result", errors.New("--student is required"))
		}
		if err := core.ExecuteStudentResult(rootCtx, cfg, gradebookStore, resultStore); err != nil {
			contract.LogFatal("Cannot compute student result", err)
		}
	},
}

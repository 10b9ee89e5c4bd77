package cmd

import (
	"github.com/schooltools/rankbook/core"
	"github.com/schooltools/rankbook/internal/contract"
	"github.com/spf13/cobra"
)

// rankCmd computes and ranks a full class cohort.
var rankCmd = &cobra.Command{
	Use:   "rank <class-id>",
	Short: "Compute ranked term results for a whole class.",
	Long: `Compute every enrolled student's term result and rank the class.

For each student, raw assessment marks are combined per subject using the
selected formula, subject scores become letter grades, and the term total and
average are derived from graded subjects. Students are then ranked by average
using competition ranking: equal averages share a position and the next
position is skipped.

Students without any marks appear at the bottom with status "No Data" and no
position; they still count toward the class size shown as "position/total".

Examples:
  # Rank class P7A for the current term
  rankbook rank P7A --year 2025/2026

  # Use an explicit formula and term
  rankbook rank P7A --year 2025/2026 --term "Second Term" --formula midterm-heavy

  # Export results to CSV for the records office
  rankbook rank P7A --year 2025/2026 --output csv --output-file p7a-results.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteClassRank(rootCtx, cfg, gradebookStore, resultStore); err != nil {
			contract.LogFatal("Cannot compute class results", err)
		}
	},
}

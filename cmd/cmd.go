// Package cmd defines the command-line interface for rankbook.
package cmd

import (
	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(studentCmd)
	rootCmd.AddCommand(formulasCmd)
	rootCmd.AddCommand(scaleCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resultsCmd)

	// Add the results subcommands to the parent results command
	resultsCmd.AddCommand(resultsStatusCmd)
	resultsCmd.AddCommand(resultsClearCmd)
	resultsCmd.AddCommand(resultsExportCmd)
	resultsCmd.AddCommand(resultsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("term", "t", string(schema.FirstTerm), "School term: First Term, Second Term, Third Term or Final")
	rootCmd.PersistentFlags().StringP("year", "y", "", "Academic year (e.g. 2025/2026)")
	rootCmd.PersistentFlags().String("formula", schema.ActiveFormulaID, "Formula ID to combine marks with ('active' resolves the active formula)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("student-timeout", contract.DefaultStudentTimeout.String(), "Per-student aggregation timeout (e.g. 30s, 2m)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-row metadata (graded subject counts, remarks)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored grades and statuses in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("gradebook-backend", string(schema.SQLiteBackend), "Gradebook backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("gradebook-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("results-backend", string(schema.SQLiteBackend), "Result persistence backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("results-db-connect", "", "Database connection string for result persistence (must differ from gradebook-db-connect)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of studentCmd to Viper
	studentCmd.Flags().StringP("student", "s", "", "Student ID to build the report card for")
	if err := viper.BindPFlags(studentCmd.Flags()); err != nil {
		contract.LogFatal("Error binding student flags", err)
	}

	// Bind all flags of resultsMigrateCmd to Viper
	resultsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(resultsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding results migrate flags", err)
	}
}

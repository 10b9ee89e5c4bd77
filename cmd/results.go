package cmd

import (
	"fmt"
	"strings"

	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/internal/resultstore"
	"github.com/schooltools/rankbook/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resultsSetup loads minimal configuration needed for result store operations.
// This is used by commands that need store access without full shared setup.
func resultsSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("results-backend")))
	connStr := viper.GetString("results-db-connect")
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid results backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	store, err := resultstore.New(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to open result store: %w", err)
	}
	resultStore = store

	cfg.ResultsBackend = backend
	cfg.ResultsDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// resultsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT open the store or create tables,
// allowing migrations to run on a fresh database.
func resultsMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("results-backend")))
	connStr := viper.GetString("results-db-connect")
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid results backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetResultsDBFilePath()
	}

	cfg.ResultsBackend = backend
	cfg.ResultsDBConnect = connStr

	return nil
}

// resultsCmd focused on persisted result management.
//
// Note: Results subcommands use minimal initialization (resultsSetup) instead
// of the full sharedSetup used by computation commands. This avoids class and
// term validation for simple store operations.
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Manage persisted result records and exports",
	Long: `Manage the persisted result records written after each computation pass.

When result persistence is enabled, every pass stores:
- Pass metadata (class, term, year, formula, duration)
- Per-student totals, averages, positions and statuses
- Per-subject score breakdowns

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show result store statistics
  export  - Export records to Parquet for analytics
  clear   - Remove all persisted results
  migrate - Run database schema migrations

Examples:
  # Check what has been persisted
  rankbook results status

  # Export for analysis in pandas/DuckDB
  rankbook results export --output-file results.parquet`,
}

// resultsStatusCmd shows result store status.
var resultsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display result store statistics and connection details",
	Long: `Show detailed information about persisted result records.

Displays:
- Backend type and connection status
- Total number of stored passes and result records
- Timestamp of the most recent pass

Examples:
  # Check result persistence status
  rankbook results status`,
	PreRunE: resultsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := resultStore.Status()
		if err != nil {
			contract.LogFatal("Failed to get result store status", err)
		}
		resultstore.PrintStoreStatus(status)
	},
}

// resultsClearCmd clears all persisted results.
var resultsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all persisted result records",
	Long: `Delete every stored pass and result record.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  rankbook results export --output-file backup.parquet
  rankbook results clear`,
	PreRunE: resultsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := resultStore.Clear(); err != nil {
			contract.LogFatal("Failed to clear result records", err)
		}
		fmt.Println("Result records cleared successfully.")
	},
}

// resultsExportCmd exports persisted results to a Parquet file.
var resultsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export persisted results to Parquet for BI tools and analytics",
	Long: `Export all persisted result records to Parquet format.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools

Requires: --output-file parameter

Examples:
  # Export all records
  rankbook results export --output-file results.parquet

  # Use with DuckDB for analysis
  duckdb -c "SELECT * FROM read_parquet('results.parquet') LIMIT 10"`,
	PreRunE: resultsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := resultstore.ExecuteResultsExport(resultStore, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export result records", err)
		}
	},
}

// resultsMigrateCmd runs database migrations for the result store.
var resultsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the result store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  rankbook results migrate

  # Migrate to specific version
  rankbook results migrate --target-version 1

  # Rollback to initial state
  rankbook results migrate --target-version 0`,
	PreRunE: resultsMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := resultstore.Migrate(cfg.ResultsBackend, cfg.ResultsDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

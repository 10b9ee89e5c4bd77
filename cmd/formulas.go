package cmd

import (
	"fmt"
	"strings"

	"github.com/schooltools/rankbook/core"
	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/internal/gradebook"
	"github.com/schooltools/rankbook/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// displaySetup loads the minimal output configuration shared by the
// read-only display commands. These skip full validation because they
// need no class, term or year.
func displaySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	cfg.OutputFile = viper.GetString("output-file")
	cfg.Detail = viper.GetBool("detail")
	cfg.Width = viper.GetInt("width")

	precision := viper.GetInt("precision")
	if precision < 1 || precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", precision)
	}
	cfg.Precision = precision

	output := schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", output)
	}
	cfg.Output = output

	colors, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	return nil
}

// formulasSetup opens the gradebook for formula listing without the
// full class/term validation of sharedSetup.
func formulasSetup(_ *cobra.Command, _ []string) error {
	if err := displaySetup(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("gradebook-backend")))
	connStr := viper.GetString("gradebook-db-connect")
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok || backend == schema.NoneBackend {
		return fmt.Errorf("invalid gradebook backend '%s'. must be sqlite, mysql, postgresql", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	gb, err := gradebook.New(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to open gradebook: %w", err)
	}
	gradebookStore = gb

	return nil
}

// formulasCmd lists the configured grading formulas.
var formulasCmd = &cobra.Command{
	Use:   "formulas",
	Short: "List grading formulas and their validity.",
	Long: `List every grading formula stored in the gradebook.

Each formula is shown with its weights per assessment type, pass mark,
active flag and a validity check. A school should have exactly one active
formula; the listing makes it obvious when that is not the case.

Examples:
  # Show all formulas
  rankbook formulas

  # Machine-readable listing
  rankbook formulas --output json`,
	PreRunE: formulasSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFormulas(rootCtx, cfg, gradebookStore); err != nil {
			contract.LogFatal("Cannot list formulas", err)
		}
	},
}

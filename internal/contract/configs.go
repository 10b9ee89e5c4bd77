package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/schooltools/rankbook/schema"
)

// Default values for configuration.
const (
	DefaultStudentTimeout = 30 * time.Second
	DefaultPrecision      = 1
	DefaultFormulaID      = schema.ActiveFormulaID
	MaxWorkers            = 256
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// FormulaRawInput holds an inline formula definition from the config
// file. When present it overrides whatever the gradebook stores, which
// is mainly useful for dry-running a new weighting before saving it.
type FormulaRawInput struct {
	Name         string             `mapstructure:"name"`
	Weights      map[string]float64 `mapstructure:"weights"`
	PassingScore *float64           `mapstructure:"passing_score"`
}

// Config holds the runtime configuration for a computation pass.
// This struct remains the "final, validated" config.
type Config struct {
	ClassID      string
	Term         schema.Term
	AcademicYear string
	FormulaID    string

	StudentID string // set only for single-student commands

	Workers        int
	StudentTimeout time.Duration

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Detail     bool
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	GradebookBackend   schema.DatabaseBackend
	GradebookDBConnect string // Please use env var as this is plaintext
	ResultsBackend     schema.DatabaseBackend
	ResultsDBConnect   string // Please use env var as this is plaintext

	// Scale is the validated grade scale for the pass: defaults plus
	// any `scale:` overrides from the config file.
	Scale schema.GradeScale

	// InlineFormula is non-nil when the config file defines a formula
	// override; it wins over FormulaID resolution.
	InlineFormula *schema.Formula
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ClassIDStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Term               string `mapstructure:"term"`
	Year               string `mapstructure:"year"`
	Formula            string `mapstructure:"formula"`
	Workers            int    `mapstructure:"workers"`
	StudentTimeout     string `mapstructure:"student-timeout"`
	Precision          int    `mapstructure:"precision"`
	Output             string `mapstructure:"output"`
	OutputFile         string `mapstructure:"output-file"`
	Detail             bool   `mapstructure:"detail"`
	Width              int    `mapstructure:"width"`
	Color              string `mapstructure:"color"`
	GradebookBackend   string `mapstructure:"gradebook-backend"`
	GradebookDBConnect string `mapstructure:"gradebook-db-connect"`
	ResultsBackend     string `mapstructure:"results-backend"`
	ResultsDBConnect   string `mapstructure:"results-db-connect"`

	// --- Fields from studentCmd.Flags() ---
	Student string `mapstructure:"student"`

	// --- Grade scale overrides from config file ---
	Scale map[string]float64 `mapstructure:"scale"`

	// --- Inline formula from config file ---
	FormulaDef *FormulaRawInput `mapstructure:"formula-def"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Scale != nil {
		clone.Scale = make(schema.GradeScale, len(c.Scale))
		copy(clone.Scale, c.Scale)
	}
	if c.InlineFormula != nil {
		f := *c.InlineFormula
		f.Weights = make(map[string]float64, len(c.InlineFormula.Weights))
		for k, v := range c.InlineFormula.Weights {
			f.Weights[k] = v
		}
		clone.InlineFormula = &f
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw
// inputs and updates the final Config struct. Configuration errors are
// fatal to the pass, so everything is checked up front.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := ProcessScale(cfg, input); err != nil {
		return err
	}
	if err := processInlineFormula(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.ClassID = strings.TrimSpace(input.ClassIDStr)
	cfg.AcademicYear = strings.TrimSpace(input.Year)
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.StudentID = strings.TrimSpace(input.Student)

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Term Validation ---
	cfg.Term = schema.Term(strings.TrimSpace(input.Term))
	if _, ok := schema.ValidTerms[cfg.Term]; !ok {
		return fmt.Errorf("invalid term %q. must be one of: First Term, Second Term, Third Term, Final", input.Term)
	}

	// --- 2. Year Validation ---
	if cfg.AcademicYear == "" {
		return fmt.Errorf("academic year is required (e.g. --year 2025/2026)")
	}

	// --- 3. Formula Validation ---
	cfg.FormulaID = strings.TrimSpace(input.Formula)
	if cfg.FormulaID == "" {
		cfg.FormulaID = DefaultFormulaID
	}

	// --- 4. Workers Validation ---
	if input.Workers <= 0 || input.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 1 and %d (received %d)", MaxWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 5. Student Timeout Validation ---
	cfg.StudentTimeout = DefaultStudentTimeout
	if input.StudentTimeout != "" {
		d, err := time.ParseDuration(input.StudentTimeout)
		if err != nil {
			return fmt.Errorf("invalid student-timeout %q: %w", input.StudentTimeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("student-timeout must be positive (received %s)", d)
		}
		cfg.StudentTimeout = d
	}

	// --- 6. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 7. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// validateBackendConfigs validates gradebook and results backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.GradebookBackend = schema.DatabaseBackend(strings.ToLower(input.GradebookBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.GradebookBackend]; !ok {
		return fmt.Errorf("invalid gradebook backend '%s'. must be sqlite, mysql, postgresql, none", input.GradebookBackend)
	}
	cfg.GradebookDBConnect = input.GradebookDBConnect
	if err := ValidateDatabaseConnectionString(cfg.GradebookBackend, cfg.GradebookDBConnect); err != nil {
		return err
	}

	cfg.ResultsBackend = schema.DatabaseBackend(strings.ToLower(input.ResultsBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.ResultsBackend]; !ok {
		return fmt.Errorf("invalid results backend '%s'. must be sqlite, mysql, postgresql, none", input.ResultsBackend)
	}
	cfg.ResultsDBConnect = input.ResultsDBConnect
	if err := ValidateDatabaseConnectionString(cfg.ResultsBackend, cfg.ResultsDBConnect); err != nil {
		return err
	}

	// Both stores defaulting to SQLite must not share a database file,
	// otherwise table writes would contend on a single connection.
	if cfg.GradebookBackend == schema.SQLiteBackend && cfg.ResultsBackend == schema.SQLiteBackend {
		gbPath := cfg.GradebookDBConnect
		if gbPath == "" {
			gbPath = GetGradebookDBFilePath()
		}
		resPath := cfg.ResultsDBConnect
		if resPath == "" {
			resPath = GetResultsDBFilePath()
		}
		if gbPath == resPath {
			return fmt.Errorf("gradebook and results storage must use different SQLite database files. Both resolve to %q", gbPath)
		}
	}

	return nil
}

// ProcessScale merges `scale:` overrides from the config file into the
// default grade scale and validates the result.
func ProcessScale(cfg *Config, input *ConfigRawInput) error {
	scale := schema.DefaultGradeScale()
	if len(input.Scale) > 0 {
		scale = scale[:0]
		for letter, minScore := range input.Scale {
			scale = append(scale, schema.GradeBand{Letter: letter, Min: minScore})
		}
		// highest band first; Validate rejects duplicate thresholds
		for i := range scale {
			for j := i + 1; j < len(scale); j++ {
				if scale[j].Min > scale[i].Min {
					scale[i], scale[j] = scale[j], scale[i]
				}
			}
		}
	}
	if err := scale.Validate(); err != nil {
		return fmt.Errorf("invalid grade scale: %w", err)
	}
	cfg.Scale = scale
	return nil
}

// processInlineFormula turns a `formula-def:` config section into an
// override formula. Weight validation is left to the formula registry
// so inline and stored formulas fail the same way.
func processInlineFormula(cfg *Config, input *ConfigRawInput) error {
	if input.FormulaDef == nil {
		return nil
	}
	f := &schema.Formula{
		ID:           "inline",
		Name:         input.FormulaDef.Name,
		Weights:      input.FormulaDef.Weights,
		PassingScore: 50,
		IsActive:     true,
	}
	if f.Name == "" {
		f.Name = "Inline formula"
	}
	if input.FormulaDef.PassingScore != nil {
		f.PassingScore = *input.FormulaDef.PassingScore
	}
	cfg.InlineFormula = f
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db connect string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db connect string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/schooltools/rankbook/internal/contract"
	"github.com/schooltools/rankbook/internal/gradebook"
	"github.com/schooltools/rankbook/internal/resultstore"
	"github.com/schooltools/rankbook/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Overridden through ldflags on release builds.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg holds the validated configuration every command reads from.
var cfg = &contract.Config{}

// input receives the merged raw values from file, env and flags before
// validation. Viper unmarshals into this struct.
var input = &contract.ConfigRawInput{}

// profile holds profiling configuration.
var profile = &contract.ProfileConfig{}

// gradebookStore is the mark source opened during setup.
var gradebookStore contract.Gradebook

// resultStore is the persistence sink opened during setup.
var resultStore contract.ResultStore

// startProfiling begins a CPU profile when profiling is enabled. The
// heap profile is written at shutdown by stopProfiling.
func startProfiling() error {
	if !profile.Enabled {
		return nil
	}

	cpuFile, err := os.Create(profile.Prefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}

	_, err = fmt.Fprintf(os.Stdout, "Profiling to %s.cpu.prof and %s.mem.prof\n", profile.Prefix, profile.Prefix)
	return err
}

// stopProfiling ends the CPU profile and captures the heap.
func stopProfiling() error {
	if !profile.Enabled {
		return nil
	}

	pprof.StopCPUProfile()

	memFile, err := os.Create(profile.Prefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}

	_, err = fmt.Fprintf(os.Stdout, "Profiles written; inspect with go tool pprof %s.cpu.prof\n", profile.Prefix)
	return err
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "rankbook",
	Short:              "Compute term results and class rankings from raw assessment marks.",
	Long:               `Rankbook combines weighted assessment marks into subject scores, term totals and class positions.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig points viper at the config file and env namespace.
func initConfig() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// .rankbook.yaml in the working directory or home
		viper.SetConfigName(".rankbook")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// RANKBOOK_STUDENT_TIMEOUT etc. override file values
	viper.SetEnvPrefix("RANKBOOK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("term", string(schema.FirstTerm))
	viper.SetDefault("formula", schema.ActiveFormulaID)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("student-timeout", contract.DefaultStudentTimeout.String())
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", string(schema.TextOut))
	viper.SetDefault("gradebook-backend", string(schema.SQLiteBackend))
	viper.SetDefault("gradebook-db-connect", "")
	viper.SetDefault("results-backend", string(schema.SQLiteBackend))
	viper.SetDefault("results-db-connect", "")
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config, runs validation and opens both stores.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// Handle profiling flag
	profilePrefix := viper.GetString("profile")
	if err := contract.ProcessProfilingConfig(profile, profilePrefix); err != nil {
		return fmt.Errorf("failed to process profiling config: %w", err)
	}
	if profile.Enabled {
		if err := startProfiling(); err != nil {
			return fmt.Errorf("failed to start profiling: %w", err)
		}
	}

	// Merge defaults, file, env and flags; a missing config file just
	// means defaults apply.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// The class id arrives as a positional argument, outside viper.
	if len(args) == 1 {
		input.ClassIDStr = args[0]
	}

	// Populates cfg from input.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	if cfg.GradebookBackend == schema.NoneBackend {
		return fmt.Errorf("gradebook backend cannot be none; marks have to come from somewhere")
	}
	gb, err := gradebook.New(cfg.GradebookBackend, cfg.GradebookDBConnect)
	if err != nil {
		return fmt.Errorf("failed to open gradebook: %w", err)
	}
	gradebookStore = gb

	store, err := resultstore.New(cfg.ResultsBackend, cfg.ResultsDBConnect)
	if err != nil {
		_ = gradebookStore.Close()
		return fmt.Errorf("failed to open result store: %w", err)
	}
	resultStore = store

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile reads the config file for commands that do not need
// the full store setup.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".rankbook")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// CloseStores closes whatever stores setup opened.
func CloseStores() {
	if gradebookStore != nil {
		_ = gradebookStore.Close()
	}
	if resultStore != nil {
		_ = resultStore.Close()
	}
}

// StopProfiling stops profiling if enabled.
func StopProfiling() error {
	return stopProfiling()
}

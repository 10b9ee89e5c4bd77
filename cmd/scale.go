package cmd

import (
	"fmt"

	"github.com/schooltools/rankbook/core"
	"github.com/schooltools/rankbook/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// scaleSetup loads output configuration plus the grade scale, with any
// `scale:` overrides from the config file merged in.
func scaleSetup(_ *cobra.Command, _ []string) error {
	if err := displaySetup(); err != nil {
		return err
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return contract.ProcessScale(cfg, input)
}

// scaleCmd shows the effective grade scale.
var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Show the effective letter grade scale.",
	Long: `Show the grade bands used to turn subject scores into letters.

Bands are closed at the bottom and open at the top, so a score exactly on a
boundary earns the higher grade. The default A-F scale can be overridden per
school through the 'scale:' section of the config file; this command shows
the merged result.

Examples:
  # Show the effective scale
  rankbook scale

  # Verify a config override took effect
  rankbook scale --config ./school.yaml`,
	PreRunE: scaleSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScale(cfg); err != nil {
			contract.LogFatal("Cannot show grade scale", err)
		}
	},
}

package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd prints release and build details for bug reports.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rankbook.",
	Long: `Display the release version together with the commit hash, build
timestamp and Go runtime the binary was compiled with. Include this
output when reporting a problem.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("rankbook %s (commit %s, built %s, %s)\n",
			version, commit, date, runtime.Version())
	},
}

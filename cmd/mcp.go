package cmd

import (
	"github.com/schooltools/rankbook/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp <class-id>",
	Short: "Start the Rankbook MCP server",
	Long:  `Launch an MCP server that allows AI agents to compute class results and report cards via standard tools.`,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Tool arguments can override the class, so a positional one is
		// only the default for requests that omit class_id.
		if len(args) == 0 {
			args = []string{"default"}
		}
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, gradebookStore)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

package cmd

import (
	"github.com/artmamedov/ios-sim-mcp/internal/output"
	"github.com/spf13/cobra"
)

var toolPathCmd = &cobra.Command{
	Use:   "tool-path",
	Short: "Show which idb executable will be used and how it was found",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Print(resolveToolPath())
	},
}

func init() {
	rootCmd.AddCommand(toolPathCmd)
}

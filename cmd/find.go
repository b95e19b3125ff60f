package cmd

import (
	"github.com/artmamedov/ios-sim-mcp/internal/output"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <label>",
	Short: "Find elements by label (case-insensitive substring)",
	Long: `Find accessibility elements whose label contains the given text.

With --tap, tap the center of the first match instead of printing matches.

Examples:
  ios-sim-mcp find "sign in"
  ios-sim-mcp find Continue --tap`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().String("udid", "", "Simulator UDID (default: the booted one)")
	findCmd.Flags().Bool("tap", false, "Tap the first match")
}

func runFind(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	udid, _ := cmd.Flags().GetString("udid")

	if tap, _ := cmd.Flags().GetBool("tap"); tap {
		msg, err := svc.TapElement(cmd.Context(), udid, args[0])
		if err != nil {
			return err
		}
		printMessage(cmd, msg)
		return nil
	}

	matches, err := svc.FindElements(cmd.Context(), udid, args[0])
	if err != nil {
		return err
	}
	return output.Print(matches)
}

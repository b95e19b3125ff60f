package cmd

import (
	"fmt"

	"github.com/artmamedov/ios-sim-mcp/internal/output"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe [x y]",
	Short: "Print the accessibility elements on screen, or the element at a point",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("describe takes no arguments, or both x and y")
		}
		return nil
	},
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().String("udid", "", "Simulator UDID (default: the booted one)")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	udid, _ := cmd.Flags().GetString("udid")

	if len(args) == 2 {
		p, err := parsePoint(args[0], args[1])
		if err != nil {
			return err
		}
		el, err := svc.DescribePoint(cmd.Context(), udid, p)
		if err != nil {
			return err
		}
		return output.Print(el)
	}

	elements, err := svc.DescribeScreen(cmd.Context(), udid)
	if err != nil {
		return err
	}
	return output.Print(elements)
}

package cmd

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/artmamedov/ios-sim-mcp/internal/simulator"
	"github.com/spf13/cobra"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture a simulator screenshot",
	Long:  "Capture the simulator screen as PNG, optionally downscaled or annotated with element frames.",
	Args:  cobra.NoArgs,
	RunE:  runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("udid", "", "Simulator UDID (default: the booted one)")
	screenshotCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
	screenshotCmd.Flags().Float64("scale", 1, "Scale factor 0.1-1.0 (for token efficiency)")
	screenshotCmd.Flags().Bool("annotate", false, "Draw accessibility element frames and tap points")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}

	udid, _ := cmd.Flags().GetString("udid")
	out, _ := cmd.Flags().GetString("output")
	scale, _ := cmd.Flags().GetFloat64("scale")
	annotate, _ := cmd.Flags().GetBool("annotate")

	shot, err := svc.Screenshot(cmd.Context(), udid, simulator.ScreenshotOptions{
		Scale:    scale,
		Annotate: annotate,
	})
	if err != nil {
		return err
	}

	if out != "" {
		if err := os.WriteFile(out, shot.Data, 0644); err != nil {
			return err
		}
		printMessage(cmd, fmt.Sprintf("Saved %dx%d screenshot of device %s to %s", shot.Width, shot.Height, shot.UDID, out))
		return nil
	}

	// Default: write to stdout as base64 for easy agent consumption
	encoder := base64.NewEncoder(base64.StdEncoding, cmd.OutOrStdout())
	if _, err := encoder.Write(shot.Data); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

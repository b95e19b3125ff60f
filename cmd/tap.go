package cmd

import (
	"fmt"
	"strconv"

	"github.com/artmamedov/ios-sim-mcp/internal/platform"
	"github.com/spf13/cobra"
)

var tapCmd = &cobra.Command{
	Use:   "tap <x> <y>",
	Short: "Tap at a point in simulator screen points",
	Args:  cobra.ExactArgs(2),
	RunE:  runTap,
}

func init() {
	rootCmd.AddCommand(tapCmd)
	tapCmd.Flags().String("udid", "", "Simulator UDID (default: the booted one)")
	tapCmd.Flags().Float64("duration", 0, "Hold for this many seconds (long press)")
}

func parsePoint(xs, ys string) (platform.Point, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return platform.Point{}, fmt.Errorf("invalid x coordinate %q", xs)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return platform.Point{}, fmt.Errorf("invalid y coordinate %q", ys)
	}
	return platform.Point{X: x, Y: y}, nil
}

func runTap(cmd *cobra.Command, args []string) error {
	p, err := parsePoint(args[0], args[1])
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	udid, _ := cmd.Flags().GetString("udid")
	msg, err := svc.Tap(cmd.Context(), udid, p, secondsFlag(cmd, "duration"))
	if err != nil {
		return err
	}
	printMessage(cmd, msg)
	return nil
}

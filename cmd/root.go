package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/artmamedov/ios-sim-mcp/internal/output"
	"github.com/artmamedov/ios-sim-mcp/internal/runner"
	"github.com/artmamedov/ios-sim-mcp/internal/simulator"
	"github.com/artmamedov/ios-sim-mcp/internal/toolpath"
	"github.com/artmamedov/ios-sim-mcp/internal/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// logger writes to stderr so stdout stays free for the stdio transport.
var logger = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &logrus.TextFormatter{DisableColors: true, FullTimestamp: true},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.InfoLevel,
}

var rootCmd = &cobra.Command{
	Use:   "ios-sim-mcp",
	Short: "Control iOS simulators from AI agents",
	Long: `An MCP server and CLI that exposes iOS Simulator control (device lifecycle,
screenshots, touch and keyboard input, app management and accessibility
inspection) by driving xcrun simctl and the idb automation bridge.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "json", "Output format: json, yaml")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log every external command to stderr")
	rootCmd.PersistentFlags().String("idb-path", "", "Path to the idb executable (overrides $"+toolpath.EnvVar+")")
	rootCmd.PersistentFlags().String("input", simulator.BackendIDB, "Input backend: idb (synthetic touch) or host (drive the mouse over the Simulator window)")
	rootCmd.PersistentFlags().String("lifecycle", simulator.BackendIDB, "Device and app lifecycle backend: idb or simctl")
	rootCmd.PersistentFlags().Duration("command-timeout", 0, "Timeout for each external command (0 = none)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
			logger.SetLevel(logrus.DebugLevel)
		}

		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		return nil
	}
}

// resolveToolPath returns the idb path from --idb-path or discovery.
func resolveToolPath() toolpath.Resolution {
	if p, _ := rootCmd.PersistentFlags().GetString("idb-path"); p != "" {
		return toolpath.Resolution{Path: p, Source: toolpath.SourceFlag}
	}
	return toolpath.New().Locate()
}

// newService builds the simulator service from the root flags.
func newService() (*simulator.Service, error) {
	flags := rootCmd.PersistentFlags()
	input, _ := flags.GetString("input")
	lifecycle, _ := flags.GetString("lifecycle")
	timeout, _ := flags.GetDuration("command-timeout")

	tool := resolveToolPath()
	logger.WithFields(logrus.Fields{
		"idb":       tool.Path,
		"source":    tool.Source,
		"input":     input,
		"lifecycle": lifecycle,
	}).Debug("resolved backends")

	return simulator.New(simulator.Config{
		IDBPath:   tool.Path,
		Input:     input,
		Lifecycle: lifecycle,
	}, runner.NewExec(timeout, logger), logger)
}

// printMessage writes a confirmation line to stdout.
func printMessage(cmd *cobra.Command, msg string) {
	fmt.Fprintln(cmd.OutOrStdout(), msg)
}

// secondsFlag converts a float seconds flag to a duration.
func secondsFlag(cmd *cobra.Command, name string) time.Duration {
	s, _ := cmd.Flags().GetFloat64(name)
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

package cmd

import (
	"github.com/artmamedov/ios-sim-mcp/internal/output"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List simulators",
	Long:  "List simulators with their UDID, name, state, type and OS version.",
	Args:  cobra.NoArgs,
	RunE:  runDevices,
}

var bootCmd = &cobra.Command{
	Use:   "boot <udid>",
	Short: "Boot a simulator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		msg, err := svc.Boot(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printMessage(cmd, msg)
		return nil
	},
}

var shutdownCmd = &cobra.Command{
	Use:   "shutdown [udid]",
	Short: "Shut down a simulator (default: the booted one)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		var udid string
		if len(args) == 1 {
			udid = args[0]
		}
		msg, err := svc.Shutdown(cmd.Context(), udid)
		if err != nil {
			return err
		}
		printMessage(cmd, msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd, bootCmd, shutdownCmd)
	devicesCmd.Flags().Bool("booted", false, "Only list booted simulators")
}

func runDevices(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	booted, _ := cmd.Flags().GetBool("booted")
	devices, err := svc.ListDevices(cmd.Context(), booted)
	if err != nil {
		return err
	}
	return output.Print(devices)
}

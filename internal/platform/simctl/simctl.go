// Package simctl manages simulators through `xcrun simctl`.
package simctl

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/artmamedov/ios-sim-mcp/internal/model"
	"github.com/artmamedov/ios-sim-mcp/internal/platform"
	"github.com/artmamedov/ios-sim-mcp/internal/runner"
	"howett.net/plist"
)

// Client implements platform.Lifecycle.
type Client struct {
	runner runner.Runner
}

// New returns a simctl client.
func New(r runner.Runner) *Client {
	return &Client{runner: r}
}

var _ platform.Lifecycle = (*Client)(nil)

// runSimctl executes xcrun simctl with the provided arguments.
func (c *Client) runSimctl(ctx context.Context, args ...string) ([]byte, error) {
	return c.runner.Run(ctx, "xcrun", append([]string{"simctl"}, args...)...)
}

type simctlDevice struct {
	UDID        string `json:"udid"`
	Name        string `json:"name"`
	State       string `json:"state"`
	IsAvailable *bool  `json:"isAvailable"`
}

type simctlList struct {
	Devices map[string][]simctlDevice `json:"devices"`
}

func (c *Client) ListDevices(ctx context.Context) ([]model.Device, error) {
	out, err := c.runSimctl(ctx, "list", "devices", "--json")
	if err != nil {
		return nil, fmt.Errorf("failed to execute xcrun simctl list: %w", err)
	}
	return parseDeviceList(out)
}

func parseDeviceList(out []byte) ([]model.Device, error) {
	var list simctlList
	if err := json.Unmarshal(out, &list); err != nil {
		return nil, fmt.Errorf("failed to parse simulator list JSON: %w", err)
	}

	var devices []model.Device
	for runtime, entries := range list.Devices {
		osVersion := runtimeVersion(runtime)
		for _, d := range entries {
			if d.IsAvailable != nil && !*d.IsAvailable {
				continue
			}
			devices = append(devices, model.Device{
				UDID:      d.UDID,
				Name:      d.Name,
				State:     model.ParseDeviceState(d.State),
				Type:      "simulator",
				OSVersion: osVersion,
			})
		}
	}
	sort.SliceStable(devices, func(i, j int) bool {
		if devices[i].OSVersion != devices[j].OSVersion {
			return devices[i].OSVersion < devices[j].OSVersion
		}
		return devices[i].Name < devices[j].Name
	})
	return devices, nil
}

// runtimeVersion turns "com.apple.CoreSimulator.SimRuntime.iOS-17-2" into
// "iOS 17.2".
func runtimeVersion(runtime string) string {
	name := runtime[strings.LastIndex(runtime, ".")+1:]
	platformName, version, ok := strings.Cut(name, "-")
	if !ok {
		return name
	}
	return platformName + " " + strings.ReplaceAll(version, "-", ".")
}

func (c *Client) Boot(ctx context.Context, udid string) error {
	_, err := c.runSimctl(ctx, "boot", udid)
	return err
}

func (c *Client) Shutdown(ctx context.Context, udid string) error {
	_, err := c.runSimctl(ctx, "shutdown", udid)
	return err
}

func (c *Client) Screenshot(ctx context.Context, udid, path string) error {
	_, err := c.runSimctl(ctx, "io", udid, "screenshot", "--type=png", path)
	return err
}

func (c *Client) LaunchApp(ctx context.Context, udid, bundleID string) error {
	_, err := c.runSimctl(ctx, "launch", udid, bundleID)
	return err
}

func (c *Client) TerminateApp(ctx context.Context, udid, bundleID string) error {
	_, err := c.runSimctl(ctx, "terminate", udid, bundleID)
	return err
}

// appInfo corresponds to one entry of `simctl listapps`.
type appInfo struct {
	CFBundleIdentifier  string `plist:"CFBundleIdentifier"`
	CFBundleDisplayName string `plist:"CFBundleDisplayName"`
	CFBundleName        string `plist:"CFBundleName"`
	ApplicationType     string `plist:"ApplicationType"`
}

func (c *Client) ListApps(ctx context.Context, udid string) ([]model.App, error) {
	out, err := c.runSimctl(ctx, "listapps", udid)
	if err != nil {
		return nil, fmt.Errorf("failed to list installed apps: %w", err)
	}
	return parseAppList(out)
}

// parseAppList decodes the OpenStep-format plist printed by listapps.
// listapps has no process state, so Running is left nil.
func parseAppList(out []byte) ([]model.App, error) {
	var entries map[string]appInfo
	if _, err := plist.Unmarshal(out, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse app list: %w", err)
	}

	apps := make([]model.App, 0, len(entries))
	for key, info := range entries {
		app := model.App{
			BundleID:    info.CFBundleIdentifier,
			Name:        info.CFBundleDisplayName,
			InstallType: strings.ToLower(info.ApplicationType),
		}
		if app.BundleID == "" {
			app.BundleID = key
		}
		if app.Name == "" {
			app.Name = info.CFBundleName
		}
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].BundleID < apps[j].BundleID })
	return apps, nil
}

func (c *Client) InstallApp(ctx context.Context, udid, appPath string) error {
	_, err := c.runSimctl(ctx, "install", udid, appPath)
	return err
}

func (c *Client) UninstallApp(ctx context.Context, udid, bundleID string) error {
	_, err := c.runSimctl(ctx, "uninstall", udid, bundleID)
	return err
}

func (c *Client) OpenURL(ctx context.Context, udid, url string) error {
	_, err := c.runSimctl(ctx, "openurl", udid, url)
	return err
}

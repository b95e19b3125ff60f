package platform

import (
	"context"

	"github.com/artmamedov/ios-sim-mcp/internal/model"
)

// Lifecycle manages simulators and the apps installed on them.
type Lifecycle interface {
	ListDevices(ctx context.Context) ([]model.Device, error)
	Boot(ctx context.Context, udid string) error
	Shutdown(ctx context.Context, udid string) error

	// Screenshot writes a PNG of the device screen to path.
	Screenshot(ctx context.Context, udid, path string) error

	LaunchApp(ctx context.Context, udid, bundleID string) error
	TerminateApp(ctx context.Context, udid, bundleID string) error
	ListApps(ctx context.Context, udid string) ([]model.App, error)
	InstallApp(ctx context.Context, udid, appPath string) error
	UninstallApp(ctx context.Context, udid, bundleID string) error
	OpenURL(ctx context.Context, udid, url string) error
}

// Inputter delivers touch and keyboard input to a simulator.
// Coordinates are simulator points.
type Inputter interface {
	// Tap returns the coordinate actually handed to the underlying tool,
	// which differs from p when the backend drives the host pointer.
	Tap(ctx context.Context, udid string, p Point, opts TapOptions) (Point, error)
	Swipe(ctx context.Context, udid string, opts SwipeOptions) error
	TypeText(ctx context.Context, udid, text string) error
	PressKey(ctx context.Context, udid string, key Key) error
	PressButton(ctx context.Context, udid string, button Button) error
}

// Inspector reads the accessibility tree.
type Inspector interface {
	// DescribeAll returns the accessibility tree of the whole screen.
	DescribeAll(ctx context.Context, udid string) ([]model.Element, error)
	// DescribePoint returns the element at a point.
	DescribePoint(ctx context.Context, udid string, p Point) (model.Element, error)
}

// Provider bundles the backends used to serve requests.
type Provider struct {
	Lifecycle Lifecycle
	Inputter  Inputter
	Inspector Inspector
}

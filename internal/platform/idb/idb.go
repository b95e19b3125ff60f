// Package idb drives simulators through the idb automation bridge.
package idb

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/artmamedov/ios-sim-mcp/internal/model"
	"github.com/artmamedov/ios-sim-mcp/internal/platform"
	"github.com/artmamedov/ios-sim-mcp/internal/runner"
)

// Client implements platform.Lifecycle, platform.Inputter and
// platform.Inspector on top of the idb CLI.
type Client struct {
	path   string
	runner runner.Runner
}

// New returns a client invoking the idb executable at path.
func New(path string, r runner.Runner) *Client {
	return &Client{path: path, runner: r}
}

var (
	_ platform.Lifecycle = (*Client)(nil)
	_ platform.Inputter  = (*Client)(nil)
	_ platform.Inspector = (*Client)(nil)
)

// hidKeyCodes maps key names to USB HID keyboard usage IDs.
var hidKeyCodes = map[platform.Key]int{
	platform.KeyReturn:   40,
	platform.KeyEscape:   41,
	platform.KeyDelete:   42,
	platform.KeyTab:      43,
	platform.KeySpace:    44,
	platform.KeyHome:     74,
	platform.KeyPageUp:   75,
	platform.KeyEnd:      77,
	platform.KeyPageDown: 78,
	platform.KeyRight:    79,
	platform.KeyLeft:     80,
	platform.KeyDown:     81,
	platform.KeyUp:       82,
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	return c.runner.Run(ctx, c.path, args...)
}

func (c *Client) ListDevices(ctx context.Context) ([]model.Device, error) {
	out, err := c.run(ctx, "list-targets")
	if err != nil {
		return nil, fmt.Errorf("idb list-targets: %w", err)
	}
	return parseTargets(string(out)), nil
}

func (c *Client) Boot(ctx context.Context, udid string) error {
	_, err := c.run(ctx, "boot", udid)
	return err
}

func (c *Client) Shutdown(ctx context.Context, udid string) error {
	_, err := c.run(ctx, "shutdown", udid)
	return err
}

func (c *Client) Screenshot(ctx context.Context, udid, path string) error {
	_, err := c.run(ctx, "screenshot", "--udid", udid, path)
	return err
}

func (c *Client) LaunchApp(ctx context.Context, udid, bundleID string) error {
	_, err := c.run(ctx, "launch", "--udid", udid, bundleID)
	return err
}

func (c *Client) TerminateApp(ctx context.Context, udid, bundleID string) error {
	_, err := c.run(ctx, "terminate", "--udid", udid, bundleID)
	return err
}

func (c *Client) ListApps(ctx context.Context, udid string) ([]model.App, error) {
	out, err := c.run(ctx, "list-apps", "--udid", udid)
	if err != nil {
		return nil, fmt.Errorf("idb list-apps: %w", err)
	}
	return parseApps(string(out)), nil
}

func (c *Client) InstallApp(ctx context.Context, udid, appPath string) error {
	_, err := c.run(ctx, "install", "--udid", udid, appPath)
	return err
}

func (c *Client) UninstallApp(ctx context.Context, udid, bundleID string) error {
	_, err := c.run(ctx, "uninstall", "--udid", udid, bundleID)
	return err
}

func (c *Client) OpenURL(ctx context.Context, udid, url string) error {
	_, err := c.run(ctx, "open", "--udid", udid, "--", url)
	return err
}

func (c *Client) Tap(ctx context.Context, udid string, p platform.Point, opts platform.TapOptions) (platform.Point, error) {
	x, y := round(p.X), round(p.Y)
	args := []string{"ui", "tap", "--udid", udid}
	if opts.Duration > 0 {
		args = append(args, "--duration", seconds(opts.Duration))
	}
	args = append(args, strconv.Itoa(x), strconv.Itoa(y))
	if _, err := c.run(ctx, args...); err != nil {
		return platform.Point{}, err
	}
	return platform.Point{X: float64(x), Y: float64(y)}, nil
}

func (c *Client) Swipe(ctx context.Context, udid string, opts platform.SwipeOptions) error {
	args := []string{"ui", "swipe", "--udid", udid}
	if opts.Duration > 0 {
		args = append(args, "--duration", seconds(opts.Duration))
	}
	if opts.Delta > 0 {
		args = append(args, "--delta", strconv.Itoa(opts.Delta))
	}
	args = append(args,
		strconv.Itoa(round(opts.From.X)), strconv.Itoa(round(opts.From.Y)),
		strconv.Itoa(round(opts.To.X)), strconv.Itoa(round(opts.To.Y)),
	)
	_, err := c.run(ctx, args...)
	return err
}

func (c *Client) TypeText(ctx context.Context, udid, text string) error {
	_, err := c.run(ctx, "ui", "text", "--udid", udid, "--", text)
	return err
}

func (c *Client) PressKey(ctx context.Context, udid string, key platform.Key) error {
	code, ok := hidKeyCodes[key]
	if !ok {
		return fmt.Errorf("%w: %q", platform.ErrUnknownKey, key)
	}
	_, err := c.run(ctx, "ui", "key", "--udid", udid, strconv.Itoa(code))
	return err
}

func (c *Client) PressButton(ctx context.Context, udid string, button platform.Button) error {
	_, err := c.run(ctx, "ui", "button", "--udid", udid, string(button))
	return err
}

func (c *Client) DescribeAll(ctx context.Context, udid string) ([]model.Element, error) {
	out, err := c.run(ctx, "ui", "describe-all", "--udid", udid, "--json", "--nested")
	if err != nil {
		return nil, fmt.Errorf("idb ui describe-all: %w", err)
	}
	return parseElements(out)
}

func (c *Client) DescribePoint(ctx context.Context, udid string, p platform.Point) (model.Element, error) {
	out, err := c.run(ctx, "ui", "describe-point", "--udid", udid, "--json",
		strconv.Itoa(round(p.X)), strconv.Itoa(round(p.Y)))
	if err != nil {
		return model.Element{}, fmt.Errorf("idb ui describe-point: %w", err)
	}
	elements, err := parseElements(out)
	if err != nil {
		return model.Element{}, err
	}
	if len(elements) == 0 {
		return model.Element{}, fmt.Errorf("no element found at %s", p)
	}
	return elements[0], nil
}

func round(v float64) int {
	return int(math.Round(v))
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

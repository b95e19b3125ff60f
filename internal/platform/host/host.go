// Package host delivers input by driving the host pointer and keyboard over
// the Simulator window, using cliclick and osascript.
//
// Only the frontmost Simulator window receives input, so the device id is
// used for screen size lookups but cannot target a specific window.
package host

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/artmamedov/ios-sim-mcp/internal/model"
	"github.com/artmamedov/ios-sim-mcp/internal/platform"
	"github.com/artmamedov/ios-sim-mcp/internal/runner"
)

const (
	activateScript = `tell application "Simulator" to activate`
	boundsScript   = `tell application "System Events" to tell process "Simulator" to get {position, size} of front window`
)

// PointSizeFunc returns the simulator screen size in points. It is called
// once per tap or swipe, so it should be a single cheap lookup.
type PointSizeFunc func(ctx context.Context, udid string) (width, height float64, err error)

// Inputter implements platform.Inputter with host mouse and keyboard events.
type Inputter struct {
	runner runner.Runner
	pointSize PointSizeFunc
}

// New returns an Inputter. pointSize supplies the simulator screen size
// used to scale coordinates into the window.
func New(r runner.Runner, pointSize PointSizeFunc) *Inputter {
	return &Inputter{runner: r, pointSize: pointSize}
}

var _ platform.Inputter = (*Inputter)(nil)

// keyCodes maps key names to macOS virtual key codes.
var keyCodes = map[platform.Key]int{
	platform.KeyReturn:   0x24,
	platform.KeyTab:      0x30,
	platform.KeySpace:    0x31,
	platform.KeyDelete:   0x33,
	platform.KeyEscape:   0x35,
	platform.KeyLeft:     0x7B,
	platform.KeyRight:    0x7C,
	platform.KeyDown:     0x7D,
	platform.KeyUp:       0x7E,
	platform.KeyHome:     0x73,
	platform.KeyPageUp:   0x74,
	platform.KeyEnd:      0x77,
	platform.KeyPageDown: 0x79,
}

// buttonShortcuts maps hardware buttons to Simulator menu shortcuts.
var buttonShortcuts = map[platform.Button]string{
	platform.ButtonHome: `keystroke "h" using {command down, shift down}`,
	platform.ButtonLock: `keystroke "l" using {command down}`,
}

func (in *Inputter) osascript(ctx context.Context, lines ...string) ([]byte, error) {
	args := make([]string, 0, len(lines)*2)
	for _, l := range lines {
		args = append(args, "-e", l)
	}
	return in.runner.Run(ctx, "osascript", args...)
}

func (in *Inputter) activate(ctx context.Context) error {
	if _, err := in.osascript(ctx, activateScript); err != nil {
		return fmt.Errorf("failed to activate Simulator: %w", err)
	}
	return nil
}

// WindowFrame reads the bounds of the front Simulator window.
func (in *Inputter) WindowFrame(ctx context.Context) (model.WindowFrame, error) {
	out, err := in.osascript(ctx, boundsScript)
	if err != nil {
		return model.WindowFrame{}, fmt.Errorf("could not read Simulator window bounds: %w", err)
	}
	return parseBounds(string(out))
}

// parseBounds parses "x, y, width, height".
func parseBounds(s string) (model.WindowFrame, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 4 {
		return model.WindowFrame{}, fmt.Errorf("could not read Simulator window bounds: unexpected output %q", strings.TrimSpace(s))
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.WindowFrame{}, fmt.Errorf("could not read Simulator window bounds: %w", err)
		}
		v[i] = f
	}
	return model.WindowFrame{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// hostPoints activates the Simulator and maps simulator points to host
// screen pixels.
func (in *Inputter) hostPoints(ctx context.Context, udid string, pts ...platform.Point) ([]platform.Point, error) {
	if err := in.activate(ctx); err != nil {
		return nil, err
	}
	win, err := in.WindowFrame(ctx)
	if err != nil {
		return nil, err
	}
	screenW, screenH, err := in.pointSize(ctx, udid)
	if err != nil {
		return nil, err
	}

	mapped := make([]platform.Point, len(pts))
	for i, p := range pts {
		x, y, err := model.MapToHost(win, screenW, screenH, p.X, p.Y)
		if err != nil {
			return nil, err
		}
		mapped[i] = platform.Point{X: float64(x), Y: float64(y)}
	}
	return mapped, nil
}

func clickArg(cmd string, p platform.Point) string {
	return fmt.Sprintf("%s:%d,%d", cmd, int(p.X), int(p.Y))
}

func (in *Inputter) Tap(ctx context.Context, udid string, p platform.Point, opts platform.TapOptions) (platform.Point, error) {
	pts, err := in.hostPoints(ctx, udid, p)
	if err != nil {
		return platform.Point{}, err
	}
	target := pts[0]

	args := []string{clickArg("c", target)}
	if opts.Duration > 0 {
		args = []string{
			clickArg("dd", target),
			"w:" + strconv.FormatInt(opts.Duration.Milliseconds(), 10),
			clickArg("du", target),
		}
	}
	if _, err := in.runner.Run(ctx, "cliclick", args...); err != nil {
		return platform.Point{}, fmt.Errorf("cliclick: %w", err)
	}
	return target, nil
}

func (in *Inputter) Swipe(ctx context.Context, udid string, opts platform.SwipeOptions) error {
	pts, err := in.hostPoints(ctx, udid, opts.From, opts.To)
	if err != nil {
		return err
	}
	args := []string{clickArg("dd", pts[0])}
	if opts.Duration > 0 {
		args = append(args, "w:"+strconv.FormatInt(opts.Duration.Milliseconds(), 10))
	}
	args = append(args, clickArg("m", pts[1]), clickArg("du", pts[1]))
	if _, err := in.runner.Run(ctx, "cliclick", args...); err != nil {
		return fmt.Errorf("cliclick: %w", err)
	}
	return nil
}

// TypeText passes text as a script argument so it is never parsed as
// AppleScript source.
func (in *Inputter) TypeText(ctx context.Context, udid, text string) error {
	if err := in.activate(ctx); err != nil {
		return err
	}
	_, err := in.runner.Run(ctx, "osascript",
		"-e", "on run argv",
		"-e", `tell application "System Events" to keystroke (item 1 of argv)`,
		"-e", "end run",
		"--", text,
	)
	if err != nil {
		return fmt.Errorf("failed to type text: %w", err)
	}
	return nil
}

func (in *Inputter) PressKey(ctx context.Context, udid string, key platform.Key) error {
	code, ok := keyCodes[key]
	if !ok {
		return fmt.Errorf("%w: %q", platform.ErrUnknownKey, key)
	}
	if err := in.activate(ctx); err != nil {
		return err
	}
	if _, err := in.osascript(ctx, fmt.Sprintf(`tell application "System Events" to key code %d`, code)); err != nil {
		return fmt.Errorf("failed to press key %s: %w", key, err)
	}
	return nil
}

func (in *Inputter) PressButton(ctx context.Context, udid string, button platform.Button) error {
	shortcut, ok := buttonShortcuts[button]
	if !ok {
		return fmt.Errorf("button %s is not supported with host input; use --input idb", button)
	}
	if err := in.activate(ctx); err != nil {
		return err
	}
	if _, err := in.osascript(ctx, `tell application "System Events" to `+shortcut); err != nil {
		return fmt.Errorf("failed to press button %s: %w", button, err)
	}
	return nil
}

package host

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/artmamedov/ios-sim-mcp/internal/model"
	"github.com/artmamedov/ios-sim-mcp/internal/platform"
	"github.com/artmamedov/ios-sim-mcp/internal/runner/runnertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A 400x880 window at (100, 50) over a 400x852 point screen gives a 1:1
// scale below the title bar.
func newFake() *runnertest.Fake {
	return (&runnertest.Fake{}).
		OnOutput("osascript", "").
		OnOutput("osascript -e "+boundsScript, "100, 50, 400, 880\n").
		OnOutput("cliclick", "")
}

func fixedScreen(w, h float64) PointSizeFunc {
	return func(context.Context, string) (float64, float64, error) {
		return w, h, nil
	}
}

func TestParseBounds(t *testing.T) {
	win, err := parseBounds("12, 34, 500, 1000\n")
	require.NoError(t, err)
	assert.Equal(t, model.WindowFrame{X: 12, Y: 34, Width: 500, Height: 1000}, win)

	_, err = parseBounds("")
	assert.Error(t, err)
	_, err = parseBounds("a, b, c, d")
	assert.Error(t, err)
}

func TestTap_MapsIntoWindow(t *testing.T) {
	fake := newFake()
	in := New(fake, fixedScreen(400, 852))

	got, err := in.Tap(context.Background(), "AAA", platform.Point{X: 0, Y: 0}, platform.TapOptions{})
	require.NoError(t, err)
	assert.Equal(t, platform.Point{X: 100, Y: 78}, got)

	clicks := fake.CallsWithPrefix("cliclick")
	require.Len(t, clicks, 1)
	assert.Equal(t, []string{"c:100,78"}, clicks[0].Args)
	assert.Len(t, fake.CallsWithPrefix("osascript -e "+activateScript), 1)
}

func TestTap_LongPress(t *testing.T) {
	fake := newFake()
	in := New(fake, fixedScreen(400, 852))

	_, err := in.Tap(context.Background(), "AAA", platform.Point{X: 200, Y: 400}, platform.TapOptions{Duration: 1500 * time.Millisecond})
	require.NoError(t, err)
	clicks := fake.CallsWithPrefix("cliclick")
	require.Len(t, clicks, 1)
	assert.Equal(t, []string{"dd:300,478", "w:1500", "du:300,478"}, clicks[0].Args)
}

func TestTap_WindowBoundsUnavailable(t *testing.T) {
	fake := newFake().On("osascript -e "+boundsScript, runnertest.Response{Err: errors.New("Simulator got an error: Invalid index")})
	in := New(fake, fixedScreen(400, 852))

	_, err := in.Tap(context.Background(), "AAA", platform.Point{X: 1, Y: 1}, platform.TapOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window bounds")
	assert.Empty(t, fake.CallsWithPrefix("cliclick"))
}

func TestTap_PointSizeUnavailable(t *testing.T) {
	fake := newFake()
	in := New(fake, func(context.Context, string) (float64, float64, error) {
		return 0, 0, errors.New("accessibility tree unavailable")
	})

	_, err := in.Tap(context.Background(), "AAA", platform.Point{X: 200, Y: 400}, platform.TapOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accessibility tree unavailable")
	assert.Empty(t, fake.CallsWithPrefix("cliclick"))
}

func TestSwipe(t *testing.T) {
	fake := newFake()
	in := New(fake, fixedScreen(400, 852))

	err := in.Swipe(context.Background(), "AAA", platform.SwipeOptions{
		From:     platform.Point{X: 200, Y: 700},
		To:       platform.Point{X: 200, Y: 100},
		Duration: 300 * time.Millisecond,
	})
	require.NoError(t, err)
	clicks := fake.CallsWithPrefix("cliclick")
	require.Len(t, clicks, 1)
	assert.Equal(t, []string{"dd:300,778", "w:300", "m:300,178", "du:300,178"}, clicks[0].Args)
}

func TestTypeText_PassesTextAsArgument(t *testing.T) {
	fake := newFake()
	in := New(fake, fixedScreen(400, 852))

	text := `he said "hi" & left`
	require.NoError(t, in.TypeText(context.Background(), "AAA", text))

	last := fake.Calls[len(fake.Calls)-1]
	assert.Equal(t, "osascript", last.Name)
	assert.Equal(t, text, last.Args[len(last.Args)-1])
	assert.Equal(t, "--", last.Args[len(last.Args)-2])
}

func TestPressKey(t *testing.T) {
	fake := newFake()
	in := New(fake, fixedScreen(400, 852))

	require.NoError(t, in.PressKey(context.Background(), "AAA", platform.KeyReturn))
	assert.Len(t, fake.CallsWithPrefix(`osascript -e tell application "System Events" to key code 36`), 1)

	err := in.PressKey(context.Background(), "AAA", platform.Key("f13"))
	assert.ErrorIs(t, err, platform.ErrUnknownKey)
}

func TestPressButton(t *testing.T) {
	fake := newFake()
	in := New(fake, fixedScreen(400, 852))

	require.NoError(t, in.PressButton(context.Background(), "AAA", platform.ButtonHome))
	assert.Len(t, fake.CallsWithPrefix(`osascript -e tell application "System Events" to keystroke "h"`), 1)

	err := in.PressButton(context.Background(), "AAA", platform.ButtonSiri)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIRI")
}

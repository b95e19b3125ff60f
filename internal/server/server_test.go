package server

import (
	"context"
	"encoding/base64"
	"image"
	"os"
	"testing"

	"github.com/artmamedov/ios-sim-mcp/internal/imageutil"
	"github.com/artmamedov/ios-sim-mcp/internal/platform"
	"github.com/artmamedov/ios-sim-mcp/internal/platform/idb"
	"github.com/artmamedov/ios-sim-mcp/internal/runner/runnertest"
	"github.com/artmamedov/ios-sim-mcp/internal/simulator"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	idbPath    = "/usr/local/bin/idb"
	bootedUDID = "5A1B2C3D-0000-1111-2222-333344445555"
	targets    = "iPhone 15 Pro | 5A1B2C3D-0000-1111-2222-333344445555 | Booted | simulator | iOS 17.2 | arm64 | No Companion Connected\n"
	tree       = `[{"type":"Application","AXLabel":"Demo","frame":{"x":0,"y":0,"width":20,"height":40},"enabled":true,"children":[
  {"type":"Button","AXLabel":"Continue","frame":{"x":2,"y":30,"width":16,"height":6},"enabled":true}
]}]`
)

func newTestServer(t *testing.T) (*Server, *runnertest.Fake) {
	t.Helper()
	png, err := imageutil.EncodePNG(image.NewRGBA(image.Rect(0, 0, 40, 80)))
	require.NoError(t, err)

	fake := &runnertest.Fake{}
	fake.OnOutput(idbPath, "")
	fake.OnOutput(idbPath+" list-targets", targets)
	fake.OnOutput(idbPath+" ui describe-all", tree)
	fake.On(idbPath+" screenshot", runnertest.Response{Do: func(args []string) error {
		return os.WriteFile(args[len(args)-1], png, 0o644)
	}})
	fake.OnOutput("sips", "pixelWidth: 40\npixelHeight: 80\n")

	log, _ := test.NewNullLogger()
	bridge := idb.New(idbPath, fake)
	svc := simulator.NewWithProvider(platform.Provider{Lifecycle: bridge, Inputter: bridge, Inspector: bridge}, fake, log)
	return New(svc, Config{}, log), fake
}

func call(t *testing.T, s *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args

	for _, entry := range s.tools() {
		if entry.tool.Name == name {
			res, err := entry.handler(context.Background(), req)
			require.NoError(t, err, "handlers report failures in the result")
			require.NotNil(t, res)
			return res
		}
	}
	t.Fatalf("tool %q not registered", name)
	return nil
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestTools_Table(t *testing.T) {
	s, _ := newTestServer(t)
	var names []string
	for _, entry := range s.tools() {
		names = append(names, entry.tool.Name)
		assert.NotEmpty(t, entry.tool.Description, entry.tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"list_devices", "boot_device", "shutdown_device", "screenshot", "get_screen_size",
		"launch_app", "terminate_app", "list_apps", "install_app", "uninstall_app",
		"tap", "swipe", "type_text", "press_key", "press_button", "open_url",
		"describe_screen", "describe_point", "find_elements", "tap_element",
	}, names)
}

func TestTools_ButtonEnum(t *testing.T) {
	s, _ := newTestServer(t)
	for _, entry := range s.tools() {
		if entry.tool.Name != "press_button" {
			continue
		}
		prop, ok := entry.tool.InputSchema.Properties["button"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, platform.ButtonNames, prop["enum"])
		assert.Contains(t, entry.tool.InputSchema.Required, "button")
	}
}

func TestHandleTap(t *testing.T) {
	s, fake := newTestServer(t)
	res := call(t, s, "tap", map[string]interface{}{"x": 200.0, "y": 400.0})
	assert.False(t, res.IsError)

	msg := text(t, res)
	assert.Contains(t, msg, "(200, 400)")
	assert.Contains(t, msg, bootedUDID)
	assert.Len(t, fake.CallsWithPrefix(idbPath+" ui tap --udid "+bootedUDID+" 200 400"), 1)
}

func TestHandleTap_MissingCoordinate(t *testing.T) {
	s, fake := newTestServer(t)
	res := call(t, s, "tap", map[string]interface{}{"x": 10.0})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "y is required")
	assert.Empty(t, fake.CallsWithPrefix(idbPath+" ui tap"))
}

func TestHandlePressButton_Unknown(t *testing.T) {
	s, _ := newTestServer(t)
	res := call(t, s, "press_button", map[string]interface{}{"button": "VOLUME_UP"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "unknown button")
}

func TestHandleTapElement_NoMatch(t *testing.T) {
	s, _ := newTestServer(t)
	res := call(t, s, "tap_element", map[string]interface{}{"label": "Checkout"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "Checkout")
}

func TestHandleListDevices_JSON(t *testing.T) {
	s, _ := newTestServer(t)
	res := call(t, s, "list_devices", map[string]interface{}{"booted_only": true})
	assert.False(t, res.IsError)
	out := text(t, res)
	assert.Contains(t, out, `"udid": "`+bootedUDID+`"`)
	assert.Contains(t, out, `"state": "Booted"`)
}

func TestHandleDescribeScreen(t *testing.T) {
	s, _ := newTestServer(t)
	res := call(t, s, "describe_screen", nil)
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), `"label": "Continue"`)
}

func TestHandleScreenshot(t *testing.T) {
	s, _ := newTestServer(t)
	res := call(t, s, "screenshot", nil)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 2)

	img, ok := res.Content[0].(mcp.ImageContent)
	require.True(t, ok)
	assert.Equal(t, "image/png", img.MIMEType)

	data, err := base64.StdEncoding.DecodeString(img.Data)
	require.NoError(t, err)
	decoded, err := imageutil.DecodePNG(data)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 80), decoded.Bounds())
	assert.Contains(t, res.Content[1].(mcp.TextContent).Text, "40x80")
}

func TestHandleScreenSize(t *testing.T) {
	s, _ := newTestServer(t)
	res := call(t, s, "get_screen_size", nil)
	assert.False(t, res.IsError)
	out := text(t, res)
	assert.Contains(t, out, `"pixel_width": 40`)
	assert.Contains(t, out, `"scale": 2`)
}

func TestHandle_BackendFailureIsErrorResult(t *testing.T) {
	s, fake := newTestServer(t)
	fake.On(idbPath+" list-targets", runnertest.Response{Err: assert.AnError})
	res := call(t, s, "shutdown_device", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), assert.AnError.Error())
}

func TestServe_UnknownTransport(t *testing.T) {
	s, _ := newTestServer(t)
	err := s.Serve(Config{Transport: "websocket"})
	assert.ErrorContains(t, err, "unsupported transport")
}

// Package server exposes simulator operations as MCP tools.
package server

import (
	"fmt"

	"github.com/artmamedov/ios-sim-mcp/internal/output"
	"github.com/artmamedov/ios-sim-mcp/internal/platform"
	"github.com/artmamedov/ios-sim-mcp/internal/simulator"
	"github.com/artmamedov/ios-sim-mcp/internal/version"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// Name is the server name advertised to clients.
const Name = "ios-sim-mcp"

// Transports accepted by Serve.
const (
	TransportStdio          = "stdio"
	TransportSSE            = "sse"
	TransportStreamableHTTP = "streamable-http"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	// Format serializes record results.
	Format output.Format
}

// Server wraps the MCP server with the simulator service.
type Server struct {
	svc    *simulator.Service
	format output.Format
	log    logrus.FieldLogger
	mcp    *mcpserver.MCPServer
}

// New creates an MCP server with every simulator tool registered.
func New(svc *simulator.Service, cfg Config, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	format := cfg.Format
	if format == "" {
		format = output.FormatJSON
	}
	s := &Server{svc: svc, format: format, log: log}
	s.mcp = mcpserver.NewMCPServer(
		Name,
		version.Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	for _, t := range s.tools() {
		s.mcp.AddTool(t.tool, t.handler)
	}
	return s
}

// Serve blocks serving the configured transport.
func (s *Server) Serve(cfg Config) error {
	addr := fmt.Sprintf(":%d", cfg.Port)
	switch cfg.Transport {
	case "", TransportStdio:
		return mcpserver.ServeStdio(s.mcp)
	case TransportSSE:
		s.log.WithField("addr", addr).Info("serving MCP over SSE")
		return mcpserver.NewSSEServer(s.mcp).Start(addr)
	case TransportStreamableHTTP:
		s.log.WithField("addr", addr).Info("serving MCP over streamable HTTP")
		return mcpserver.NewStreamableHTTPServer(s.mcp).Start(addr)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio, sse or streamable-http)", cfg.Transport)
	}
}

type toolEntry struct {
	tool    mcp.Tool
	handler mcpserver.ToolHandlerFunc
}

func udidParam() mcp.ToolOption {
	return mcp.WithString("udid", mcp.Description("Simulator UDID. Defaults to the booted simulator"))
}

// tools is the static capability table.
func (s *Server) tools() []toolEntry {
	return []toolEntry{
		{mcp.NewTool("list_devices",
			mcp.WithDescription("List iOS simulators with their state and OS version"),
			mcp.WithBoolean("booted_only", mcp.Description("Only return booted simulators")),
		), s.handleListDevices},
		{mcp.NewTool("boot_device",
			mcp.WithDescription("Boot a simulator"),
			mcp.WithString("udid", mcp.Description("Simulator UDID from list_devices"), mcp.Required()),
		), s.handleBootDevice},
		{mcp.NewTool("shutdown_device",
			mcp.WithDescription("Shut down a simulator"),
			udidParam(),
		), s.handleShutdownDevice},
		{mcp.NewTool("screenshot",
			mcp.WithDescription("Capture the simulator screen as a PNG image"),
			udidParam(),
			mcp.WithNumber("scale", mcp.Description("Downscale factor between 0 and 1 (default: full size)")),
			mcp.WithBoolean("annotate", mcp.Description("Draw accessibility element frames and their tap points in simulator points")),
		), s.handleScreenshot},
		{mcp.NewTool("get_screen_size",
			mcp.WithDescription("Get the screen size in pixels and points, and the pixels-per-point scale"),
			udidParam(),
		), s.handleScreenSize},
		{mcp.NewTool("launch_app",
			mcp.WithDescription("Launch an installed app"),
			mcp.WithString("bundle_id", mcp.Description("App bundle identifier (e.g. 'com.apple.Preferences')"), mcp.Required()),
			udidParam(),
		), s.handleLaunchApp},
		{mcp.NewTool("terminate_app",
			mcp.WithDescription("Terminate a running app"),
			mcp.WithString("bundle_id", mcp.Description("App bundle identifier"), mcp.Required()),
			udidParam(),
		), s.handleTerminateApp},
		{mcp.NewTool("list_apps",
			mcp.WithDescription("List apps installed on the simulator"),
			udidParam(),
		), s.handleListApps},
		{mcp.NewTool("install_app",
			mcp.WithDescription("Install an .app bundle or .ipa on the simulator"),
			mcp.WithString("app_path", mcp.Description("Path to the .app bundle or .ipa on the host"), mcp.Required()),
			udidParam(),
		), s.handleInstallApp},
		{mcp.NewTool("uninstall_app",
			mcp.WithDescription("Uninstall an app"),
			mcp.WithString("bundle_id", mcp.Description("App bundle identifier"), mcp.Required()),
			udidParam(),
		), s.handleUninstallApp},
		{mcp.NewTool("tap",
			mcp.WithDescription("Tap at a point in simulator screen points. Set duration for a long press"),
			mcp.WithNumber("x", mcp.Description("X coordinate in points"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate in points"), mcp.Required()),
			mcp.WithNumber("duration", mcp.Description("Press duration in seconds (default: normal tap)")),
			udidParam(),
		), s.handleTap},
		{mcp.NewTool("swipe",
			mcp.WithDescription("Swipe between two points in simulator screen points"),
			mcp.WithNumber("x_start", mcp.Description("Start X"), mcp.Required()),
			mcp.WithNumber("y_start", mcp.Description("Start Y"), mcp.Required()),
			mcp.WithNumber("x_end", mcp.Description("End X"), mcp.Required()),
			mcp.WithNumber("y_end", mcp.Description("End Y"), mcp.Required()),
			mcp.WithNumber("duration", mcp.Description("Swipe duration in seconds")),
			mcp.WithNumber("delta", mcp.Description("Step size in points between touch events")),
			udidParam(),
		), s.handleSwipe},
		{mcp.NewTool("type_text",
			mcp.WithDescription("Type text into the focused field"),
			mcp.WithString("text", mcp.Description("Text to type"), mcp.Required()),
			udidParam(),
		), s.handleTypeText},
		{mcp.NewTool("press_key",
			mcp.WithDescription("Press a keyboard key"),
			mcp.WithString("key", mcp.Description("Key name"), mcp.Required(), mcp.Enum(platform.KeyNames...)),
			udidParam(),
		), s.handlePressKey},
		{mcp.NewTool("press_button",
			mcp.WithDescription("Press a hardware button"),
			mcp.WithString("button", mcp.Description("Button name"), mcp.Required(), mcp.Enum(platform.ButtonNames...)),
			udidParam(),
		), s.handlePressButton},
		{mcp.NewTool("open_url",
			mcp.WithDescription("Open a URL or deep link on the simulator"),
			mcp.WithString("url", mcp.Description("URL to open"), mcp.Required()),
			udidParam(),
		), s.handleOpenURL},
		{mcp.NewTool("describe_screen",
			mcp.WithDescription("List every accessibility element on screen with its type, label, value and frame in points"),
			udidParam(),
		), s.handleDescribeScreen},
		{mcp.NewTool("describe_point",
			mcp.WithDescription("Describe the accessibility element at a point"),
			mcp.WithNumber("x", mcp.Description("X coordinate in points"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate in points"), mcp.Required()),
			udidParam(),
		), s.handleDescribePoint},
		{mcp.NewTool("find_elements",
			mcp.WithDescription("Find accessibility elements whose label contains the given text (case-insensitive)"),
			mcp.WithString("label", mcp.Description("Text to search for in element labels"), mcp.Required()),
			udidParam(),
		), s.handleFindElements},
		{mcp.NewTool("tap_element",
			mcp.WithDescription("Tap the center of the first element whose label contains the given text (case-insensitive)"),
			mcp.WithString("label", mcp.Description("Text to search for in element labels"), mcp.Required()),
			udidParam(),
		), s.handleTapElement},
	}
}

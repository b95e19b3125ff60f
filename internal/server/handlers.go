package server

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/artmamedov/ios-sim-mcp/internal/output"
	"github.com/artmamedov/ios-sim-mcp/internal/platform"
	"github.com/artmamedov/ios-sim-mcp/internal/simulator"
	"github.com/mark3labs/mcp-go/mcp"
)

// fail converts an operation error into an error-flagged result.
func (s *Server) fail(request mcp.CallToolRequest, err error) (*mcp.CallToolResult, error) {
	s.log.WithField("tool", request.Params.Name).WithError(err).Warn("tool call failed")
	return mcp.NewToolResultError(err.Error()), nil
}

// confirm wraps a confirmation message.
func (s *Server) confirm(request mcp.CallToolRequest, msg string, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return s.fail(request, err)
	}
	return mcp.NewToolResultText(msg), nil
}

// record serializes v in the configured format.
func (s *Server) record(request mcp.CallToolRequest, v interface{}, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return s.fail(request, err)
	}
	b, err := output.Marshal(v, s.format)
	if err != nil {
		return s.fail(request, err)
	}
	return mcp.NewToolResultText(string(b)), nil
}

func pointParams(params map[string]interface{}, xKey, yKey string) (platform.Point, error) {
	x, err := requireFloat(params, xKey)
	if err != nil {
		return platform.Point{}, err
	}
	y, err := requireFloat(params, yKey)
	if err != nil {
		return platform.Point{}, err
	}
	return platform.Point{X: x, Y: y}, nil
}

func (s *Server) handleListDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	devices, err := s.svc.ListDevices(ctx, boolParam(params, "booted_only", false))
	return s.record(request, devices, err)
}

func (s *Server) handleBootDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	msg, err := s.svc.Boot(ctx, stringParam(params, "udid", ""))
	return s.confirm(request, msg, err)
}

func (s *Server) handleShutdownDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	msg, err := s.svc.Shutdown(ctx, stringParam(params, "udid", ""))
	return s.confirm(request, msg, err)
}

func (s *Server) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	shot, err := s.svc.Screenshot(ctx, stringParam(params, "udid", ""), simulator.ScreenshotOptions{
		Scale:    floatParam(params, "scale", 0),
		Annotate: boolParam(params, "annotate", false),
	})
	if err != nil {
		return s.fail(request, err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(shot.Data),
				MIMEType: shot.MIMEType,
			},
			mcp.TextContent{
				Type: "text",
				Text: fmt.Sprintf("Screenshot of device %s (%dx%d pixels)", shot.UDID, shot.Width, shot.Height),
			},
		},
	}, nil
}

func (s *Server) handleScreenSize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	size, err := s.svc.ScreenSize(ctx, stringParam(params, "udid", ""))
	return s.record(request, size, err)
}

func (s *Server) handleLaunchApp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	msg, err := s.svc.LaunchApp(ctx, stringParam(params, "udid", ""), stringParam(params, "bundle_id", ""))
	return s.confirm(request, msg, err)
}

func (s *Server) handleTerminateApp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	msg, err := s.svc.TerminateApp(ctx, stringParam(params, "udid", ""), stringParam(params, "bundle_id", ""))
	return s.confirm(request, msg, err)
}

func (s *Server) handleListApps(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	apps, err := s.svc.ListApps(ctx, stringParam(params, "udid", ""))
	return s.record(request, apps, err)
}

func (s *Server) handleInstallApp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	msg, err := s.svc.InstallApp(ctx, stringParam(params, "udid", ""), stringParam(params, "app_path", ""))
	return s.confirm(request, msg, err)
}

func (s *Server) handleUninstallApp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	msg, err := s.svc.UninstallApp(ctx, stringParam(params, "udid", ""), stringParam(params, "bundle_id", ""))
	return s.confirm(request, msg, err)
}

func (s *Server) handleTap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	p, err := pointParams(params, "x", "y")
	if err != nil {
		return s.fail(request, err)
	}
	msg, err := s.svc.Tap(ctx, stringParam(params, "udid", ""), p, secondsParam(params, "duration"))
	return s.confirm(request, msg, err)
}

func (s *Server) handleSwipe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	from, err := pointParams(params, "x_start", "y_start")
	if err != nil {
		return s.fail(request, err)
	}
	to, err := pointParams(params, "x_end", "y_end")
	if err != nil {
		return s.fail(request, err)
	}
	msg, err := s.svc.Swipe(ctx, stringParam(params, "udid", ""), platform.SwipeOptions{
		From:     from,
		To:       to,
		Duration: secondsParam(params, "duration"),
		Delta:    int(floatParam(params, "delta", 0)),
	})
	return s.confirm(request, msg, err)
}

func (s *Server) handleTypeText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	msg, err := s.svc.TypeText(ctx, stringParam(params, "udid", ""), stringParam(params, "text", ""))
	return s.confirm(request, msg, err)
}

func (s *Server) handlePressKey(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	msg, err := s.svc.PressKey(ctx, stringParam(params, "udid", ""), stringParam(params, "key", ""))
	return s.confirm(request, msg, err)
}

func (s *Server) handlePressButton(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	msg, err := s.svc.PressButton(ctx, stringParam(params, "udid", ""), stringParam(params, "button", ""))
	return s.confirm(request, msg, err)
}

func (s *Server) handleOpenURL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	msg, err := s.svc.OpenURL(ctx, stringParam(params, "udid", ""), stringParam(params, "url", ""))
	return s.confirm(request, msg, err)
}

func (s *Server) handleDescribeScreen(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	elements, err := s.svc.DescribeScreen(ctx, stringParam(params, "udid", ""))
	return s.record(request, elements, err)
}

func (s *Server) handleDescribePoint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	p, err := pointParams(params, "x", "y")
	if err != nil {
		return s.fail(request, err)
	}
	el, err := s.svc.DescribePoint(ctx, stringParam(params, "udid", ""), p)
	return s.record(request, el, err)
}

func (s *Server) handleFindElements(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	elements, err := s.svc.FindElements(ctx, stringParam(params, "udid", ""), stringParam(params, "label", ""))
	return s.record(request, elements, err)
}

func (s *Server) handleTapElement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	msg, err := s.svc.TapElement(ctx, stringParam(params, "udid", ""), stringParam(params, "label", ""))
	return s.confirm(request, msg, err)
}

package idb

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/artmamedov/ios-sim-mcp/internal/model"
)

// parseTargets parses `idb list-targets` output:
//
//	iPhone 15 | 5A1B... | Booted | simulator | iOS 17.2 | arm64 | No Companion Connected
func parseTargets(out string) []model.Device {
	var devices []model.Device
	for _, fields := range pipeRows(out, 5) {
		devices = append(devices, model.Device{
			Name:      fields[0],
			UDID:      fields[1],
			State:     model.ParseDeviceState(fields[2]),
			Type:      fields[3],
			OSVersion: fields[4],
		})
	}
	return devices
}

// parseApps parses `idb list-apps` output:
//
//	com.apple.mobilesafari | MobileSafari | system | arm64 | Running | Not Debuggable
func parseApps(out string) []model.App {
	var apps []model.App
	for _, fields := range pipeRows(out, 3) {
		app := model.App{
			BundleID:    fields[0],
			Name:        fields[1],
			InstallType: fields[2],
		}
		if len(fields) > 4 {
			running := strings.EqualFold(fields[4], "Running")
			app.Running = &running
		}
		apps = append(apps, app)
	}
	return apps
}

// pipeRows splits each non-empty line on "|" and keeps rows with at least
// minFields columns.
func pipeRows(out string, minFields int) [][]string {
	var rows [][]string
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < minFields {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		rows = append(rows, parts)
	}
	return rows
}

type axFrame struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type axElement struct {
	Type     string      `json:"type"`
	Role     string      `json:"role"`
	AXLabel  *string     `json:"AXLabel"`
	AXValue  *string     `json:"AXValue"`
	Frame    axFrame     `json:"frame"`
	Enabled  bool        `json:"enabled"`
	Children []axElement `json:"children"`
}

func (a axElement) toModel() model.Element {
	el := model.Element{
		Type:    a.Type,
		Frame:   model.Frame{X: a.Frame.X, Y: a.Frame.Y, Width: a.Frame.Width, Height: a.Frame.Height},
		Enabled: a.Enabled,
	}
	if el.Type == "" {
		el.Type = strings.TrimPrefix(a.Role, "AX")
	}
	if a.AXLabel != nil {
		el.Label = *a.AXLabel
	}
	if a.AXValue != nil {
		el.Value = *a.AXValue
	}
	for _, child := range a.Children {
		el.Children = append(el.Children, child.toModel())
	}
	return el
}

// parseElements accepts a JSON array, a single JSON object, or one JSON
// object per line, which covers the describe-all and describe-point output
// of the idb releases in use.
func parseElements(out []byte) ([]model.Element, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return nil, nil
	}

	var raw []axElement
	switch out[0] {
	case '[':
		if err := json.Unmarshal(out, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse accessibility tree: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(out))
		for dec.More() {
			var el axElement
			if err := dec.Decode(&el); err != nil {
				return nil, fmt.Errorf("failed to parse accessibility tree: %w", err)
			}
			raw = append(raw, el)
		}
	}

	elements := make([]model.Element, 0, len(raw))
	for _, r := range raw {
		elements = append(elements, r.toModel())
	}
	return elements, nil
}

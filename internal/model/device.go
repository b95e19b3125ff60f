package model

import "strings"

// DeviceState is the power state of a simulator.
type DeviceState string

const (
	StateBooted       DeviceState = "Booted"
	StateShutdown     DeviceState = "Shutdown"
	StateBooting      DeviceState = "Booting"
	StateShuttingDown DeviceState = "ShuttingDown"
	StateUnknown      DeviceState = "Unknown"
)

// ParseDeviceState maps the raw state text printed by simctl or idb onto
// the closed set of states.
func ParseDeviceState(raw string) DeviceState {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", "")) {
	case "booted":
		return StateBooted
	case "shutdown":
		return StateShutdown
	case "booting", "creating":
		return StateBooting
	case "shuttingdown":
		return StateShuttingDown
	default:
		return StateUnknown
	}
}

// Device is a simulator known to the host.
type Device struct {
	UDID      string      `yaml:"udid"                 json:"udid"`
	Name      string      `yaml:"name"                 json:"name"`
	State     DeviceState `yaml:"state"                json:"state"`
	Type      string      `yaml:"type,omitempty"       json:"type,omitempty"`
	OSVersion string      `yaml:"os_version,omitempty" json:"os_version,omitempty"`
}

// Booted filters devices down to those in the booted state.
func Booted(devices []Device) []Device {
	var result []Device
	for _, d := range devices {
		if d.State == StateBooted {
			result = append(result, d)
		}
	}
	return result
}

// App is an application installed on a simulator. Running is nil when the
// backend cannot report process state.
type App struct {
	BundleID    string `yaml:"bundle_id"              json:"bundle_id"`
	Name        string `yaml:"name,omitempty"         json:"name,omitempty"`
	InstallType string `yaml:"install_type,omitempty" json:"install_type,omitempty"`
	Running     *bool  `yaml:"running,omitempty"      json:"running,omitempty"`
}

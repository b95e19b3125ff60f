// Package simulator implements the simulator operations served over MCP and
// the CLI. Each operation resolves its target device, issues the matching
// backend calls and shapes the result.
package simulator

import (
	"context"
	"errors"
	"fmt"

	"github.com/artmamedov/ios-sim-mcp/internal/model"
	"github.com/artmamedov/ios-sim-mcp/internal/platform"
	"github.com/artmamedov/ios-sim-mcp/internal/platform/host"
	"github.com/artmamedov/ios-sim-mcp/internal/platform/idb"
	"github.com/artmamedov/ios-sim-mcp/internal/platform/simctl"
	"github.com/artmamedov/ios-sim-mcp/internal/runner"
	"github.com/sirupsen/logrus"
)

// ErrNoBootedDevice is returned when no device id was given and no
// simulator is booted.
var ErrNoBootedDevice = errors.New("no booted simulator found; call list_devices then boot_device")

// Backend names accepted in Config.
const (
	BackendIDB    = "idb"
	BackendSimctl = "simctl"
	BackendHost   = "host"
)

// Config selects the backends used by a Service.
type Config struct {
	// IDBPath is the resolved path of the idb executable.
	IDBPath string
	// Input is BackendIDB or BackendHost.
	Input string
	// Lifecycle is BackendIDB or BackendSimctl.
	Lifecycle string
}

// Service runs simulator operations. It holds no mutable state and is safe
// for concurrent use.
type Service struct {
	provider platform.Provider
	runner   runner.Runner
	log      logrus.FieldLogger
}

// New builds a Service with the backends named in cfg.
func New(cfg Config, r runner.Runner, log logrus.FieldLogger) (*Service, error) {
	bridge := idb.New(cfg.IDBPath, r)
	s := NewWithProvider(platform.Provider{Inspector: bridge}, r, log)

	switch cfg.Lifecycle {
	case "", BackendIDB:
		s.provider.Lifecycle = bridge
	case BackendSimctl:
		s.provider.Lifecycle = simctl.New(r)
	default:
		return nil, fmt.Errorf("unknown lifecycle backend %q (expected %s or %s)", cfg.Lifecycle, BackendIDB, BackendSimctl)
	}

	switch cfg.Input {
	case "", BackendIDB:
		s.provider.Inputter = bridge
	case BackendHost:
		s.provider.Inputter = host.New(r, s.pointSize)
	default:
		return nil, fmt.Errorf("unknown input backend %q (expected %s or %s)", cfg.Input, BackendIDB, BackendHost)
	}
	return s, nil
}

// NewWithProvider builds a Service over explicit backends. r is used for
// host utilities such as sips.
func NewWithProvider(p platform.Provider, r runner.Runner, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{provider: p, runner: r, log: log}
}

// ResolveDevice returns udid when set, otherwise the id of the booted
// simulator.
func (s *Service) ResolveDevice(ctx context.Context, udid string) (string, error) {
	if udid != "" {
		return udid, nil
	}
	devices, err := s.provider.Lifecycle.ListDevices(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list devices: %w", err)
	}
	booted := model.Booted(devices)
	if len(booted) == 0 {
		return "", ErrNoBootedDevice
	}
	if len(booted) > 1 {
		s.log.WithField("count", len(booted)).Warn("multiple simulators booted, using the first")
	}
	s.log.WithField("udid", booted[0].UDID).Debug("resolved booted device")
	return booted[0].UDID, nil
}

// ListDevices returns all simulators, or only booted ones.
func (s *Service) ListDevices(ctx context.Context, bootedOnly bool) ([]model.Device, error) {
	devices, err := s.provider.Lifecycle.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	if bootedOnly {
		devices = model.Booted(devices)
	}
	if devices == nil {
		devices = []model.Device{}
	}
	return devices, nil
}

func (s *Service) Boot(ctx context.Context, udid string) (string, error) {
	if udid == "" {
		return "", errors.New("udid is required; call list_devices to find one")
	}
	if err := s.provider.Lifecycle.Boot(ctx, udid); err != nil {
		return "", err
	}
	return fmt.Sprintf("Booted device %s", udid), nil
}

func (s *Service) Shutdown(ctx context.Context, udid string) (string, error) {
	udid, err := s.ResolveDevice(ctx, udid)
	if err != nil {
		return "", err
	}
	if err := s.provider.Lifecycle.Shutdown(ctx, udid); err != nil {
		return "", err
	}
	return fmt.Sprintf("Shut down device %s", udid), nil
}

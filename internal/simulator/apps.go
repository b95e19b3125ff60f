package simulator

import (
	"context"
	"errors"
	"fmt"

	"github.com/artmamedov/ios-sim-mcp/internal/model"
)

func (s *Service) LaunchApp(ctx context.Context, udid, bundleID string) (string, error) {
	if bundleID == "" {
		return "", errors.New("bundle_id is required; call list_apps to find one")
	}
	udid, err := s.ResolveDevice(ctx, udid)
	if err != nil {
		return "", err
	}
	if err := s.provider.Lifecycle.LaunchApp(ctx, udid, bundleID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Launched %s on device %s", bundleID, udid), nil
}

func (s *Service) TerminateApp(ctx context.Context, udid, bundleID string) (string, error) {
	if bundleID == "" {
		return "", errors.New("bundle_id is required; call list_apps to find one")
	}
	udid, err := s.ResolveDevice(ctx, udid)
	if err != nil {
		return "", err
	}
	if err := s.provider.Lifecycle.TerminateApp(ctx, udid, bundleID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Terminated %s on device %s", bundleID, udid), nil
}

func (s *Service) ListApps(ctx context.Context, udid string) ([]model.App, error) {
	udid, err := s.ResolveDevice(ctx, udid)
	if err != nil {
		return nil, err
	}
	apps, err := s.provider.Lifecycle.ListApps(ctx, udid)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []model.App{}
	}
	return apps, nil
}

func (s *Service) InstallApp(ctx context.Context, udid, appPath string) (string, error) {
	if appPath == "" {
		return "", errors.New("app_path is required")
	}
	udid, err := s.ResolveDevice(ctx, udid)
	if err != nil {
		return "", err
	}
	if err := s.provider.Lifecycle.InstallApp(ctx, udid, appPath); err != nil {
		return "", err
	}
	return fmt.Sprintf("Installed %s on device %s", appPath, udid), nil
}

func (s *Service) UninstallApp(ctx context.Context, udid, bundleID string) (string, error) {
	if bundleID == "" {
		return "", errors.New("bundle_id is required; call list_apps to find one")
	}
	udid, err := s.ResolveDevice(ctx, udid)
	if err != nil {
		return "", err
	}
	if err := s.provider.Lifecycle.UninstallApp(ctx, udid, bundleID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Uninstalled %s from device %s", bundleID, udid), nil
}

func (s *Service) OpenURL(ctx context.Context, udid, url string) (string, error) {
	if url == "" {
		return "", errors.New("url is required")
	}
	udid, err := s.ResolveDevice(ctx, udid)
	if err != nil {
		return "", err
	}
	if err := s.provider.Lifecycle.OpenURL(ctx, udid, url); err != nil {
		return "", err
	}
	return fmt.Sprintf("Opened %s on device %s", url, udid), nil
}

package simulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/artmamedov/ios-sim-mcp/internal/platform"
)

// Tap taps at p. A positive duration performs a long press.
func (s *Service) Tap(ctx context.Context, udid string, p platform.Point, duration time.Duration) (string, error) {
	udid, err := s.ResolveDevice(ctx, udid)
	if err != nil {
		return "", err
	}
	resolved, err := s.provider.Inputter.Tap(ctx, udid, p, platform.TapOptions{Duration: duration})
	if err != nil {
		return "", err
	}
	verb := "Tapped"
	if duration > 0 {
		verb = fmt.Sprintf("Long-pressed (%s)", duration)
	}
	return fmt.Sprintf("%s at %s on device %s (resolved to %s)", verb, p, udid, resolved), nil
}

func (s *Service) Swipe(ctx context.Context, udid string, opts platform.SwipeOptions) (string, error) {
	udid, err := s.ResolveDevice(ctx, udid)
	if err != nil {
		return "", err
	}
	if err := s.provider.Inputter.Swipe(ctx, udid, opts); err != nil {
		return "", err
	}
	return fmt.Sprintf("Swiped from %s to %s on device %s", opts.From, opts.To, udid), nil
}

// TypeText types text into the focused field.
func (s *Service) TypeText(ctx context.Context, udid, text string) (string, error) {
	if text == "" {
		return "", errors.New("text is required")
	}
	udid, err := s.ResolveDevice(ctx, udid)
	if err != nil {
		return "", err
	}
	if err := s.provider.Inputter.TypeText(ctx, udid, text); err != nil {
		return "", err
	}
	return fmt.Sprintf("Typed %q on device %s", text, udid), nil
}

func (s *Service) PressKey(ctx context.Context, udid, name string) (string, error) {
	key, err := platform.ParseKey(name)
	if err != nil {
		return "", err
	}
	udid, err = s.ResolveDevice(ctx, udid)
	if err != nil {
		return "", err
	}
	if err := s.provider.Inputter.PressKey(ctx, udid, key); err != nil {
		return "", err
	}
	return fmt.Sprintf("Pressed key %s on device %s", key, udid), nil
}

func (s *Service) PressButton(ctx context.Context, udid, name string) (string, error) {
	button, err := platform.ParseButton(name)
	if err != nil {
		return "", err
	}
	udid, err = s.ResolveDevice(ctx, udid)
	if err != nil {
		return "", err
	}
	if err := s.provider.Inputter.PressButton(ctx, udid, button); err != nil {
		return "", err
	}
	return fmt.Sprintf("Pressed %s button on device %s", button, udid), nil
}

package simulator

import (
	"context"
	"errors"
	"fmt"

	"github.com/artmamedov/ios-sim-mcp/internal/model"
	"github.com/artmamedov/ios-sim-mcp/internal/platform"
)

// DescribeScreen returns every accessibility element on screen as a flat
// list in traversal order.
func (s *Service) DescribeScreen(ctx context.Context, udid string) ([]model.Element, error) {
	udid, err := s.ResolveDevice(ctx, udid)
	if err != nil {
		return nil, err
	}
	elements, err := s.provider.Inspector.DescribeAll(ctx, udid)
	if err != nil {
		return nil, err
	}
	flat := model.Flatten(elements)
	if flat == nil {
		flat = []model.Element{}
	}
	return flat, nil
}

func (s *Service) DescribePoint(ctx context.Context, udid string, p platform.Point) (model.Element, error) {
	udid, err := s.ResolveDevice(ctx, udid)
	if err != nil {
		return model.Element{}, err
	}
	return s.provider.Inspector.DescribePoint(ctx, udid, p)
}

// FindElements returns elements whose label contains label,
// case-insensitively. No match is an empty list.
func (s *Service) FindElements(ctx context.Context, udid, label string) ([]model.Element, error) {
	if label == "" {
		return nil, errors.New("label is required")
	}
	elements, err := s.DescribeScreen(ctx, udid)
	if err != nil {
		return nil, err
	}
	matches := model.FindByLabel(elements, label)
	if matches == nil {
		matches = []model.Element{}
	}
	return matches, nil
}

// TapElement taps the center of the first element whose label contains
// label.
func (s *Service) TapElement(ctx context.Context, udid, label string) (string, error) {
	if label == "" {
		return "", errors.New("label is required")
	}
	udid, err := s.ResolveDevice(ctx, udid)
	if err != nil {
		return "", err
	}
	elements, err := s.provider.Inspector.DescribeAll(ctx, udid)
	if err != nil {
		return "", err
	}
	el, n, err := model.FirstByLabel(elements, label)
	if err != nil {
		return "", err
	}

	x, y := el.Frame.Center()
	p := platform.Point{X: x, Y: y}
	resolved, err := s.provider.Inputter.Tap(ctx, udid, p, platform.TapOptions{})
	if err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Tapped %q (%s) at %s on device %s (resolved to %s)", el.Label, el.Type, p, udid, resolved)
	if n > 1 {
		msg += fmt.Sprintf("; first of %d matches for %q", n, label)
	}
	return msg, nil
}

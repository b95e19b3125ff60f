package simulator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/artmamedov/ios-sim-mcp/internal/imagemeta"
	"github.com/artmamedov/ios-sim-mcp/internal/imageutil"
	"github.com/artmamedov/ios-sim-mcp/internal/model"
	"github.com/google/uuid"
)

// ScreenshotOptions controls post-processing of a screenshot.
type ScreenshotOptions struct {
	// Scale in (0, 1) downsizes the image; other values keep full size.
	Scale float64
	// Annotate draws accessibility element frames and tap points.
	Annotate bool
}

// Screenshot is a captured PNG.
type Screenshot struct {
	UDID     string
	Data     []byte
	MIMEType string
	Width    int
	Height   int
}

// capture writes a screenshot to a uniquely named temp file, returns its
// bytes and pixel size, and removes the file.
func (s *Service) capture(ctx context.Context, udid string) ([]byte, int, int, error) {
	path := filepath.Join(os.TempDir(), "ios-sim-mcp-"+uuid.NewString()+".png")
	defer os.Remove(path)

	if err := s.provider.Lifecycle.Screenshot(ctx, udid, path); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	w, h, err := imagemeta.Dimensions(ctx, s.runner, path)
	if err != nil {
		return nil, 0, 0, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to read screenshot: %w", err)
	}
	return data, w, h, nil
}

func (s *Service) Screenshot(ctx context.Context, udid string, opts ScreenshotOptions) (*Screenshot, error) {
	udid, err := s.ResolveDevice(ctx, udid)
	if err != nil {
		return nil, err
	}
	data, w, h, err := s.capture(ctx, udid)
	if err != nil {
		return nil, err
	}
	shot := &Screenshot{UDID: udid, Data: data, MIMEType: "image/png", Width: w, Height: h}

	scaled := opts.Scale > 0 && opts.Scale < 1
	if !scaled && !opts.Annotate {
		return shot, nil
	}

	img, err := imageutil.DecodePNG(data)
	if err != nil {
		return nil, err
	}
	if opts.Annotate {
		elements, err := s.provider.Inspector.DescribeAll(ctx, udid)
		if err != nil {
			return nil, fmt.Errorf("failed to read accessibility tree for annotation: %w", err)
		}
		ptW, ptH := rootSize(elements)
		img = imageutil.Annotate(img, model.Flatten(elements), ptW, ptH)
	}
	if scaled {
		img = imageutil.Scale(img, opts.Scale)
	}
	if shot.Data, err = imageutil.EncodePNG(img); err != nil {
		return nil, err
	}
	shot.Width, shot.Height = img.Bounds().Dx(), img.Bounds().Dy()
	return shot, nil
}

// ScreenSize reports pixel and point dimensions of the device screen.
// Points come from the accessibility root frame; when the tree cannot be
// read the scale falls back to 1.
func (s *Service) ScreenSize(ctx context.Context, udid string) (model.ScreenSize, error) {
	udid, err := s.ResolveDevice(ctx, udid)
	if err != nil {
		return model.ScreenSize{}, err
	}
	_, w, h, err := s.capture(ctx, udid)
	if err != nil {
		return model.ScreenSize{}, err
	}

	var ptW, ptH float64
	elements, err := s.provider.Inspector.DescribeAll(ctx, udid)
	if err != nil {
		s.log.WithError(err).Debug("accessibility tree unavailable, assuming scale 1")
	} else {
		ptW, ptH = rootSize(elements)
	}
	return model.NewScreenSize(w, h, ptW, ptH), nil
}

// pointSize returns the screen size in points from the accessibility tree.
// Host input cannot scale coordinates without it, so there is no fallback.
func (s *Service) pointSize(ctx context.Context, udid string) (float64, float64, error) {
	elements, err := s.provider.Inspector.DescribeAll(ctx, udid)
	if err != nil {
		return 0, 0, fmt.Errorf("host input needs the accessibility tree to scale coordinates; install idb: %w", err)
	}
	w, h := rootSize(elements)
	if w <= 0 || h <= 0 {
		return 0, 0, errors.New("host input needs the accessibility tree to scale coordinates; the tree has no root frame")
	}
	return w, h, nil
}

// rootSize returns the frame size of the first top-level element.
func rootSize(elements []model.Element) (w, h float64) {
	if len(elements) == 0 {
		return 0, 0
	}
	return elements[0].Frame.Width, elements[0].Frame.Height
}

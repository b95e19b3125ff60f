// Package imagemeta reads image pixel dimensions with sips.
package imagemeta

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/artmamedov/ios-sim-mcp/internal/runner"
)

var (
	widthRe  = regexp.MustCompile(`pixelWidth:\s*(\d+)`)
	heightRe = regexp.MustCompile(`pixelHeight:\s*(\d+)`)
)

// Dimensions returns the pixel width and height of the image at path.
func Dimensions(ctx context.Context, r runner.Runner, path string) (width, height int, err error) {
	out, err := r.Run(ctx, "sips", "-g", "pixelWidth", "-g", "pixelHeight", path)
	if err != nil {
		return 0, 0, fmt.Errorf("sips: %w", err)
	}
	return Parse(string(out))
}

// Parse extracts pixelWidth and pixelHeight from sips output.
func Parse(out string) (width, height int, err error) {
	width, err = field(widthRe, "pixelWidth", out)
	if err != nil {
		return 0, 0, err
	}
	height, err = field(heightRe, "pixelHeight", out)
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

func field(re *regexp.Regexp, name, out string) (int, error) {
	m := re.FindStringSubmatch(out)
	if m == nil {
		return 0, fmt.Errorf("could not determine image dimensions: %s not found in sips output", name)
	}
	return strconv.Atoi(m[1])
}

package model

import "math"

// ScreenSize describes a simulator screen in pixels and points.
type ScreenSize struct {
	PixelWidth  int     `yaml:"pixel_width"  json:"pixel_width"`
	PixelHeight int     `yaml:"pixel_height" json:"pixel_height"`
	PointWidth  float64 `yaml:"point_width"  json:"point_width"`
	PointHeight float64 `yaml:"point_height" json:"point_height"`
	Scale       float64 `yaml:"scale"        json:"scale"`
}

// NewScreenSize derives the scale from pixel and point widths. When the
// point size is unknown (zero), points equal pixels and scale is 1.
func NewScreenSize(pixelW, pixelH int, pointW, pointH float64) ScreenSize {
	if pointW <= 0 || pointH <= 0 {
		return ScreenSize{
			PixelWidth:  pixelW,
			PixelHeight: pixelH,
			PointWidth:  float64(pixelW),
			PointHeight: float64(pixelH),
			Scale:       1,
		}
	}
	scale := math.Round(float64(pixelW)/pointW*100) / 100
	return ScreenSize{
		PixelWidth:  pixelW,
		PixelHeight: pixelH,
		PointWidth:  pointW,
		PointHeight: pointH,
		Scale:       scale,
	}
}

package model

import (
	"fmt"
	"math"
)

// TitleBarHeight is the height of the Simulator window chrome above the
// device screen, in host pixels.
const TitleBarHeight = 28

// WindowFrame is the on-screen position and size of the Simulator window.
type WindowFrame struct {
	X      float64 `yaml:"x"      json:"x"`
	Y      float64 `yaml:"y"      json:"y"`
	Width  float64 `yaml:"width"  json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// MapToHost converts a point in simulator screen space into a host screen
// coordinate inside win. screenW and screenH are the simulator screen
// dimensions in the same space as x and y.
//
// The mapping is linear: bezels and aspect-ratio letterboxing are ignored.
func MapToHost(win WindowFrame, screenW, screenH, x, y float64) (hostX, hostY int, err error) {
	if screenW <= 0 || screenH <= 0 {
		return 0, 0, fmt.Errorf("invalid simulator screen size %.0fx%.0f", screenW, screenH)
	}
	contentH := win.Height - TitleBarHeight
	if win.Width <= 0 || contentH <= 0 {
		return 0, 0, fmt.Errorf("invalid simulator window size %.0fx%.0f", win.Width, win.Height)
	}
	scaleX := win.Width / screenW
	scaleY := contentH / screenH
	hostX = int(math.Round(win.X + x*scaleX))
	hostY = int(math.Round(win.Y + TitleBarHeight + y*scaleY))
	return hostX, hostY, nil
}

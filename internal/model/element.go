package model

// Frame is an element's bounding rectangle in simulator points.
type Frame struct {
	X      float64 `yaml:"x"      json:"x"`
	Y      float64 `yaml:"y"      json:"y"`
	Width  float64 `yaml:"width"  json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Center returns the centroid of the frame.
func (f Frame) Center() (x, y float64) {
	return f.X + f.Width/2, f.Y + f.Height/2
}

// Element is a UI element from the simulator's accessibility tree.
type Element struct {
	Type     string    `yaml:"type"               json:"type"`
	Label    string    `yaml:"label,omitempty"    json:"label,omitempty"`
	Value    string    `yaml:"value,omitempty"    json:"value,omitempty"`
	Frame    Frame     `yaml:"frame"              json:"frame"`
	Enabled  bool      `yaml:"enabled"            json:"enabled"`
	Children []Element `yaml:"children,omitempty" json:"children,omitempty"`
}

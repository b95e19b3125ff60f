// Package imageutil resizes and annotates simulator screenshots.
package imageutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/artmamedov/ios-sim-mcp/internal/model"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DecodePNG decodes PNG bytes.
func DecodePNG(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode screenshot: %w", err)
	}
	return img, nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Scale resizes img by factor. Factors outside (0, 1) return img unchanged.
func Scale(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor >= 1 {
		return img
	}
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// ToRGBA copies any image into a new RGBA image.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	xdraw.Draw(rgba, b, img, b.Min, xdraw.Src)
	return rgba
}

var (
	boxColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// Annotate draws each element's frame and its tap point in simulator points.
// pointW and pointH are the screen size in points; frames are scaled to the
// image's pixel size.
func Annotate(img image.Image, elements []model.Element, pointW, pointH float64) *image.RGBA {
	rgba := ToRGBA(img)
	b := rgba.Bounds()
	scaleX, scaleY := 1.0, 1.0
	if pointW > 0 && pointH > 0 {
		scaleX = float64(b.Dx()) / pointW
		scaleY = float64(b.Dy()) / pointH
	}

	for _, el := range elements {
		f := el.Frame
		x1 := b.Min.X + int(f.X*scaleX)
		y1 := b.Min.Y + int(f.Y*scaleY)
		x2 := x1 + int(f.Width*scaleX)
		y2 := y1 + int(f.Height*scaleY)
		drawRectangle(rgba, x1, y1, x2, y2, boxColor)

		cx, cy := f.Center()
		drawLabel(rgba, fmt.Sprintf("(%.0f,%.0f)", cx, cy), (x1+x2)/2, (y1+y2)/2)
	}
	return rgba
}

func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	r := image.Rect(x1, y1, x2, y2).Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// drawLabel centers text on (x, y) with a one pixel outline.
func drawLabel(img *image.RGBA, text string, x, y int) {
	// basicfont.Face7x13 glyphs are 7x13.
	ox := x - len(text)*7/2
	oy := y + 13/2

	d := &font.Drawer{Dst: img, Face: basicfont.Face7x13}
	d.Src = image.NewUniform(outlineColor)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d.Dot = fixed.P(ox+dx, oy+dy)
			d.DrawString(text)
		}
	}
	d.Src = image.NewUniform(textColor)
	d.Dot = fixed.P(ox, oy)
	d.DrawString(text)
}

// Package icons draws the app icon: four tetrominoes on a dark rounded
// badge. Output is deterministic for a given size.
package icons

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// DefaultSizes are the PNG sizes referenced by the web manifest.
var DefaultSizes = []int{192, 512}

var (
	Background = color.RGBA{15, 15, 35, 255}
	Purple     = color.RGBA{180, 77, 255, 255}
	Cyan       = color.RGBA{0, 212, 255, 255}
	Orange     = color.RGBA{255, 140, 0, 255}
	Green      = color.RGBA{0, 255, 136, 255}
)

var highlight = image.NewUniform(color.NRGBA{255, 255, 255, 50})

// glyph is one block in grid units (the badge is 8 units wide).
type glyph struct {
	X, Y float64
	C    color.RGBA
}

var glyphs = []glyph{
	// T
	{2, 1.2, Purple}, {3, 1.2, Purple}, {4, 1.2, Purple}, {3, 2.2, Purple},
	// I
	{1, 3.2, Cyan}, {2, 3.2, Cyan}, {3, 3.2, Cyan}, {4, 3.2, Cyan},
	// L
	{2, 4.2, Orange}, {2, 5.2, Orange}, {3, 5.2, Orange},
	// S
	{4.5, 4.2, Green}, {5.5, 4.2, Green}, {5.5, 5.2, Green},
}

// Render draws the icon at size x size pixels.
func Render(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	u := float64(size) / 8

	fillRounded(img, image.Rect(0, 0, size, size), int(float64(size)*0.15), Background)

	pad := int(u * 0.08)
	br := max(2, int(u*0.1))
	for _, g := range glyphs {
		r := image.Rect(
			int(g.X*u)+pad,
			int(g.Y*u)+pad,
			int((g.X+1)*u)-pad+1,
			int((g.Y+1)*u)-pad+1,
		)
		fillRounded(img, r, br, g.C)

		hi := image.Rect(r.Min.X+2, r.Min.Y+2, r.Max.X-2, r.Min.Y+int(u*0.12)+1)
		if !hi.Empty() {
			draw.Draw(img, hi, highlight, image.Point{}, draw.Over)
		}
	}
	return img
}

// fillRounded fills r with c, cutting quarter circles of radius rad at the corners.
func fillRounded(img *image.RGBA, r image.Rectangle, rad int, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	rad = min(rad, r.Dx()/2, r.Dy()/2)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if insideRounded(x, y, r, rad) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func insideRounded(x, y int, r image.Rectangle, rad int) bool {
	if rad <= 0 {
		return true
	}
	// Corner circle centers, inclusive of the last pixel row/column.
	left, right := r.Min.X+rad, r.Max.X-1-rad
	top, bottom := r.Min.Y+rad, r.Max.Y-1-rad

	cx, cy := x, y
	switch {
	case x < left:
		cx = left
	case x > right:
		cx = right
	}
	switch {
	case y < top:
		cy = top
	case y > bottom:
		cy = bottom
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= rad*rad
}

// EncodePNG renders the icon and returns PNG bytes.
func EncodePNG(size int) ([]byte, error) {
	if size < 8 {
		return nil, fmt.Errorf("icons: size %d too small", size)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, Render(size)); err != nil {
		return nil, fmt.Errorf("icons: encode %d: %w", size, err)
	}
	return buf.Bytes(), nil
}

// FileName returns the conventional name for a size.
func FileName(size int) string {
	return fmt.Sprintf("icon-%d.png", size)
}

// WriteSet writes icon-<size>.png for every size into dir and returns the paths.
func WriteSet(dir string, sizes ...int) ([]string, error) {
	if len(sizes) == 0 {
		sizes = DefaultSizes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("icons: create %s: %w", dir, err)
	}

	paths := make([]string, 0, len(sizes))
	for _, size := range sizes {
		data, err := EncodePNG(size)
		if err != nil {
			return nil, err
		}
		p := filepath.Join(dir, FileName(size))
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return nil, fmt.Errorf("icons: write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

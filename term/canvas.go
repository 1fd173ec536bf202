// Package term draws meters in a terminal.
package term

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vsariola/levelmeter"
)

// DotSize is the size of one dot in meter pixels. A character cell holds two
// dots stacked vertically, drawn with an upper half block.
const DotSize = 8

// Canvas rasterises meter drawing calls into a grid of dots. It implements
// levelmeter.Surface.
type Canvas struct {
	cols, rows int // rows counts character rows
	background color.NRGBA
	dots       []color.NRGBA
}

func NewCanvas(cols, rows int, background color.NRGBA) *Canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	c := &Canvas{cols: cols, rows: rows, background: background, dots: make([]color.NRGBA, cols*rows*2)}
	c.Clear()
	return c
}

// Bounds is the canvas area in meter pixels.
func (c *Canvas) Bounds() levelmeter.Rect {
	return levelmeter.Rectangle(0, 0, float32(c.cols*DotSize), float32(c.rows*2*DotSize))
}

func (c *Canvas) Clear() {
	for i := range c.dots {
		c.dots[i] = c.background
	}
}

// At returns the colour of the dot at column x, dot row y.
func (c *Canvas) At(x, y int) color.NRGBA {
	return c.dots[y*c.cols+x]
}

func (c *Canvas) FillRoundRect(r levelmeter.Rect, radius float32, col color.NRGBA) {
	c.fill(r, radius, func(float32) color.NRGBA { return col })
}

func (c *Canvas) FillVerticalGradient(r levelmeter.Rect, radius float32, bottom, top color.NRGBA) {
	c.fill(r, radius, func(y float32) color.NRGBA {
		return levelmeter.Mix(bottom, top, (r.Max.Y-y)/r.Dy())
	})
}

// StrokeRoundRect marks every dot the outline passes through. Dots are much
// larger than a typical stroke, so the width only matters for being > 0.
func (c *Canvas) StrokeRoundRect(r levelmeter.Rect, radius, width float32, col color.NRGBA) {
	if width <= 0 || r.Empty() {
		return
	}
	x0, y0 := c.dotIndex(r.Min.X, r.Min.Y)
	x1, y1 := c.dotIndex(r.Max.X-0.001, r.Max.Y-0.001)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if x == x0 || x == x1 || y == y0 || y == y1 {
				c.blend(x, y, col)
			}
		}
	}
}

func (c *Canvas) fill(r levelmeter.Rect, radius float32, colour func(y float32) color.NRGBA) {
	if r.Empty() {
		return
	}
	radius = min(max(radius, 0), r.Dx()/2, r.Dy()/2)
	for y := 0; y < c.rows*2; y++ {
		cy := (float32(y) + 0.5) * DotSize
		if cy < r.Min.Y || cy >= r.Max.Y {
			continue
		}
		for x := 0; x < c.cols; x++ {
			cx := (float32(x) + 0.5) * DotSize
			if insideRoundRect(r, radius, cx, cy) {
				c.blend(x, y, colour(cy))
			}
		}
	}
}

func insideRoundRect(r levelmeter.Rect, radius, x, y float32) bool {
	if x < r.Min.X || x >= r.Max.X || y < r.Min.Y || y >= r.Max.Y {
		return false
	}
	// distance from the rectangle shrunk by the radius
	dx := max(r.Min.X+radius-x, 0, x-(r.Max.X-radius))
	dy := max(r.Min.Y+radius-y, 0, y-(r.Max.Y-radius))
	return dx*dx+dy*dy <= radius*radius
}

func (c *Canvas) dotIndex(x, y float32) (int, int) {
	ix := int(math.Floor(float64(x / DotSize)))
	iy := int(math.Floor(float64(y / DotSize)))
	return min(max(ix, 0), c.cols-1), min(max(iy, 0), c.rows*2-1)
}

// blend paints col over the dot with source-over alpha compositing.
func (c *Canvas) blend(x, y int, col color.NRGBA) {
	d := &c.dots[y*c.cols+x]
	a := float32(col.A) / 255
	*d = levelmeter.Mix(*d, color.NRGBA{R: col.R, G: col.G, B: col.B, A: 255}, a)
}

// String renders the canvas with lipgloss, one line per character row.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < c.cols; x++ {
			upper, lower := c.At(x, 2*row), c.At(x, 2*row+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(upper))).
				Background(lipgloss.Color(hex(lower))).
				Render("▀"))
		}
	}
	return b.String()
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

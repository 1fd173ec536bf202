package levelmeter

import "image/color"

type (
	// Surface is the drawing capability a meter renders into. Coordinates are
	// in pixels with y growing downwards.
	Surface interface {
		FillRoundRect(r Rect, radius float32, c color.NRGBA)
		StrokeRoundRect(r Rect, radius, width float32, c color.NRGBA)
		// FillVerticalGradient fills r with a linear gradient running from
		// bottom (at r.Max.Y) to top (at r.Min.Y).
		FillVerticalGradient(r Rect, radius float32, bottom, top color.NRGBA)
	}

	Point struct {
		X, Y float32
	}

	Rect struct {
		Min, Max Point
	}
)

func Rectangle(x0, y0, x1, y1 float32) Rect {
	return Rect{Min: Point{x0, y0}, Max: Point{x1, y1}}
}

func (r Rect) Dx() float32 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float32 { return r.Max.Y - r.Min.Y }

func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Inset shrinks the rectangle by d on every side. The result collapses to
// a zero-size rectangle at the centre instead of turning inside out.
func (r Rect) Inset(d float32) Rect {
	ret := Rect{Min: Point{r.Min.X + d, r.Min.Y + d}, Max: Point{r.Max.X - d, r.Max.Y - d}}
	if ret.Min.X > ret.Max.X {
		c := (r.Min.X + r.Max.X) / 2
		ret.Min.X, ret.Max.X = c, c
	}
	if ret.Min.Y > ret.Max.Y {
		c := (r.Min.Y + r.Max.Y) / 2
		ret.Min.Y, ret.Max.Y = c, c
	}
	return ret
}

package gioui

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"github.com/vsariola/levelmeter"
)

// OpSurface draws into a gioui operation list.
type OpSurface struct {
	Ops *op.Ops
}

func (s OpSurface) FillRoundRect(r levelmeter.Rect, radius float32, c color.NRGBA) {
	ir := toImageRect(r)
	paint.FillShape(s.Ops, c, clip.UniformRRect(ir, clampRadius(ir, radius)).Op(s.Ops))
}

func (s OpSurface) StrokeRoundRect(r levelmeter.Rect, radius, width float32, c color.NRGBA) {
	ir := toImageRect(r)
	if width <= 0 {
		return
	}
	paint.FillShape(s.Ops, c, clip.Stroke{
		Path:  clip.UniformRRect(ir, clampRadius(ir, radius)).Path(s.Ops),
		Width: width,
	}.Op())
}

func (s OpSurface) FillVerticalGradient(r levelmeter.Rect, radius float32, bottom, top color.NRGBA) {
	ir := toImageRect(r)
	defer clip.UniformRRect(ir, clampRadius(ir, radius)).Push(s.Ops).Pop()
	paint.LinearGradientOp{
		Stop1:  f32.Pt(r.Min.X, r.Max.Y),
		Color1: bottom,
		Stop2:  f32.Pt(r.Min.X, r.Min.Y),
		Color2: top,
	}.Add(s.Ops)
	paint.PaintOp{}.Add(s.Ops)
}

func toImageRect(r levelmeter.Rect) image.Rectangle {
	round := func(v float32) int { return int(math.Round(float64(v))) }
	return image.Rect(round(r.Min.X), round(r.Min.Y), round(r.Max.X), round(r.Max.Y))
}

// clampRadius keeps the corners from overlapping on small rectangles.
func clampRadius(r image.Rectangle, radius float32) int {
	rad := int(math.Round(float64(radius)))
	return max(min(rad, r.Dx()/2, r.Dy()/2), 0)
}

package gioui

import (
	"image"

	"gioui.org/op/clip"
	"github.com/vsariola/levelmeter"
)

// MeterWidget lays out a level meter filling the constraints it is given.
type MeterWidget struct {
	Meter *levelmeter.LevelMeter
}

func Meter(m *levelmeter.LevelMeter) MeterWidget {
	return MeterWidget{Meter: m}
}

func (w MeterWidget) Layout(gtx C) D {
	size := gtx.Constraints.Max
	defer clip.Rect(image.Rectangle{Max: size}).Push(gtx.Ops).Pop()
	bounds := levelmeter.Rectangle(0, 0, float32(size.X), float32(size.Y))
	w.Meter.Render(OpSurface{Ops: gtx.Ops}, bounds)
	return D{Size: size}
}

package gioui

import (
	"image/color"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/vsariola/levelmeter/monitor"
)

type AlertsWidget struct {
	Theme *material.Theme
	Model *monitor.Alerts
}

func Alerts(th *material.Theme, m *monitor.Alerts) AlertsWidget {
	return AlertsWidget{Theme: th, Model: m}
}

// Layout stacks the visible alerts at the bottom of the available area,
// newest at the bottom.
func (a AlertsWidget) Layout(gtx C) D {
	a.Model.Update()
	if a.Model.Len() > 0 {
		// keep redrawing so the alerts disappear on time
		gtx.Execute(op.InvalidateCmd{At: time.Now().Add(100 * time.Millisecond)})
	}
	var children []layout.FlexChild
	children = append(children, layout.Flexed(1, func(gtx C) D { return D{Size: gtx.Constraints.Min} }))
	a.Model.Iterate(func(alert monitor.Alert) bool {
		children = append(children, layout.Rigid(func(gtx C) D {
			return a.alert(gtx, alert)
		}))
		return true
	})
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (a AlertsWidget) alert(gtx C, alert monitor.Alert) D {
	bg, fg := alertInfoColor, white
	switch alert.Priority {
	case monitor.Warning:
		bg, fg = alertWarningColor, color.NRGBA{A: 255}
	case monitor.Error:
		bg = alertErrorColor
	}
	gtx.Constraints.Min.X = gtx.Constraints.Max.X
	return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx C) D {
		return layout.Stack{}.Layout(gtx,
			layout.Expanded(func(gtx C) D {
				paint.FillShape(gtx.Ops, bg, clip.Rect{Max: gtx.Constraints.Min}.Op())
				return D{Size: gtx.Constraints.Min}
			}),
			layout.Stacked(func(gtx C) D {
				return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx C) D {
					l := material.Label(a.Theme, labelFontSize, alert.Message)
					l.Color = fg
					return l.Layout(gtx)
				})
			}),
		)
	})
}

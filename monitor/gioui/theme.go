package gioui

import (
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
var transparent = color.NRGBA{A: 0}

var primaryColor = color.NRGBA{R: 206, G: 147, B: 216, A: 255}
var disabledTextColor = color.NRGBA{R: 255, G: 255, B: 255, A: 97}
var mediumEmphasisTextColor = color.NRGBA{R: 153, G: 153, B: 153, A: 153}

var backgroundColor = color.NRGBA{R: 18, G: 18, B: 18, A: 255}
var toolbarColor = color.NRGBA{R: 37, G: 37, B: 38, A: 255}

var alertInfoColor = color.NRGBA{R: 50, G: 50, B: 51, A: 255}
var alertWarningColor = color.NRGBA{R: 251, G: 192, B: 45, A: 255}
var alertErrorColor = color.NRGBA{R: 207, G: 102, B: 121, A: 255}

var labelFontSize = unit.Sp(14)
var meterInset = layout.UniformInset(unit.Dp(12))

func newTheme() *material.Theme {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	th.Palette.Bg = backgroundColor
	th.Palette.Fg = white
	th.Palette.ContrastBg = primaryColor
	return th
}

package gioui

import (
	"fmt"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
)

// decodedIcons is keyed by the first byte of the IconVG data. The shiny
// icons are package level slices, so the address identifies the icon.
var decodedIcons = map[*byte]*widget.Icon{}

func icon(data []byte) *widget.Icon {
	key := &data[0]
	if ic, ok := decodedIcons[key]; ok {
		return ic
	}
	ic, err := widget.NewIcon(data)
	if err != nil {
		panic(fmt.Errorf("decoding icon: %w", err))
	}
	decodedIcons[key] = ic
	return ic
}

// IconButton is a flat toolbar button. A disabled button is greyed out but
// still reports clicks; callers check their own state.
func IconButton(th *material.Theme, w *widget.Clickable, data []byte, enabled bool, description string) material.IconButtonStyle {
	style := material.IconButton(th, w, icon(data), description)
	style.Background = transparent
	style.Inset = layout.UniformInset(unit.Dp(6))
	style.Color = primaryColor
	if !enabled {
		style.Color = disabledTextColor
	}
	return style
}

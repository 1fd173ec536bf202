// Package svg renders meters as SVG documents, for snapshots and docs.
package svg

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/vsariola/levelmeter"
)

type (
	// Surface records the drawing calls of a render so that they can be
	// written out as SVG with Encode.
	Surface struct {
		Title         string
		Width, Height float32

		Elements  []Element
		Gradients []Gradient
	}

	Element struct {
		Kind        ElementKind
		Rect        levelmeter.Rect
		Radius      float32
		StrokeWidth float32
		Colour      color.NRGBA
		GradientID  string
	}

	ElementKind string

	Gradient struct {
		ID          string
		Bottom, Top color.NRGBA
	}
)

const (
	KindFill     ElementKind = "fill"
	KindStroke   ElementKind = "stroke"
	KindGradient ElementKind = "gradient"
)

const documentTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="{{ num .Width }}" height="{{ num .Height }}" viewBox="0 0 {{ num .Width }} {{ num .Height }}">
<title>{{ .Title | default "level meter" | html }}</title>
{{- with .Gradients }}
<defs>
{{- range . }}
<linearGradient id="{{ .ID }}" x1="0" y1="1" x2="0" y2="0">
<stop offset="0" stop-color="{{ rgb .Bottom }}" stop-opacity="{{ opacity .Bottom }}"/>
<stop offset="1" stop-color="{{ rgb .Top }}" stop-opacity="{{ opacity .Top }}"/>
</linearGradient>
{{- end }}
</defs>
{{- end }}
{{- range .Elements }}
{{- $geom := printf "x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" rx=\"%s\"" (num .Rect.Min.X) (num .Rect.Min.Y) (num .Rect.Dx) (num .Rect.Dy) (num .Radius) }}
{{- if eq (toString .Kind) "stroke" }}
<rect {{ $geom }} fill="none" stroke="{{ rgb .Colour }}" stroke-opacity="{{ opacity .Colour }}" stroke-width="{{ num .StrokeWidth }}"/>
{{- else if eq (toString .Kind) "gradient" }}
<rect {{ $geom }} fill="url(#{{ .GradientID }})"/>
{{- else }}
<rect {{ $geom }} fill="{{ rgb .Colour }}" fill-opacity="{{ opacity .Colour }}"/>
{{- end }}
{{- end }}
</svg>
`

var document = template.Must(template.New("svg").Funcs(sprig.TxtFuncMap()).Funcs(template.FuncMap{
	"num": func(v float32) string { return strconv.FormatFloat(float64(v), 'f', -1, 32) },
	"rgb": func(c color.NRGBA) string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) },
	"opacity": func(c color.NRGBA) string {
		return strconv.FormatFloat(float64(c.A)/255, 'f', 3, 64)
	},
}).Parse(documentTemplate))

func New(width, height float32) *Surface {
	return &Surface{Width: width, Height: height}
}

// Bounds returns the whole document area.
func (s *Surface) Bounds() levelmeter.Rect {
	return levelmeter.Rectangle(0, 0, s.Width, s.Height)
}

func (s *Surface) FillRoundRect(r levelmeter.Rect, radius float32, c color.NRGBA) {
	s.Elements = append(s.Elements, Element{Kind: KindFill, Rect: r, Radius: radius, Colour: c})
}

func (s *Surface) StrokeRoundRect(r levelmeter.Rect, radius, width float32, c color.NRGBA) {
	s.Elements = append(s.Elements, Element{Kind: KindStroke, Rect: r, Radius: radius, StrokeWidth: width, Colour: c})
}

func (s *Surface) FillVerticalGradient(r levelmeter.Rect, radius float32, bottom, top color.NRGBA) {
	id := fmt.Sprintf("gradient%d", len(s.Gradients))
	s.Gradients = append(s.Gradients, Gradient{ID: id, Bottom: bottom, Top: top})
	s.Elements = append(s.Elements, Element{Kind: KindGradient, Rect: r, Radius: radius, GradientID: id})
}

// Reset forgets all recorded drawing, keeping the size and title.
func (s *Surface) Reset() {
	s.Elements = s.Elements[:0]
	s.Gradients = s.Gradients[:0]
}

func (s *Surface) Encode(w io.Writer) error {
	if err := document.Execute(w, s); err != nil {
		return fmt.Errorf("svg encode: %w", err)
	}
	return nil
}

package levelmeter

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

// Colour is a color.NRGBA that reads and writes itself as "#rrggbb" or
// "#rrggbbaa" in config files.
type Colour color.NRGBA

func (c *Colour) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(strings.TrimSpace(string(text)), "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("colour %q: expected #rrggbb or #rrggbbaa", text)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("colour %q: %w", text, err)
	}
	*c = Colour{R: b[0], G: b[1], B: b[2], A: 255}
	if len(b) == 4 {
		c.A = b[3]
	}
	return nil
}

func (c Colour) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c Colour) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// WithAlpha replaces the alpha of c; alpha is clamped to [0,1].
func WithAlpha(c color.NRGBA, alpha float32) color.NRGBA {
	c.A = uint8(clamp01(alpha)*255 + 0.5)
	return c
}

// Darken scales the colour channels of c towards black by amount in [0,1].
// Alpha is kept.
func Darken(c color.NRGBA, amount float32) color.NRGBA {
	k := 1 - clamp01(amount)
	return color.NRGBA{
		R: uint8(float32(c.R)*k + 0.5),
		G: uint8(float32(c.G)*k + 0.5),
		B: uint8(float32(c.B)*k + 0.5),
		A: c.A,
	}
}

// Mix linearly interpolates between a (t=0) and b (t=1).
func Mix(a, b color.NRGBA, t float32) color.NRGBA {
	t = clamp01(t)
	lerp := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return color.NRGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

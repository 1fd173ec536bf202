package levelmeter_test

import (
	"image/color"
	"testing"

	"github.com/vsariola/levelmeter"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	c := levelmeter.DefaultConfig()
	b := c.Ballistics
	if b.FloorDb != -60 || b.Release != 0.88 || b.ClipDecay != 0.92 || b.ClipThreshold != 0.05 || b.ClipLevel != 1 {
		t.Errorf("unexpected ballistics %+v", b)
	}
	s := c.Style
	if s.PanelRadius != 6 || s.FillRadius != 4 || s.ClipRadius != 2 || s.BorderAlpha != 0.9 || s.BackgroundAlpha != 0.95 {
		t.Errorf("unexpected style %+v", s)
	}
	if c.Sanitize() != c {
		t.Errorf("default config should already be sane")
	}
}

func TestSanitize(t *testing.T) {
	c := levelmeter.DefaultConfig()
	c.Ballistics.FloorDb = 12
	c.Ballistics.Release = 4
	c.Style.BorderAlpha = -1
	c.Style.Margin = -3
	c = c.Sanitize()
	if c.Ballistics.FloorDb != -60 || c.Ballistics.Release != 1 || c.Style.BorderAlpha != 0 || c.Style.Margin != 0 {
		t.Fatalf("unexpected sanitized config %+v", c)
	}
}

func TestColourYaml(t *testing.T) {
	var v struct {
		A, B levelmeter.Colour
	}
	if err := yaml.Unmarshal([]byte("a: '#102030'\nb: '#10203040'\n"), &v); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if v.A != (levelmeter.Colour{R: 0x10, G: 0x20, B: 0x30, A: 255}) || v.B.A != 0x40 {
		t.Fatalf("unexpected colours %v %v", v.A, v.B)
	}
	if v.B.String() != "#10203040" || v.A.String() != "#102030" {
		t.Fatalf("unexpected round trip %s %s", v.A, v.B)
	}
	if err := yaml.Unmarshal([]byte("a: 'teal'\n"), &v); err == nil {
		t.Fatal("expected an error for a named colour")
	}
}

func TestColourHelpers(t *testing.T) {
	c := color.NRGBA{R: 200, G: 100, B: 50, A: 128}
	if d := levelmeter.Darken(c, 0.5); d != (color.NRGBA{R: 100, G: 50, B: 25, A: 128}) {
		t.Errorf("Darken: %v", d)
	}
	if a := levelmeter.WithAlpha(c, 2); a.A != 255 {
		t.Errorf("WithAlpha should clamp, got %v", a.A)
	}
	if a := levelmeter.WithAlpha(c, -1); a.A != 0 {
		t.Errorf("WithAlpha should clamp, got %v", a.A)
	}
	black := color.NRGBA{A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	if m := levelmeter.Mix(black, white, 0.5); m.R != 128 || m.A != 255 {
		t.Errorf("Mix: %v", m)
	}
}

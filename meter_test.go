package levelmeter_test

import (
	"image/color"
	"math"
	"testing"

	"github.com/vsariola/levelmeter"
)

type countingInvalidator int

func (c *countingInvalidator) Invalidate() { *c++ }

type drawCall struct {
	kind          string
	rect          levelmeter.Rect
	radius, width float32
	c1, c2        color.NRGBA
}

type recordingSurface struct {
	calls []drawCall
}

func (s *recordingSurface) FillRoundRect(r levelmeter.Rect, radius float32, c color.NRGBA) {
	s.calls = append(s.calls, drawCall{kind: "fill", rect: r, radius: radius, c1: c})
}

func (s *recordingSurface) StrokeRoundRect(r levelmeter.Rect, radius, width float32, c color.NRGBA) {
	s.calls = append(s.calls, drawCall{kind: "stroke", rect: r, radius: radius, width: width, c1: c})
}

func (s *recordingSurface) FillVerticalGradient(r levelmeter.Rect, radius float32, bottom, top color.NRGBA) {
	s.calls = append(s.calls, drawCall{kind: "gradient", rect: r, radius: radius, c1: bottom, c2: top})
}

func (s *recordingSurface) find(kind string) []drawCall {
	var ret []drawCall
	for _, c := range s.calls {
		if c.kind == kind {
			ret = append(ret, c)
		}
	}
	return ret
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) <= 1e-6*math.Max(1, math.Abs(float64(b)))
}

// meterAt returns a meter whose smoothed level is exactly level.
func meterAt(level float32) *levelmeter.LevelMeter {
	m := levelmeter.NewLevelMeter(levelmeter.DefaultConfig(), nil)
	m.PushLevelLinear(level)
	return m
}

func TestFastAttack(t *testing.T) {
	for _, start := range []float32{0, 0.1, 0.5} {
		for _, peak := range []float32{0.5, 0.75, 1, 3} {
			if peak < start {
				continue
			}
			m := meterAt(start)
			m.PushLevelLinear(peak)
			if m.Level() != peak {
				t.Errorf("attack from %v to %v: got level %v", start, peak, m.Level())
			}
		}
	}
}

func TestReleaseBlend(t *testing.T) {
	for _, start := range []float32{0.2, 0.5, 1.2} {
		for _, peak := range []float32{0, 0.01, 0.19} {
			m := meterAt(start)
			m.PushLevelLinear(peak)
			want := 0.88*start + 0.12*peak
			if !approx(m.Level(), want) {
				t.Errorf("release from %v with %v: got level %v, want %v", start, peak, m.Level(), want)
			}
		}
	}
}

func TestClipHoldAndDecay(t *testing.T) {
	m := meterAt(0)
	for _, peak := range []float32{1, 1.5, 100} {
		m.PushLevelLinear(peak)
		if m.Clip() != 1 {
			t.Fatalf("peak %v should set the clip to 1, got %v", peak, m.Clip())
		}
	}
	prev := m.Clip()
	for _, peak := range []float32{0.999, 0.5, 0} {
		m.PushLevelLinear(peak)
		if want := prev * 0.92; !approx(m.Clip(), want) {
			t.Fatalf("clip should decay to %v, got %v", want, m.Clip())
		}
		prev = m.Clip()
	}
}

func TestInvalidInputsActLikeSilence(t *testing.T) {
	nan := float32(math.NaN())
	for _, peak := range []float32{-1, -0.0001, nan, float32(math.Inf(-1)), float32(math.Inf(1))} {
		a, b := meterAt(0.5), meterAt(0.5)
		a.PushLevelLinear(peak)
		b.PushLevelLinear(0)
		if a.Level() != b.Level() || a.Clip() != b.Clip() {
			t.Errorf("peak %v: got (%v, %v), want (%v, %v)", peak, a.Level(), a.Clip(), b.Level(), b.Clip())
		}
		if a.Level() < 0 {
			t.Errorf("level went negative: %v", a.Level())
		}
	}
}

func TestInfiniteSpikeDoesNotStick(t *testing.T) {
	m := meterAt(0.5)
	m.PushLevelLinear(float32(math.Inf(1)))
	for i := 0; i < 1000; i++ {
		m.PushLevelLinear(0)
	}
	if math.IsInf(float64(m.Level()), 0) || m.FillFraction() != 0 || m.ClipVisible() {
		t.Fatalf("meter stuck after an infinite peak: level %v fill %v", m.Level(), m.FillFraction())
	}
}

func TestPushAndAccentRequestRedraw(t *testing.T) {
	var inv countingInvalidator
	m := levelmeter.NewLevelMeter(levelmeter.DefaultConfig(), &inv)
	m.PushLevelLinear(0)
	m.PushLevelLinear(0)
	m.SetAccentColour(color.NRGBA{R: 255, A: 255})
	if inv != 3 {
		t.Fatalf("expected 3 redraw requests, got %d", inv)
	}
	if m.Accent() != (color.NRGBA{R: 255, A: 255}) {
		t.Fatalf("accent not set: %v", m.Accent())
	}
}

func TestFillFraction(t *testing.T) {
	tests := []struct {
		level float32
		want  float32
	}{
		{1, 1},
		{2, 1},
		{1e-3, 0},
		{1e-6, 0},
		{1e-9, 0},
		{0, 0},
		{0.1, 2.0 / 3},
		{float32(math.Sqrt(0.001)), 0.5},
	}
	for _, tt := range tests {
		got := meterAt(tt.level).FillFraction()
		if !approx(got, tt.want) {
			t.Errorf("level %v: fill fraction %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestDecibelsAreFloored(t *testing.T) {
	if db := levelmeter.ToDecibel(0, -60); db != -60 {
		t.Fatalf("silence should map to the floor, got %v", db)
	}
	if db := levelmeter.ToDecibel(1, -60); db != 0 {
		t.Fatalf("full scale should be 0 dB, got %v", db)
	}
	if db := levelmeter.ToDecibel(float32(math.NaN()), -60); db != -60 {
		t.Fatalf("NaN should map to the floor, got %v", db)
	}
}

func TestPushSequenceScenario(t *testing.T) {
	m := levelmeter.NewLevelMeter(levelmeter.DefaultConfig(), nil)
	m.PushLevelLinear(0)
	if m.Level() != 0 || m.Clip() != 0 {
		t.Fatalf("silent meter: got (%v, %v)", m.Level(), m.Clip())
	}
	m.PushLevelLinear(0.5)
	if m.Level() != 0.5 || m.ClipVisible() {
		t.Fatalf("after 0.5: level %v, clip visible %v", m.Level(), m.ClipVisible())
	}
	m.PushLevelLinear(1.2)
	if m.Level() != 1.2 || m.Clip() != 1 || !m.ClipVisible() {
		t.Fatalf("after 1.2: level %v, clip %v", m.Level(), m.Clip())
	}
	level, clip := float32(1.2), float32(1)
	calls := 0
	for m.ClipVisible() {
		m.PushLevelLinear(0)
		level *= 0.88
		clip *= 0.92
		calls++
		if !approx(m.Level(), level) || !approx(m.Clip(), clip) {
			t.Fatalf("decay step %d: got (%v, %v), want (%v, %v)", calls, m.Level(), m.Clip(), level, clip)
		}
		if calls > 100 {
			t.Fatal("clip indicator never went away")
		}
	}
	// 0.92^n <= 0.05 first holds for n = 36
	if calls != 36 {
		t.Fatalf("clip indicator disappeared after %d calls, want 36", calls)
	}
	if m.Clip() > 0.05 {
		t.Fatalf("indicator hidden while clip %v > threshold", m.Clip())
	}
}

func TestRenderLayout(t *testing.T) {
	m := meterAt(1)
	var s recordingSurface
	bounds := levelmeter.Rectangle(0, 0, 40, 200)
	m.Render(&s, bounds)

	fills := s.find("fill")
	strokes := s.find("stroke")
	grads := s.find("gradient")
	if len(strokes) != 1 || len(grads) != 1 {
		t.Fatalf("expected one border and one gradient, got %+v", s.calls)
	}
	panel := fills[0]
	if panel.rect != levelmeter.Rectangle(2, 2, 38, 198) || panel.radius != 6 {
		t.Errorf("unexpected panel %+v", panel)
	}
	if panel.c1.A != levelmeter.WithAlpha(color.NRGBA{}, 0.95).A {
		t.Errorf("background alpha %v", panel.c1.A)
	}
	if strokes[0].width != 1 || strokes[0].c1.A != levelmeter.WithAlpha(color.NRGBA{}, 0.9).A {
		t.Errorf("unexpected border %+v", strokes[0])
	}
	g := grads[0]
	if g.rect != levelmeter.Rectangle(8, 8, 32, 192) || g.radius != 4 {
		t.Errorf("full scale should fill the whole interior, got %+v", g)
	}
	if g.c2 != m.Accent() || g.c1 != levelmeter.Darken(m.Accent(), m.Config().Style.Darken) {
		t.Errorf("gradient colours %v -> %v", g.c1, g.c2)
	}
	if len(fills) != 2 {
		t.Fatalf("clip strip missing: %+v", s.calls)
	}
	strip := fills[1]
	if strip.rect.Min.Y != 8 || strip.radius != 2 || strip.c1.R != 255 || strip.c1.A != 255 {
		t.Errorf("unexpected clip strip %+v", strip)
	}
}

func TestRenderPartialFill(t *testing.T) {
	m := meterAt(0.1) // -20 dB, two thirds of the way up
	var s recordingSurface
	m.Render(&s, levelmeter.Rectangle(0, 0, 40, 200))
	g := s.find("gradient")
	if len(g) != 1 {
		t.Fatalf("expected a gradient, got %+v", s.calls)
	}
	if g[0].rect.Max.Y != 192 || !approx(g[0].rect.Dy(), 184*2.0/3) {
		t.Errorf("unexpected fill %+v", g[0].rect)
	}
}

func TestRenderSilentMeterDrawsOnlyPanel(t *testing.T) {
	m := meterAt(0)
	var s recordingSurface
	m.Render(&s, levelmeter.Rectangle(0, 0, 40, 200))
	if len(s.calls) != 2 || s.calls[0].kind != "fill" || s.calls[1].kind != "stroke" {
		t.Fatalf("unexpected calls %+v", s.calls)
	}
}

func TestClipIndicatorThreshold(t *testing.T) {
	m := meterAt(1)
	for m.Clip() > 0.001 {
		var s recordingSurface
		m.Render(&s, levelmeter.Rectangle(0, 0, 40, 200))
		drawn := len(s.find("fill")) == 2
		if drawn != (m.Clip() > 0.05) {
			t.Fatalf("clip %v: indicator drawn = %v", m.Clip(), drawn)
		}
		m.PushLevelLinear(0)
	}
}

func TestRenderTinyBounds(t *testing.T) {
	m := meterAt(1)
	var s recordingSurface
	m.Render(&s, levelmeter.Rectangle(0, 0, 3, 3))
	for _, c := range s.calls {
		if c.rect.Dx() < 0 || c.rect.Dy() < 0 {
			t.Fatalf("inverted rectangle %+v", c.rect)
		}
	}
}

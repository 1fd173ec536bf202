// Package levelmeter is a peak level meter with a clip indicator that draws
// itself on any Surface.
package levelmeter

import (
	"image/color"
	"math"
)

type (
	// LevelMeter is a vertical peak meter with a clip indicator. It holds the
	// smoothed display state only; pushing samples and rendering are expected
	// to happen on the same goroutine, usually the GUI goroutine.
	LevelMeter struct {
		level  float32
		clip   float32
		accent color.NRGBA

		config      Config
		invalidator Invalidator
	}

	// Invalidator is notified whenever the meter needs a redraw. *app.Window
	// from gioui satisfies this.
	Invalidator interface {
		Invalidate()
	}

	Decibel float32
)

// NewLevelMeter returns a silent meter using the ballistics and style of cfg.
// inv may be nil, in which case redraw requests are dropped.
func NewLevelMeter(cfg Config, inv Invalidator) *LevelMeter {
	return &LevelMeter{
		accent:      color.NRGBA(cfg.Style.Accent),
		config:      cfg,
		invalidator: inv,
	}
}

func (m *LevelMeter) SetInvalidator(inv Invalidator) {
	m.invalidator = inv
}

// SetAccentColour replaces the base colour of the fill gradient.
func (m *LevelMeter) SetAccentColour(c color.NRGBA) {
	m.accent = c
	m.invalidate()
}

// PushLevelLinear feeds one linear peak sample into the meter. It is meant to
// be called at a fixed UI timer cadence: attack is instant, release and clip
// decay are applied once per call.
func (m *LevelMeter) PushLevelLinear(peak float32) {
	if !(peak > 0) || math.IsInf(float64(peak), 1) { // NaN too
		peak = 0
	}
	b := &m.config.Ballistics
	if peak >= m.level {
		m.level = peak
	} else {
		m.level = m.level*b.Release + peak*(1-b.Release)
	}
	if peak >= b.ClipLevel {
		m.clip = 1
	} else {
		m.clip *= b.ClipDecay
	}
	m.invalidate()
}

// Reset drops the meter back to silence without touching the accent.
func (m *LevelMeter) Reset() {
	m.level = 0
	m.clip = 0
	m.invalidate()
}

func (m *LevelMeter) Level() float32      { return m.level }
func (m *LevelMeter) Clip() float32       { return m.clip }
func (m *LevelMeter) Accent() color.NRGBA { return m.accent }
func (m *LevelMeter) Config() Config      { return m.config }

// Decibels returns the smoothed level in dB, floored at the configured range.
func (m *LevelMeter) Decibels() Decibel {
	return ToDecibel(m.level, m.config.Ballistics.FloorDb)
}

// FillFraction is the fraction of the meter height that is lit, measured from
// the bottom: 0 at the dB floor, 1 at full scale.
func (m *LevelMeter) FillFraction() float32 {
	floor := m.config.Ballistics.FloorDb
	t := (float32(m.Decibels()) - floor) / -floor
	return clamp01(t)
}

// ClipVisible reports whether the clip indicator is drawn.
func (m *LevelMeter) ClipVisible() bool {
	return m.clip > m.config.Ballistics.ClipThreshold
}

// ToDecibel converts a linear amplitude to decibels, never going below floor.
func ToDecibel(linear float32, floor float32) Decibel {
	db := float32(20 * math.Log10(math.Max(float64(linear), 1e-6)))
	if db < floor || math.IsNaN(float64(db)) {
		db = floor
	}
	return Decibel(db)
}

// Render draws the meter into bounds. It only reads the meter state.
func (m *LevelMeter) Render(s Surface, bounds Rect) {
	st := &m.config.Style
	panel := bounds.Inset(st.Inset)
	if panel.Empty() {
		return
	}
	s.FillRoundRect(panel, st.PanelRadius, WithAlpha(color.NRGBA(st.Background), st.BackgroundAlpha))
	s.StrokeRoundRect(panel, st.PanelRadius, st.BorderWidth, WithAlpha(color.NRGBA(st.Border), st.BorderAlpha))

	interior := panel.Inset(st.Margin)
	if interior.Empty() {
		return
	}
	if t := m.FillFraction(); t > 0 {
		fill := interior
		fill.Min.Y = interior.Max.Y - t*interior.Dy()
		s.FillVerticalGradient(fill, st.FillRadius, Darken(m.accent, st.Darken), m.accent)
	}
	if m.ClipVisible() {
		strip := interior
		strip.Max.Y = min(interior.Min.Y+st.ClipHeight, interior.Max.Y)
		s.FillRoundRect(strip, st.ClipRadius, WithAlpha(color.NRGBA(st.ClipColour), m.clip))
	}
}

func (m *LevelMeter) invalidate() {
	if m.invalidator != nil {
		m.invalidator.Invalidate()
	}
}

func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

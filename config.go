package levelmeter

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		Ballistics Ballistics
		Style      Style
	}

	// Ballistics are applied once per pushed sample, so they assume a steady
	// push rate.
	Ballistics struct {
		FloorDb       float32
		Release       float32 // weight of the old level when falling
		ClipLevel     float32
		ClipDecay     float32
		ClipThreshold float32
	}

	Style struct {
		Inset           float32
		Margin          float32
		PanelRadius     float32
		FillRadius      float32
		ClipRadius      float32
		ClipHeight      float32
		BorderWidth     float32
		BorderAlpha     float32
		BackgroundAlpha float32
		Darken          float32
		Accent          Colour
		Background      Colour
		Border          Colour
		ClipColour      Colour
	}
)

//go:embed levelmeter.yml
var DefaultConfigYml []byte

var defaultConfig Config

func init() {
	dec := yaml.NewDecoder(bytes.NewReader(DefaultConfigYml))
	dec.KnownFields(true)
	if err := dec.Decode(&defaultConfig); err != nil {
		panic(fmt.Errorf("failed to unmarshal default meter config: %w", err))
	}
}

func DefaultConfig() Config {
	return defaultConfig
}

// Sanitize clamps the values that have a natural range, so that a hand
// edited config can not make the meter misbehave.
func (c Config) Sanitize() Config {
	b := &c.Ballistics
	if !(b.FloorDb < 0) {
		b.FloorDb = defaultConfig.Ballistics.FloorDb
	}
	b.Release = clamp01(b.Release)
	b.ClipDecay = clamp01(b.ClipDecay)
	b.ClipThreshold = clamp01(b.ClipThreshold)
	if !(b.ClipLevel > 0) {
		b.ClipLevel = defaultConfig.Ballistics.ClipLevel
	}
	s := &c.Style
	s.BorderAlpha = clamp01(s.BorderAlpha)
	s.BackgroundAlpha = clamp01(s.BackgroundAlpha)
	s.Darken = clamp01(s.Darken)
	s.Inset = max(s.Inset, 0)
	s.Margin = max(s.Margin, 0)
	s.BorderWidth = max(s.BorderWidth, 0)
	return c
}

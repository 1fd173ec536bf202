package monitor

import (
	_ "embed"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/vsariola/levelmeter"
)

type (
	// Model is the GUI goroutine side of the meter. It owns the LevelMeter;
	// peaks arrive from the player through the broker and are folded into a
	// hold, which Tick pushes into the meter once per UI timer tick.
	Model struct {
		broker *Broker
		meter  *levelmeter.LevelMeter
		hold   PeakHold

		accents []Accent
		accent  int

		toneOn bool
		gainDb float32

		alerts Alerts

		onTick []func(*levelmeter.LevelMeter)
	}

	Accent struct {
		Name   string
		Colour levelmeter.Colour
	}
)

//go:embed accents.yml
var defaultAccents []byte

const (
	MinGainDb = -60
	MaxGainDb = 24
)

// NewModel creates a model with the meter config and accent presets read
// from the embedded defaults and the user's config directory. Problems with
// the user's files end up as warning alerts.
func NewModel(broker *Broker) *Model {
	m := &Model{broker: broker}
	cfg := levelmeter.DefaultConfig()
	if err := ReadConfig(levelmeter.DefaultConfigYml, "levelmeter.yml", &cfg); err != nil {
		m.alerts.Add(err.Error(), Warning)
		cfg = levelmeter.DefaultConfig()
	}
	if err := ReadConfig(defaultAccents, "accents.yml", &m.accents); err != nil {
		m.alerts.Add(err.Error(), Warning)
	}
	m.meter = levelmeter.NewLevelMeter(cfg.Sanitize(), nil)
	if len(m.accents) == 0 {
		m.accents = []Accent{{Name: "default", Colour: cfg.Style.Accent}}
	}
	m.meter.SetAccentColour(m.accentColour())
	return m
}

func (m *Model) Broker() *Broker               { return m.broker }
func (m *Model) Meter() *levelmeter.LevelMeter { return m.meter }
func (m *Model) Alerts() *Alerts               { return &m.alerts }
func (m *Model) Accents() []Accent             { return m.accents }
func (m *Model) AccentName() string            { return m.accents[m.accent].Name }
func (m *Model) TestTone() bool                { return m.toneOn }
func (m *Model) GainDb() float32               { return m.gainDb }

// ProcessMsg handles a message received from the broker. Peaks are held
// until the next Tick.
func (m *Model) ProcessMsg(msg MsgToModel) {
	if msg.Reset {
		m.hold.Take()
		m.meter.Reset()
	}
	if msg.HasPeak {
		m.hold.Add(msg.Peak)
	}
	switch e := msg.Data.(type) {
	case func():
		e()
	case error:
		m.alerts.Add(e.Error(), Error)
	}
}

// Tick pushes the highest peak seen since the previous tick into the meter.
// Call it from a fixed-rate UI timer: the meter ballistics are per call.
func (m *Model) Tick() {
	m.meter.PushLevelLinear(m.hold.Take())
	for _, f := range m.onTick {
		f(m.meter)
	}
}

// OnTick registers f to be called on the GUI goroutine after every Tick.
func (m *Model) OnTick(f func(*levelmeter.LevelMeter)) {
	m.onTick = append(m.onTick, f)
}

func (m *Model) CycleAccent() {
	m.accent = (m.accent + 1) % len(m.accents)
	m.meter.SetAccentColour(m.accentColour())
	m.alerts.AddNamed("Accent", "Accent: "+m.AccentName(), Info)
}

// SetAccentByName selects the accent preset with the given name, ignoring
// case. Returns false if there is no such preset.
func (m *Model) SetAccentByName(name string) bool {
	for i, a := range m.accents {
		if strings.EqualFold(a.Name, name) {
			m.accent = i
			m.meter.SetAccentColour(m.accentColour())
			return true
		}
	}
	return false
}

func (m *Model) accentColour() color.NRGBA {
	return color.NRGBA(m.accents[m.accent].Colour)
}

func (m *Model) ResetMeter() {
	m.hold.Take()
	m.meter.Reset()
}

func (m *Model) SetTestTone(on bool) {
	m.toneOn = on
	TrySend(m.broker.ToPlayer, any(TestToneMsg{On: on}))
}

// SetGainDb sets the gain of the generated signal, clamped to
// [MinGainDb, MaxGainDb].
func (m *Model) SetGainDb(db float32) {
	m.gainDb = min(max(db, MinGainDb), MaxGainDb)
	TrySend(m.broker.ToPlayer, any(GainMsg{Gain: DbToLinear(m.gainDb)}))
	m.alerts.AddNamed("Gain", fmt.Sprintf("Gain %+.0f dB", m.gainDb), Info)
}

// LoadSample decodes a .wav file and sends it to the player to be looped.
// The reader is closed.
func (m *Model) LoadSample(r io.ReadCloser) error {
	defer r.Close()
	buf, rate, err := levelmeter.ReadWav(r)
	if err != nil {
		err = fmt.Errorf("LoadSample: %w", err)
		m.alerts.Add(err.Error(), Error)
		return err
	}
	if rate != levelmeter.WavSampleRate {
		m.alerts.Add(fmt.Sprintf("Sample rate is %d Hz, playing at %d Hz", rate, levelmeter.WavSampleRate), Warning)
	}
	TrySend(m.broker.ToPlayer, any(SampleMsg{Buffer: buf}))
	return nil
}

func (m *Model) StopSample() {
	TrySend(m.broker.ToPlayer, any(SampleMsg{}))
}

func DbToLinear(db float32) float32 {
	return float32(math.Pow(10, float64(db)/20))
}

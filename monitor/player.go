package monitor

import (
	"math"

	"github.com/vsariola/levelmeter"
)

type (
	// Player runs on the audio goroutine. It generates the signal that is
	// being metered (MIDI-gated sine voices, an optional test tone and an
	// optional looped sample) or passes through audio from a host, and
	// posts the peak of every processed buffer to the model.
	Player struct {
		broker   *Broker
		detector PeakDetector

		SampleRate float64
		// Remote, if set, also receives every peak, e.g. an rpc.Sender.
		Remote chan<- float32

		voices        [128]voice
		tone          voice
		toneOn        bool
		toneFrequency float32
		gain          float32

		sample    levelmeter.AudioBuffer
		samplePos int
	}

	voice struct {
		phase     float64
		amplitude float32
	}

	// NoteEvent is a MIDI note on/off. Frame is the offset within the
	// buffer being processed; live events use 0.
	NoteEvent struct {
		Frame    int
		On       bool
		Channel  int
		Note     byte
		Velocity byte
	}

	// PlayerProcessContext yields the note events that fall inside the
	// buffer currently being processed, in frame order.
	PlayerProcessContext interface {
		NextEvent() (event NoteEvent, ok bool)
	}

	NullPlayerProcessContext struct{}

	// SampleMsg replaces the looped sample; a nil Buffer stops it.
	SampleMsg struct {
		Buffer levelmeter.AudioBuffer
	}

	// TestToneMsg turns the test tone on or off.
	TestToneMsg struct {
		On bool
	}
)

const (
	DefaultTestToneFrequency = 1000
	DefaultTestToneAmplitude = 0.5 // -6 dBFS
)

func (NullPlayerProcessContext) NextEvent() (event NoteEvent, ok bool) {
	return NoteEvent{}, false
}

func NewPlayer(broker *Broker) *Player {
	return &Player{
		broker:        broker,
		SampleRate:    levelmeter.WavSampleRate,
		gain:          1,
		tone:          voice{amplitude: DefaultTestToneAmplitude},
		toneFrequency: DefaultTestToneFrequency,
	}
}

// Process fills buf with the generated signal and reports its peak.
func (p *Player) Process(buf levelmeter.AudioBuffer, context PlayerProcessContext) {
	p.processMessages()
	frame := 0
	for {
		ev, ok := context.NextEvent()
		if !ok {
			break
		}
		f := min(max(ev.Frame, frame), len(buf))
		p.render(buf[frame:f])
		frame = f
		p.noteEvent(ev)
	}
	p.render(buf[frame:])
	p.postPeak(buf)
}

// ProcessThrough reports the peak of a buffer produced elsewhere, e.g. the
// input of a plugin. The gain is applied in place.
func (p *Player) ProcessThrough(buf levelmeter.AudioBuffer) {
	p.processMessages()
	if p.gain != 1 {
		for i := range buf {
			buf[i][0] *= p.gain
			buf[i][1] *= p.gain
		}
	}
	p.postPeak(buf)
}

// ProcessChannels is ProcessThrough for planar buffers, as plugin hosts
// deliver them. The frames are interleaved into a scratch buffer from the
// broker pool, so nothing is allocated once the pool is warm.
func (p *Player) ProcessChannels(inLeft, inRight, outLeft, outRight []float32) {
	n := min(len(inLeft), len(inRight), len(outLeft), len(outRight))
	scratch := p.broker.GetAudioBuffer()
	buf := scratch.Resize(n)
	for i := range buf {
		buf[i] = [2]float32{inLeft[i], inRight[i]}
	}
	p.ProcessThrough(buf)
	for i, frame := range buf {
		outLeft[i], outRight[i] = frame[0], frame[1]
	}
	*scratch = buf
	p.broker.PutAudioBuffer(scratch)
}

func (p *Player) processMessages() {
	for {
		select {
		case msg := <-p.broker.ToPlayer:
			switch m := msg.(type) {
			case NoteEvent:
				p.noteEvent(m)
			case GainMsg:
				p.gain = max(m.Gain, 0)
			case TestToneMsg:
				p.toneOn = m.On
			case ToneMsg:
				p.toneFrequency = max(m.Frequency, 0)
			case SampleMsg:
				p.sample = m.Buffer
				p.samplePos = 0
				// a new source starts a new measurement
				TrySend(p.broker.ToModel, MsgToModel{Reset: true})
			case func():
				m()
			}
		default:
			return
		}
	}
}

func (p *Player) noteEvent(ev NoteEvent) {
	v := &p.voices[ev.Note&0x7f]
	if ev.On && ev.Velocity > 0 {
		if v.amplitude == 0 {
			v.phase = 0
		}
		v.amplitude = float32(ev.Velocity) / 127
		return
	}
	v.amplitude = 0
}

func (p *Player) render(buf levelmeter.AudioBuffer) {
	buf.Clear()
	if len(buf) == 0 {
		return
	}
	dt := 1 / p.SampleRate
	for n := range p.voices {
		v := &p.voices[n]
		if v.amplitude > 0 {
			v.add(buf, noteFrequency(n)*dt)
		}
	}
	if p.toneOn {
		p.tone.add(buf, float64(p.toneFrequency)*dt)
	}
	if len(p.sample) > 0 {
		for i := range buf {
			s := p.sample[p.samplePos]
			buf[i][0] += s[0]
			buf[i][1] += s[1]
			p.samplePos++
			if p.samplePos >= len(p.sample) {
				p.samplePos = 0
			}
		}
	}
	if p.gain != 1 {
		for i := range buf {
			buf[i][0] *= p.gain
			buf[i][1] *= p.gain
		}
	}
}

// add mixes a sine with the voice amplitude into buf; step is the phase
// increment in cycles per frame.
func (v *voice) add(buf levelmeter.AudioBuffer, step float64) {
	for i := range buf {
		s := v.amplitude * float32(math.Sin(2*math.Pi*v.phase))
		buf[i][0] += s
		buf[i][1] += s
		v.phase += step
		if v.phase >= 1 {
			v.phase -= math.Floor(v.phase)
		}
	}
}

func noteFrequency(note int) float64 {
	return 440 * math.Exp2(float64(note-69)/12)
}

func (p *Player) postPeak(buf levelmeter.AudioBuffer) {
	peak := p.detector.Update(buf)
	TrySend(p.broker.ToModel, MsgToModel{HasPeak: true, Peak: peak})
	if p.Remote != nil {
		TrySend(p.Remote, peak)
	}
}

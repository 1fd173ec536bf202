package monitor

import (
	"sync"
	"time"

	"github.com/vsariola/levelmeter"
)

type (
	// Broker is the message broker between the audio goroutine (the Player)
	// and the GUI goroutine (the Model). Each recipient has its own channel.
	// The audio goroutine must never block, so everything it sends goes
	// through TrySend and is dropped if the recipient is lagging behind.
	//
	// CloseGUI has a capacity of 1, so sending struct{}{} with TrySend always
	// works; FinishedGUI is closed by the GUI once it has cleaned up. See
	// CloseGUIAndWait.
	Broker struct {
		ToModel  chan MsgToModel
		ToPlayer chan any

		CloseGUI    chan struct{}
		FinishedGUI chan struct{}

		bufferPool sync.Pool
	}

	// MsgToModel is a message sent to the model. Peaks are sent very often
	// so they are not boxed; everything else goes into Data.
	MsgToModel struct {
		HasPeak bool
		Peak    float32
		Reset   bool // silence the meter, e.g. when the source changes

		Data any // func() to be run on the GUI goroutine, or an error to alert
	}

	// GainMsg sets the gain applied to the generated signal.
	GainMsg struct {
		Gain float32
	}

	// ToneMsg sets the frequency of the test tone.
	ToneMsg struct {
		Frequency float32
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToModel:     make(chan MsgToModel, 1024),
		ToPlayer:    make(chan any, 1024),
		CloseGUI:    make(chan struct{}, 1),
		FinishedGUI: make(chan struct{}),
		bufferPool:  sync.Pool{New: func() any { return &levelmeter.AudioBuffer{} }},
	}
}

// GetAudioBuffer returns an empty audio buffer from the pool. Return it with
// PutAudioBuffer when done.
func (b *Broker) GetAudioBuffer() *levelmeter.AudioBuffer {
	return b.bufferPool.Get().(*levelmeter.AudioBuffer)
}

// PutAudioBuffer returns a buffer to the pool, keeping its capacity.
func (b *Broker) PutAudioBuffer(buf *levelmeter.AudioBuffer) {
	if len(*buf) > 0 {
		*buf = (*buf)[:0]
	}
	b.bufferPool.Put(buf)
}

// TrySend sends v to c if c is not full. It never blocks. Returns true if the
// value was sent.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive blocks until a value is received from c, c is closed or t
// has elapsed. ok is false only on timeout.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v = <-c:
		return v, true
	case <-time.After(t):
		return v, false
	}
}

// CloseGUIAndWait asks the GUI to quit and waits at most t for it to finish
// cleaning up. Returns false if the GUI did not finish in time.
func (b *Broker) CloseGUIAndWait(t time.Duration) bool {
	TrySend(b.CloseGUI, struct{}{})
	_, ok := TimeoutReceive(b.FinishedGUI, t)
	return ok
}

package oto

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/vsariola/levelmeter"
)

type (
	OtoContext struct {
		context *oto.Context
	}

	OtoPlayer struct {
		player *oto.Player
	}

	// otoReader pulls frames from an AudioSource and encodes them as
	// interleaved little-endian float32, the format oto is opened with.
	otoReader struct {
		source levelmeter.AudioSource
		buffer levelmeter.AudioBuffer
	}
)

const (
	sampleRate     = levelmeter.WavSampleRate
	bytesPerFrame  = 8
	otoBufferSize  = 2048
	otoBufferBytes = otoBufferSize * bytesPerFrame
)

// NewContext opens the default audio output at 44.1 kHz stereo.
func NewContext() (*OtoContext, error) {
	op := oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(otoBufferSize) * time.Second / sampleRate,
	}
	context, ready, err := oto.NewContext(&op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{context: context}, nil
}

// Play starts pulling audio from source until the returned player is closed
// or source returns an error.
func (c *OtoContext) Play(source levelmeter.AudioSource) io.Closer {
	p := c.context.NewPlayer(&otoReader{source: source})
	p.SetBufferSize(otoBufferBytes)
	p.Play()
	return &OtoPlayer{player: p}
}

func (o *OtoPlayer) Close() error {
	o.player.Pause()
	if err := o.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}

func (r *otoReader) Read(b []byte) (int, error) {
	frames := len(b) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	r.buffer = r.buffer.Resize(frames)
	if err := r.source(r.buffer); err != nil {
		return 0, err
	}
	for i, frame := range r.buffer {
		binary.LittleEndian.PutUint32(b[i*bytesPerFrame:], math.Float32bits(frame[0]))
		binary.LittleEndian.PutUint32(b[i*bytesPerFrame+4:], math.Float32bits(frame[1]))
	}
	return frames * bytesPerFrame, nil
}

package levelmeter

import "io"

type (
	// AudioBuffer is a buffer of stereo frames.
	AudioBuffer [][2]float32

	// AudioSource fills the given buffer completely. Returning an error stops
	// the playback.
	AudioSource func(buf AudioBuffer) error

	// AudioContext is a platform audio output.
	AudioContext interface {
		Play(src AudioSource) io.Closer
	}
)

// Resize returns a buffer of length n, reusing the capacity of b when it can.
func (b AudioBuffer) Resize(n int) AudioBuffer {
	if cap(b) < n {
		return make(AudioBuffer, n)
	}
	return b[:n]
}

// Clear zeroes all frames.
func (b AudioBuffer) Clear() {
	for i := range b {
		b[i] = [2]float32{}
	}
}

package monitor

import "github.com/vsariola/levelmeter"

// BufferSource cuts a buffer into tick-sized chunks and yields their peaks,
// as if the buffer was being played in real time. It is used to meter files
// offline, without an audio device.
type BufferSource struct {
	Buffer        levelmeter.AudioBuffer
	FramesPerTick int
	Loop          bool

	pos      int
	detector PeakDetector
}

// FramesPerTick is the number of frames played during one UI tick.
func FramesPerTick(sampleRate, refreshRate int) int {
	return max(sampleRate/max(refreshRate, 1), 1)
}

// NextPeak returns the peak of the next chunk; ok is false once a non-looping
// source has run out.
func (s *BufferSource) NextPeak() (peak float32, ok bool) {
	if len(s.Buffer) == 0 || s.Done() {
		return 0, false
	}
	n := max(s.FramesPerTick, 1)
	end := min(s.pos+n, len(s.Buffer))
	peak = s.detector.Update(s.Buffer[s.pos:end])
	s.pos = end
	if s.pos >= len(s.Buffer) && s.Loop {
		s.pos = 0
	}
	return peak, true
}

func (s *BufferSource) Done() bool {
	return !s.Loop && s.pos >= len(s.Buffer)
}

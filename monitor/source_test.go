package monitor_test

import (
	"testing"

	"github.com/vsariola/levelmeter"
	"github.com/vsariola/levelmeter/monitor"
)

func TestBufferSource(t *testing.T) {
	s := &monitor.BufferSource{
		Buffer:        levelmeter.AudioBuffer{{0.1, 0}, {0.2, 0}, {0.9, 0}, {0, 0.3}, {0.5, 0}},
		FramesPerTick: 2,
	}
	want := []float32{0.2, 0.9, 0.5}
	for i, w := range want {
		p, ok := s.NextPeak()
		if !ok || p != w {
			t.Fatalf("chunk %d: got %v %v, want %v", i, p, ok, w)
		}
	}
	if _, ok := s.NextPeak(); ok || !s.Done() {
		t.Fatal("source should be exhausted")
	}
	s = &monitor.BufferSource{Buffer: levelmeter.AudioBuffer{{0.5, 0}}, FramesPerTick: 4, Loop: true}
	for i := 0; i < 3; i++ {
		if p, ok := s.NextPeak(); !ok || p != 0.5 {
			t.Fatalf("looping source: got %v %v", p, ok)
		}
	}
}

func TestFramesPerTick(t *testing.T) {
	if got := monitor.FramesPerTick(44100, 60); got != 735 {
		t.Errorf("got %v, want 735", got)
	}
	if got := monitor.FramesPerTick(44100, 0); got != 44100 {
		t.Errorf("zero refresh rate: got %v", got)
	}
}

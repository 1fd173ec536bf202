package monitor

import (
	"math"

	"github.com/viterin/vek/vek32"
	"github.com/vsariola/levelmeter"
)

// PeakDetector finds the absolute peak of audio buffers. It keeps scratch
// memory between calls so it does not allocate on the audio goroutine once
// warmed up.
type PeakDetector struct {
	tmp []float32
}

// Update returns the largest absolute sample of buf over both channels.
// NaNs and infinities are ignored.
func (d *PeakDetector) Update(buf levelmeter.AudioBuffer) float32 {
	if len(buf) == 0 {
		return 0
	}
	if cap(d.tmp) < len(buf) {
		d.tmp = make([]float32, len(buf))
	}
	d.tmp = d.tmp[:len(buf)]
	var peak float32
	for chn := 0; chn < 2; chn++ {
		// deinterleave the channel
		for i := range buf {
			v := buf[i][chn]
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				v = 0
			}
			d.tmp[i] = v
		}
		vek32.Abs_Inplace(d.tmp)
		peak = max(peak, vek32.Max(d.tmp))
	}
	return peak
}

// PeakHold accumulates the maximum of all peaks posted since the last Take.
type PeakHold struct {
	peak float32
}

func (h *PeakHold) Add(p float32) {
	if p > h.peak {
		h.peak = p
	}
}

// Take returns the held peak and starts a new hold period.
func (h *PeakHold) Take() float32 {
	p := h.peak
	h.peak = 0
	return p
}

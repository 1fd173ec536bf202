package cmd

import (
	"github.com/viterin/vek/vek32"
	"github.com/vsariola/levelmeter/monitor"
)

// ForwardPeaks posts every batch received from a remote sender to the model
// as a single peak. It returns when peaks is closed.
func ForwardPeaks(peaks <-chan []float32, broker *monitor.Broker) {
	for batch := range peaks {
		if len(batch) == 0 {
			continue
		}
		monitor.TrySend(broker.ToModel, monitor.MsgToModel{HasPeak: true, Peak: vek32.Max(batch)})
	}
}

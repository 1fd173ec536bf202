package cmd_test

import (
	"testing"

	"github.com/vsariola/levelmeter/cmd"
	"github.com/vsariola/levelmeter/monitor"
)

func TestForwardPeaks(t *testing.T) {
	broker := monitor.NewBroker()
	peaks := make(chan []float32, 3)
	peaks <- []float32{0.1, 0.7, 0.3}
	peaks <- nil
	peaks <- []float32{1.2}
	close(peaks)
	cmd.ForwardPeaks(peaks, broker)
	want := []float32{0.7, 1.2}
	for _, w := range want {
		msg := <-broker.ToModel
		if !msg.HasPeak || msg.Peak != w {
			t.Fatalf("got %+v, want peak %v", msg, w)
		}
	}
	select {
	case msg := <-broker.ToModel:
		t.Fatalf("unexpected message %+v", msg)
	default:
	}
}

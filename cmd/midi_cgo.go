//go:build cgo

package cmd

import (
	"github.com/vsariola/levelmeter/monitor"
	"github.com/vsariola/levelmeter/monitor/gomidi"
)

func NewMidiContext(broker *monitor.Broker) monitor.MIDIContext {
	return gomidi.NewContext(broker)
}

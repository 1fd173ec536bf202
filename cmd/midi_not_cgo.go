//go:build !cgo

package cmd

import "github.com/vsariola/levelmeter/monitor"

func NewMidiContext(broker *monitor.Broker) monitor.MIDIContext {
	// rtmidi needs cgo
	return monitor.NullMIDIContext{}
}

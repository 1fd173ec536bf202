package monitor

import "strings"

type (
	MIDIContext interface {
		InputDevices(yield func(MIDIDevice) bool)
		HasDeviceOpen() bool
		Close()
	}

	MIDIDevice interface {
		String() string
		Open() error
	}

	NullMIDIContext struct{}
)

func (m NullMIDIContext) InputDevices(yield func(MIDIDevice) bool) {}
func (m NullMIDIContext) HasDeviceOpen() bool                      { return false }
func (m NullMIDIContext) Close()                                   {}

// FindMIDIDeviceByPrefix returns the first input device whose name starts
// with prefix.
func FindMIDIDeviceByPrefix(c MIDIContext, prefix string) (input MIDIDevice, ok bool) {
	c.InputDevices(func(d MIDIDevice) bool {
		if strings.HasPrefix(d.String(), prefix) {
			input, ok = d, true
			return false
		}
		return true
	})
	return input, ok
}

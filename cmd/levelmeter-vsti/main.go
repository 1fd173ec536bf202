//go:build plugin

package main

import (
	"log"
	"os"
	"time"

	"github.com/vsariola/levelmeter/monitor"
	"github.com/vsariola/levelmeter/monitor/gioui"
	"github.com/vsariola/levelmeter/rpc"
	"pipelined.dev/audio/vst2"
)

const (
	PLUGIN_ID   = 'L'<<24 | 'v'<<16 | 'l'<<8 | 'M'
	PLUGIN_NAME = "Levelmeter"
)

// remoteEnv names the environment variable with the address of a meter
// started with levelmeter-demo -listen. If set, peaks are streamed there too.
const remoteEnv = "LEVELMETER_REMOTE"

func init() {
	var (
		version = int32(100)
	)
	vst2.PluginAllocator = func(h vst2.Host) (vst2.Plugin, vst2.Dispatcher) {
		broker := monitor.NewBroker()
		model := monitor.NewModel(broker)
		player := monitor.NewPlayer(broker)
		if addr := os.Getenv(remoteEnv); addr != "" {
			if sender, err := rpc.Sender(addr); err == nil {
				player.Remote = sender
			} else {
				log.Printf("could not connect to remote meter: %v", err)
			}
		}
		editor := gioui.NewEditor(model)
		go editor.Main()
		return vst2.Plugin{
				UniqueID:       PLUGIN_ID,
				Version:        version,
				InputChannels:  2,
				OutputChannels: 2,
				Name:           PLUGIN_NAME,
				Vendor:         "vsariola/levelmeter",
				Category:       vst2.PluginCategoryEffect,
				ProcessFloatFunc: func(in, out vst2.FloatBuffer) {
					player.ProcessChannels(in.Channel(0), in.Channel(1), out.Channel(0), out.Channel(1))
				},
			}, vst2.Dispatcher{
				CanDoFunc: func(pcds vst2.PluginCanDoString) vst2.CanDoResponse {
					return vst2.NoCanDo
				},
				CloseFunc: func() {
					if !broker.CloseGUIAndWait(3 * time.Second) {
						log.Printf("meter window did not close in time")
					}
				},
			}
	}
}

func main() {}

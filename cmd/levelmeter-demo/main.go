package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"gioui.org/app"
	"github.com/vsariola/levelmeter"
	"github.com/vsariola/levelmeter/cmd"
	"github.com/vsariola/levelmeter/monitor"
	"github.com/vsariola/levelmeter/monitor/gioui"
	"github.com/vsariola/levelmeter/oto"
	"github.com/vsariola/levelmeter/rpc"
	"github.com/vsariola/levelmeter/version"
	"github.com/vsariola/levelmeter/web"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var defaultMidiInput = flag.String("midi-input", "", "connect MIDI input to matching device name prefix")
var listen = flag.String("listen", "", "receive peaks from a remote sender on `address`, e.g. "+rpc.DefaultAddress)
var webAddr = flag.String("web", "", "serve live levels over WebSocket at ws://`address`/ws")
var tone = flag.Bool("tone", false, "start with the test tone on")
var toneFreq = flag.Float64("tone-freq", monitor.DefaultTestToneFrequency, "test tone frequency in `Hz`")
var gain = flag.Float64("gain", 0, "gain of the generated signal in `dB`")
var printVersion = flag.Bool("version", false, "print version and exit")

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [file.wav]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *printVersion {
		fmt.Println(version.String("levelmeter-demo"))
		os.Exit(0)
	}
	var f *os.File
	if *cpuprofile != "" {
		var err error
		f, err = os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
	}
	audioContext, err := oto.NewContext()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	broker := monitor.NewBroker()
	midiContext := cmd.NewMidiContext(broker)
	defer midiContext.Close()
	if isFlagPassed("midi-input") {
		input, ok := monitor.FindMIDIDeviceByPrefix(midiContext, *defaultMidiInput)
		if ok {
			if err := input.Open(); err != nil {
				log.Printf("failed to open MIDI input '%s': %v", input, err)
			}
		} else {
			log.Printf("no MIDI input device found with prefix '%s'", *defaultMidiInput)
		}
	}
	model := monitor.NewModel(broker)
	player := monitor.NewPlayer(broker)
	monitor.TrySend(broker.ToPlayer, any(monitor.ToneMsg{Frequency: float32(*toneFreq)}))
	if isFlagPassed("gain") {
		model.SetGainDb(float32(*gain))
	}
	if *tone {
		model.SetTestTone(true)
	}
	if a := flag.Args(); len(a) > 0 {
		if f, err := os.Open(a[0]); err == nil {
			model.LoadSample(f) // errors end up in the alerts
		} else {
			log.Printf("could not open sample: %v", err)
		}
	}
	if *listen != "" {
		peaks, addr, err := rpc.Receiver(*listen)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("listening for peaks on %v", addr)
		go cmd.ForwardPeaks(peaks, broker)
	}

	if *webAddr != "" {
		hub := web.NewHub()
		model.OnTick(hub.PublishMeter)
		go func() {
			if err := hub.ListenAndServe(*webAddr); err != nil {
				log.Printf("web server: %v", err)
			}
		}()
	}

	editor := gioui.NewEditor(model)
	audioCloser := audioContext.Play(func(buf levelmeter.AudioBuffer) error {
		player.Process(buf, monitor.NullPlayerProcessContext{})
		return nil
	})

	go func() {
		editor.Main()
		audioCloser.Close()
		if *cpuprofile != "" {
			pprof.StopCPUProfile()
			f.Close()
		}
		os.Exit(0)
	}()
	app.Main()
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

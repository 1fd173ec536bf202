package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/vsariola/levelmeter"
	"github.com/vsariola/levelmeter/monitor"
	"github.com/vsariola/levelmeter/oto"
	"github.com/vsariola/levelmeter/term"
	"github.com/vsariola/levelmeter/version"
)

// CLI defines the command-line interface
type CLI struct {
	Version bool   `short:"v" help:"Show version information"`
	Play    bool   `short:"p" help:"Play through the audio device and meter what is played"`
	Tone    bool   `help:"Start with the test tone on (with --play)"`
	Loop    bool   `short:"l" help:"Loop the file instead of quitting at its end"`
	Rate    int    `default:"30" help:"Meter refresh rate in Hz"`
	Cols    int    `default:"6" help:"Meter width in characters"`
	Rows    int    `default:"16" help:"Meter height in characters"`
	Accent  string `short:"a" help:"Accent preset name"`
	File    string `arg:"" name:"file" help:".wav file to meter" type:"existingfile" optional:""`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("levelmeter-term"),
		kong.Description("Peak level meter in the terminal"),
		kong.UsageOnError(),
	)
	if cliArgs.Version {
		fmt.Println(version.String("levelmeter-term"))
		os.Exit(0)
	}
	if cliArgs.File == "" && !cliArgs.Play {
		fmt.Fprintln(os.Stderr, "Nothing to meter: give a file or --play")
		ctx.PrintUsage(false)
		os.Exit(1)
	}

	broker := monitor.NewBroker()
	model := monitor.NewModel(broker)
	if cliArgs.Accent != "" && !model.SetAccentByName(cliArgs.Accent) {
		ctx.Fatalf("unknown accent %q", cliArgs.Accent)
	}
	title := "levelmeter"
	var source *monitor.BufferSource
	if cliArgs.Play {
		audioContext, err := oto.NewContext()
		ctx.FatalIfErrorf(err)
		player := monitor.NewPlayer(broker)
		if cliArgs.File != "" {
			f, err := os.Open(cliArgs.File)
			ctx.FatalIfErrorf(err)
			ctx.FatalIfErrorf(model.LoadSample(f))
			title = filepath.Base(cliArgs.File)
		}
		model.SetTestTone(cliArgs.Tone)
		closer := audioContext.Play(func(buf levelmeter.AudioBuffer) error {
			player.Process(buf, monitor.NullPlayerProcessContext{})
			return nil
		})
		defer closer.Close()
	} else {
		f, err := os.Open(cliArgs.File)
		ctx.FatalIfErrorf(err)
		buf, sampleRate, err := levelmeter.ReadWav(f)
		f.Close()
		ctx.FatalIfErrorf(err)
		source = &monitor.BufferSource{
			Buffer:        buf,
			FramesPerTick: monitor.FramesPerTick(sampleRate, cliArgs.Rate),
			Loop:          cliArgs.Loop,
		}
		title = filepath.Base(cliArgs.File)
	}

	p := tea.NewProgram(term.NewModel(model, source, cliArgs.Cols, cliArgs.Rows, cliArgs.Rate, title), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running UI: %v\n", err)
		os.Exit(1)
	}
}

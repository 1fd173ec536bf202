package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vsariola/levelmeter"
	"github.com/vsariola/levelmeter/monitor"
	"github.com/vsariola/levelmeter/svg"
	"github.com/vsariola/levelmeter/version"
)

func main() {
	levels := flag.String("levels", "", "comma separated linear peaks, one per tick")
	wavFile := flag.String("wav", "", "meter the peaks of a .wav `file` instead of -levels")
	rate := flag.Int("rate", 60, "ticks per second when metering a .wav file")
	out := flag.String("o", "frame%04d.svg", "output `pattern`, formatted with the frame number; - writes the last frame to stdout")
	every := flag.Int("every", 1, "write every `n`th frame")
	width := flag.Float64("width", 48, "width of the meter in pixels")
	height := flag.Float64("height", 240, "height of the meter in pixels")
	accent := flag.String("accent", "", "accent preset name or #rrggbb colour")
	printVersion := flag.Bool("version", false, "print version and exit")
	flag.Usage = printUsage
	flag.Parse()
	if *printVersion {
		fmt.Println(version.String("levelmeter-render"))
		os.Exit(0)
	}
	if (*levels == "") == (*wavFile == "") {
		printUsage()
		os.Exit(2)
	}
	next, err := peakSource(*levels, *wavFile, *rate)
	if err != nil {
		log.Fatal(err)
	}
	model := monitor.NewModel(monitor.NewBroker())
	if *accent != "" {
		if err := setAccent(model, *accent); err != nil {
			log.Fatal(err)
		}
	}
	surface := svg.New(float32(*width), float32(*height))
	frame := 0
	var last bytes.Buffer
	for {
		peak, ok := next()
		if !ok {
			break
		}
		model.ProcessMsg(monitor.MsgToModel{HasPeak: true, Peak: peak})
		model.Tick()
		frame++
		if *out != "-" && (frame-1)%max(*every, 1) != 0 {
			continue
		}
		surface.Reset()
		surface.Title = fmt.Sprintf("frame %d, %.1f dB", frame, model.Meter().Decibels())
		model.Meter().Render(surface, surface.Bounds())
		last.Reset()
		if err := surface.Encode(&last); err != nil {
			log.Fatal(err)
		}
		if *out == "-" {
			continue
		}
		name := fmt.Sprintf(*out, frame)
		if dir := filepath.Dir(name); dir != "." {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				log.Fatal(err)
			}
		}
		if err := os.WriteFile(name, last.Bytes(), 0644); err != nil {
			log.Fatalf("could not write frame: %v", err)
		}
	}
	if *out == "-" {
		os.Stdout.Write(last.Bytes())
	}
}

// peakSource returns a function yielding the per-tick peaks from either a
// list of levels or a .wav file.
func peakSource(levels, wavFile string, rate int) (func() (float32, bool), error) {
	if wavFile != "" {
		f, err := os.Open(wavFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		buf, sampleRate, err := levelmeter.ReadWav(f)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", wavFile, err)
		}
		src := &monitor.BufferSource{Buffer: buf, FramesPerTick: monitor.FramesPerTick(sampleRate, rate)}
		return src.NextPeak, nil
	}
	values, err := parseLevels(levels)
	if err != nil {
		return nil, err
	}
	return func() (float32, bool) {
		if len(values) == 0 {
			return 0, false
		}
		v := values[0]
		values = values[1:]
		return v, true
	}, nil
}

func parseLevels(s string) ([]float32, error) {
	var ret []float32
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid level %q: %w", field, err)
		}
		ret = append(ret, float32(v))
	}
	return ret, nil
}

func setAccent(model *monitor.Model, accent string) error {
	if strings.HasPrefix(accent, "#") {
		var c levelmeter.Colour
		if err := c.UnmarshalText([]byte(accent)); err != nil {
			return err
		}
		model.Meter().SetAccentColour(color.NRGBA(c))
		return nil
	}
	if !model.SetAccentByName(accent) {
		return fmt.Errorf("unknown accent preset %q", accent)
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s (-levels 0,0.5,1.2 | -wav file.wav) [flags]\n\nRenders the meter after every tick as SVG.\n\n", os.Args[0])
	flag.PrintDefaults()
}

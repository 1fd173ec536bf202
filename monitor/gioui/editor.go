package gioui

import (
	"fmt"
	"image"
	"io"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"github.com/vsariola/levelmeter/monitor"
	"github.com/vsariola/levelmeter/version"
	"golang.org/x/exp/shiny/materialdesign/icons"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type (
	// Editor is the meter window. All meter state is touched only from the
	// goroutine running Main.
	Editor struct {
		Theme       *material.Theme
		Explorer    *explorer.Explorer
		Exploring   bool
		Preferences Preferences

		openBtn   widget.Clickable
		toneBtn   widget.Clickable
		accentBtn widget.Clickable
		resetBtn  widget.Clickable

		caser   cases.Caser
		quitted bool

		*monitor.Model
	}
)

const gainStepDb = 1

func NewEditor(model *monitor.Model) *Editor {
	e := &Editor{
		Theme: newTheme(),
		caser: cases.Title(language.English),
		Model: model,
	}
	var err error
	if e.Preferences, err = MakePreferences(); err != nil {
		model.Alerts().AddAlert(monitor.Alert{
			Priority: monitor.Warning,
			Message:  err.Error(),
			Duration: 10 * time.Second,
		})
	}
	if e.Preferences.Accent != "" && !model.SetAccentByName(e.Preferences.Accent) {
		model.Alerts().Add(fmt.Sprintf("Unknown accent %q", e.Preferences.Accent), monitor.Warning)
	}
	return e
}

// Main runs the window until the user quits or CloseGUI is signaled. The
// meter is fed on a fixed-rate ticker, which is the cadence the meter
// ballistics assume.
func (e *Editor) Main() {
	ticker := time.NewTicker(e.Preferences.TickInterval())
	defer ticker.Stop()
	var ops op.Ops
	broker := e.Broker()
	for !e.quitted {
		w := e.newWindow()
		e.Meter().SetInvalidator(w)
		e.Explorer = explorer.NewExplorer(w)
		acks := make(chan struct{})
		events := make(chan event.Event)
		go func() {
			for {
				ev := w.Event()
				events <- ev
				<-acks
				if _, ok := ev.(app.DestroyEvent); ok {
					return
				}
			}
		}()
	F:
		for {
			select {
			case msg := <-broker.ToModel:
				e.ProcessMsg(msg)
			case <-ticker.C:
				e.Tick()
			case <-broker.CloseGUI:
				e.quitted = true
				w.Perform(system.ActionClose)
			case ev := <-events:
				e.Explorer.ListenEvents(ev)
				switch ev := ev.(type) {
				case app.DestroyEvent:
					if canQuit {
						e.quitted = true
					}
					acks <- struct{}{}
					break F // this window is done, we need to create a new one
				case app.FrameEvent:
					gtx := app.NewContext(&ops, ev)
					e.Layout(gtx)
					ev.Frame(gtx.Ops)
					if e.quitted {
						w.Perform(system.ActionClose)
					}
				}
				acks <- struct{}{}
			}
		}
	}
	e.Meter().SetInvalidator(nil)
	close(broker.FinishedGUI)
}

func (e *Editor) newWindow() *app.Window {
	w := new(app.Window)
	w.Option(app.Title(windowTitle()), app.Size(e.Preferences.WindowSize()))
	if e.Preferences.Window.Maximized {
		w.Option(app.Maximized.Option())
	}
	return w
}

func windowTitle() string {
	if v := version.VersionOrHash; v != "" {
		return "Level Meter " + v
	}
	return "Level Meter"
}

func (e *Editor) Layout(gtx C) D {
	defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, e.Theme.Palette.Bg)
	event.Op(gtx.Ops, e)
	e.handleButtons(gtx)
	layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx C) D {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(e.layoutToolbar),
				layout.Flexed(1, func(gtx C) D {
					return meterInset.Layout(gtx, Meter(e.Meter()).Layout)
				}),
				layout.Rigid(e.layoutStatus),
			)
		}),
		layout.Expanded(Alerts(e.Theme, e.Alerts()).Layout),
	)
	for {
		ev, ok := gtx.Event(key.Filter{Name: "", Optional: key.ModShift})
		if !ok {
			break
		}
		if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
			e.keyEvent(ke)
		}
	}
	return D{Size: gtx.Constraints.Max}
}

func (e *Editor) keyEvent(ke key.Event) {
	switch ke.Name {
	case "C":
		e.CycleAccent()
	case "O":
		e.openSample()
	case "R":
		e.ResetMeter()
	case "T":
		e.SetTestTone(!e.TestTone())
	case key.NameUpArrow, "+":
		e.SetGainDb(e.GainDb() + gainStepDb)
	case key.NameDownArrow, "-":
		e.SetGainDb(e.GainDb() - gainStepDb)
	case "S":
		e.StopSample()
	}
}

func (e *Editor) handleButtons(gtx C) {
	if e.openBtn.Clicked(gtx) {
		e.openSample()
	}
	if e.toneBtn.Clicked(gtx) {
		e.SetTestTone(!e.TestTone())
	}
	if e.accentBtn.Clicked(gtx) {
		e.CycleAccent()
	}
	if e.resetBtn.Clicked(gtx) {
		e.ResetMeter()
	}
}

func (e *Editor) layoutToolbar(gtx C) D {
	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx C) D {
			paint.FillShape(gtx.Ops, toolbarColor, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return D{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(func(gtx C) D {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(IconButton(e.Theme, &e.openBtn, icons.FileFolderOpen, !e.Exploring, "Open a .wav file to loop").Layout),
				layout.Rigid(IconButton(e.Theme, &e.toneBtn, icons.DeviceGraphicEq, true, "Toggle the test tone").Layout),
				layout.Rigid(IconButton(e.Theme, &e.accentBtn, icons.ImagePalette, true, "Next accent colour").Layout),
				layout.Rigid(IconButton(e.Theme, &e.resetBtn, icons.ActionRestore, true, "Reset the meter").Layout),
			)
		}),
	)
}

func (e *Editor) layoutStatus(gtx C) D {
	var text string
	if e.Meter().FillFraction() > 0 {
		text = fmt.Sprintf("%.1f dB", e.Meter().Decibels())
	} else {
		text = "-inf dB"
	}
	text += " · " + e.caser.String(e.AccentName())
	return layout.Inset{Left: unit.Dp(12), Right: unit.Dp(12), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx C) D {
		l := material.Label(e.Theme, labelFontSize, text)
		l.Color = mediumEmphasisTextColor
		return l.Layout(gtx)
	})
}

func (e *Editor) openSample() {
	if e.Exploring {
		return
	}
	e.explorerChooseFile(func(r io.ReadCloser) { e.LoadSample(r) }, ".wav")
}

func (e *Editor) explorerChooseFile(success func(io.ReadCloser), extensions ...string) {
	e.Exploring = true
	go func() {
		file, err := e.Explorer.ChooseFile(extensions...)
		e.Broker().ToModel <- monitor.MsgToModel{Data: func() {
			e.Exploring = false
			if err == nil {
				success(file)
			} else if err != explorer.ErrUserDecline {
				e.Alerts().Add(err.Error(), monitor.Error)
			}
		}}
	}()
}

package term

import (
	"fmt"
	"image/color"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vsariola/levelmeter/monitor"
)

type (
	// Model is a bubbletea model showing one meter. Peaks come from the
	// broker (when a player is running) and from an optional offline
	// BufferSource; either way they are pushed into the meter once per tick.
	Model struct {
		monitor  *monitor.Model
		canvas   *Canvas
		source   *monitor.BufferSource
		interval time.Duration
		title    string
		done     bool
	}

	tickMsg time.Time
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ce93d8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	helpStyle   = lipgloss.NewStyle().Faint(true)

	canvasBackground = color.NRGBA{R: 11, G: 11, B: 12, A: 255}
)

// NewModel shows the meter of m in a cols x rows character area. source may
// be nil.
func NewModel(m *monitor.Model, source *monitor.BufferSource, cols, rows, refreshRate int, title string) *Model {
	return &Model{
		monitor:  m,
		canvas:   NewCanvas(cols, rows, canvasBackground),
		source:   source,
		interval: time.Second / time.Duration(max(refreshRate, 1)),
		title:    title,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		case "c":
			m.monitor.CycleAccent()
		case "r":
			m.monitor.ResetMeter()
		}
	case tickMsg:
		m.Step()
		if m.source != nil && m.source.Done() {
			m.done = true
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

// Step does the work of one tick: drain the broker, feed the next offline
// chunk and push the held peak into the meter.
func (m *Model) Step() {
	for {
		msg, ok := tryReceive(m.monitor.Broker().ToModel)
		if !ok {
			break
		}
		m.monitor.ProcessMsg(msg)
	}
	if m.source != nil {
		if p, ok := m.source.NextPeak(); ok {
			m.monitor.ProcessMsg(monitor.MsgToModel{HasPeak: true, Peak: p})
		}
	}
	m.monitor.Tick()
}

func tryReceive[T any](c <-chan T) (v T, ok bool) {
	select {
	case v = <-c:
		return v, true
	default:
		return v, false
	}
}

func (m *Model) View() string {
	if m.done {
		return ""
	}
	m.canvas.Clear()
	meter := m.monitor.Meter()
	meter.Render(m.canvas, m.canvas.Bounds())
	status := "-inf dB"
	if meter.FillFraction() > 0 {
		status = fmt.Sprintf("%.1f dB", meter.Decibels())
	}
	if meter.ClipVisible() {
		status += " CLIP"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.title),
		m.canvas.String(),
		statusStyle.Render(status+" · "+m.monitor.AccentName()),
		helpStyle.Render("c accent · r reset · q quit"),
	)
}

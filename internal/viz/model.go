package viz

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/experiment"
	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/selsort"
)

var logger = logging.GetLogger("viz")

// SnapshotFunc persists the frame on screen and returns where it went.
type SnapshotFunc func(f Frame, t Theme) (string, error)

type Option func(*Model)

// WithSnapshot enables the export key.
func WithSnapshot(fn SnapshotFunc) Option {
	return func(m *Model) { m.snapshot = fn }
}

// Model is the interactive session: one state record, one running flag and
// at most one pending tick.
type Model struct {
	exp      *experiment.Experiment
	state    selsort.State
	running  bool
	speed    int
	size     int
	ticks    ticker
	theme    Theme
	keys     keyMap
	help     help.Model
	snapshot SnapshotFunc
	maxValue int

	lastEvent    selsort.Event
	perIteration []float64
	notice       string
	width        int
}

// NewModel builds a stopped session over a freshly generated array. exp
// must already be set up.
func NewModel(cfg config.Config, exp *experiment.Experiment, opts ...Option) Model {
	cfg.Normalize()
	exp.Resize(cfg.Size)
	m := Model{
		exp:      exp,
		speed:    cfg.Speed,
		size:     cfg.Size,
		theme:    GetTheme(cfg.Theme),
		keys:     defaultKeyMap(),
		help:     help.New(),
		maxValue: cfg.High,
		width:    DefaultColumns + 40,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.regenerate()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) State() selsort.State { return m.state }
func (m Model) Running() bool        { return m.running }
func (m Model) Speed() int           { return m.speed }
func (m Model) Size() int            { return m.size }
func (m Model) Theme() Theme         { return m.theme }

func (m Model) interval() time.Duration {
	return time.Duration(m.speed) * time.Millisecond
}

// Frame is the presentation of the current state.
func (m Model) Frame() Frame {
	return BuildFrame(m.state, m.running, FrameOptions{Columns: DefaultColumns, Rows: DefaultRows, MaxValue: m.maxValue})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		return m.tick(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ticks.cancel()
		m.running = false
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		return m.Toggle()
	case key.Matches(msg, m.keys.Reset):
		return m.Reset()
	case key.Matches(msg, m.keys.Faster):
		return m.Faster()
	case key.Matches(msg, m.keys.Slower):
		return m.Slower()
	case key.Matches(msg, m.keys.Grow):
		return m.Grow()
	case key.Matches(msg, m.keys.Shrink):
		return m.Shrink()
	case key.Matches(msg, m.keys.Theme):
		m.theme = m.theme.Next()
	case key.Matches(msg, m.keys.Snapshot):
		m.exportSnapshot()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// tick performs one micro-step if msg is the pending tick and schedules the
// next one from the resulting state.
func (m Model) tick(msg tickMsg) (Model, tea.Cmd) {
	if !m.ticks.accept(msg) || !m.running {
		return m, nil
	}

	var ev selsort.Event
	m.state, ev = selsort.Step(m.state)
	m.lastEvent = ev
	switch ev.Kind {
	case selsort.EventIterationStart:
		m.perIteration = append(m.perIteration, 0)
	case selsort.EventCompare:
		m.perIteration[len(m.perIteration)-1]++
	case selsort.EventDone, selsort.EventNone:
		m.running = false
		logger.WithField("comparisons", m.state.Comparisons).Info("sort complete")
		return m, nil
	}
	return m, m.ticks.schedule(m.interval())
}

// Toggle starts or pauses. Pausing keeps the state untouched so resuming
// continues with the very next micro-step.
func (m Model) Toggle() (Model, tea.Cmd) {
	if m.running {
		m.running = false
		m.ticks.cancel()
		logger.Debug("paused")
		return m, nil
	}
	if m.state.Done {
		m.notice = "already sorted, press r for a new array"
		return m, nil
	}
	m.running = true
	logger.Debug("started")
	return m, m.ticks.schedule(m.interval())
}

// Reset stops and regenerates at the current size.
func (m Model) Reset() (Model, tea.Cmd) {
	m.running = false
	m.regenerate()
	return m, nil
}

func (m Model) Faster() (Model, tea.Cmd) {
	m.speed = config.Faster(m.speed)
	return m, nil
}

func (m Model) Slower() (Model, tea.Cmd) {
	m.speed = config.Slower(m.speed)
	return m, nil
}

func (m Model) Grow() (Model, tea.Cmd) {
	return m.resize(config.Grow(m.size))
}

func (m Model) Shrink() (Model, tea.Cmd) {
	return m.resize(config.Shrink(m.size))
}

// resize regenerates at size n. A running session keeps running on the new
// array.
func (m Model) resize(n int) (Model, tea.Cmd) {
	if n == m.size {
		return m, nil
	}
	m.size = n
	m.exp.Resize(n)
	m.regenerate()
	if m.running {
		return m, m.ticks.schedule(m.interval())
	}
	return m, nil
}

// regenerate cancels any pending tick and replaces the state wholesale.
func (m *Model) regenerate() {
	m.ticks.cancel()
	m.state = m.exp.Fresh()
	m.lastEvent = selsort.Event{Current: selsort.None, Compare: selsort.None, Min: selsort.None}
	m.perIteration = nil
	logger.WithField("size", m.size).Debug("regenerated")
}

func (m *Model) exportSnapshot() {
	if m.snapshot == nil {
		m.notice = "export disabled"
		return
	}
	path, err := m.snapshot(m.Frame(), m.theme)
	if err != nil {
		logger.WithError(err).Error("snapshot failed")
		m.notice = "export failed: " + err.Error()
		return
	}
	m.notice = "saved " + path
}

// Run starts the interactive program and blocks until it quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/experiment"
)

const (
	stateMenu = iota
	stateSort
)

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	itemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// Menu lets the user pick a preset and then hands over to a Model. Esc in
// the sort view goes back to the list.
type Menu struct {
	state    int
	cursor   int
	presets  []string
	registry *experiment.Registry
	snapshot SnapshotFunc
	seed     func() int64
	sort     Model
	width    int
	err      error
}

func NewMenu(r *experiment.Registry, snapshot SnapshotFunc) Menu {
	return Menu{
		presets:  config.ListPresets(),
		registry: r,
		snapshot: snapshot,
		seed:     func() int64 { return time.Now().UnixNano() },
		width:    DefaultColumns + 40,
	}
}

func (m Menu) Init() tea.Cmd { return nil }

// Selected is the preset under the cursor.
func (m Menu) Selected() string { return m.presets[m.cursor] }

// Sorting reports whether a preset has been opened.
func (m Menu) Sorting() bool { return m.state == stateSort }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if m.state == stateMenu {
			return m.menuKey(msg)
		}
		if msg.String() == "esc" {
			m.sort.ticks.cancel()
			m.state = stateMenu
			return m, nil
		}
	}
	if m.state == stateSort {
		next, cmd := m.sort.Update(msg)
		m.sort = next.(Model)
		return m, cmd
	}
	return m, nil
}

func (m Menu) menuKey(msg tea.KeyMsg) (Menu, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.open()
	}
	return m, nil
}

// open starts a stopped session for the selected preset.
func (m Menu) open() (Menu, tea.Cmd) {
	cfg := config.GetPreset(m.Selected())
	cfg.Seed = m.seed()
	exp := experiment.New(experiment.FromConfig(cfg))
	if err := exp.Setup(m.registry); err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil

	// A tick still in flight from the previous session must not match the
	// new one.
	gen := m.sort.ticks.gen
	m.sort = NewModel(*cfg, exp, WithSnapshot(m.snapshot))
	m.sort.ticks.gen = gen + 1
	m.sort.width = m.width
	m.state = stateSort
	logger.WithField("preset", m.Selected()).Info("preset opened")
	return m, nil
}

func (m Menu) View() string {
	if m.state == stateSort {
		return m.sort.View() + "\n" + dimStyle.Render("esc: back to presets")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Foreground(lipgloss.Color("86")).Render("SELECTION SORT") + "\n")
	b.WriteString(dimStyle.Render("choose a preset") + "\n")
	b.WriteString(Separator(44) + "\n")
	for i, name := range m.presets {
		p := config.Presets[name]
		line := fmt.Sprintf("%-12s %2d values  %4dms  %s", name, p.Size, p.Speed, p.Generator)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+line) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString("\n" + StatusPaused.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + dimStyle.Render("↑/↓ select  enter open  q quit"))
	return panelStyle.Render(b.String())
}

// RunMenu starts the preset picker and blocks until it quits.
func RunMenu(r *experiment.Registry, snapshot SnapshotFunc) error {
	_, err := tea.NewProgram(NewMenu(r, snapshot), tea.WithAltScreen()).Run()
	return err
}

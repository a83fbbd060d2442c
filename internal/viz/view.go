package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sortviz/internal/selsort"
)

const explanation = `How selection sort works
  1. Find the smallest element in the unsorted part of the array
  2. Swap it with the element at the beginning of the unsorted part
  3. Move the boundary between sorted and unsorted parts one to the right
  4. Repeat until the entire array is sorted

  i    position being sorted
  min  position of the minimum value found
  j    position being compared

  Time complexity: O(n²) in all cases`

func (m Model) View() string {
	f := m.Frame()
	t := m.theme

	var b strings.Builder
	b.WriteString(titleStyle.Foreground(t.Accent).Render("SELECTION SORT") + "  " + m.legend() + "\n\n")
	b.WriteString(RenderBars(f, t) + "\n")

	status := statusStyle.BorderForeground(t.Accent).Foreground(t.Text).Render(f.Status)
	main := lipgloss.JoinVertical(lipgloss.Left, b.String(), status)

	view := lipgloss.JoinHorizontal(lipgloss.Top, main, m.stats(f))
	if m.width > 0 && m.width < lipgloss.Width(view) {
		view = lipgloss.JoinVertical(lipgloss.Left, main, m.stats(f))
	}
	footer := "\n" + m.help.View(m.keys)
	if m.notice != "" {
		footer = "\n" + subtleStyle.Render(m.notice) + footer
	}
	if m.help.ShowAll {
		footer += "\n\n" + panelStyle.Render(explanation)
	}
	return view + "\n" + footer
}

func (m Model) legend() string {
	t := m.theme
	return strings.Join([]string{
		Swatch(t.Current, "current (i)"),
		Swatch(t.Minimum, "minimum (min)"),
		Swatch(t.Comparing, "comparing (j)"),
		Swatch(t.Sorted, "sorted"),
	}, "  ")
}

func (m Model) stats(f Frame) string {
	var s strings.Builder
	state := StatusPaused.Render("PAUSED")
	if f.Running {
		state = StatusRunning.Render("RUNNING")
	}
	s.WriteString(state + "\n\n")

	row := func(label string, v interface{}) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(fmt.Sprint(v)) + "\n")
	}
	row("Iterations", f.Iterations)
	row("Comparisons", f.Comparisons)
	row("Swaps", f.Swaps)
	if m.lastEvent.Kind != selsort.EventNone {
		row("Last step", m.lastEvent.Kind)
	}
	row("Speed", fmt.Sprintf("%dms", m.speed))
	row("Size", m.size)
	row("Theme", m.theme.Name)

	progress := 0.0
	if f.Total > 0 {
		progress = float64(f.Sorted) / float64(f.Total)
	}
	s.WriteString("\n" + ProgressBar(progress, 20, m.theme) + fmt.Sprintf(" %d/%d", f.Sorted, f.Total) + "\n")

	if len(m.perIteration) > 1 {
		chart := asciigraph.Plot(m.perIteration, asciigraph.Height(4), asciigraph.Width(24), asciigraph.Caption("comparisons/iter"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}
	return statsStyle.Render(s.String())
}

// RenderBars draws the pointer row, the bars and, when they fit, the value
// and index rows. Narrow bars drop the labels rather than overlap them.
func RenderBars(f Frame, t Theme) string {
	if len(f.Bars) == 0 {
		return subtleStyle.Render("(empty)")
	}
	w := f.Bars[0].Width
	cell := func(s string) string {
		if len(s) > w {
			s = s[:w]
		}
		pad := w - len(s)
		return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
	}

	var b strings.Builder
	for i, bar := range f.Bars {
		if i > 0 {
			b.WriteString(" ")
		}
		label := strings.Join(bar.Pointers, ",")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Color(roleForPointer(bar.Pointers))).Bold(true).Render(cell(label)))
	}
	b.WriteString("\n")

	for row := f.Rows; row >= 1; row-- {
		for i, bar := range f.Bars {
			if i > 0 {
				b.WriteString(" ")
			}
			if bar.Height >= row {
				b.WriteString(lipgloss.NewStyle().Foreground(t.Color(bar.Role)).Render(strings.Repeat("█", w)))
			} else {
				b.WriteString(strings.Repeat(" ", w))
			}
		}
		b.WriteString("\n")
	}

	if w >= 3 {
		for i, bar := range f.Bars {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(valueStyle.Render(cell(fmt.Sprint(bar.Value))))
		}
		b.WriteString("\n")
	}
	if w >= 4 {
		for i, bar := range f.Bars {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(subtleStyle.Render(cell(fmt.Sprintf("[%d]", bar.Index))))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// roleForPointer colors a pointer label like the role it names.
func roleForPointer(p []string) Role {
	if len(p) == 0 {
		return RoleDefault
	}
	switch p[0] {
	case "i":
		return RoleCurrent
	case "min":
		return RoleMinimum
	}
	return RoleComparing
}

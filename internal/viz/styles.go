package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			Padding(0, 1)

	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Width(34)

	titleStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(13)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))
)

// ProgressBar renders the finalized fraction as a filled bar.
func ProgressBar(percent float64, width int, t Theme) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	done := lipgloss.NewStyle().Foreground(t.Sorted).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(t.Muted).Render(strings.Repeat("░", width-filled))
	return done + rest
}

// Swatch is a colored block followed by a label, used in the legend.
func Swatch(c lipgloss.Color, label string) string {
	return lipgloss.NewStyle().Foreground(c).Render("■") + " " + label
}

// Separator draws a decorative rule.
func Separator(width int) string {
	if width < 8 {
		return subtleStyle.Render(strings.Repeat("─", width))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return subtleStyle.Render(left + " ◆ " + right)
}

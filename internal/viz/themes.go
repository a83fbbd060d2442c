package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the bar colors for each role plus the chrome around them.
type Theme struct {
	Name      string
	Sorted    lipgloss.Color
	Minimum   lipgloss.Color
	Current   lipgloss.Color
	Comparing lipgloss.Color
	Default   lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
}

// Available themes
var (
	ThemeTailwind = Theme{
		Name:      "tailwind",
		Sorted:    lipgloss.Color("#4ade80"), // green-400
		Minimum:   lipgloss.Color("#f87171"), // red-400
		Current:   lipgloss.Color("#60a5fa"), // blue-400
		Comparing: lipgloss.Color("#fbbf24"), // amber-400
		Default:   lipgloss.Color("#94a3b8"), // slate-400
		Accent:    lipgloss.Color("#3b82f6"),
		Text:      lipgloss.Color("#f1f5f9"),
		Muted:     lipgloss.Color("#64748b"),
	}

	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Sorted:    lipgloss.Color("#00ff00"),
		Minimum:   lipgloss.Color("#ff00ff"),
		Current:   lipgloss.Color("#00ffff"),
		Comparing: lipgloss.Color("#ffff00"),
		Default:   lipgloss.Color("#666666"),
		Accent:    lipgloss.Color("#ff00ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#444444"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Sorted:    lipgloss.Color("#88ff88"),
		Minimum:   lipgloss.Color("#ffff00"),
		Current:   lipgloss.Color("#00ff00"),
		Comparing: lipgloss.Color("#00cc00"),
		Default:   lipgloss.Color("#005500"),
		Accent:    lipgloss.Color("#00ff00"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Sorted:    lipgloss.Color("#00ff88"),
		Minimum:   lipgloss.Color("#ff4444"),
		Current:   lipgloss.Color("#00a8cc"),
		Comparing: lipgloss.Color("#ffd700"),
		Default:   lipgloss.Color("#4488aa"),
		Accent:    lipgloss.Color("#0077be"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Sorted:    lipgloss.Color("#5fd068"),
		Minimum:   lipgloss.Color("#ff4757"),
		Current:   lipgloss.Color("#ff9ff3"),
		Comparing: lipgloss.Color("#feca57"),
		Default:   lipgloss.Color("#8b6b8c"),
		Accent:    lipgloss.Color("#ff6b6b"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
	}

	// All available themes, in cycling order
	Themes = []Theme{
		ThemeTailwind,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeTailwind
}

// Next returns the theme after t in Themes, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// Color returns the bar color for a role.
func (t Theme) Color(r Role) lipgloss.Color {
	switch r {
	case RoleSorted:
		return t.Sorted
	case RoleMinimum:
		return t.Minimum
	case RoleCurrent:
		return t.Current
	case RoleComparing:
		return t.Comparing
	}
	return t.Default
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

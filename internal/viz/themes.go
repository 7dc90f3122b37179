package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme colors the chart series and the surrounding chrome.
type Theme struct {
	Name   string
	Series [3]asciigraph.AnsiColor // position, velocity, acceleration
	Accent lipgloss.Color
	Muted  lipgloss.Color
	Error  lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:   "classic",
		Series: [3]asciigraph.AnsiColor{asciigraph.Orange, asciigraph.Purple, asciigraph.Cyan},
		Accent: lipgloss.Color("214"),
		Muted:  lipgloss.Color("242"),
		Error:  lipgloss.Color("196"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Series: [3]asciigraph.AnsiColor{asciigraph.DodgerBlue, asciigraph.Aquamarine, asciigraph.Gold},
		Accent: lipgloss.Color("#00a8cc"),
		Muted:  lipgloss.Color("#4488aa"),
		Error:  lipgloss.Color("#ff4444"),
	}

	ThemeMono = Theme{
		Name:   "mono",
		Series: [3]asciigraph.AnsiColor{asciigraph.LightGray, asciigraph.DarkGray, asciigraph.DimGray},
		Accent: lipgloss.Color("252"),
		Muted:  lipgloss.Color("240"),
		Error:  lipgloss.Color("252"),
	}

	Themes = []Theme{ThemeClassic, ThemeOcean, ThemeMono}
)

// GetTheme returns a theme by name, falling back to the classic palette.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme defines the colors used for the two curves and the surrounding
// chrome. Each curve color exists twice: once for lipgloss and once as
// the nearest asciigraph palette entry.
type Theme struct {
	Name      string
	Euler     lipgloss.Color
	RK4       lipgloss.Color
	EulerANSI asciigraph.AnsiColor
	RK4ANSI   asciigraph.AnsiColor
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
}

var (
	// red markers over a blue line, like a matplotlib figure
	ThemeClassic = Theme{
		Name:      "classic",
		Euler:     lipgloss.Color("#d62728"),
		RK4:       lipgloss.Color("#1f77b4"),
		EulerANSI: asciigraph.Red,
		RK4ANSI:   asciigraph.Blue,
		Accent:    lipgloss.Color("#00ccff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888899"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Euler:     lipgloss.Color("#ff00ff"),
		RK4:       lipgloss.Color("#00ffff"),
		EulerANSI: asciigraph.Magenta,
		RK4ANSI:   asciigraph.Cyan,
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Euler:     lipgloss.Color("#ffff00"),
		RK4:       lipgloss.Color("#00ff00"),
		EulerANSI: asciigraph.Yellow,
		RK4ANSI:   asciigraph.Lime,
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Euler:     lipgloss.Color("#888888"),
		RK4:       lipgloss.Color("#ffffff"),
		EulerANSI: asciigraph.DarkGray,
		RK4ANSI:   asciigraph.White,
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Error:     lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// LookupTheme is GetTheme for user input: an empty name selects classic
// and an unknown name is an error.
func LookupTheme(name string) (Theme, error) {
	if name == "" {
		return ThemeClassic, nil
	}
	for _, t := range Themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("unknown theme: %s (available: %v)", name, ThemeNames())
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// curveColor picks the lipgloss color for a method; methods other than
// euler use the solid-line color.
func (t Theme) curveColor(method string) lipgloss.Color {
	if method == "euler" {
		return t.Euler
	}
	return t.RK4
}

func (t Theme) curveANSI(method string) asciigraph.AnsiColor {
	if method == "euler" {
		return t.EulerANSI
	}
	return t.RK4ANSI
}

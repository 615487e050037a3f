package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/odesolve/internal/dynamo"
	"github.com/san-kum/odesolve/internal/metrics"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))
)

// Title is the heading shown above a comparison, e.g. "y' = cos(x)".
func Title(expression string) string {
	return "y' = " + expression
}

// Legend lists each trajectory with a colored marker: a dot for Euler,
// a bar for the solid-line methods.
func Legend(trajs []*dynamo.Trajectory, theme Theme) string {
	items := make([]string, 0, len(trajs))
	for _, t := range trajs {
		glyph := "━━"
		if t.Method == "euler" {
			glyph = "•"
		}
		mark := lipgloss.NewStyle().Foreground(theme.curveColor(t.Method)).Render(glyph)
		items = append(items, mark+" "+t.Label())
	}
	return strings.Join(items, "   ")
}

// SummaryTable renders one row per trajectory.
func SummaryTable(trajs []*dynamo.Trajectory, theme Theme) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Muted)).
		Headers("method", "samples", "final x", "final y", "status")

	for _, traj := range trajs {
		s := metrics.Summarize(traj)
		status := "complete"
		if s.Truncated {
			status = "stopped: " + s.Reason
		}
		t.Row(s.Label, fmt.Sprint(s.Samples), fmt.Sprintf("%.6g", s.FinalX), fmt.Sprintf("%.6g", s.FinalY), status)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		st := lipgloss.NewStyle().Padding(0, 1)
		if row == table.HeaderRow {
			return st.Bold(true).Foreground(theme.Accent)
		}
		if col == 0 && row < len(trajs) {
			return st.Foreground(theme.curveColor(trajs[row].Method))
		}
		return st
	})
	return t.Render()
}

// MetricsLine formats named metrics as "label value" pairs in key order.
func MetricsLine(values map[string]float64) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, MetricLabel.Render(strings.ReplaceAll(k, "_", " "))+" "+MetricValue.Render(fmt.Sprintf("%.6g", values[k])))
	}
	return strings.Join(parts, "  ")
}

// ErrorLine renders a failure as a single human-readable line.
func ErrorLine(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	return ErrorStyle.Render("error: " + msg)
}

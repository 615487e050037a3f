// Package tui is the interactive comparison shell: five input fields,
// Enter to integrate, and a Braille plot of both methods.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/odesolve/internal/config"
	"github.com/san-kum/odesolve/internal/dynamo"
	"github.com/san-kum/odesolve/internal/experiment"
	"github.com/san-kum/odesolve/internal/expr"
	"github.com/san-kum/odesolve/internal/viz"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type field int

const (
	fieldExpr field = iota
	fieldX0
	fieldXn
	fieldY0
	fieldH
	fieldCount
)

var fieldLabels = [fieldCount]string{"y' =", "x0", "xn", "y0", "h"}

type model struct {
	inputs  [fieldCount]string
	cursor  field
	methods []string
	theme   viz.Theme
	runner  *experiment.Runner

	result *experiment.Result
	err    error

	width  int
	height int
}

// NewApp seeds the fields from cfg.
func NewApp(cfg *config.Config, runner *experiment.Runner) model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	m := model{
		methods: cfg.Methods,
		theme:   viz.GetTheme(cfg.Theme),
		runner:  runner,
		width:   80,
		height:  24,
	}
	m.inputs[fieldExpr] = cfg.Expression
	m.inputs[fieldX0] = formatFloat(cfg.X0)
	m.inputs[fieldXn] = formatFloat(cfg.Xn)
	m.inputs[fieldY0] = formatFloat(cfg.Y0)
	m.inputs[fieldH] = formatFloat(cfg.H)
	return m
}

// Run blocks until the user quits.
func Run(cfg *config.Config, runner *experiment.Runner) error {
	_, err := tea.NewProgram(NewApp(cfg, runner), tea.WithAltScreen()).Run()
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyDown:
		m.cursor = (m.cursor + 1) % fieldCount
	case tea.KeyShiftTab, tea.KeyUp:
		m.cursor = (m.cursor + fieldCount - 1) % fieldCount
	case tea.KeyEnter:
		m.compute()
	case tea.KeyBackspace:
		in := []rune(m.inputs[m.cursor])
		if len(in) > 0 {
			m.inputs[m.cursor] = string(in[:len(in)-1])
		}
	case tea.KeyCtrlU:
		m.inputs[m.cursor] = ""
	case tea.KeySpace:
		m.inputs[m.cursor] += " "
	case tea.KeyRunes:
		m.inputs[m.cursor] += string(msg.Runes)
	}
	return m, nil
}

// compute replaces the result only on success; on failure the previous
// plot stays and err explains what went wrong.
func (m *model) compute() {
	res, err := m.solve()
	if err != nil {
		m.err = err
		return
	}
	m.result = res
	m.err = nil
}

func (m model) solve() (*experiment.Result, error) {
	var vals [fieldCount]float64
	for f := fieldX0; f < fieldCount; f++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[f]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", fieldLabels[f], m.inputs[f])
		}
		vals[f] = v
	}

	src := strings.TrimSpace(m.inputs[fieldExpr])
	rhs, err := expr.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("equation: %w", err)
	}

	p := dynamo.Problem{X0: vals[fieldX0], Xn: vals[fieldXn], Y0: vals[fieldY0], H: vals[fieldH]}
	return m.runner.Compare(context.Background(), src, rhs, p, m.methods...)
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("   " + cyan.Render("o d e s o l v e") + "  " + dim.Render("euler vs runge-kutta 4") + "\n")
	b.WriteString(dimmer.Render("   "+strings.Repeat("─", 40)) + "\n\n")

	for f := field(0); f < fieldCount; f++ {
		label := fmt.Sprintf("%-5s", fieldLabels[f])
		if f == m.cursor {
			b.WriteString("   " + cyan.Render("▸ ") + white.Render(label) + " " + magenta.Render(m.inputs[f]+"▋") + "\n")
		} else {
			b.WriteString("     " + dim.Render(label) + " " + dim.Render(m.inputs[f]) + "\n")
		}
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("   " + viz.ErrorLine(m.err) + "\n\n")
	}

	if m.result != nil {
		b.WriteString("   " + white.Render(viz.Title(m.result.Expression)) + "\n")
		cw, ch := m.plotSize()
		for _, line := range strings.Split(viz.PlotXY(m.result.Trajectories, cw, ch, m.theme), "\n") {
			b.WriteString("   " + line + "\n")
		}
		b.WriteString("\n   " + viz.Legend(m.result.Trajectories, m.theme) + "\n")
		if len(m.result.Metrics) > 0 {
			b.WriteString("   " + viz.MetricsLine(m.result.Metrics) + "\n")
		}
	}

	b.WriteString("\n" + dim.Render("   tab/shift+tab move  enter plot  ctrl+u clear  esc quit") + "\n")
	return b.String()
}

func (m model) plotSize() (int, int) {
	cw := m.width - 16
	ch := m.height - 18
	if cw < 30 {
		cw = 30
	}
	if ch < 8 {
		ch = 8
	}
	return cw, ch
}

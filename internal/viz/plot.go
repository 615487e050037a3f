package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/odesolve/internal/dynamo"
)

// Bounds is the data window mapped onto a canvas.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

func boundsOf(trajs []*dynamo.Trajectory) Bounds {
	b := Bounds{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for _, t := range trajs {
		for _, p := range t.Points {
			b.MinX = math.Min(b.MinX, p.X)
			b.MaxX = math.Max(b.MaxX, p.X)
			b.MinY = math.Min(b.MinY, p.Y)
			b.MaxY = math.Max(b.MaxY, p.Y)
		}
	}
	if math.IsInf(b.MinX, 1) {
		return Bounds{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	}
	b.MinX, b.MaxX = widen(b.MinX, b.MaxX)
	b.MinY, b.MaxY = widen(b.MinY, b.MaxY)
	return b
}

// widen keeps a degenerate range from collapsing to a single pixel.
func widen(lo, hi float64) (float64, float64) {
	if hi/2-lo/2 > dynamo.Epsilon/2 {
		return lo, hi
	}
	pad := math.Max(math.Abs(lo)*0.5, 0.5)
	return math.Max(lo-pad, -math.MaxFloat64), math.Min(hi+pad, math.MaxFloat64)
}

// Plot draws trajectories on true x/y axes: solid-line methods are
// connected, Euler is drawn as isolated markers.
type Plot struct {
	canvas *Canvas
	bounds Bounds
	trajs  []*dynamo.Trajectory
}

func NewPlot(trajs []*dynamo.Trajectory, width, height int) *Plot {
	if width < 2 {
		width = 2
	}
	if height < 2 {
		height = 2
	}
	p := &Plot{
		canvas: NewCanvas(width, height),
		bounds: boundsOf(trajs),
		trajs:  trajs,
	}
	for i, t := range trajs {
		p.canvas.Pen(i)
		p.draw(t)
	}
	return p
}

func (p *Plot) Canvas() *Canvas { return p.canvas }
func (p *Plot) Bounds() Bounds  { return p.bounds }

// Pixel maps a data point to sub-pixel coordinates, y growing downward.
// The result always lies on the canvas.
func (p *Plot) Pixel(pt dynamo.Point) (int, int) {
	b := p.bounds
	w := p.canvas.SubWidth() - 1
	h := p.canvas.SubHeight() - 1
	px := toPixel(dynamo.Fraction(pt.X, b.MinX, b.MaxX), w)
	py := toPixel(1-dynamo.Fraction(pt.Y, b.MinY, b.MaxY), h)
	return px, py
}

func toPixel(frac float64, limit int) int {
	if math.IsNaN(frac) {
		return 0
	}
	v := math.Round(frac * float64(limit))
	return int(math.Max(0, math.Min(float64(limit), v)))
}

func (p *Plot) draw(t *dynamo.Trajectory) {
	if t.Method == "euler" {
		for _, pt := range t.Points {
			x, y := p.Pixel(pt)
			p.canvas.DrawMarker(x, y)
		}
		return
	}
	for i, pt := range t.Points {
		x, y := p.Pixel(pt)
		if i == 0 {
			p.canvas.Set(x, y)
			continue
		}
		x0, y0 := p.Pixel(t.Points[i-1])
		p.canvas.DrawLine(x0, y0, x, y)
	}
}

// Render frames the canvas with y labels on the left and the x range
// underneath.
func (p *Plot) Render(theme Theme) string {
	style := func(series int) lipgloss.Style {
		if series >= len(p.trajs) {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(theme.curveColor(p.trajs[series].Method))
	}
	rows := p.canvas.Rows(style)
	axis := lipgloss.NewStyle().Foreground(theme.Muted)

	top := fmt.Sprintf("%.4g", p.bounds.MaxY)
	bottom := fmt.Sprintf("%.4g", p.bounds.MinY)
	pad := max(len(top), len(bottom))

	var b strings.Builder
	for i, row := range rows {
		label := ""
		switch i {
		case 0:
			label = top
		case len(rows) - 1:
			label = bottom
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s ┤", pad, label)))
		b.WriteString(row)
		b.WriteString("\n")
	}

	left := fmt.Sprintf("%.4g", p.bounds.MinX)
	right := fmt.Sprintf("%.4g", p.bounds.MaxX)
	gap := p.canvas.Width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(strings.Repeat(" ", pad+2))
	b.WriteString(axis.Render(left + strings.Repeat(" ", gap) + right))
	return b.String()
}

// PlotXY renders the result's trajectories onto a width x height cell
// Braille canvas.
func PlotXY(trajs []*dynamo.Trajectory, width, height int, theme Theme) string {
	return NewPlot(trajs, width, height).Render(theme)
}

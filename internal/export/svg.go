// Package export writes comparison results as standalone SVG figures.
package export

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	"github.com/san-kum/odesolve/internal/dynamo"
	"github.com/san-kum/odesolve/internal/experiment"
)

const (
	eulerColor = "#d62728"
	rk4Color   = "#1f77b4"
	gridLines  = 5
)

type Options struct {
	Width  int
	Height int
	Margin int
}

func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, Margin: 60}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.Margin <= 0 {
		o.Margin = d.Margin
	}
	return o
}

type frame struct {
	left, top, w, h        float64
	minX, maxX, minY, maxY float64
}

func (f frame) px(p dynamo.Point) (float64, float64) {
	x := f.left + dynamo.Fraction(p.X, f.minX, f.maxX)*f.w
	y := f.top + f.h - dynamo.Fraction(p.Y, f.minY, f.maxY)*f.h
	return x, y
}

func newFrame(trajs []*dynamo.Trajectory, o Options) frame {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, t := range trajs {
		for _, p := range t.Points {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 1) {
		minX, maxX, minY, maxY = 0, 1, 0, 1
	}

	f := frame{
		left: float64(o.Margin), top: float64(o.Margin),
		w: float64(o.Width - 2*o.Margin),
		h: float64(o.Height - 2*o.Margin),
	}
	f.minX, f.maxX = dynamo.Pad(minX, maxX, 0.05)
	f.minY, f.maxY = dynamo.Pad(minY, maxY, 0.05)
	return f
}

// SVG draws the result the way the lab figure looks: Euler as a red
// dashed line with circle markers, RK4 as a solid blue line, a dotted
// grid, a "y' = ..." title and a legend.
func SVG(w io.Writer, result *experiment.Result, opts Options) error {
	o := opts.withDefaults()
	f := newFrame(result.Trajectories, o)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, o.Width, o.Height, o.Width, o.Height))

	writeGrid(&sb, f)

	for _, t := range result.Trajectories {
		writeTrajectory(&sb, f, t)
	}

	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="18" text-anchor="middle">%s</text>
`, f.left+f.w/2, f.top/2, html.EscapeString("y' = "+result.Expression)))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="14" text-anchor="middle">X</text>
`, f.left+f.w/2, f.top+f.h+40))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="14" text-anchor="middle" transform="rotate(-90 %.1f %.1f)">Y</text>
`, f.left-40, f.top+f.h/2, f.left-40, f.top+f.h/2))

	writeLegend(&sb, f, result.Trajectories)

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeGrid(sb *strings.Builder, f frame) {
	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#333333"/>
<g stroke="#cccccc" stroke-dasharray="1,3" font-size="11" fill="#333333">
`, f.left, f.top, f.w, f.h))
	for i := 0; i <= gridLines; i++ {
		t := float64(i) / gridLines
		x := f.left + t*f.w
		y := f.top + f.h - t*f.h
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<text x="%.1f" y="%.1f" stroke="none" text-anchor="middle">%.3g</text>
<text x="%.1f" y="%.1f" stroke="none" text-anchor="end">%.3g</text>
`,
			x, f.top, x, f.top+f.h,
			f.left, y, f.left+f.w, y,
			x, f.top+f.h+16, dynamo.Lerp(f.minX, f.maxX, t),
			f.left-6, y+4, dynamo.Lerp(f.minY, f.maxY, t)))
	}
	sb.WriteString("</g>\n")
}

func writeTrajectory(sb *strings.Builder, f frame, t *dynamo.Trajectory) {
	pts := make([]string, len(t.Points))
	for i, p := range t.Points {
		x, y := f.px(p)
		pts[i] = fmt.Sprintf("%.1f,%.1f", x, y)
	}

	if t.Method != "euler" {
		sb.WriteString(fmt.Sprintf(`<polyline class="rk4" fill="none" stroke="%s" stroke-width="2" points="%s"/>
`, rk4Color, strings.Join(pts, " ")))
		return
	}

	sb.WriteString(fmt.Sprintf(`<g class="euler" opacity="0.7">
<polyline fill="none" stroke="%s" stroke-width="1.5" stroke-dasharray="6,4" points="%s"/>
`, eulerColor, strings.Join(pts, " ")))
	for _, p := range t.Points {
		x, y := f.px(p)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, x, y, eulerColor))
	}
	sb.WriteString("</g>\n")
}

func writeLegend(sb *strings.Builder, f frame, trajs []*dynamo.Trajectory) {
	x := f.left + f.w - 150
	y := f.top + 12
	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="140" height="%d" fill="#ffffff" stroke="#999999"/>
`, x-6, y-6, 20*len(trajs)+8))
	for i, t := range trajs {
		ly := y + float64(i)*20 + 8
		if t.Method == "euler" {
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="6,4" opacity="0.7"/>
<circle cx="%.1f" cy="%.1f" r="3" fill="%s" opacity="0.7"/>
`, x, ly, x+24, ly, eulerColor, x+12, ly, eulerColor))
		} else {
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>
`, x, ly, x+24, ly, rk4Color))
		}
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="12">%s</text>
`, x+30, ly+4, html.EscapeString(t.Label())))
	}
}

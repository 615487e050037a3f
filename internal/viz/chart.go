package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/odesolve/internal/dynamo"
)

// Chart overlays the y values of every trajectory in one asciigraph
// plot. Shorter (truncated) series are padded with NaN so each column
// stays at the same x across series.
func Chart(trajs []*dynamo.Trajectory, width, height int, theme Theme) string {
	if len(trajs) == 0 {
		return ""
	}

	longest := 0
	for _, t := range trajs {
		longest = max(longest, t.Len())
	}

	data := make([][]float64, len(trajs))
	colors := make([]asciigraph.AnsiColor, len(trajs))
	legends := make([]string, len(trajs))
	for i, t := range trajs {
		series := make([]float64, longest)
		for j := range series {
			if j < t.Len() {
				series[j] = t.Points[j].Y
			} else {
				series[j] = math.NaN()
			}
		}
		data[i] = series
		colors[i] = theme.curveANSI(t.Method)
		legends[i] = t.Label()
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	}
	// stretching fewer samples than columns only smears the steps
	if width > 0 && longest > width {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.PlotMany(data, opts...)
}

package metrics

import (
	"math"

	"github.com/san-kum/odesolve/internal/dynamo"
)

// Divergence describes how far two trajectories drift apart in y over
// the samples they share.
type Divergence struct {
	Max     float64
	MaxAtX  float64
	Final   float64
	Samples int
}

// Compare walks the common prefix of a and b. Both are expected to come
// from the same Problem, so sample i sits at the same x in each.
func Compare(a, b *dynamo.Trajectory) Divergence {
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}

	d := Divergence{Samples: n}
	for i := 0; i < n; i++ {
		diff := math.Abs(a.Points[i].Y - b.Points[i].Y)
		if diff > d.Max {
			d.Max = diff
			d.MaxAtX = a.Points[i].X
		}
		d.Final = diff
	}
	return d
}

// Values returns the divergence as named metrics.
func (d Divergence) Values() map[string]float64 {
	return map[string]float64{
		"max_divergence":   d.Max,
		"final_divergence": d.Final,
		"common_samples":   float64(d.Samples),
	}
}

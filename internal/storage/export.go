package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/odesolve/internal/dynamo"
	"github.com/san-kum/odesolve/internal/experiment"
)

type ExportTrajectory struct {
	Method    string    `json:"method"`
	Label     string    `json:"label"`
	Step      float64   `json:"step"`
	Samples   int       `json:"samples"`
	Truncated bool      `json:"truncated"`
	Xs        []float64 `json:"xs"`
	Ys        []float64 `json:"ys"`
}

type ExportData struct {
	ID           string             `json:"id,omitempty"`
	Expression   string             `json:"expression"`
	Problem      dynamo.Problem     `json:"problem"`
	Trajectories []ExportTrajectory `json:"trajectories"`
	Metrics      map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, runID string, result *experiment.Result) error {
	data := ExportData{
		ID:           runID,
		Expression:   result.Expression,
		Problem:      result.Problem,
		Trajectories: make([]ExportTrajectory, len(result.Trajectories)),
		Metrics:      result.Metrics,
	}

	for i, t := range result.Trajectories {
		data.Trajectories[i] = ExportTrajectory{
			Method:    t.Method,
			Label:     t.Label(),
			Step:      t.Step,
			Samples:   t.Len(),
			Truncated: t.Truncated(),
			Xs:        t.Xs(),
			Ys:        t.Ys(),
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/odesolve/internal/dynamo"
	"github.com/san-kum/odesolve/internal/experiment"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectories.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type MethodMetadata struct {
	Method    string  `json:"method"`
	Samples   int     `json:"samples"`
	FinalX    float64 `json:"final_x"`
	FinalY    float64 `json:"final_y"`
	Truncated bool    `json:"truncated"`
	Reason    string  `json:"reason,omitempty"`
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Expression string             `json:"expression"`
	Timestamp  time.Time          `json:"timestamp"`
	Problem    dynamo.Problem     `json:"problem"`
	Methods    []MethodMetadata   `json:"methods"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(result *experiment.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("run_%d", now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Expression: result.Expression,
		Timestamp:  now,
		Problem:    result.Problem,
		Metrics:    result.Metrics,
	}
	for _, t := range result.Trajectories {
		last := t.Last()
		m := MethodMetadata{
			Method:    t.Method,
			Samples:   t.Len(),
			FinalX:    last.X,
			FinalY:    last.Y,
			Truncated: t.Truncated(),
		}
		if t.Halt != nil {
			m.Reason = t.Halt.Error()
		}
		meta.Methods = append(meta.Methods, m)
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), &meta); err != nil {
		return "", err
	}
	if err := writeTrajectories(filepath.Join(runDir, trajectoryFile), result.Trajectories); err != nil {
		return "", err
	}

	return runID, nil
}

func writeMetadata(path string, meta *RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeTrajectories(path string, trajs []*dynamo.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := WriteCSV(w, trajs); err != nil {
		return err
	}
	return f.Sync()
}

// WriteCSV writes one row per sample: method, step, x, y.
func WriteCSV(w *csv.Writer, trajs []*dynamo.Trajectory) error {
	if err := w.Write([]string{"method", "step", "x", "y"}); err != nil {
		return err
	}
	for _, t := range trajs {
		step := strconv.FormatFloat(t.Step, 'g', -1, 64)
		for _, p := range t.Points {
			row := []string{
				t.Method,
				step,
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectories reads the samples of a run, grouped by method in the
// order they were written.
func (s *Store) LoadTrajectories(runID string) ([]*dynamo.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var trajs []*dynamo.Trajectory
	byMethod := make(map[string]*dynamo.Trajectory)

	for i := 1; i < len(records); i++ {
		record := records[i]

		vals := make([]float64, 3)
		for j := range vals {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", trajectoryFile, i+1, err)
			}
			vals[j] = v
		}

		t, ok := byMethod[record[0]]
		if !ok {
			t = &dynamo.Trajectory{Method: record[0], Step: vals[0]}
			byMethod[record[0]] = t
			trajs = append(trajs, t)
		}
		t.Append(vals[1], vals[2])
	}

	return trajs, nil
}

// LoadResult rebuilds a comparison result. Halt causes are not persisted
// beyond the metadata reason text.
func (s *Store) LoadResult(runID string) (*RunMetadata, *experiment.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	trajs, err := s.LoadTrajectories(runID)
	if err != nil {
		return nil, nil, err
	}

	for _, m := range meta.Methods {
		if !m.Truncated {
			continue
		}
		for _, t := range trajs {
			if t.Method == m.Method {
				last := t.Last()
				t.Halt = &dynamo.EvaluationError{X: last.X, Y: last.Y, Wrapped: errors.New(m.Reason)}
			}
		}
	}

	return meta, &experiment.Result{
		Expression:   meta.Expression,
		Problem:      meta.Problem,
		Trajectories: trajs,
		Metrics:      meta.Metrics,
	}, nil
}

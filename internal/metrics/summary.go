package metrics

import "github.com/san-kum/odesolve/internal/dynamo"

type Summary struct {
	Method    string
	Label     string
	Samples   int
	FinalX    float64
	FinalY    float64
	Truncated bool
	Reason    string
}

func Summarize(t *dynamo.Trajectory) Summary {
	last := t.Last()
	s := Summary{
		Method:    t.Method,
		Label:     t.Label(),
		Samples:   t.Len(),
		FinalX:    last.X,
		FinalY:    last.Y,
		Truncated: t.Truncated(),
	}
	if t.Halt != nil {
		s.Reason = t.Halt.Error()
	}
	return s
}

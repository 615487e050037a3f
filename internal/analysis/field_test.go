package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/odesolve/internal/dynamo"
)

func box() []*dynamo.Trajectory {
	return []*dynamo.Trajectory{{
		Method: "rk4",
		Step:   1,
		Points: []dynamo.Point{{X: 0, Y: 0}, {X: 1, Y: 1}},
	}}
}

func constant(v float64) dynamo.RHS {
	return func(x, y float64) (float64, error) { return v, nil }
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		slope float64
		want  rune
	}{
		{0, '─'},
		{0.2, '─'},
		{1, '╱'},
		{-1, '╲'},
		{10, '│'},
		{-10, '│'},
		{math.NaN(), '×'},
	}
	for _, tt := range tests {
		if got := glyph(tt.slope); got != tt.want {
			t.Errorf("glyph(%g) = %c, want %c", tt.slope, got, tt.want)
		}
	}
}

func TestNewDirectionField_Bounds(t *testing.T) {
	df := NewDirectionField(constant(0), box(), 10, 5)
	if df == nil {
		t.Fatal("expected a field")
	}

	if math.Abs(df.MinX+0.1) > 1e-12 || math.Abs(df.MaxX-1.1) > 1e-12 {
		t.Errorf("unexpected x bounds [%g, %g]", df.MinX, df.MaxX)
	}
	if len(df.Slopes) != 5 || len(df.Slopes[0]) != 10 {
		t.Errorf("unexpected grid %dx%d", len(df.Slopes), len(df.Slopes[0]))
	}
}

func TestNewDirectionField_Empty(t *testing.T) {
	if NewDirectionField(constant(0), nil, 10, 5) != nil {
		t.Error("expected nil field without samples")
	}
	if NewDirectionField(constant(0), box(), 0, 5) != nil {
		t.Error("expected nil field for zero columns")
	}
}

func TestNewDirectionField_SamplesCenters(t *testing.T) {
	df := NewDirectionField(func(x, y float64) (float64, error) { return x, nil }, box(), 4, 2)

	for col := 0; col < 4; col++ {
		want := df.MinX + (float64(col)+0.5)/4*(df.MaxX-df.MinX)
		if math.Abs(df.Slopes[0][col]-want) > 1e-12 {
			t.Errorf("col %d: got %g, want %g", col, df.Slopes[0][col], want)
		}
	}
}

func TestDirectionFieldToASCII(t *testing.T) {
	df := NewDirectionField(constant(0), box(), 10, 5)
	out := DirectionFieldToASCII(df, box())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(lines))
	}
	if strings.Count(out, "•") != 2 {
		t.Errorf("expected both samples marked:\n%s", out)
	}
	if !strings.Contains(out, "─") {
		t.Errorf("expected flat slopes:\n%s", out)
	}
}

func TestDirectionFieldToASCII_Failures(t *testing.T) {
	fail := func(x, y float64) (float64, error) { return 0, errors.New("undefined") }
	df := NewDirectionField(fail, box(), 6, 3)

	out := DirectionFieldToASCII(df, nil)
	if strings.Count(out, "×") != 18 {
		t.Errorf("expected every cell undefined:\n%s", out)
	}
}

func TestScreenSlope_Steep(t *testing.T) {
	df := NewDirectionField(constant(1e6), box(), 10, 5)
	if glyph(df.ScreenSlope(df.Slopes[0][0])) != '│' {
		t.Error("expected a vertical glyph for a huge slope")
	}
}

func TestDirectionField_RangeWiderThanMaxFloat(t *testing.T) {
	trajs := []*dynamo.Trajectory{{
		Method: "rk4",
		Step:   1,
		Points: []dynamo.Point{{X: 0, Y: -1e308}, {X: 7, Y: 1.03e308}},
	}}
	df := NewDirectionField(constant(2.9e307), trajs, 10, 5)

	for _, v := range []float64{df.MinX, df.MaxX, df.MinY, df.MaxY} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Fatalf("non-finite bounds %+v", df)
		}
	}
	out := DirectionFieldToASCII(df, trajs)
	if strings.Count(out, "•") != 2 {
		t.Errorf("expected both samples marked:\n%s", out)
	}
}

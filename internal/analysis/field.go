package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/odesolve/internal/dynamo"
)

// cellAspect is the width/height ratio of a terminal cell.
const cellAspect = 0.5

// DirectionField holds f(x, y) sampled at the centre of each cell.
// Row 0 is the top of the plot. Cells where f fails hold NaN.
type DirectionField struct {
	MinX, MaxX float64
	MinY, MaxY float64
	Cols, Rows int
	Slopes     [][]float64
}

// NewDirectionField samples f over the bounding box of trajs plus 10%
// padding.
func NewDirectionField(f dynamo.RHS, trajs []*dynamo.Trajectory, cols, rows int) *DirectionField {
	if cols < 1 || rows < 1 {
		return nil
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, t := range trajs {
		for _, p := range t.Points {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return nil
	}

	df := &DirectionField{
		Cols: cols, Rows: rows,
		Slopes: make([][]float64, rows),
	}
	df.MinX, df.MaxX = dynamo.Pad(minX, maxX, 0.1)
	df.MinY, df.MaxY = dynamo.Pad(minY, maxY, 0.1)

	for row := 0; row < rows; row++ {
		df.Slopes[row] = make([]float64, cols)
		for col := 0; col < cols; col++ {
			x, y := df.center(col, row)
			s, err := f(x, y)
			if err != nil || math.IsNaN(s) || math.IsInf(s, 0) {
				s = math.NaN()
			}
			df.Slopes[row][col] = s
		}
	}
	return df
}

func (df *DirectionField) center(col, row int) (float64, float64) {
	x := dynamo.Lerp(df.MinX, df.MaxX, (float64(col)+0.5)/float64(df.Cols))
	y := dynamo.Lerp(df.MaxY, df.MinY, (float64(row)+0.5)/float64(df.Rows))
	return x, y
}

// cell maps a point to its grid cell; ok is false outside the field.
func (df *DirectionField) cell(p dynamo.Point) (col, row int, ok bool) {
	fx := dynamo.Fraction(p.X, df.MinX, df.MaxX)
	fy := 1 - dynamo.Fraction(p.Y, df.MinY, df.MaxY)
	if !(fx >= 0 && fx < 1 && fy >= 0 && fy < 1) {
		return 0, 0, false
	}
	return int(fx * float64(df.Cols)), int(fy * float64(df.Rows)), true
}

// ScreenSlope converts a data slope to the slope seen on screen, where
// one cell spans (MaxX-MinX)/Cols in x and is twice as tall as wide.
func (df *DirectionField) ScreenSlope(s float64) float64 {
	cellW := (df.MaxX/2 - df.MinX/2) / float64(df.Cols)
	cellH := (df.MaxY/2 - df.MinY/2) / float64(df.Rows)
	return s * cellW / cellH * cellAspect
}

// glyph picks the line character closest to the on-screen slope.
func glyph(screenSlope float64) rune {
	if math.IsNaN(screenSlope) {
		return '×'
	}
	deg := math.Atan(screenSlope) * 180 / math.Pi
	switch {
	case deg > 67.5 || deg < -67.5:
		return '│'
	case deg > 22.5:
		return '╱'
	case deg < -22.5:
		return '╲'
	default:
		return '─'
	}
}

// DirectionFieldToASCII draws the field and marks trajectory samples on
// top: 'o' for Euler, '•' for every other method.
func DirectionFieldToASCII(df *DirectionField, trajs []*dynamo.Trajectory) string {
	if df == nil {
		return ""
	}

	canvas := make([][]rune, df.Rows)
	for row := range canvas {
		canvas[row] = make([]rune, df.Cols)
		for col := range canvas[row] {
			canvas[row][col] = glyph(df.ScreenSlope(df.Slopes[row][col]))
		}
	}

	for _, t := range trajs {
		mark := '•'
		if t.Method == "euler" {
			mark = 'o'
		}
		for _, p := range t.Points {
			if col, row, ok := df.cell(p); ok {
				canvas[row][col] = mark
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

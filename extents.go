package bsp

import (
	"errors"
	"math"

	"golang.org/x/exp/constraints"
)

// ErrEmptyInput is returned when extents are requested for no spawn points.
var ErrEmptyInput = errors.New("no spawn points to measure")

// Range is the closed interval covered on one axis.
type Range struct {
	Min, Max float64
}

// Extents is the axis aligned box enclosing every spawn point of a map.
type Extents struct {
	X, Y, Z Range
}

// Clearance is the distance from a spawn point to each face of the map extents.
type Clearance struct {
	Left     float64 // x - min x
	Right    float64 // max x - x
	Forward  float64 // max y - y
	Backward float64 // y - min y
	Up       float64 // max z - z
	Down     float64 // z - min z
}

func newRange() Range {
	return Range{Min: math.Inf(1), Max: math.Inf(-1)}
}

func (r *Range) add(v float64) {
	r.Min = lower(r.Min, v)
	r.Max = upper(r.Max, v)
}

// ComputeExtents reduces the points to their bounding extents in one pass.
// NaN coordinates never replace a bound.
func ComputeExtents(points []SpawnPoint) (Extents, error) {
	if len(points) == 0 {
		return Extents{}, ErrEmptyInput
	}
	e := Extents{X: newRange(), Y: newRange(), Z: newRange()}
	for _, p := range points {
		e.X.add(p.X)
		e.Y.add(p.Y)
		e.Z.add(p.Z)
	}
	return e, nil
}

// ComputeClearance measures p against e.
func ComputeClearance(p SpawnPoint, e Extents) Clearance {
	return Clearance{
		Left:     p.X - e.X.Min,
		Right:    e.X.Max - p.X,
		Forward:  e.Y.Max - p.Y,
		Backward: p.Y - e.Y.Min,
		Up:       e.Z.Max - p.Z,
		Down:     p.Z - e.Z.Min,
	}
}

// lower keeps cur unless v is strictly smaller. Unlike the min builtin a NaN
// v is ignored.
func lower[T constraints.Float](cur, v T) T {
	if v < cur {
		return v
	}
	return cur
}

// upper keeps cur unless v is strictly larger.
func upper[T constraints.Float](cur, v T) T {
	if v > cur {
		return v
	}
	return cur
}

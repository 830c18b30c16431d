package space

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

// ErrInvalidParameterSpace is returned for malformed bounds tables.
var ErrInvalidParameterSpace = errors.New("invalid parameter space")

// /////////////////////////////////////////////////////////////////////////////
// ParameterSpace
//
// The box that designs are generated in. Every strategy works in the unit
// hypercube and the engine maps points back through Denormalize.
//
// /////////////////////////////////////////////////////////////////////////////

// ParameterSpace is an ordered, immutable set of bounded continuous
// parameters.
type ParameterSpace struct {
	bounds []r1.Interval
}

// New validates a bounds table with one [lower, upper] row per parameter.
func New(bounds [][]float64) (*ParameterSpace, error) {
	if len(bounds) <= 0 {
		return nil, fmt.Errorf("%w: at least one parameter is required", ErrInvalidParameterSpace)
	}
	ps := &ParameterSpace{
		bounds: make([]r1.Interval, len(bounds)),
	}
	for i, eachRow := range bounds {
		if len(eachRow) != 2 {
			return nil, fmt.Errorf("%w: parameter %d has %d columns, expected 2 (lower, upper)",
				ErrInvalidParameterSpace,
				i,
				len(eachRow))
		}
		lower, upper := eachRow[0], eachRow[1]
		if !isFinite(lower) || !isFinite(upper) {
			return nil, fmt.Errorf("%w: parameter %d has non-finite bounds [%v, %v]",
				ErrInvalidParameterSpace,
				i,
				lower,
				upper)
		}
		if lower >= upper {
			return nil, fmt.Errorf("%w: parameter %d lower bound %v must be less than upper bound %v",
				ErrInvalidParameterSpace,
				i,
				lower,
				upper)
		}
		ps.bounds[i] = r1.Interval{Min: lower, Max: upper}
	}
	return ps, nil
}

// FromIntervals is New for callers that already hold r1 intervals.
func FromIntervals(intervals []r1.Interval) (*ParameterSpace, error) {
	bounds := make([][]float64, len(intervals))
	for i, eachInterval := range intervals {
		bounds[i] = []float64{eachInterval.Min, eachInterval.Max}
	}
	return New(bounds)
}

// Dim returns the number of parameters.
func (ps *ParameterSpace) Dim() int {
	return len(ps.bounds)
}

// Bounds returns a copy of the parameter bounds in parameter order.
func (ps *ParameterSpace) Bounds() []r1.Interval {
	boundsCopy := make([]r1.Interval, len(ps.bounds))
	copy(boundsCopy, ps.bounds)
	return boundsCopy
}

// Interval returns the bounds of parameter i.
func (ps *ParameterSpace) Interval(i int) r1.Interval {
	return ps.bounds[i]
}

// Denormalize maps v in [0,1] onto parameter i's bounds. The extremes map
// exactly onto the bounds and the result never leaves them.
func (ps *ParameterSpace) Denormalize(i int, v float64) float64 {
	bound := ps.bounds[i]
	if v <= 0 {
		return bound.Min
	}
	if v >= 1 {
		return bound.Max
	}
	width := bound.Max - bound.Min
	var x float64
	if math.IsInf(width, 0) {
		x = bound.Min*(1-v) + bound.Max*v
	} else {
		x = bound.Min + v*width
	}
	return math.Min(math.Max(x, bound.Min), bound.Max)
}

// Normalize maps x from parameter i's bounds onto [0,1]. It is the inverse
// of Denormalize for values inside the bounds.
func (ps *ParameterSpace) Normalize(i int, x float64) float64 {
	bound := ps.bounds[i]
	if x <= bound.Min {
		return 0
	}
	if x >= bound.Max {
		return 1
	}
	return math.Min((x-bound.Min)/(bound.Max-bound.Min), 1)
}

// Stratum returns the index of the equal-width stratum of parameter i that
// contains x when the bounds are split into the given number of strata. The
// upper bound belongs to the last stratum.
func (ps *ParameterSpace) Stratum(i int, x float64, strata int) int {
	bound := ps.bounds[i]
	position := (x - bound.Min) / (bound.Max - bound.Min)
	stratum := int(math.Floor(position * float64(strata)))
	if stratum < 0 {
		return 0
	}
	if stratum >= strata {
		return strata - 1
	}
	return stratum
}

// Contains reports whether x lies inside parameter i's bounds, inclusive.
func (ps *ParameterSpace) Contains(i int, x float64) bool {
	bound := ps.bounds[i]
	return x >= bound.Min && x <= bound.Max
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

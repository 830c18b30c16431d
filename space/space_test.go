package space

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestNewRejectsMalformedBounds(t *testing.T) {
	for _, tc := range []struct {
		name   string
		bounds [][]float64
	}{
		{name: "empty", bounds: nil},
		{name: "one column", bounds: [][]float64{{0}}},
		{name: "three columns", bounds: [][]float64{{0, 1, 2}}},
		{name: "equal bounds", bounds: [][]float64{{0, 1}, {3, 3}}},
		{name: "inverted bounds", bounds: [][]float64{{2, 1}}},
		{name: "nan", bounds: [][]float64{{math.NaN(), 1}}},
		{name: "infinite", bounds: [][]float64{{0, math.Inf(1)}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ps, err := New(tc.bounds)
			assert.Nil(t, ps)
			assert.ErrorIs(t, err, ErrInvalidParameterSpace)
		})
	}
}

func TestNewPreservesOrder(t *testing.T) {
	ps, err := New([][]float64{{0, 1}, {10, 20}, {-5, -1}})
	require.NoError(t, err)
	assert.Equal(t, 3, ps.Dim())
	assert.Equal(t, []r1.Interval{{Min: 0, Max: 1}, {Min: 10, Max: 20}, {Min: -5, Max: -1}}, ps.Bounds())

	// Bounds hands out a copy.
	bounds := ps.Bounds()
	bounds[0].Min = 100
	assert.Equal(t, 0.0, ps.Interval(0).Min)
}

func TestDenormalizeIsExactAtExtremes(t *testing.T) {
	ps, err := New([][]float64{{0.1, 0.7}, {-3.3, 1e-9}})
	require.NoError(t, err)
	for i := 0; i != ps.Dim(); i++ {
		bound := ps.Interval(i)
		assert.Equal(t, bound.Min, ps.Denormalize(i, 0))
		assert.Equal(t, bound.Max, ps.Denormalize(i, 1))
		for _, v := range []float64{1e-17, 0.25, 0.5, 0.999999999999} {
			assert.True(t, ps.Contains(i, ps.Denormalize(i, v)))
		}
	}
	assert.InDelta(t, 0.4, ps.Denormalize(0, 0.5), 1e-15)
}

func TestDenormalizeHugeRange(t *testing.T) {
	ps, err := New([][]float64{{-math.MaxFloat64, math.MaxFloat64}})
	require.NoError(t, err)
	mid := ps.Denormalize(0, 0.5)
	assert.False(t, math.IsInf(mid, 0))
	assert.True(t, ps.Contains(0, mid))
}

func TestStratum(t *testing.T) {
	ps, err := New([][]float64{{10, 20}})
	require.NoError(t, err)
	assert.Equal(t, 0, ps.Stratum(0, 10, 4))
	assert.Equal(t, 1, ps.Stratum(0, 12.5, 4))
	assert.Equal(t, 2, ps.Stratum(0, 17.4, 4))
	assert.Equal(t, 3, ps.Stratum(0, 20, 4))
}

func TestFromIntervals(t *testing.T) {
	ps, err := FromIntervals([]r1.Interval{{Min: 1, Max: 2}})
	require.NoError(t, err)
	assert.Equal(t, 1, ps.Dim())

	_, err = FromIntervals([]r1.Interval{{Min: 2, Max: 1}})
	assert.ErrorIs(t, err, ErrInvalidParameterSpace)
}

func TestNormalize(t *testing.T) {
	ps, err := New([][]float64{{-4, 6}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, ps.Normalize(0, -4))
	assert.Equal(t, 1.0, ps.Normalize(0, 6))
	assert.Equal(t, 0.0, ps.Normalize(0, -10))
	assert.InDelta(t, 0.25, ps.Normalize(0, -1.5), 1e-15)
	for _, v := range []float64{0.1, 0.33, 0.9} {
		assert.InDelta(t, v, ps.Normalize(0, ps.Denormalize(0, v)), 1e-12)
	}
}

package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// requireOnePerStratum checks that every column of points occupies each of
// len(points) equal-width strata of [0,1] exactly once.
func requireOnePerStratum(t *testing.T, points [][]float64) {
	t.Helper()
	samples := len(points)
	require.NotZero(t, samples)
	for j := range points[0] {
		occupied := make([]int, samples)
		for _, point := range points {
			stratum := int(math.Floor(point[j] * float64(samples)))
			if stratum == samples {
				stratum--
			}
			require.GreaterOrEqual(t, stratum, 0)
			occupied[stratum]++
		}
		for stratum, count := range occupied {
			require.Equal(t, 1, count, "dimension %d stratum %d", j, stratum)
		}
	}
}

func TestLatinHypercubeStratification(t *testing.T) {
	for _, jitter := range []bool{true, false} {
		for _, samples := range []int{1, 2, 7, 64} {
			lhc, err := NewLatinHypercube(samples, jitter)
			require.NoError(t, err)
			points, err := lhc.Generate(testSpace(t, 4), rand.NewSource(uint64(samples)), nil)
			require.NoError(t, err)
			require.Len(t, points, samples)
			requireOnePerStratum(t, points)
		}
	}
}

func TestLatinHypercubeCentered(t *testing.T) {
	lhc, err := NewLatinHypercube(4, false)
	require.NoError(t, err)
	points, err := lhc.Generate(testSpace(t, 2), rand.NewSource(3), nil)
	require.NoError(t, err)
	centres := []float64{0.125, 0.375, 0.625, 0.875}
	for _, point := range points {
		for _, v := range point {
			assert.Contains(t, centres, v)
		}
	}
}

func TestLatinHypercubeSeeded(t *testing.T) {
	lhc, err := NewLatinHypercube(10, true)
	require.NoError(t, err)
	first, err := lhc.Generate(testSpace(t, 3), rand.NewSource(42), nil)
	require.NoError(t, err)
	second, err := lhc.Generate(testSpace(t, 3), rand.NewSource(42), nil)
	require.NoError(t, err)
	other, err := lhc.Generate(testSpace(t, 3), rand.NewSource(43), nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestStratumValueStaysInsideStratum(t *testing.T) {
	almostOne := math.Nextafter(1, 0)
	for _, samples := range []int{1, 3, 10, 1000} {
		for k := 0; k != samples; k++ {
			lower := stratumValue(k, 0, samples)
			upper := stratumValue(k, almostOne, samples)
			assert.GreaterOrEqual(t, lower, float64(k)/float64(samples))
			assert.LessOrEqual(t, upper, 1.0)
			if k+1 < samples {
				assert.Less(t, upper, float64(k+1)/float64(samples))
			}
		}
	}
}

func TestHypercubeColumnsArePermutations(t *testing.T) {
	strata := newHypercube(9, 5, rand.New(rand.NewSource(5)))
	for j := 0; j != 5; j++ {
		seen := make(map[int]bool)
		for i := range strata {
			seen[strata[i][j]] = true
		}
		assert.Len(t, seen, 9)
	}
	cloned := strata.clone()
	cloned.swap(0, 0, 1)
	assert.NotEqual(t, strata[0][0], cloned[0][0])
}

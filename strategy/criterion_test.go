package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairwiseDistances(t *testing.T) {
	points := [][]float64{{0, 0}, {3, 4}, {0, 1}}
	euclidean := PairwiseDistances(points, 2)
	require.NotNil(t, euclidean)
	assert.Equal(t, 3, euclidean.SymmetricDim())
	assert.InDelta(t, 5.0, euclidean.At(0, 1), 1e-12)
	assert.InDelta(t, 5.0, euclidean.At(1, 0), 1e-12)
	assert.InDelta(t, 1.0, euclidean.At(0, 2), 1e-12)
	assert.Equal(t, 0.0, euclidean.At(1, 1))

	rectilinear := PairwiseDistances(points, 1)
	assert.Equal(t, 7.0, rectilinear.At(0, 1))

	minDistance, ok := MinDistance(euclidean)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, minDistance, 1e-12)

	assert.Nil(t, PairwiseDistances(nil, 2))
	_, ok = MinDistance(nil)
	assert.False(t, ok)
	_, ok = MinDistance(PairwiseDistances([][]float64{{1, 1}}, 2))
	assert.False(t, ok)
}

func TestCriteriaPreferSpreadDesigns(t *testing.T) {
	clustered := PairwiseDistances([][]float64{{0.1, 0.1}, {0.2, 0.2}, {0.9, 0.9}}, 2)
	spread := PairwiseDistances([][]float64{{0.1, 0.1}, {0.5, 0.9}, {0.9, 0.3}}, 2)
	for _, criterion := range []Criterion{Maximin{}, PhiP{P: 5}, PhiP{P: 50}} {
		assert.Less(t, criterion.Objective(spread), criterion.Objective(clustered), criterion.Name())
	}
	assert.InDelta(t, -math.Sqrt(0.02), Maximin{}.Objective(clustered), 1e-12)
}

func TestPhiPMatchesDefinition(t *testing.T) {
	distances := PairwiseDistances([][]float64{{0, 0}, {1, 0}, {0, 2}}, 2)
	expected := math.Pow(math.Pow(1, -3)+math.Pow(2, -3)+math.Pow(math.Sqrt(5), -3), 1.0/3)
	assert.InDelta(t, expected, PhiP{P: 3}.Objective(distances), 1e-12)

	// Large exponents stay finite.
	large := PhiP{P: 500}.Objective(PairwiseDistances([][]float64{{0, 0}, {0.001, 0}, {1, 1}}, 2))
	assert.False(t, math.IsInf(large, 0))
	assert.False(t, math.IsNaN(large))

	duplicate := PairwiseDistances([][]float64{{0.5, 0.5}, {0.5, 0.5}}, 2)
	assert.True(t, math.IsInf(PhiP{P: 2}.Objective(duplicate), 1))
}

func TestDegenerateObjectives(t *testing.T) {
	single := PairwiseDistances([][]float64{{0.5}}, 2)
	assert.Equal(t, 0.0, Maximin{}.Objective(single))
	assert.Equal(t, 0.0, PhiP{P: 10}.Objective(single))
}

func TestNewCriterion(t *testing.T) {
	criterion, err := NewCriterion(" MaxiMin ", 0)
	require.NoError(t, err)
	assert.Equal(t, Maximin{}, criterion)

	criterion, err = NewCriterion("phip", 7)
	require.NoError(t, err)
	assert.Equal(t, "phip(p=7)", criterion.Name())

	_, err = NewCriterion("phip", math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	_, err = NewCriterion("minimax", 1)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

package strategy

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Space-filling criteria accepted by OptimizedLatinHypercube.
const (
	CriterionMaximin = "maximin"
	CriterionPhiP    = "phip"
)

// Criterion scores how evenly a set of points covers the unit hypercube from
// their pairwise distances. Lower objective values are better.
type Criterion interface {
	Name() string
	Objective(distances *mat.SymDense) float64
}

// NewCriterion returns the criterion registered under name. p is only used
// by phi_p.
func NewCriterion(name string, p float64) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case CriterionMaximin:
		return Maximin{}, nil
	case CriterionPhiP:
		if !(p > 0) || math.IsInf(p, 0) {
			return nil, invalidConfiguration(KeyP, p, "must be a positive finite exponent")
		}
		return PhiP{P: p}, nil
	default:
		return nil, invalidConfiguration(KeyCriterion,
			name,
			fmt.Sprintf("is not supported. Supported criteria: %v", []string{CriterionMaximin, CriterionPhiP}))
	}
}

// Maximin maximises the smallest pairwise distance. The objective is the
// negated minimum distance.
type Maximin struct{}

func (Maximin) Name() string {
	return CriterionMaximin
}

func (Maximin) Objective(distances *mat.SymDense) float64 {
	minDistance, ok := MinDistance(distances)
	if !ok {
		return 0
	}
	return -minDistance
}

// PhiP is the Morris-Mitchell criterion (sum of d^-p)^(1/p). Large P values
// approach maximin while still rewarding fewer close pairs.
type PhiP struct {
	P float64
}

func (pc PhiP) Name() string {
	return fmt.Sprintf("%s(p=%g)", CriterionPhiP, pc.P)
}

func (pc PhiP) Objective(distances *mat.SymDense) float64 {
	minDistance, ok := MinDistance(distances)
	if !ok {
		return 0
	}
	if minDistance <= 0 {
		return math.Inf(1)
	}
	// Scale by the smallest distance so that d^-p cannot overflow.
	n := distances.SymmetricDim()
	sum := float64(0)
	for i := 0; i != n; i++ {
		for j := i + 1; j != n; j++ {
			sum += math.Pow(minDistance/distances.At(i, j), pc.P)
		}
	}
	return math.Pow(sum, 1/pc.P) / minDistance
}

// MinDistance returns the smallest off-diagonal entry. ok is false when
// there are fewer than two points.
func MinDistance(distances *mat.SymDense) (float64, bool) {
	if distances == nil {
		return 0, false
	}
	n := distances.SymmetricDim()
	if n < 2 {
		return 0, false
	}
	minDistance := math.Inf(1)
	for i := 0; i != n; i++ {
		for j := i + 1; j != n; j++ {
			minDistance = math.Min(minDistance, distances.At(i, j))
		}
	}
	return minDistance, true
}

// PairwiseDistances returns the symmetric matrix of L-norm distances between
// points. It returns nil for an empty point set.
func PairwiseDistances(points [][]float64, norm float64) *mat.SymDense {
	if len(points) <= 0 {
		return nil
	}
	distances := mat.NewSymDense(len(points), nil)
	for i := range points {
		updateDistances(distances, points, i, norm)
	}
	return distances
}

// updateDistances refreshes row (and column) i of distances after points[i]
// changed.
func updateDistances(distances *mat.SymDense, points [][]float64, i int, norm float64) {
	for j := range points {
		if j == i {
			continue
		}
		distances.SetSym(i, j, floats.Distance(points[i], points[j], norm))
	}
}

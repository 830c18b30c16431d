package stats

import (
	"math"
	"sort"

	"github.com/mweagle/doegen/space"
	"github.com/mweagle/doegen/strategy"
	"gonum.org/v1/gonum/mat"
	gonumstat "gonum.org/v1/gonum/stat"
)

// DefaultPercentiles are reported when the caller does not ask for others.
var DefaultPercentiles = []float64{5, 50, 95}

// Percentile is a single quantile of a sequence. P is in (0, 100].
type Percentile struct {
	P   float64
	Val float64
}

type AggregatedStatistics struct {
	Min         float64
	Max         float64
	Mean        float64
	Median      float64
	StdDev      float64
	Percentiles []Percentile
}

// StatsForSequence summarizes a sequence. Percentiles may be given either as
// fractions (0.95) or as percentages (95).
func StatsForSequence(unsortedSamples []float64, percentiles []float64) *AggregatedStatistics {
	if len(unsortedSamples) <= 0 {
		return &AggregatedStatistics{}
	}
	sortedSamples := make([]float64, len(unsortedSamples))
	copy(sortedSamples, unsortedSamples)
	sort.Float64s(sortedSamples)

	// Compute aggregates...
	mean, stddev := gonumstat.MeanStdDev(sortedSamples, nil)
	if len(sortedSamples) < 2 {
		stddev = 0
	}
	median := gonumstat.Quantile(0.5, gonumstat.Empirical, sortedSamples, nil)
	aggStats := &AggregatedStatistics{
		Min:         sortedSamples[0],
		Max:         sortedSamples[len(sortedSamples)-1],
		Mean:        mean,
		Median:      median,
		StdDev:      stddev,
		Percentiles: make([]Percentile, len(percentiles)),
	}

	for eachPercentileIndex := range percentiles {
		percentileValue := percentiles[eachPercentileIndex]
		if percentileValue > 1.00 {
			percentileValue = percentileValue / 100
		}
		quantile := gonumstat.Quantile(percentileValue,
			gonumstat.Empirical,
			sortedSamples,
			nil)
		aggStats.Percentiles[eachPercentileIndex] = Percentile{
			P:   percentileValue * 100,
			Val: quantile,
		}
	}
	return aggStats
}

// /////////////////////////////////////////////////////////////////////////////
// DesignStatistics
//
// Diagnostics for a generated design: the marginal statistics of every
// parameter and two space-filling measures.
//
// /////////////////////////////////////////////////////////////////////////////

type DesignStatistics struct {
	// Samples is the number of rows in the design.
	Samples int

	// Columns holds one summary per parameter, in parameter order.
	Columns []*AggregatedStatistics

	// MinDistance is the smallest Euclidean distance between two samples,
	// measured in normalized coordinates. Zero for single-sample designs.
	MinDistance float64

	// MaxCorrelation is the largest absolute Pearson correlation between two
	// parameter columns. Zero when it is undefined.
	MaxCorrelation float64
}

// ForDesign computes the diagnostics of the samples matrix, whose columns
// follow the parameters of paramSpace.
func ForDesign(paramSpace *space.ParameterSpace,
	samples *mat.Dense,
	percentiles []float64) *DesignStatistics {
	rows, cols := samples.Dims()
	designStats := &DesignStatistics{
		Samples: rows,
		Columns: make([]*AggregatedStatistics, cols),
	}
	for j := 0; j != cols; j++ {
		designStats.Columns[j] = StatsForSequence(mat.Col(nil, j, samples), percentiles)
	}

	normalized := make([][]float64, rows)
	for i := range normalized {
		normalized[i] = make([]float64, cols)
		for j := range normalized[i] {
			normalized[i][j] = paramSpace.Normalize(j, samples.At(i, j))
		}
	}
	if minDistance, ok := strategy.MinDistance(strategy.PairwiseDistances(normalized, 2)); ok {
		designStats.MinDistance = minDistance
	}
	designStats.MaxCorrelation = maxAbsCorrelation(samples)
	return designStats
}

func maxAbsCorrelation(samples *mat.Dense) float64 {
	rows, cols := samples.Dims()
	if rows < 2 || cols < 2 {
		return 0
	}
	correlation := &mat.SymDense{}
	gonumstat.CorrelationMatrix(correlation, samples, nil)
	maxCorrelation := float64(0)
	for i := 0; i != cols; i++ {
		for j := i + 1; j != cols; j++ {
			// Constant columns have no correlation.
			value := math.Abs(correlation.At(i, j))
			if !math.IsNaN(value) && value > maxCorrelation {
				maxCorrelation = value
			}
		}
	}
	return math.Min(maxCorrelation, 1)
}

package strategy

import (
	"log/slog"
	"math"

	"github.com/mweagle/doegen/space"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// /////////////////////////////////////////////////////////////////////////////
// hypercube
//
// Integer Latin hypercube. strata[i][j] is the stratum index of sample i in
// dimension j, and each column is a permutation of 0..samples-1.
//
// /////////////////////////////////////////////////////////////////////////////

type hypercube [][]int

func newHypercube(samples int, dim int, rnd *rand.Rand) hypercube {
	strata := make(hypercube, samples)
	for i := range strata {
		strata[i] = make([]int, dim)
	}
	for j := 0; j != dim; j++ {
		perm := rnd.Perm(samples)
		for i, stratum := range perm {
			strata[i][j] = stratum
		}
	}
	return strata
}

func (h hypercube) clone() hypercube {
	cloned := make(hypercube, len(h))
	for i, row := range h {
		cloned[i] = make([]int, len(row))
		copy(cloned[i], row)
	}
	return cloned
}

func (h hypercube) swap(dim int, a int, b int) {
	h[a][dim], h[b][dim] = h[b][dim], h[a][dim]
}

// centers returns the stratum centre of every sample.
func (h hypercube) centers() [][]float64 {
	points := make([][]float64, len(h))
	for i, row := range h {
		points[i] = make([]float64, len(row))
		h.centerRow(i, points[i])
	}
	return points
}

func (h hypercube) centerRow(i int, dst []float64) {
	for j, stratum := range h[i] {
		dst[j] = stratumValue(stratum, 0.5, len(h))
	}
}

// place positions every sample inside its stratum, uniformly at random when
// jitter is set and at the stratum centre otherwise.
func (h hypercube) place(jitter bool, src rand.Source) [][]float64 {
	if !jitter {
		return h.centers()
	}
	offsets := distuv.Uniform{
		Min: 0,
		Max: 1,
		Src: src,
	}
	points := make([][]float64, len(h))
	for i, row := range h {
		points[i] = make([]float64, len(row))
		for j, stratum := range row {
			points[i][j] = stratumValue(stratum, offsets.Rand(), len(h))
		}
	}
	return points
}

// stratumValue maps an offset in [0,1) inside stratum k of samples strata
// onto [0,1]. The result never reaches the next stratum's lower wall.
func stratumValue(k int, offset float64, samples int) float64 {
	count := float64(samples)
	lowerWall := float64(k) / count
	value := (float64(k) + offset) / count
	if value < lowerWall {
		value = lowerWall
	}
	if k+1 < samples {
		upperWall := float64(k+1) / count
		if value >= upperWall {
			value = math.Nextafter(upperWall, 0)
		}
	} else if value > 1 {
		value = 1
	}
	return value
}

// /////////////////////////////////////////////////////////////////////////////
// LatinHypercube
// /////////////////////////////////////////////////////////////////////////////

type LatinHypercube struct {
	BaseStrategy
	numSamples int
	jitter     bool
}

func NewLatinHypercube(numSamples int, jitter bool) (*LatinHypercube, error) {
	if numSamples < 1 {
		return nil, invalidConfiguration(KeyNumSamples, numSamples, "must be >= 1")
	}
	lhc := &LatinHypercube{
		BaseStrategy: BaseStrategy{method: MethodLatinHypercube},
		numSamples:   numSamples,
		jitter:       jitter,
	}
	lhc.setOption(KeyNumSamples, numSamples)
	lhc.setOption(KeyJitter, jitter)
	return lhc, nil
}

func UnmarshalLatinHypercube(config map[string]interface{}, _ *slog.Logger) (Strategy, error) {
	numSamples, numSamplesErr := intOption(config, KeyNumSamples, 0, 1)
	if numSamplesErr != nil {
		return nil, numSamplesErr
	}
	jitter, jitterErr := boolOption(config, KeyJitter, true)
	if jitterErr != nil {
		return nil, jitterErr
	}
	return NewLatinHypercube(numSamples, jitter)
}

func (lhc *LatinHypercube) Generate(paramSpace *space.ParameterSpace,
	src rand.Source,
	log *slog.Logger) ([][]float64, error) {
	log = loggerOrDiscard(log)
	log.Debug("Generating Latin hypercube design",
		"samples", lhc.numSamples,
		"parameters", paramSpace.Dim(),
		"jitter", lhc.jitter)

	strata := newHypercube(lhc.numSamples, paramSpace.Dim(), rand.New(src))
	return strata.place(lhc.jitter, src), nil
}

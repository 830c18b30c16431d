package strategy

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"github.com/mweagle/doegen/space"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

const (
	// MaxOptimizedSamples bounds num_samples for OptimizedLatinHypercube. Each
	// restart holds a samples x samples distance matrix.
	MaxOptimizedSamples = 1 << 12

	// MaxRestarts bounds the number of independent searches.
	MaxRestarts = 1 << 10
)

// OptimizationOptions controls the swap search of OptimizedLatinHypercube.
type OptimizationOptions struct {
	// MaxIterations is the number of swap proposals per restart.
	MaxIterations int

	// MaxStall stops a restart after this many consecutive proposals that
	// did not improve its best design.
	MaxStall int

	// Restarts is the number of independent searches. The best design wins,
	// ties going to the lowest restart index.
	Restarts int

	// Criterion scores candidate designs.
	Criterion Criterion

	// Norm is the distance norm used by the criterion (1 or 2).
	Norm float64

	// Temperature is the initial annealing temperature, relative to the
	// current objective. Zero accepts improving swaps only.
	Temperature float64

	// Cooling multiplies the temperature after every proposal.
	Cooling float64

	// Jitter places the final points uniformly inside their strata instead
	// of at the stratum centres.
	Jitter bool
}

// DefaultOptimizationOptions returns the options used for absent
// configuration keys.
func DefaultOptimizationOptions() OptimizationOptions {
	return OptimizationOptions{
		MaxIterations: 1000,
		MaxStall:      250,
		Restarts:      1,
		Criterion:     Maximin{},
		Norm:          2,
		Temperature:   0.05,
		Cooling:       0.995,
		Jitter:        true,
	}
}

func (oo OptimizationOptions) validate() error {
	switch {
	case oo.MaxIterations < 0:
		return invalidConfiguration(KeyMaxIterations, oo.MaxIterations, "must be >= 0")
	case oo.MaxStall < 1:
		return invalidConfiguration(KeyMaxStall, oo.MaxStall, "must be >= 1")
	case oo.Restarts < 1:
		return invalidConfiguration(KeyRestarts, oo.Restarts, "must be >= 1")
	case oo.Restarts > MaxRestarts:
		return invalidConfiguration(KeyRestarts, oo.Restarts, fmt.Sprintf("must be <= %d", MaxRestarts))
	case oo.Criterion == nil:
		return invalidConfiguration(KeyCriterion, nil, "is required")
	case oo.Norm != 1 && oo.Norm != 2:
		return invalidConfiguration(KeyNorm, oo.Norm, "must be 1 or 2")
	case !(oo.Temperature >= 0) || math.IsInf(oo.Temperature, 0):
		return invalidConfiguration(KeyTemperature, oo.Temperature, "must be a finite value >= 0")
	case !(oo.Cooling > 0 && oo.Cooling <= 1):
		return invalidConfiguration(KeyCooling, oo.Cooling, "must be in (0, 1]")
	}
	return nil
}

// /////////////////////////////////////////////////////////////////////////////
// OptimizedLatinHypercube
//
// A Latin hypercube improved by swapping stratum indices within a column.
// Swaps permute a column, so every accepted design is still a Latin
// hypercube.
//
// /////////////////////////////////////////////////////////////////////////////

type OptimizedLatinHypercube struct {
	BaseStrategy
	numSamples int
	options    OptimizationOptions
}

func NewOptimizedLatinHypercube(numSamples int, options OptimizationOptions) (*OptimizedLatinHypercube, error) {
	if numSamples < 1 {
		return nil, invalidConfiguration(KeyNumSamples, numSamples, "must be >= 1")
	}
	if numSamples > MaxOptimizedSamples {
		return nil, invalidConfiguration(KeyNumSamples,
			numSamples,
			fmt.Sprintf("must be <= %d", MaxOptimizedSamples))
	}
	validateErr := options.validate()
	if validateErr != nil {
		return nil, validateErr
	}
	olhc := &OptimizedLatinHypercube{
		BaseStrategy: BaseStrategy{method: MethodOptimizedLatinHypercube},
		numSamples:   numSamples,
		options:      options,
	}
	olhc.setOption(KeyNumSamples, numSamples)
	olhc.setOption(KeyMaxIterations, options.MaxIterations)
	olhc.setOption(KeyMaxStall, options.MaxStall)
	olhc.setOption(KeyRestarts, options.Restarts)
	// Record the registry name so that Options resolves to the same
	// criterion again.
	switch typedCriterion := options.Criterion.(type) {
	case Maximin:
		olhc.setOption(KeyCriterion, CriterionMaximin)
	case PhiP:
		olhc.setOption(KeyCriterion, CriterionPhiP)
		olhc.setOption(KeyP, typedCriterion.P)
	default:
		olhc.setOption(KeyCriterion, options.Criterion.Name())
	}
	olhc.setOption(KeyNorm, options.Norm)
	olhc.setOption(KeyTemperature, options.Temperature)
	olhc.setOption(KeyCooling, options.Cooling)
	olhc.setOption(KeyJitter, options.Jitter)
	return olhc, nil
}

func UnmarshalOptimizedLatinHypercube(config map[string]interface{}, _ *slog.Logger) (Strategy, error) {
	defaults := DefaultOptimizationOptions()
	numSamples, err := intOption(config, KeyNumSamples, 0, 1)
	if err != nil {
		return nil, err
	}
	options := OptimizationOptions{}
	if options.MaxIterations, err = intOption(config, KeyMaxIterations, defaults.MaxIterations, 0); err != nil {
		return nil, err
	}
	if options.MaxStall, err = intOption(config, KeyMaxStall, defaults.MaxStall, 1); err != nil {
		return nil, err
	}
	if options.Restarts, err = intOption(config, KeyRestarts, defaults.Restarts, 1); err != nil {
		return nil, err
	}
	if options.Norm, err = floatOption(config, KeyNorm, defaults.Norm, nil, ""); err != nil {
		return nil, err
	}
	if options.Temperature, err = floatOption(config, KeyTemperature, defaults.Temperature, nil, ""); err != nil {
		return nil, err
	}
	if options.Cooling, err = floatOption(config, KeyCooling, defaults.Cooling, nil, ""); err != nil {
		return nil, err
	}
	if options.Jitter, err = boolOption(config, KeyJitter, defaults.Jitter); err != nil {
		return nil, err
	}
	criterionName, err := stringOption(config, KeyCriterion, CriterionMaximin)
	if err != nil {
		return nil, err
	}
	p, err := floatOption(config, KeyP, 50, nil, "")
	if err != nil {
		return nil, err
	}
	if options.Criterion, err = NewCriterion(criterionName, p); err != nil {
		return nil, err
	}
	return NewOptimizedLatinHypercube(numSamples, options)
}

// searchResult is the outcome of one restart.
type searchResult struct {
	restart          int
	strata           hypercube
	objective        float64
	initialObjective float64
	iterations       int
	accepted         int
	src              rand.Source
}

func (olhc *OptimizedLatinHypercube) Generate(paramSpace *space.ParameterSpace,
	src rand.Source,
	log *slog.Logger) ([][]float64, error) {
	log = loggerOrDiscard(log)

	// Restart seeds are drawn up front so that the outcome does not depend
	// on goroutine scheduling.
	master := rand.New(src)
	seeds := make([]uint64, olhc.options.Restarts)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}
	results := make([]*searchResult, len(seeds))
	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, seed := range seeds {
		i, seed := i, seed
		group.Go(func() error {
			results[i] = olhc.search(i, paramSpace.Dim(), rand.NewSource(seed), log)
			return nil
		})
	}
	waitErr := group.Wait()
	if waitErr != nil {
		return nil, waitErr
	}
	best := results[0]
	for _, eachResult := range results[1:] {
		if eachResult.objective < best.objective {
			best = eachResult
		}
	}
	log.Debug("Optimized Latin hypercube",
		"criterion", olhc.options.Criterion.Name(),
		"restart", best.restart,
		"initial", best.initialObjective,
		"objective", best.objective,
		"iterations", best.iterations,
		"accepted", best.accepted)
	return best.strata.place(olhc.options.Jitter, best.src), nil
}

func (olhc *OptimizedLatinHypercube) search(restart int,
	dim int,
	src rand.Source,
	log *slog.Logger) *searchResult {
	log = loggerOrDiscard(log)
	rnd := rand.New(src)
	samples := olhc.numSamples
	norm := olhc.options.Norm
	criterion := olhc.options.Criterion

	strata := newHypercube(samples, dim, rnd)
	points := strata.centers()
	distances := PairwiseDistances(points, norm)
	current := criterion.Objective(distances)
	result := &searchResult{
		restart:          restart,
		strata:           strata.clone(),
		objective:        current,
		initialObjective: current,
		src:              src,
	}
	if samples < 2 {
		return result
	}

	temperature := olhc.options.Temperature
	stall := 0
	for iteration := 0; iteration != olhc.options.MaxIterations; iteration++ {
		result.iterations++
		column := rnd.Intn(dim)
		rowA := rnd.Intn(samples)
		rowB := rnd.Intn(samples - 1)
		if rowB >= rowA {
			rowB++
		}
		swapRows(strata, points, distances, column, rowA, rowB, norm)
		candidate := criterion.Objective(distances)

		accept := candidate < current
		if !accept && temperature > 0 {
			worsening := (candidate - current) / math.Max(math.Abs(current), math.SmallestNonzeroFloat64)
			accept = rnd.Float64() < math.Exp(-worsening/temperature)
		}
		if accept {
			current = candidate
			result.accepted++
		} else {
			swapRows(strata, points, distances, column, rowA, rowB, norm)
		}

		if current < result.objective {
			result.objective = current
			result.strata = strata.clone()
			stall = 0
			log.Debug("Improved Latin hypercube",
				"restart", restart,
				"iteration", iteration,
				"objective", current)
		} else {
			stall++
			if stall >= olhc.options.MaxStall {
				break
			}
		}
		temperature *= olhc.options.Cooling
	}
	return result
}

// swapRows exchanges the strata of rowA and rowB in column and refreshes the
// affected points and distances.
func swapRows(strata hypercube,
	points [][]float64,
	distances *mat.SymDense,
	column int,
	rowA int,
	rowB int,
	norm float64) {
	strata.swap(column, rowA, rowB)
	strata.centerRow(rowA, points[rowA])
	strata.centerRow(rowB, points[rowB])
	updateDistances(distances, points, rowA, norm)
	updateDistances(distances, points, rowB, norm)
}

func (olhc *OptimizedLatinHypercube) String() string {
	return fmt.Sprintf("%s(samples=%d, criterion=%s, iterations=%d, restarts=%d)",
		olhc.Name(),
		olhc.numSamples,
		olhc.options.Criterion.Name(),
		olhc.options.MaxIterations,
		olhc.options.Restarts)
}

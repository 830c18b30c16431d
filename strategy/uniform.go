package strategy

import (
	"log/slog"

	"github.com/mweagle/doegen/space"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
)

// Uniform draws num_samples independent points from the unit hypercube.
type Uniform struct {
	BaseStrategy
	numSamples int
}

func NewUniform(numSamples int) (*Uniform, error) {
	if numSamples < 1 {
		return nil, invalidConfiguration(KeyNumSamples, numSamples, "must be >= 1")
	}
	ug := &Uniform{
		BaseStrategy: BaseStrategy{method: MethodUniform},
		numSamples:   numSamples,
	}
	ug.setOption(KeyNumSamples, numSamples)
	return ug, nil
}

func UnmarshalUniform(config map[string]interface{}, _ *slog.Logger) (Strategy, error) {
	numSamples, numSamplesErr := intOption(config, KeyNumSamples, 0, 1)
	if numSamplesErr != nil {
		return nil, numSamplesErr
	}
	return NewUniform(numSamples)
}

func (ug *Uniform) Generate(paramSpace *space.ParameterSpace,
	src rand.Source,
	log *slog.Logger) ([][]float64, error) {
	log = loggerOrDiscard(log)
	log.Debug("Generating uniform design",
		"samples", ug.numSamples,
		"parameters", paramSpace.Dim())

	generator := distmv.NewUnitUniform(paramSpace.Dim(), src)
	points := make([][]float64, ug.numSamples)
	for i := range points {
		points[i] = generator.Rand(nil)
	}
	return points, nil
}

package strategy

import (
	"fmt"
	"log/slog"

	"github.com/mweagle/doegen/space"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/combin"
)

// MaxFactorialRows bounds the size of a full factorial design.
const MaxFactorialRows = 1 << 24

// /////////////////////////////////////////////////////////////////////////////
// FullFactorial
//
// Every combination of num_levels evenly spaced levels per parameter. Rows
// are ordered lexicographically by parameter index with the last parameter
// varying fastest.
//
// /////////////////////////////////////////////////////////////////////////////

type FullFactorial struct {
	BaseStrategy
	numLevels int
}

// NewFullFactorial returns a full factorial design with numLevels levels per
// parameter.
func NewFullFactorial(numLevels int) (*FullFactorial, error) {
	if numLevels < 2 {
		return nil, invalidConfiguration(KeyNumLevels, numLevels, "must be >= 2")
	}
	ff := &FullFactorial{
		BaseStrategy: BaseStrategy{method: MethodFullFactorial},
		numLevels:    numLevels,
	}
	ff.setOption(KeyNumLevels, numLevels)
	return ff, nil
}

// UnmarshalFullFactorial is the registry constructor for FullFactorial.
func UnmarshalFullFactorial(config map[string]interface{}, _ *slog.Logger) (Strategy, error) {
	numLevels, numLevelsErr := intOption(config, KeyNumLevels, 0, 2)
	if numLevelsErr != nil {
		return nil, numLevelsErr
	}
	return NewFullFactorial(numLevels)
}

// NumLevels returns the number of levels per parameter.
func (ff *FullFactorial) NumLevels() int {
	return ff.numLevels
}

// Rows returns the number of points the design has over dim parameters.
func (ff *FullFactorial) Rows(dim int) (int, error) {
	rows := 1
	for i := 0; i != dim; i++ {
		if rows > MaxFactorialRows/ff.numLevels {
			return 0, invalidConfiguration(KeyNumLevels,
				ff.numLevels,
				fmt.Sprintf("yields more than %d rows over %d parameters", MaxFactorialRows, dim))
		}
		rows *= ff.numLevels
	}
	return rows, nil
}

// Generate ignores src; the design is fully determined by the level count.
func (ff *FullFactorial) Generate(paramSpace *space.ParameterSpace,
	_ rand.Source,
	log *slog.Logger) ([][]float64, error) {
	log = loggerOrDiscard(log)

	dim := paramSpace.Dim()
	rows, rowsErr := ff.Rows(dim)
	if rowsErr != nil {
		return nil, rowsErr
	}
	levels := floats.Span(make([]float64, ff.numLevels), 0, 1)
	// Span accumulates the step, so pin the top level onto the upper bound.
	levels[len(levels)-1] = 1
	log.Debug("Generating full factorial design",
		"levels", ff.numLevels,
		"parameters", dim,
		"rows", rows)

	lens := make([]int, dim)
	for i := range lens {
		lens[i] = ff.numLevels
	}
	points := make([][]float64, 0, rows)
	product := make([]int, dim)
	cartesian := combin.NewCartesianGenerator(lens)
	for cartesian.Next() {
		product = cartesian.Product(product)
		point := make([]float64, dim)
		for j, levelIndex := range product {
			point[j] = levels[levelIndex]
		}
		points = append(points, point)
	}
	return points, nil
}

package doe

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mweagle/doegen/space"
	"github.com/mweagle/doegen/strategy"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Error kinds reported by Generate. Match them with errors.Is.
var (
	ErrInvalidParameterSpace = space.ErrInvalidParameterSpace
	ErrUnknownMethod         = strategy.ErrUnknownMethod
	ErrMissingConfiguration  = strategy.ErrMissingConfiguration
	ErrInvalidConfiguration  = strategy.ErrInvalidConfiguration
)

// Design is a generated sample matrix together with what produced it.
type Design struct {
	// Method is the sampling method name.
	Method string

	// Options are the strategy options as resolved, defaults included.
	Options map[string]interface{}

	// Seed is the seed of the random source unless the caller injected one.
	Seed uint64

	// Seeded is true when Seed is meaningful.
	Seeded bool

	// Space is the validated parameter space.
	Space *space.ParameterSpace

	// Samples has one row per sample and one column per parameter.
	Samples *mat.Dense
}

// Generate produces a design for the given method, bounds and configuration.
// Each row of the result is one sample with every coordinate inside its
// parameter's bounds.
func Generate(method string,
	params [][]float64,
	config map[string]interface{},
	log *slog.Logger) (*mat.Dense, error) {
	return GenerateFrom(method, params, config, nil, log)
}

// GenerateFrom is Generate with an injected random source. A seed in config
// takes precedence over src.
func GenerateFrom(method string,
	params [][]float64,
	config map[string]interface{},
	src rand.Source,
	log *slog.Logger) (*mat.Dense, error) {
	design, designErr := NewDesign(method, params, config, src, log)
	if designErr != nil {
		return nil, designErr
	}
	return design.Samples, nil
}

// NewDesign runs the full generation pipeline and returns the design with
// its provenance.
func NewDesign(method string,
	params [][]float64,
	config map[string]interface{},
	src rand.Source,
	log *slog.Logger) (*Design, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	paramSpace, spaceErr := space.New(params)
	if spaceErr != nil {
		return nil, spaceErr
	}
	sampler, samplerErr := strategy.Resolve(method, config, log)
	if samplerErr != nil {
		return nil, samplerErr
	}
	design := &Design{
		Method:  sampler.Name(),
		Options: sampler.Options(),
		Space:   paramSpace,
	}
	seed, hasSeed, seedErr := strategy.Seed(config)
	if seedErr != nil {
		return nil, seedErr
	}
	switch {
	case hasSeed:
		src = rand.NewSource(seed)
		design.Seed, design.Seeded = seed, true
	case src == nil:
		seed = uint64(time.Now().UnixNano())
		src = rand.NewSource(seed)
		design.Seed, design.Seeded = seed, true
		log.Debug("Seeded random source from clock", "seed", seed)
	}

	points, pointsErr := sampler.Generate(paramSpace, src, log)
	if pointsErr != nil {
		return nil, pointsErr
	}
	samples, samplesErr := denormalize(paramSpace, points)
	if samplesErr != nil {
		return nil, fmt.Errorf("%s: %w", sampler.Name(), samplesErr)
	}
	design.Samples = samples
	log.Debug("Generated design",
		"method", design.Method,
		"samples", len(points),
		"parameters", paramSpace.Dim())
	return design, nil
}

// denormalize maps normalized points onto the parameter bounds, row by row.
func denormalize(paramSpace *space.ParameterSpace, points [][]float64) (*mat.Dense, error) {
	dim := paramSpace.Dim()
	if len(points) <= 0 {
		return nil, fmt.Errorf("strategy produced no samples")
	}
	data := make([]float64, 0, len(points)*dim)
	for row, eachPoint := range points {
		if len(eachPoint) != dim {
			return nil, fmt.Errorf("sample %d has %d coordinates, expected %d",
				row,
				len(eachPoint),
				dim)
		}
		for col, eachValue := range eachPoint {
			if !(eachValue >= 0 && eachValue <= 1) {
				return nil, fmt.Errorf("sample %d coordinate %d is outside [0,1]: %v",
					row,
					col,
					eachValue)
			}
			data = append(data, paramSpace.Denormalize(col, eachValue))
		}
	}
	return mat.NewDense(len(points), dim, data), nil
}

// Rows copies a sample matrix into plain rows.
func Rows(m *mat.Dense) [][]float64 {
	if m == nil {
		return nil
	}
	rowCount, colCount := m.Dims()
	rows := make([][]float64, rowCount)
	for i := range rows {
		rows[i] = make([]float64, colCount)
		for j := range rows[i] {
			rows[i][j] = m.At(i, j)
		}
	}
	return rows
}

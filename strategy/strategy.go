package strategy

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/mweagle/doegen/json"
	"github.com/mweagle/doegen/space"
	"golang.org/x/exp/rand"
)

// Built-in sampling methods.
const (
	MethodFullFactorial           = "FullFactorial"
	MethodUniform                 = "Uniform"
	MethodLatinHypercube          = "LatinHypercube"
	MethodOptimizedLatinHypercube = "OptimizedLatinHypercube"
)

// Strategy produces the normalized points of a design. Every coordinate of
// every returned point lies in [0,1]; the caller maps them onto the
// parameter bounds.
type Strategy interface {
	Name() string
	Options() map[string]interface{}
	Generate(paramSpace *space.ParameterSpace,
		src rand.Source,
		log *slog.Logger) ([][]float64, error)
}

// Constructor interprets a configuration whose required keys are known to be
// present and returns the bound strategy.
type Constructor func(config map[string]interface{}, log *slog.Logger) (Strategy, error)

type registration struct {
	requiredKeys []string
	constructor  Constructor
}

var (
	registryMu sync.RWMutex
	registry   map[string]*registration
)

func init() {
	// The set of supported designs. Additional variants are added with
	// Register.
	registry = map[string]*registration{
		MethodFullFactorial: {
			requiredKeys: []string{KeyNumLevels},
			constructor:  UnmarshalFullFactorial,
		},
		MethodUniform: {
			requiredKeys: []string{KeyNumSamples},
			constructor:  UnmarshalUniform,
		},
		MethodLatinHypercube: {
			requiredKeys: []string{KeyNumSamples},
			constructor:  UnmarshalLatinHypercube,
		},
		MethodOptimizedLatinHypercube: {
			requiredKeys: []string{KeyNumSamples},
			constructor:  UnmarshalOptimizedLatinHypercube,
		},
	}
}

// Register adds a sampling method. Method names are unique.
func Register(method string, requiredKeys []string, constructor Constructor) error {
	if len(method) <= 0 {
		return fmt.Errorf("empty method name")
	}
	if constructor == nil {
		return fmt.Errorf("nil constructor for method %s", method)
	}
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[method]; exists {
		return fmt.Errorf("sampling method %s is already registered", method)
	}
	keys := make([]string, len(requiredKeys))
	copy(keys, requiredKeys)
	registry[method] = &registration{
		requiredKeys: keys,
		constructor:  constructor,
	}
	return nil
}

// Methods returns the registered method names in sorted order.
func Methods() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	methods := make([]string, 0, len(registry))
	for eachKey := range registry {
		methods = append(methods, eachKey)
	}
	sort.Strings(methods)
	return methods
}

// RequiredKeys returns the configuration keys a method cannot run without.
func RequiredKeys(method string) ([]string, error) {
	reg, regErr := lookup(method)
	if regErr != nil {
		return nil, regErr
	}
	keys := make([]string, len(reg.requiredKeys))
	copy(keys, reg.requiredKeys)
	return keys, nil
}

// Resolve selects the strategy registered for method and binds it to the
// validated configuration. Unrecognized keys are left for the strategy to
// interpret.
func Resolve(method string, config map[string]interface{}, log *slog.Logger) (Strategy, error) {
	reg, regErr := lookup(method)
	if regErr != nil {
		return nil, regErr
	}
	missingKeys := []string{}
	for _, eachKey := range reg.requiredKeys {
		if !json.Has(eachKey, config) {
			missingKeys = append(missingKeys, eachKey)
		}
	}
	if len(missingKeys) != 0 {
		sort.Strings(missingKeys)
		return nil, &MissingConfigurationError{
			Method: method,
			Keys:   missingKeys,
		}
	}
	if _, _, seedErr := Seed(config); seedErr != nil {
		return nil, seedErr
	}
	log = loggerOrDiscard(log)
	log.Debug("Resolving sampling strategy", "method", method, "config", config)
	return reg.constructor(config, log)
}

func loggerOrDiscard(log *slog.Logger) *slog.Logger {
	if log != nil {
		return log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func lookup(method string) (*registration, error) {
	registryMu.RLock()
	reg, regExists := registry[method]
	registryMu.RUnlock()

	if !regExists {
		return nil, fmt.Errorf("%w: %s. Supported methods: %v",
			ErrUnknownMethod,
			method,
			Methods())
	}
	return reg, nil
}

// /////////////////////////////////////////////////////////////////////////////
// BaseStrategy
//
// Shared state for the built-in strategies: the method name and the options
// as resolved, defaults included.
//
// /////////////////////////////////////////////////////////////////////////////

type BaseStrategy struct {
	method  string
	options map[string]interface{}
}

func (bs *BaseStrategy) Name() string {
	return bs.method
}

// Options returns a copy of the resolved options.
func (bs *BaseStrategy) Options() map[string]interface{} {
	optionsCopy := make(map[string]interface{}, len(bs.options))
	for eachKey, eachVal := range bs.options {
		optionsCopy[eachKey] = eachVal
	}
	return optionsCopy
}

func (bs *BaseStrategy) setOption(key string, value interface{}) {
	if bs.options == nil {
		bs.options = make(map[string]interface{})
	}
	bs.options[key] = value
}

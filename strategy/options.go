package strategy

import (
	"fmt"

	"github.com/mweagle/doegen/json"
)

// Configuration keys understood by the built-in strategies.
const (
	KeyNumLevels     = "num_levels"
	KeyNumSamples    = "num_samples"
	KeySeed          = "seed"
	KeyJitter        = "jitter"
	KeyMaxIterations = "max_iterations"
	KeyMaxStall      = "max_stall"
	KeyCriterion     = "criterion"
	KeyP             = "p"
	KeyNorm          = "norm"
	KeyTemperature   = "temperature"
	KeyCooling       = "cooling"
	KeyRestarts      = "restarts"
)

// Seed returns the optional seed from a configuration.
func Seed(config map[string]interface{}) (uint64, bool, error) {
	seed, exists, seedErr := json.Uint64(KeySeed, config)
	if seedErr != nil {
		return 0, exists, fmt.Errorf("%w: %s", ErrInvalidConfiguration, seedErr)
	}
	return seed, exists, nil
}

// intOption reads an integer option that must be >= minValue, falling back
// to defaultVal when absent.
func intOption(config map[string]interface{}, key string, defaultVal int, minValue int) (int, error) {
	intVal, exists, intErr := json.Int(key, config)
	if intErr != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidConfiguration, intErr)
	}
	if !exists {
		return defaultVal, nil
	}
	if intVal < minValue {
		return 0, invalidConfiguration(key, intVal, fmt.Sprintf("must be >= %d", minValue))
	}
	return intVal, nil
}

func floatOption(config map[string]interface{},
	key string,
	defaultVal float64,
	valid func(float64) bool,
	reason string) (float64, error) {
	floatVal, exists, floatErr := json.Float(key, config)
	if floatErr != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidConfiguration, floatErr)
	}
	if !exists {
		return defaultVal, nil
	}
	if valid != nil && !valid(floatVal) {
		return 0, invalidConfiguration(key, floatVal, reason)
	}
	return floatVal, nil
}

func boolOption(config map[string]interface{}, key string, defaultVal bool) (bool, error) {
	boolVal, exists, boolErr := json.Boolean(key, config)
	if boolErr != nil {
		return false, fmt.Errorf("%w: %s", ErrInvalidConfiguration, boolErr)
	}
	if !exists {
		return defaultVal, nil
	}
	return boolVal, nil
}

func stringOption(config map[string]interface{}, key string, defaultVal string) (string, error) {
	strVal, exists, strErr := json.String(key, config)
	if strErr != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidConfiguration, strErr)
	}
	if !exists {
		return defaultVal, nil
	}
	return strVal, nil
}

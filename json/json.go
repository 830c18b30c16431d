package json

import (
	encjson "encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxExactFloatInt is the largest magnitude at which every integer is
// representable as a float64.
const maxExactFloatInt = 1 << 53

// Has reports whether key is present in dict.
func Has(key string, dict map[string]interface{}) bool {
	_, exists := dict[key]
	return exists
}

// Int returns the integer value for key. The boolean result is false when
// the key is absent. Integral floats (as produced by JSON and YAML decoding)
// json.Number and decimal strings are accepted; anything else is an error.
func Int(key string, dict map[string]interface{}) (int, bool, error) {
	curVal, curValOk := dict[key]
	if !curValOk {
		return 0, false, nil
	}
	switch typedVal := curVal.(type) {
	case int:
		return typedVal, true, nil
	case int8:
		return int(typedVal), true, nil
	case int16:
		return int(typedVal), true, nil
	case int32:
		return int(typedVal), true, nil
	case int64:
		return int(typedVal), true, nil
	case uint:
		return uintToInt(key, uint64(typedVal))
	case uint8:
		return int(typedVal), true, nil
	case uint16:
		return int(typedVal), true, nil
	case uint32:
		return uintToInt(key, uint64(typedVal))
	case uint64:
		return uintToInt(key, typedVal)
	case float32:
		return floatToInt(key, float64(typedVal))
	case float64:
		return floatToInt(key, typedVal)
	case encjson.Number:
		i64, i64Err := typedVal.Int64()
		if i64Err != nil {
			return 0, true, fmt.Errorf("%s: %q is not an integer", key, typedVal.String())
		}
		return int(i64), true, nil
	case string:
		intVal, atoiErr := strconv.Atoi(strings.TrimSpace(typedVal))
		if atoiErr != nil {
			return 0, true, fmt.Errorf("%s: %q is not an integer", key, typedVal)
		}
		return intVal, true, nil
	default:
		return 0, true, fmt.Errorf("%s: unsupported integer value %v (%T)", key, curVal, curVal)
	}
}

// Uint64 is Int for values that must not be negative, such as random seeds.
func Uint64(key string, dict map[string]interface{}) (uint64, bool, error) {
	curVal, curValOk := dict[key]
	if !curValOk {
		return 0, false, nil
	}
	if u64, u64Ok := curVal.(uint64); u64Ok {
		return u64, true, nil
	}
	intVal, exists, intErr := Int(key, dict)
	if intErr != nil {
		return 0, exists, intErr
	}
	if intVal < 0 {
		return 0, exists, fmt.Errorf("%s: %d must not be negative", key, intVal)
	}
	return uint64(intVal), exists, nil
}

// Float returns the float value for key.
func Float(key string, dict map[string]interface{}) (float64, bool, error) {
	curVal, curValOk := dict[key]
	if !curValOk {
		return 0, false, nil
	}
	var f64 float64
	switch typedVal := curVal.(type) {
	case float64:
		f64 = typedVal
	case float32:
		f64 = float64(typedVal)
	case int:
		f64 = float64(typedVal)
	case int8:
		f64 = float64(typedVal)
	case int16:
		f64 = float64(typedVal)
	case int32:
		f64 = float64(typedVal)
	case int64:
		f64 = float64(typedVal)
	case uint:
		f64 = float64(typedVal)
	case uint8:
		f64 = float64(typedVal)
	case uint16:
		f64 = float64(typedVal)
	case uint32:
		f64 = float64(typedVal)
	case uint64:
		f64 = float64(typedVal)
	case encjson.Number:
		parsed, parseErr := typedVal.Float64()
		if parseErr != nil {
			return 0, true, fmt.Errorf("%s: %q is not a number", key, typedVal.String())
		}
		f64 = parsed
	case string:
		parsed, parseErr := strconv.ParseFloat(strings.TrimSpace(typedVal), 64)
		if parseErr != nil {
			return 0, true, fmt.Errorf("%s: %q is not a number", key, typedVal)
		}
		f64 = parsed
	default:
		return 0, true, fmt.Errorf("%s: unsupported numeric value %v (%T)", key, curVal, curVal)
	}
	if math.IsNaN(f64) || math.IsInf(f64, 0) {
		return 0, true, fmt.Errorf("%s: %v is not finite", key, f64)
	}
	return f64, true, nil
}

// String returns the string value for key.
func String(key string, dict map[string]interface{}) (string, bool, error) {
	curVal, curValOk := dict[key]
	if !curValOk {
		return "", false, nil
	}
	strVal, strValOk := curVal.(string)
	if !strValOk {
		return "", true, fmt.Errorf("%s: unsupported string value %v (%T)", key, curVal, curVal)
	}
	return strings.TrimSpace(strVal), true, nil
}

// Boolean returns the boolean value for key. String forms accepted by
// strconv.ParseBool are supported so that environment overrides work.
func Boolean(key string, dict map[string]interface{}) (bool, bool, error) {
	curVal, curValOk := dict[key]
	if !curValOk {
		return false, false, nil
	}
	switch typedVal := curVal.(type) {
	case bool:
		return typedVal, true, nil
	case string:
		boolVal, parseErr := strconv.ParseBool(strings.TrimSpace(typedVal))
		if parseErr != nil {
			return false, true, fmt.Errorf("%s: %q is not a boolean", key, typedVal)
		}
		return boolVal, true, nil
	default:
		return false, true, fmt.Errorf("%s: unsupported boolean value %v (%T)", key, curVal, curVal)
	}
}

func floatToInt(key string, f64 float64) (int, bool, error) {
	if math.IsNaN(f64) || math.IsInf(f64, 0) || math.Trunc(f64) != f64 {
		return 0, true, fmt.Errorf("%s: %v is not an integer", key, f64)
	}
	if math.Abs(f64) > maxExactFloatInt {
		return 0, true, fmt.Errorf("%s: %v is out of range", key, f64)
	}
	return int(f64), true, nil
}

func uintToInt(key string, u64 uint64) (int, bool, error) {
	if u64 > math.MaxInt {
		return 0, true, fmt.Errorf("%s: %d is out of range", key, u64)
	}
	return int(u64), true, nil
}

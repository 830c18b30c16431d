package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ErrInvalidDefinition is returned when a design definition fails validation.
var ErrInvalidDefinition = errors.New("invalid design definition")

// EnvPrefix prefixes environment variables that override definition values,
// e.g. DOEGEN_METHOD or DOEGEN_OUTPUT_PRECISION.
const EnvPrefix = "DOEGEN"

// Definition is a design definition file.
type Definition struct {
	Name       string                 `mapstructure:"name"`
	Method     string                 `mapstructure:"method" validate:"required"`
	Parameters []Parameter            `mapstructure:"parameters" validate:"required,min=1,dive"`
	Options    map[string]interface{} `mapstructure:"options"`
	Output     Output                 `mapstructure:"output"`
}

type Parameter struct {
	Name string `mapstructure:"name"`

	// Bounds are pointers so that a zero bound is distinguishable from a
	// missing one.
	Lower *float64 `mapstructure:"lower" validate:"required"`
	Upper *float64 `mapstructure:"upper" validate:"required"`
}

type Output struct {
	Directory string `mapstructure:"directory"`
	CSV       bool   `mapstructure:"csv"`
	Plot      bool   `mapstructure:"plot"`
	Diagram   bool   `mapstructure:"diagram"`
	Precision int    `mapstructure:"precision" validate:"min=1,max=17"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.csv", true)
	v.SetDefault("output.plot", true)
	v.SetDefault("output.diagram", false)
	v.SetDefault("output.precision", 6)
}

// Load reads and validates the definition at path. The format follows the
// file extension: json, yaml, yml or toml.
func Load(path string) (*Definition, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(path)
	if readErr := v.ReadInConfig(); readErr != nil {
		return nil, fmt.Errorf("failed to read definition %s: %w", path, readErr)
	}

	var definition Definition
	if unmarshalErr := v.Unmarshal(&definition); unmarshalErr != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidDefinition, path, unmarshalErr)
	}
	if validateErr := definition.Validate(); validateErr != nil {
		return nil, validateErr
	}
	if len(definition.Name) <= 0 {
		base := filepath.Base(path)
		definition.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	for i := range definition.Parameters {
		if len(strings.TrimSpace(definition.Parameters[i].Name)) <= 0 {
			definition.Parameters[i].Name = fmt.Sprintf("p%d", i)
		}
	}
	if definition.Options == nil {
		definition.Options = make(map[string]interface{})
	}
	return &definition, nil
}

// Validate reports every constraint the definition violates.
func (d *Definition) Validate() error {
	validate := validator.New()
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %s", ErrInvalidDefinition, err)
	}
	messages := make([]string, 0, len(validationErrs))
	for _, eachErr := range validationErrs {
		messages = append(messages, eachErr.Error())
	}
	return fmt.Errorf("%w: %s", ErrInvalidDefinition, strings.Join(messages, "; "))
}

// Bounds returns the [lower, upper] table in parameter order.
func (d *Definition) Bounds() [][]float64 {
	bounds := make([][]float64, len(d.Parameters))
	for i, eachParam := range d.Parameters {
		bounds[i] = []float64{*eachParam.Lower, *eachParam.Upper}
	}
	return bounds
}

// Names returns the parameter names in parameter order.
func (d *Definition) Names() []string {
	names := make([]string, len(d.Parameters))
	for i, eachParam := range d.Parameters {
		names[i] = eachParam.Name
	}
	return names
}

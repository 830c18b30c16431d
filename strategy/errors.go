package strategy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownMethod is returned when a method name has no registered
	// strategy.
	ErrUnknownMethod = errors.New("unknown sampling method")

	// ErrMissingConfiguration is matched by MissingConfigurationError.
	ErrMissingConfiguration = errors.New("missing configuration")

	// ErrInvalidConfiguration is returned when an option is present but
	// outside of its valid domain.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// MissingConfigurationError lists every required key absent from a
// configuration, not just the first.
type MissingConfigurationError struct {
	Method string
	Keys   []string
}

func (mce *MissingConfigurationError) Error() string {
	return fmt.Sprintf("%s for %s: %s",
		ErrMissingConfiguration,
		mce.Method,
		strings.Join(mce.Keys, ", "))
}

func (mce *MissingConfigurationError) Unwrap() error {
	return ErrMissingConfiguration
}

func invalidConfiguration(key string, value interface{}, reason string) error {
	return fmt.Errorf("%w: %s=%v %s", ErrInvalidConfiguration, key, value, reason)
}

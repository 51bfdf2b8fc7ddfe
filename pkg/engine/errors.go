package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDescriptor is returned when the engine is constructed or
	// updated with a nil catalog descriptor.
	ErrNilDescriptor = errors.New("engine: nil descriptor")

	// ErrTooManyRules is returned when the descriptor carries more rules
	// than the configured limit allows.
	ErrTooManyRules = errors.New("engine: too many rules")
)

// ConfigError reports an invalid engine configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("engine: invalid config %s: %s", e.Field, e.Reason)
}

package assembler

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is matched by every ConfigurationError.
var ErrInvalidConfiguration = errors.New("assembler: invalid configuration")

// ConfigurationError reports malformed assembler or build options.
type ConfigurationError struct {
	Option string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("assembler: option %q: %s", e.Option, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidConfiguration) succeed.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

func configError(option, format string, args ...any) error {
	return &ConfigurationError{Option: option, Reason: fmt.Sprintf(format, args...)}
}

package sla

import "errors"

// ConfigError reports a working-calendar configuration under which no
// deadline can ever be produced (no working days, or a calendar that fails
// to make forward progress). It is distinct from the absence of a policy,
// which is a normal non-error outcome.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "sla: invalid configuration: " + e.Reason
}

// IsConfigError reports whether err is (or wraps) a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

package trace

import "errors"

// ErrUnknownMode is wrapped by the ConfigError returned for a mode name that
// has no profile.
var ErrUnknownMode = errors.New("unknown mode")

// ConfigError is a custom error type for configuration errors
type ConfigError struct {
	msg string
	err error
}

func NewConfigError(msg string, err error) *ConfigError {
	return &ConfigError{msg: msg, err: err}
}

func (e *ConfigError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.err
}

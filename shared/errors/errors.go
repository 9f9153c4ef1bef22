package errors

import "errors"

var (
	ErrEmptyCorpus        = errors.New("corpus has no usable sentences")
	ErrNameSpaceExhausted = errors.New("username space exhausted")
	ErrAuthorSelection    = errors.New("no eligible author")
	ErrWeightsMismatch    = errors.New("models and weights differ in length")
	ErrNoWeight           = errors.New("no model has a positive weight")
)

// ConfigError is fatal: the simulation must not start when one is returned.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

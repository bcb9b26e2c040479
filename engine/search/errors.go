package search

import (
	"errors"
	"fmt"
)

// ErrConfig is the sentinel wrapped by every ConfigError, so callers can
// use errors.Is(err, search.ErrConfig) without depending on the
// concrete type.
var ErrConfig = errors.New("invalid search configuration")

// ErrSerde is the sentinel wrapped by every SerdeError.
var ErrSerde = errors.New("search state (de)serialization failed")

// ConfigError reports an invalid Config: bad dimensions, a symmetry
// class incompatible with the bounding box or translation, a missing
// rule or one whose neighborhood is not closed under negation, or
// contradictory known cells discovered while constructing the World.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Reason)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConfig, e.Err}
	}
	return []error{ErrConfig}
}

func configErrorf(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

func wrapConfigError(reason string, err error) error {
	return &ConfigError{Reason: reason, Err: err}
}

// SerdeError reports a save/load failure: version mismatch, corrupted
// stream, or a rule-identity mismatch between the save file and the
// rule the caller supplied to load it.
type SerdeError struct {
	Reason string
	Err    error
}

func (e *SerdeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("serde: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("serde: %s", e.Reason)
}

func (e *SerdeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSerde, e.Err}
	}
	return []error{ErrSerde}
}

func serdeErrorf(format string, args ...any) error {
	return &SerdeError{Reason: fmt.Sprintf(format, args...)}
}

// errContradiction is the internal, unexported signal that a
// propagation step found no consistent completion. It is always
// consumed inside Step and never escapes the package's public API, per
// spec: the public API never signals a contradiction to the caller.
var errContradiction = errors.New("search: internal conflict")

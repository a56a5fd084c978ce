package hdfsfile

import (
	"fmt"
	"strings"
)

// --- Error Types ---

// TransportError is a failed backend invocation. Stderr carries the backend's
// diagnostic output verbatim.
type TransportError struct {
	Op     string
	Path   string
	Stderr string
	Err    error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Op, e.Path)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += fmt.Sprintf(": stderr: %s", stderr)
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UnsupportedTransitionError is returned when no conversion exists between
// the current and the desired state.
type UnsupportedTransitionError struct {
	From State
	To   State
}

func (e *UnsupportedTransitionError) Error() string {
	if e.From == StateAbsent && e.To == StateFile {
		return "no such file, to create a new file use state 'touch' instead of 'file'"
	}
	return fmt.Sprintf("unsupported state convert '%s' -> '%s'", e.From, e.To)
}

// UnsupportedMethodError is returned when the requested backend transport is
// not implemented.
type UnsupportedMethodError struct {
	Method Method
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("method %q is not yet implemented", string(e.Method))
}

// ConfigurationError reports an invalid wiring of ops or an invalid tool
// configuration.
type ConfigurationError struct {
	Reason string
	Cause  error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// ParamError reports an invalid host parameter.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

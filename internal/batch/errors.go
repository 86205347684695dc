package batch

import (
	"fmt"
)

// ErrorKind represents the type of run error
type ErrorKind string

const (
	ErrorKindValidation   ErrorKind = "validation"
	ErrorKindDiscovery    ErrorKind = "discovery"
	ErrorKindExport       ErrorKind = "export"
	ErrorKindCancellation ErrorKind = "cancellation"
	ErrorKindFatal        ErrorKind = "fatal"
)

// RunError represents a batch-run error with the stage it occurred in
type RunError struct {
	Kind    ErrorKind              `json:"kind"`
	Stage   string                 `json:"stage,omitempty"`
	Message string                 `json:"message"`
	Cause   error                  `json:"cause,omitempty"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *RunError) Error() string {
	if e == nil {
		return "unknown run error"
	}
	msg := e.Message
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Stage != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Stage, msg)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, msg)
}

// Unwrap returns the underlying error
func (e *RunError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(stage, message string) *RunError {
	return &RunError{
		Kind:    ErrorKindValidation,
		Stage:   stage,
		Message: message,
	}
}

// NewDiscoveryError creates a new discovery error
func NewDiscoveryError(dir string, cause error) *RunError {
	return &RunError{
		Kind:    ErrorKindDiscovery,
		Stage:   "discovery",
		Message: "failed to discover workbooks",
		Cause:   cause,
		Context: map[string]interface{}{
			"dir": dir,
		},
	}
}

// NewExportError creates a new export error
func NewExportError(cause error) *RunError {
	return &RunError{
		Kind:    ErrorKindExport,
		Stage:   "export",
		Message: "failed to write output",
		Cause:   cause,
	}
}

// NewCancellationError creates a new cancellation error
func NewCancellationError(stage string, cause error) *RunError {
	return &RunError{
		Kind:    ErrorKindCancellation,
		Stage:   stage,
		Message: "run was cancelled",
		Cause:   cause,
	}
}

// WrapError wraps an error with run stage context
func WrapError(err error, stage, message string) *RunError {
	if err == nil {
		return nil
	}

	// If it's already a RunError, enhance it
	if rErr, ok := err.(*RunError); ok {
		if rErr.Stage == "" {
			rErr.Stage = stage
		}
		if message != "" {
			rErr.Message = fmt.Sprintf("%s: %s", message, rErr.Message)
		}
		return rErr
	}

	return &RunError{
		Kind:    ErrorKindFatal,
		Stage:   stage,
		Message: message,
		Cause:   err,
	}
}

// GetErrorKind returns the kind of the error
func GetErrorKind(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if rErr, ok := err.(*RunError); ok {
		return rErr.Kind
	}
	return ErrorKindFatal
}

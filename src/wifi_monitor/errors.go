package wifi_monitor

import (
	"errors"
)

// Sentinels matched with errors.Is against any MonitorError of the same type.
var (
	ErrConfiguration        = errors.New("monitor configuration error")
	ErrSourceStart          = errors.New("source start failed")
	ErrTransientDelivery    = errors.New("status delivery failed")
	ErrSourceAlreadyStarted = errors.New("source already started")
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrorTypeConfiguration ErrorType = iota
	ErrorTypeSource
	ErrorTypeDelivery
)

func (t ErrorType) sentinel() error {
	switch t {
	case ErrorTypeConfiguration:
		return ErrConfiguration
	case ErrorTypeSource:
		return ErrSourceStart
	default:
		return ErrTransientDelivery
	}
}

// MonitorError represents an error with additional context
type MonitorError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *MonitorError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *MonitorError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel for this error's type.
func (e *MonitorError) Is(target error) bool {
	return target == e.Type.sentinel()
}

func newConfigurationError(code, message string, cause error) *MonitorError {
	return &MonitorError{Type: ErrorTypeConfiguration, Code: code, Message: message, Cause: cause}
}

func newSourceError(code, message string, cause error) *MonitorError {
	return &MonitorError{Type: ErrorTypeSource, Code: code, Message: message, Cause: cause}
}

func newDeliveryError(subscriptionID string, cause error) *MonitorError {
	return &MonitorError{
		Type:    ErrorTypeDelivery,
		Code:    "observer_failed",
		Message: "observer failed to handle status",
		Cause:   cause,
		Context: map[string]interface{}{"subscription": subscriptionID},
	}
}

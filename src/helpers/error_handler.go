package helpers

import (
	"errors"
	"fmt"

	"github.com/arbstatistix/financial-engineering/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

// ErrorKind tells why loading a configuration failed.
type ErrorKind string

const (
	KindIO      ErrorKind = "io"
	KindSyntax  ErrorKind = "syntax"
	KindMapping ErrorKind = "mapping"
)

// ConfigError is the single error type returned by the loader.
type ConfigError struct {
	Kind    ErrorKind
	Source  string // file path, or empty for in-memory text
	Domain  string // top-level key, mapping errors only
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s error", e.Kind)
	if e.Source != "" {
		base += fmt.Sprintf(" in %s", e.Source)
	}
	if e.Domain != "" {
		base += fmt.Sprintf(" (domain=%s)", e.Domain)
	}
	if e.Message != "" {
		base += ": " + e.Message
	}
	if e.Cause != nil {
		base += fmt.Sprintf(": %v", e.Cause)
	}
	return base
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// -----------------------------------------------------------------------------

func NewIOError(source string, cause error) *ConfigError {
	return &ConfigError{Kind: KindIO, Source: source, Message: "failed to read config", Cause: cause}
}

func NewSyntaxError(source string, cause error) *ConfigError {
	return &ConfigError{Kind: KindSyntax, Source: source, Message: "invalid JSON", Cause: cause}
}

func NewMappingError(domain, message string, cause error) *ConfigError {
	return &ConfigError{Kind: KindMapping, Domain: domain, Message: message, Cause: cause}
}

// -----------------------------------------------------------------------------

// KindOf returns the kind of the first ConfigError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}

// IsKind helps callers classify errors without inspecting messages.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

// ErrorHandler is the error-reporting channel: failures are logged, counted,
// and never retried.
type ErrorHandler struct {
	Logger     *logger.Logger
	ErrorCount int
}

func NewErrorHandler(l *logger.Logger) *ErrorHandler {
	if l == nil {
		l = logger.NewLogger(nil, "ErrorHandler")
	}
	return &ErrorHandler{Logger: l}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) ResetErrorCount() {
	e.ErrorCount = 0
}

// -----------------------------------------------------------------------------

// Handle reports err under the given context. It returns true when err was
// non-nil so callers can branch on it.
func (e *ErrorHandler) Handle(err error, context string) bool {
	if err == nil {
		return false
	}
	e.ErrorCount++
	if kind, ok := KindOf(err); ok {
		e.Logger.Error("Error in %s [%s]: %v", context, kind, err)
	} else {
		e.Logger.Error("Error in %s: %v", context, err)
	}
	return true
}

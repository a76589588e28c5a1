package cli

// This file defines error handling utilities for the CLI, including:
//   - Sentinel errors for input and configuration failures
//   - Error wrapping functions that integrate with the errx error system
//   - Structured error logging with context
//   - Debug mode management for error output

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"failmsg/pkg/errx"
)

var (
	debugMode   bool
	debugModeMu sync.RWMutex

	configPath   string
	configPathMu sync.RWMutex
)

// SetDebugMode sets the global debug mode flag.
// When enabled, logStructuredError will output structured error logs to terminal.
func SetDebugMode(enabled bool) {
	debugModeMu.Lock()
	defer debugModeMu.Unlock()
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled.
func IsDebugMode() bool {
	debugModeMu.RLock()
	defer debugModeMu.RUnlock()
	return debugMode
}

// SetConfigPath sets the config file used by all commands. An empty path
// selects ~/.failmsg/config.yaml (or config.toml).
func SetConfigPath(path string) {
	configPathMu.Lock()
	defer configPathMu.Unlock()
	configPath = path
}

// ConfigPath returns the config file set with SetConfigPath.
func ConfigPath() string {
	configPathMu.RLock()
	defer configPathMu.RUnlock()
	return configPath
}

type errorSpec struct {
	code     string
	category string
}

// newSentinelError creates a sentinel error and registers it in errorSpecs in one step.
func newSentinelError(msg string, code, category string) error {
	err := errors.New(msg)
	errorSpecs[err] = errorSpec{code: code, category: category}
	return err
}

// errorSpecs maps sentinel errors to their error codes and categories.
// Populated by newSentinelError() during variable initialization, so it
// must be declared before the sentinel errors.
var errorSpecs = make(map[error]errorSpec)

// lookupSpec provides a lookup function for errx.FromSentinel.
func lookupSpec(sentinel error) (code, category string) {
	spec := specFor(sentinel)
	return spec.code, spec.category
}

// newWithSentinel creates a new error using the sentinel's code and category.
func newWithSentinel(base error, msg string) error {
	if base == nil {
		return errx.CreateByCode(errx.CodeInput, errx.CatInput, msg, nil)
	}
	return errx.FromSentinel(base, lookupSpec, msg, nil)
}

// wrapWithSentinel wraps a cause error using the sentinel's code and category.
func wrapWithSentinel(base, cause error, msg string) error {
	if base == nil {
		return errx.CreateByCode(errx.CodeInput, errx.CatInput, msg, cause)
	}
	return errx.FromSentinel(base, lookupSpec, msg, cause)
}

// wrapWithSentinelAndContext wraps an error with additional structured context
// such as file paths or condition names.
func wrapWithSentinelAndContext(base, cause error, msg string, context map[string]any) error {
	err := wrapWithSentinel(base, cause, msg)
	if errxErr, ok := err.(*errx.Error); ok && len(context) > 0 {
		return errxErr.WithContextMap(context)
	}
	return err
}

// Sentinel errors for CLI operations.
var (
	// Input errors.
	ErrConditionRequired = newSentinelError("condition is required", errx.CodeInput, errx.CatInput)
	ErrReadInputFailed   = newSentinelError("failed to read input file", errx.CodeInput, errx.CatInput)
	ErrParseReportFailed = newSentinelError("failed to parse failure report", errx.CodeInput, errx.CatInput)
	ErrInvalidFailure    = newSentinelError("invalid failure entry", errx.CodeInput, errx.CatInput)
	ErrComposeFailed     = newSentinelError("failed to compose failure message", errx.CodeInput, errx.CatInput)
	ErrUnsupportedFormat = newSentinelError("unsupported config format", errx.CodeInput, errx.CatInput)
	ErrFileIsDirectory   = newSentinelError("path is a directory, not a file", errx.CodeInput, errx.CatInput)
	ErrFileNotAccessible = newSentinelError("cannot access file", errx.CodeInput, errx.CatInput)
	ErrUnknownCondition  = newSentinelError("unknown condition", errx.CodeInput, errx.CatInput)

	// Config errors.
	ErrResolveConfigFailed = newSentinelError("failed to resolve configuration", errx.CodeConfig, errx.CatConfig)
	ErrSaveConfigFailed    = newSentinelError("failed to save configuration", errx.CodeConfig, errx.CatConfig)
	ErrConfigExists        = newSentinelError("config file already exists", errx.CodeConfig, errx.CatConfig)
)

func specFor(base error) errorSpec {
	spec, ok := errorSpecs[base]
	if ok {
		return spec
	}
	return errorSpec{code: errx.CodeInput, category: errx.CatInput}
}

// logStructuredError logs an error with structured fields to terminal.
// Only logs when debug mode is enabled (via --debug flag).
//
// This extracts all context from errx.Error and logs it with structured fields:
// - error.code: "82000"
// - error.category: "Catalog defect"
// - error.context.condition: "should-contain"
// - error.context.path: "failures.yaml"
func logStructuredError(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil || !IsDebugMode() {
		return
	}

	var errxErr *errx.Error
	if errors.As(err, &errxErr) {
		fields := []zap.Field{
			zap.String("error.code", errxErr.Code()),
			zap.String("error.category", errxErr.Category()),
			zap.String("error.message", errxErr.Message()),
			zap.Error(err),
		}

		if ctx := errxErr.Context(); ctx != nil {
			for key, value := range ctx {
				fields = append(fields, zap.Any("error.context."+key, value))
			}
		}

		// Distinct field name to avoid a duplicate "error" field.
		if cause := errxErr.Cause(); cause != nil {
			fields = append(fields, zap.NamedError("error.cause", cause))
		}

		logger.Error(msg, fields...)
	} else {
		logger.Error(msg, zap.Error(err))
	}
}

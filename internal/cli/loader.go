package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/rdfq/internal/algebra"
	"github.com/roach88/rdfq/internal/config"
	"github.com/roach88/rdfq/internal/dialect"
	"github.com/roach88/rdfq/internal/querydoc"
)

// Error codes for CLI input errors. Query compilation errors are reported
// with their algebra.QueryError code instead.
const (
	ErrCodeGeneric        = "E001" // Generic/unknown error
	ErrCodeDecodeFailed   = "E002" // Query document does not decode
	ErrCodeInvalidQuery   = "E003" // Query fails structural validation
	ErrCodeConfigInvalid  = "E004" // Config file does not validate
	ErrCodeNotFound       = "E005" // Path or template not found
	ErrCodeUnknownDialect = "E006" // Dialect name not built in
	ErrCodeWriteFailed    = "E007" // File write error
	ErrCodeCacheFailed    = "E008" // Template cache error
	ErrCodeTestFailed     = "E009" // One or more scenarios failed
)

// LoadError is an input error with a CLI error code.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	return e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// loadQuery reads a query document.
func loadQuery(path string) (*algebra.Query, error) {
	q, err := querydoc.Load(path)
	if err == nil {
		return q, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("query file not found: %s", path), Err: err}
	}
	var decErr *querydoc.DecodeError
	if errors.As(err, &decErr) && decErr.Line > 0 {
		return nil, &LoadError{
			Code:    ErrCodeDecodeFailed,
			Message: fmt.Sprintf("%s:%d:%d: %s", path, decErr.Line, decErr.Column, decErr.Message),
			Err:     err,
		}
	}
	return nil, &LoadError{Code: ErrCodeDecodeFailed, Message: err.Error(), Err: err}
}

// settings is the resolved configuration of one command invocation.
type settings struct {
	config  *config.Config
	dialect *dialect.Dialect
	cache   string
}

// loadSettings reads the config file, if any, and applies flag overrides.
// A non-empty dialectFlag replaces the configured dialect; a non-empty
// cacheFlag replaces the configured cache path.
func loadSettings(configPath, dialectFlag, cacheFlag string) (*settings, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config file not found: %s", configPath), Err: err}
			}
			return nil, &LoadError{Code: ErrCodeConfigInvalid, Message: err.Error(), Err: err}
		}
		cfg = loaded
	}
	if dialectFlag != "" {
		cfg.Dialect = dialectFlag
	}
	if cacheFlag != "" {
		cfg.Cache = cacheFlag
	}

	d, err := cfg.BuildDialect()
	if err != nil {
		var cfgErr *config.Error
		if errors.As(err, &cfgErr) {
			return nil, &LoadError{Code: ErrCodeConfigInvalid, Message: err.Error(), Err: err}
		}
		return nil, &LoadError{Code: ErrCodeUnknownDialect, Message: err.Error(), Err: err}
	}
	return &settings{config: cfg, dialect: d, cache: cfg.Cache}, nil
}

// errorCode returns the CLI error code of err.
func errorCode(err error) string {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	var qe *algebra.QueryError
	if errors.As(err, &qe) {
		return string(qe.Code)
	}
	return ErrCodeGeneric
}

// outputCommandError reports err and returns it as a command error
// (exit code 2). The returned error reads "<code>: <message>".
func outputCommandError(formatter *OutputFormatter, err error) error {
	code := errorCode(err)
	_ = formatter.Error(code, err.Error(), nil)
	return WrapExitError(ExitCommandError, code, err)
}

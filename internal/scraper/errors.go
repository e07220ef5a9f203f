package scraper

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey    = errors.New("missing API key")
	ErrInvalidTarget    = errors.New("invalid target")
	ErrPageRequired     = errors.New("a loaded page is required")
	ErrNoStructuredData = errors.New("no structured data found")
	ErrNotFound         = errors.New("record not found")
)

// ConfigError is a setup problem: retrying will not help.
type ConfigError struct {
	Source string
	Key    string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", e.Source, e.Err, e.Key)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// StatusError carries a non-2xx aggregator response.
type StatusError struct {
	Source     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Source, e.StatusCode, e.Body)
}

// IsConfigError reports whether err is a configuration problem rather than a runtime one.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

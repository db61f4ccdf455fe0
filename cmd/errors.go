package cmd

import (
	"errors"
	"fmt"
)

// ErrIssuesFound signals that the audit flagged findings or outdated
// libraries. Execute maps it to exit code 1 without printing; the
// report already said everything.
var ErrIssuesFound = errors.New("issues found")

// ConfigError wraps a fatal startup configuration problem with the
// config key it came from.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for %q: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

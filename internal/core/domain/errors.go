package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyContent is returned when a submission carries no usable text.
var ErrEmptyContent = errors.New("status content cannot be empty")

// ConfigurationError reports missing or malformed configuration. It is
// raised eagerly at load time instead of deferring to an opaque
// provider-side failure.
type ConfigurationError struct {
	Missing []string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("configuration error: missing %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// AuthenticationError reports a credential the provider rejected or that
// could not be parsed at all.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// DocumentWriteError wraps a provider failure during a document fetch or
// batch update. The write is not retried.
type DocumentWriteError struct {
	Name string
	Err  error
}

func (e *DocumentWriteError) Error() string {
	return fmt.Sprintf("failed to write document %q: %v", e.Name, e.Err)
}

func (e *DocumentWriteError) Unwrap() error { return e.Err }

package domain

import (
	"errors"
	"fmt"
)

// ErrMissingJoinColumn is matched by configuration errors raised when the
// observation table has no join-key column.
var ErrMissingJoinColumn = errors.New("join column missing from observation table")

// ConfigurationError reports a structural problem with the loaded data that no
// year selection can fix.
type ConfigurationError struct {
	Column string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("column %q does not exist in the observation table; rename it to match the boundary property: %v", e.Column, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

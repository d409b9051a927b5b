// Package apperr defines the error taxonomy shared across the tool.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSetting is a required configuration value that is absent.
	ErrMissingSetting = errors.New("required setting missing")
	// ErrUnrecognizedScript is a script file without the fingerprint
	// annotation, meaning it was not produced by this tool.
	ErrUnrecognizedScript = errors.New("script file was not produced by this tool")
	// ErrConflict means both representations changed independently since
	// the last synchronized state.
	ErrConflict = errors.New("both representations changed independently")
	// ErrExecutionFailed means the execution collaborator failed or timed
	// out while running a notebook.
	ErrExecutionFailed = errors.New("notebook execution failed")
)

// IdentityError ties a fatal condition to one document identity and
// carries the remediation step to surface to the operator. None of these
// conditions are retried: they are content-integrity decisions.
type IdentityError struct {
	Stem   string
	Err    error
	Remedy string
}

func (e *IdentityError) Error() string {
	if e.Remedy == "" {
		return fmt.Sprintf("%s: %v", e.Stem, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Stem, e.Err, e.Remedy)
}

func (e *IdentityError) Unwrap() error { return e.Err }

// Package reconcile decides, per document identity, which of the two
// on-disk representations is authoritative.
package reconcile

import (
	"fmt"

	"github.com/starford/ehwaz/internal/apperr"
	"github.com/starford/ehwaz/internal/fingerprint"
	"github.com/starford/ehwaz/internal/models"
)

// Side names the representation a resolution came from.
type Side string

const (
	SideNotebook Side = "notebook"
	SideScript   Side = "script"
)

// Input is the loaded state of one document identity. A nil document
// means that representation does not exist on disk. StoredHash is the
// fingerprint annotation embedded in the script file; HasStoredHash is
// false when the annotation is absent or malformed.
type Input struct {
	Stem          string
	Notebook      *models.Notebook
	Script        *models.Notebook
	StoredHash    string
	HasStoredHash bool
}

// Outcome is the single authoritative document for an identity.
// NeedsExecution is set when the script side won: the flat form carries
// no outputs, so the document must be executed before it is persisted.
type Outcome struct {
	Notebook       *models.Notebook
	Side           Side
	NeedsExecution bool
}

// Resolve applies the decision table over representation presence and,
// when both exist, the three fingerprints. It is pure: no I/O, no state
// across identities. Fatal conditions come back as IdentityError wrapping
// ErrUnrecognizedScript or ErrConflict and are not auto-resolved.
func Resolve(in Input) (*Outcome, error) {
	switch {
	case in.Notebook == nil && in.Script == nil:
		return nil, fmt.Errorf("reconcile: %s: no representation exists", in.Stem)
	case in.Script == nil:
		// Only the notebook exists: authoritative as-is.
		return &Outcome{Notebook: in.Notebook, Side: SideNotebook}, nil
	case in.Notebook == nil:
		// Only the script exists: it was never run.
		return &Outcome{Notebook: in.Script, Side: SideScript, NeedsExecution: true}, nil
	}

	if !in.HasStoredHash {
		return nil, &apperr.IdentityError{
			Stem:   in.Stem,
			Err:    apperr.ErrUnrecognizedScript,
			Remedy: "remove either the script or the notebook file, or restore the NOTEBOOK_HASH line",
		}
	}

	nbFp := fingerprint.Sum(in.Notebook)
	scFp := fingerprint.Sum(in.Script)

	switch {
	case in.StoredHash == nbFp && in.StoredHash == scFp:
		// No semantic change since last sync; the notebook is chosen by
		// convention (it carries the outputs).
		return &Outcome{Notebook: in.Notebook, Side: SideNotebook}, nil
	case in.StoredHash == scFp:
		// Notebook changed since last sync.
		return &Outcome{Notebook: in.Notebook, Side: SideNotebook}, nil
	case in.StoredHash == nbFp:
		// Script changed since last sync.
		return &Outcome{Notebook: in.Script, Side: SideScript, NeedsExecution: true}, nil
	default:
		return nil, &apperr.IdentityError{
			Stem:   in.Stem,
			Err:    apperr.ErrConflict,
			Remedy: "delete one of the two files and re-run",
		}
	}
}

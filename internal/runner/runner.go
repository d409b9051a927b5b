// Package runner is the boundary to the external code-execution engine:
// it runs a notebook's code cells and returns the notebook with outputs
// and execution counts populated.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/ehwaz/internal/apperr"
	"github.com/starford/ehwaz/internal/models"
	"github.com/starford/ehwaz/internal/notebook"
)

// Executor runs a notebook against a fresh kernel-like runtime. A failure
// is a hard failure for the identity being synced: the caller must not
// persist a partially executed document.
type Executor interface {
	Execute(ctx context.Context, nb *models.Notebook) (*models.Notebook, error)
}

// Nbconvert executes notebooks by shelling out to `<command> nbconvert
// --to notebook --execute --inplace` on a temporary copy.
type Nbconvert struct {
	command string
	timeout time.Duration
}

// NewNbconvert creates an Nbconvert executor. command is the jupyter
// binary to invoke; timeout bounds one notebook execution.
func NewNbconvert(command string, timeout time.Duration) *Nbconvert {
	return &Nbconvert{command: command, timeout: timeout}
}

// Execute writes nb to a temporary file, runs it in place, and returns
// the re-read result. The input document is never mutated.
func (e *Nbconvert) Execute(ctx context.Context, nb *models.Notebook) (*models.Notebook, error) {
	data, err := notebook.Marshal(nb)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "ehwaz-exec-*")
	if err != nil {
		return nil, fmt.Errorf("runner: create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "run.ipynb")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("runner: write temp notebook: %w", err)
	}

	runCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, e.command,
		"nbconvert", "--to", "notebook", "--execute", "--inplace", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if runCtx.Err() != nil {
			return nil, fmt.Errorf("runner: %w: timed out after %s", apperr.ErrExecutionFailed, e.timeout)
		}
		return nil, fmt.Errorf("runner: %w: %v: %s", apperr.ErrExecutionFailed, err, stderrTail(&stderr))
	}

	out, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("runner: read executed notebook: %w", err)
	}
	executed, err := notebook.Unmarshal(out)
	if err != nil {
		return nil, fmt.Errorf("runner: %w: invalid executed notebook: %v", apperr.ErrExecutionFailed, err)
	}
	return executed, nil
}

// stderrTail returns the last few lines of captured stderr, which is
// where nbconvert reports the failing cell.
func stderrTail(buf *bytes.Buffer) string {
	s := strings.TrimSpace(buf.String())
	if s == "" {
		return "no stderr output"
	}
	lines := strings.Split(s, "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return strings.Join(lines, "\n")
}

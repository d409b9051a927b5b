// Package testutil provides shared test helpers for setting up document
// directory pairs and a stub execution engine.
package testutil

import (
	"context"
	"testing"

	"github.com/starford/ehwaz/internal/models"
	"github.com/starford/ehwaz/internal/storage"
)

// TestDirs creates a temporary script/notebook directory pair with
// storage providers over each.
func TestDirs(t *testing.T) (scripts, notebooks storage.Provider, scriptDir, notebookDir string) {
	t.Helper()
	scriptDir = t.TempDir()
	notebookDir = t.TempDir()
	scripts, err := storage.NewFS(scriptDir)
	if err != nil {
		t.Fatal(err)
	}
	notebooks, err = storage.NewFS(notebookDir)
	if err != nil {
		t.Fatal(err)
	}
	return scripts, notebooks, scriptDir, notebookDir
}

// StubExecutor records execution calls and fills in outputs without
// running anything. Err, when set, is returned instead.
type StubExecutor struct {
	Calls int
	Err   error
}

// Execute returns a copy of nb with every code cell marked executed.
func (e *StubExecutor) Execute(_ context.Context, nb *models.Notebook) (*models.Notebook, error) {
	e.Calls++
	if e.Err != nil {
		return nil, e.Err
	}
	out := *nb
	out.Cells = make([]models.Cell, len(nb.Cells))
	count := 0
	for i, c := range nb.Cells {
		out.Cells[i] = c
		if c.Type != models.CellCode {
			continue
		}
		count++
		n := count
		out.Cells[i].ExecutionCount = &n
		out.Cells[i].Outputs = []models.Output{{
			"output_type": "stream",
			"name":        "stdout",
			"text":        "ok\n",
		}}
	}
	return &out, nil
}

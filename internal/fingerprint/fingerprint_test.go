package fingerprint

import (
	"testing"

	"github.com/starford/ehwaz/internal/models"
	"github.com/starford/ehwaz/internal/notebook"
)

func sampleNotebook() *models.Notebook {
	return notebook.New([]models.Cell{
		{Type: models.CellMarkdown, Source: "# Title"},
		{Type: models.CellCode, Source: "a = 1\nprint(a)"},
	})
}

func TestSum_Deterministic(t *testing.T) {
	nb := sampleNotebook()
	first := Sum(nb)
	second := Sum(nb)
	if first != second {
		t.Errorf("fingerprint not stable: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("expected hex sha256, got %q", first)
	}
}

func TestSum_IgnoresOutputsAndExecutionState(t *testing.T) {
	nb := sampleNotebook()
	base := Sum(nb)

	n := 7
	nb.Cells[1].ExecutionCount = &n
	nb.Cells[1].Outputs = []models.Output{{"output_type": "stream", "text": "1\n"}}
	nb.Cells[1].Metadata = map[string]any{"collapsed": true}

	if got := Sum(nb); got != base {
		t.Errorf("output-only change moved fingerprint: %s vs %s", got, base)
	}
}

func TestSum_ChangesWithSource(t *testing.T) {
	nb := sampleNotebook()
	base := Sum(nb)
	nb.Cells[1].Source = "a = 2"
	if got := Sum(nb); got == base {
		t.Error("source change did not move fingerprint")
	}
}

func TestSum_CellTypeDoesNotMatter(t *testing.T) {
	code := notebook.New([]models.Cell{{Type: models.CellCode, Source: "text"}})
	md := notebook.New([]models.Cell{{Type: models.CellMarkdown, Source: "text"}})
	if Sum(code) != Sum(md) {
		t.Error("fingerprint must depend on source text only")
	}
}

func TestSum_OrderMatters(t *testing.T) {
	a := notebook.New([]models.Cell{
		{Type: models.CellCode, Source: "one"},
		{Type: models.CellCode, Source: "two"},
	})
	b := notebook.New([]models.Cell{
		{Type: models.CellCode, Source: "two"},
		{Type: models.CellCode, Source: "one"},
	})
	if Sum(a) == Sum(b) {
		t.Error("cell order must be part of the fingerprint")
	}
}

func TestSum_EmptyNotebook(t *testing.T) {
	if got := Sum(notebook.New(nil)); got == "" {
		t.Error("empty notebook should still fingerprint")
	}
}

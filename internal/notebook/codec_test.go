package notebook

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/starford/ehwaz/internal/models"
)

func TestMarshal_CodeCellCarriesExecutionFields(t *testing.T) {
	nb := New([]models.Cell{{Type: models.CellCode, Source: "a = 1"}})
	data, err := Marshal(nb)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"outputs": []`) {
		t.Errorf("unexecuted code cell must carry empty outputs:\n%s", s)
	}
	if !strings.Contains(s, `"execution_count": null`) {
		t.Errorf("unexecuted code cell must carry null execution_count:\n%s", s)
	}
}

func TestMarshal_MarkdownCellOmitsExecutionFields(t *testing.T) {
	nb := New([]models.Cell{{Type: models.CellMarkdown, Source: "# Hi"}})
	data, err := Marshal(nb)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(data), "outputs") || strings.Contains(string(data), "execution_count") {
		t.Errorf("markdown cell must not carry execution fields:\n%s", data)
	}
}

func TestMarshal_ByteStable(t *testing.T) {
	n := 2
	nb := New([]models.Cell{
		{Type: models.CellMarkdown, Source: "prose"},
		{
			Type:           models.CellCode,
			Source:         "print(1)",
			ExecutionCount: &n,
			Outputs:        []models.Output{{"output_type": "stream", "name": "stdout", "text": "1\n"}},
		},
	})
	first, err := Marshal(nb)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal(nb)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("marshalling the same document twice must be byte-identical")
	}
}

func TestUnmarshal_RoundTrip(t *testing.T) {
	n := 1
	nb := New([]models.Cell{
		{Type: models.CellMarkdown, Source: "text"},
		{
			Type:           models.CellCode,
			Source:         "x = 1",
			ExecutionCount: &n,
			Outputs:        []models.Output{{"output_type": "execute_result"}},
		},
	})
	data, err := Marshal(nb)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got.Cells) != 2 {
		t.Fatalf("cells = %d, want 2", len(got.Cells))
	}
	if got.Cells[1].Source != "x = 1" || got.Cells[1].ExecutionCount == nil || *got.Cells[1].ExecutionCount != 1 {
		t.Errorf("code cell = %+v", got.Cells[1])
	}
	if len(got.Cells[1].Outputs) != 1 {
		t.Errorf("outputs = %+v", got.Cells[1].Outputs)
	}
}

func TestUnmarshal_SourceAsLineList(t *testing.T) {
	raw := `{
  "cells": [
    {"cell_type": "code", "metadata": {}, "source": ["a = 1\n", "print(a)"], "outputs": [], "execution_count": null}
  ],
  "metadata": {},
  "nbformat": 4,
  "nbformat_minor": 4
}`
	nb, err := Unmarshal([]byte(raw))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if nb.Cells[0].Source != "a = 1\nprint(a)" {
		t.Errorf("source = %q", nb.Cells[0].Source)
	}
}

func TestUnmarshal_Invalid(t *testing.T) {
	if _, err := Unmarshal([]byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestNew_Defaults(t *testing.T) {
	nb := New(nil)
	if nb.Cells == nil || nb.NBFormat != 4 || nb.NBFormatMinor != 4 {
		t.Errorf("notebook = %+v", nb)
	}
	data, err := Marshal(nb)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var check map[string]any
	if err := json.Unmarshal(data, &check); err != nil {
		t.Fatalf("marshalled default notebook is not valid JSON: %v", err)
	}
	if _, ok := check["metadata"].(map[string]any)["kernelspec"]; !ok {
		t.Error("default metadata must carry a kernelspec")
	}
}

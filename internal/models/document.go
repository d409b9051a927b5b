// Package models defines the domain types for Ehwaz.
package models

import (
	"encoding/json"
	"fmt"
)

// Cell types understood by the structured format.
const (
	CellMarkdown = "markdown"
	CellCode     = "code"
)

// Output is one execution result attached to a code cell. The structured
// format treats it as an opaque JSON object.
type Output map[string]any

// Cell is one unit of a notebook document: either prose (markdown) or
// executable source (code). Outputs and ExecutionCount are only meaningful
// for code cells.
type Cell struct {
	Type           string
	Source         string
	Metadata       map[string]any
	Outputs        []Output
	ExecutionCount *int
}

// Notebook is the structured form of a document: an ordered cell sequence
// plus document-level metadata. Metadata is opaque to reconciliation.
type Notebook struct {
	Cells         []Cell         `json:"cells"`
	Metadata      map[string]any `json:"metadata"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`
}

// Sources returns the ordered cell source texts. This is the fingerprint
// input: outputs, execution counts, and cell types are deliberately
// excluded so that execution alone never registers as a change.
func (nb *Notebook) Sources() []string {
	out := make([]string, len(nb.Cells))
	for i, c := range nb.Cells {
		out[i] = c.Source
	}
	return out
}

// DefaultMetadata returns the synthetic document metadata used when a
// notebook is materialized from the flat form, which carries none.
func DefaultMetadata() map[string]any {
	return map[string]any{
		"kernelspec": map[string]any{
			"display_name": "Python 3",
			"language":     "python",
			"name":         "python3",
		},
		"language_info": map[string]any{
			"name":    "python",
			"version": "3.10",
		},
	}
}

// MarshalJSON writes the nbformat-v4 cell layout: markdown cells carry no
// outputs or execution_count keys, code cells always carry both (empty
// list and null when unexecuted).
func (c Cell) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"cell_type": c.Type,
		"metadata":  c.Metadata,
		"source":    c.Source,
	}
	if c.Metadata == nil {
		m["metadata"] = map[string]any{}
	}
	if c.Type == CellCode {
		if c.Outputs == nil {
			m["outputs"] = []Output{}
		} else {
			m["outputs"] = c.Outputs
		}
		m["execution_count"] = c.ExecutionCount
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts both source encodings nbformat allows: a single
// string or a list of line strings.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type           string          `json:"cell_type"`
		Source         json.RawMessage `json:"source"`
		Metadata       map[string]any  `json:"metadata"`
		Outputs        []Output        `json:"outputs"`
		ExecutionCount *int            `json:"execution_count"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	src, err := decodeSource(raw.Source)
	if err != nil {
		return err
	}
	c.Type = raw.Type
	c.Source = src
	c.Metadata = raw.Metadata
	c.Outputs = raw.Outputs
	c.ExecutionCount = raw.ExecutionCount
	return nil
}

func decodeSource(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return "", fmt.Errorf("models: cell source is neither string nor list: %w", err)
	}
	joined := ""
	for _, l := range lines {
		joined += l
	}
	return joined, nil
}

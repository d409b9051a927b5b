// Package notebook reads and writes the structured (.ipynb) document form.
package notebook

import (
	"encoding/json"
	"fmt"

	"github.com/starford/ehwaz/internal/models"
)

// Unmarshal parses a structured notebook file.
func Unmarshal(data []byte) (*models.Notebook, error) {
	var nb models.Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("notebook: parse: %w", err)
	}
	if nb.Cells == nil {
		nb.Cells = []models.Cell{}
	}
	return &nb, nil
}

// Marshal renders a notebook as pretty-printed JSON. The encoding is
// byte-stable: marshalling the same document twice yields identical bytes.
func Marshal(nb *models.Notebook) ([]byte, error) {
	data, err := json.MarshalIndent(nb, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("notebook: encode: %w", err)
	}
	return append(data, '\n'), nil
}

// New builds a notebook around the given cells with the synthetic default
// metadata used for documents materialized from the flat form.
func New(cells []models.Cell) *models.Notebook {
	if cells == nil {
		cells = []models.Cell{}
	}
	return &models.Notebook{
		Cells:         cells,
		Metadata:      models.DefaultMetadata(),
		NBFormat:      4,
		NBFormatMinor: 4,
	}
}

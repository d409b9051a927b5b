// Package script converts between the structured notebook form and the
// flat script form: cell chunks joined by a "# %%" delimiter line, with
// the last-synced fingerprint embedded in the first line.
package script

import (
	"strings"

	"github.com/starford/ehwaz/internal/models"
	"github.com/starford/ehwaz/internal/notebook"
)

const (
	// HashPrefix starts the fingerprint annotation line.
	HashPrefix = "# %% NOTEBOOK_HASH="
	// Delimiter separates cell chunks; it must appear on a line of its own.
	Delimiter = "# %%"

	bracket = `"""`
)

// Encode renders a notebook as flat script bytes: the fingerprint line,
// then one chunk per cell. Markdown cells are wrapped in triple-quote
// brackets; code cells are raw source with outputs discarded, since the
// flat form cannot represent them.
func Encode(nb *models.Notebook, hash string) []byte {
	chunks := make([]string, len(nb.Cells))
	for i, c := range nb.Cells {
		if c.Type == models.CellMarkdown {
			chunks[i] = bracket + "\n" + c.Source + "\n" + bracket
		} else {
			chunks[i] = c.Source
		}
	}
	var b strings.Builder
	b.WriteString(HashPrefix)
	b.WriteString(hash)
	b.WriteString("\n")
	b.WriteString(strings.Join(chunks, "\n"+Delimiter+"\n"))
	return []byte(b.String())
}

// Decode parses flat script bytes back into a notebook. The returned hash
// is the embedded fingerprint annotation; ok is false when the annotation
// is absent or empty, meaning the file was not produced by this tool.
//
// Chunk classification is purely textual: a trimmed chunk that both starts
// and ends with the triple-quote bracket is markdown, anything else is
// code. A markdown cell whose own content starts or ends with the bracket
// is therefore ambiguous; such content round-trips as code.
func Decode(data []byte) (hash string, ok bool, nb *models.Notebook) {
	content := string(data)
	if strings.HasPrefix(content, HashPrefix) {
		line, rest, _ := strings.Cut(content, "\n")
		hash = line[len(HashPrefix):]
		ok = hash != ""
		content = rest
	}

	var cells []models.Cell
	for _, chunk := range splitChunks(content) {
		cells = append(cells, classify(chunk))
	}
	return hash, ok, notebook.New(cells)
}

// splitChunks splits on delimiter lines and trims surrounding whitespace
// per chunk. An empty content still yields one (empty) chunk, matching the
// encode side which always writes at least one.
func splitChunks(content string) []string {
	var chunks []string
	var cur []string
	flush := func() {
		chunks = append(chunks, strings.TrimSpace(strings.Join(cur, "\n")))
		cur = cur[:0]
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == Delimiter {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return chunks
}

func classify(chunk string) models.Cell {
	if len(chunk) >= 2*len(bracket) &&
		strings.HasPrefix(chunk, bracket) && strings.HasSuffix(chunk, bracket) {
		inner := chunk[len(bracket) : len(chunk)-len(bracket)]
		// Undo exactly the newlines Encode adds around markdown content.
		inner = strings.TrimPrefix(inner, "\n")
		inner = strings.TrimSuffix(inner, "\n")
		return models.Cell{Type: models.CellMarkdown, Source: inner}
	}
	return models.Cell{Type: models.CellCode, Source: chunk}
}

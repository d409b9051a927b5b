// Package fingerprint computes the content hash used to detect semantic
// change between a notebook and its flat script form.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/starford/ehwaz/internal/models"
)

// Sum returns the hex-encoded SHA-256 digest of the canonical encoding of
// the notebook's ordered cell sources. The canonical form is the compact
// JSON array of source strings, so both construction paths (native load
// and script conversion) hash identically. Outputs, execution counts, and
// metadata never enter the digest.
func Sum(nb *models.Notebook) string {
	data, err := json.Marshal(nb.Sources())
	if err != nil {
		// A []string cannot fail to marshal.
		panic(err)
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

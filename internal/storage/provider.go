// Package storage defines the document directory abstraction.
package storage

// Provider is the interface for file operations within one document
// directory (either the script side or the notebook side).
type Provider interface {
	// Stems returns the sorted filename stems of every file in the
	// directory root carrying the given extension.
	Stems(ext string) ([]string, error)
	// Exists reports whether the file at name (relative to root) exists.
	Exists(name string) (bool, error)
	// Read returns the raw bytes of the file at name (relative to root).
	Read(name string) ([]byte, error)
	// Write atomically writes content to name (relative to root).
	Write(name string, content []byte) error
}

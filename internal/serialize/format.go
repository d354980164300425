// Package serialize renders an assembled graph to an RDF interchange format
// and parses serialized graphs back into triples. JSON-LD is the default
// format; Turtle and N-Triples are supported for interchange with ontology
// tooling.
package serialize

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var errUnknownFormat = errors.New("unrecognized format")

// Format identifies an RDF serialization.
type Format string

const (
	FormatJSONLD   Format = "json-ld"
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
)

// Error reports a failed serialization: unwritable destination, unreadable
// source, or an unrecognized format.
type Error struct {
	Path   string
	Format Format
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("serialize %s as %s: %v", e.Path, e.Format, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json-ld", "jsonld":
		return FormatJSONLD, nil
	case "turtle", "ttl":
		return FormatTurtle, nil
	case "ntriples", "nt", "n-triples":
		return FormatNTriples, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GuessFormat infers a format from the destination's file extension,
// defaulting to JSON-LD when the extension is unknown.
func GuessFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonld":
		return FormatJSONLD
	case ".ttl", ".turtle":
		return FormatTurtle
	case ".nt":
		return FormatNTriples
	default:
		return FormatJSONLD
	}
}

package serialize

import (
	"io"
	"os"

	"github.com/gustycube/casedns/internal/rdf"
)

// Write renders g to w in the given format.
func Write(g *rdf.Graph, w io.Writer, f Format) error {
	switch f {
	case FormatJSONLD:
		return writeJSONLD(g, w)
	case FormatTurtle, FormatNTriples:
		return encodeTriples(g.Triples(), w, f)
	default:
		return &Error{Format: f, Err: errUnknownFormat}
	}
}

// WriteFile serializes g to path. The destination is truncated; a failure to
// create or write it is reported as *Error.
func WriteFile(g *rdf.Graph, path string, f Format) error {
	out, err := os.Create(path)
	if err != nil {
		return &Error{Path: path, Format: f, Err: err}
	}
	if err := Write(g, out, f); err != nil {
		out.Close()
		if serr, ok := err.(*Error); ok {
			serr.Path = path
			return serr
		}
		return &Error{Path: path, Format: f, Err: err}
	}
	if err := out.Close(); err != nil {
		return &Error{Path: path, Format: f, Err: err}
	}
	return nil
}

// Read parses a serialized graph into triples.
func Read(r io.Reader, f Format) ([]rdf.Triple, error) {
	switch f {
	case FormatJSONLD:
		return readJSONLD(r)
	case FormatTurtle, FormatNTriples:
		return decodeTriples(r, f)
	default:
		return nil, &Error{Format: f, Err: errUnknownFormat}
	}
}

// ReadFile parses the graph file at path.
func ReadFile(path string, f Format) ([]rdf.Triple, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, &Error{Path: path, Format: f, Err: err}
	}
	defer in.Close()
	triples, err := Read(in, f)
	if err != nil {
		if serr, ok := err.(*Error); ok {
			serr.Path = path
			return nil, serr
		}
		return nil, &Error{Path: path, Format: f, Err: err}
	}
	return triples, nil
}

package serialize

import (
	"fmt"
	"io"
	"strings"

	"github.com/gustycube/casedns/internal/rdf"
	knakk "github.com/knakk/rdf"
)

func knakkFormat(f Format) knakk.Format {
	if f == FormatTurtle {
		return knakk.Turtle
	}
	return knakk.NTriples
}

// encodeTriples writes triples in Turtle or N-Triples via the knakk encoder.
func encodeTriples(triples []rdf.Triple, w io.Writer, f Format) error {
	enc := knakk.NewTripleEncoder(w, knakkFormat(f))
	for _, t := range triples {
		kt, err := toKnakk(t)
		if err != nil {
			return err
		}
		if err := enc.Encode(kt); err != nil {
			return fmt.Errorf("encode triple: %w", err)
		}
	}
	return enc.Close()
}

// decodeTriples reads a Turtle or N-Triples stream.
func decodeTriples(r io.Reader, f Format) ([]rdf.Triple, error) {
	dec := knakk.NewTripleDecoder(r, knakkFormat(f))
	var out []rdf.Triple
	for {
		t, err := dec.Decode()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", f, err)
		}
		out = append(out, fromKnakk(t))
	}
}

func toKnakk(t rdf.Triple) (knakk.Triple, error) {
	subj, err := knakkNode(t.Subject)
	if err != nil {
		return knakk.Triple{}, err
	}
	pred, err := knakk.NewIRI(string(t.Predicate))
	if err != nil {
		return knakk.Triple{}, fmt.Errorf("predicate %q: %w", t.Predicate, err)
	}

	var obj knakk.Object
	switch {
	case t.Object.IsIRI:
		obj, err = knakkNode(rdf.IRI(t.Object.Value))
		if err != nil {
			return knakk.Triple{}, err
		}
	case t.Object.Datatype != "":
		dt, derr := knakk.NewIRI(string(t.Object.Datatype))
		if derr != nil {
			return knakk.Triple{}, fmt.Errorf("datatype %q: %w", t.Object.Datatype, derr)
		}
		obj = knakk.NewTypedLiteral(t.Object.Value, dt)
	default:
		lit, lerr := knakk.NewLiteral(t.Object.Value)
		if lerr != nil {
			return knakk.Triple{}, fmt.Errorf("literal %q: %w", t.Object.Value, lerr)
		}
		obj = lit
	}

	return knakk.Triple{Subj: subj.(knakk.Subject), Pred: pred, Obj: obj}, nil
}

func knakkNode(iri rdf.IRI) (knakk.Object, error) {
	if iri.IsBlank() {
		b, err := knakk.NewBlank(strings.TrimPrefix(string(iri), "_:"))
		if err != nil {
			return nil, fmt.Errorf("blank node %q: %w", iri, err)
		}
		return b, nil
	}
	n, err := knakk.NewIRI(string(iri))
	if err != nil {
		return nil, fmt.Errorf("iri %q: %w", iri, err)
	}
	return n, nil
}

func fromKnakk(t knakk.Triple) rdf.Triple {
	out := rdf.Triple{
		Subject:   nodeIRI(t.Subj),
		Predicate: rdf.IRI(t.Pred.String()),
	}
	switch o := t.Obj.(type) {
	case knakk.Literal:
		out.Object = rdf.Object{Value: o.String(), Datatype: literalDatatype(o)}
	default:
		out.Object = rdf.Ref(nodeIRI(t.Obj))
	}
	return out
}

func nodeIRI(term knakk.Term) rdf.IRI {
	if term.Type() == knakk.TermBlank {
		s := term.String()
		if !strings.HasPrefix(s, "_:") {
			s = "_:" + s
		}
		return rdf.IRI(s)
	}
	return rdf.IRI(term.String())
}

// literalDatatype keeps plain strings untagged: xsd:string is the implicit
// datatype of an unadorned literal, so round-tripped plain literals compare
// equal to freshly built ones.
func literalDatatype(l knakk.Literal) rdf.IRI {
	dt := rdf.IRI(l.DataType.String())
	if dt == "http://www.w3.org/2001/XMLSchema#string" {
		return ""
	}
	return dt
}

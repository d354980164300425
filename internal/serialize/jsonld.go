package serialize

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gustycube/casedns/internal/rdf"
	knakk "github.com/knakk/rdf"
	"github.com/piprate/json-gold/ld"
)

// writeJSONLD compacts the graph against a @context built from its prefix
// bindings, so the output carries readable prefixed keys.
func writeJSONLD(g *rdf.Graph, w io.Writer) error {
	ctx := map[string]interface{}{}
	for _, b := range g.Bindings() {
		ctx[b.Prefix] = string(b.Namespace)
	}

	expanded := expand(g.Triples())

	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	compacted, err := proc.Compact(expanded, map[string]interface{}{"@context": ctx}, opts)
	if err != nil {
		return fmt.Errorf("jsonld compact: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(compacted)
}

// expand builds the expanded JSON-LD document: one node object per subject,
// in first-seen order.
func expand(triples []rdf.Triple) []interface{} {
	nodes := map[rdf.IRI]map[string]interface{}{}
	var order []rdf.IRI

	node := func(s rdf.IRI) map[string]interface{} {
		if n, ok := nodes[s]; ok {
			return n
		}
		n := map[string]interface{}{"@id": string(s)}
		nodes[s] = n
		order = append(order, s)
		return n
	}

	const rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	for _, t := range triples {
		n := node(t.Subject)
		if string(t.Predicate) == rdfType && t.Object.IsIRI {
			types, _ := n["@type"].([]interface{})
			n["@type"] = append(types, t.Object.Value)
			continue
		}
		var obj interface{}
		switch {
		case t.Object.IsIRI:
			obj = map[string]interface{}{"@id": t.Object.Value}
		case t.Object.Datatype != "":
			obj = map[string]interface{}{"@value": t.Object.Value, "@type": string(t.Object.Datatype)}
		default:
			obj = map[string]interface{}{"@value": t.Object.Value}
		}
		vals, _ := n[string(t.Predicate)].([]interface{})
		n[string(t.Predicate)] = append(vals, obj)
	}

	out := make([]interface{}, 0, len(order))
	for _, s := range order {
		out = append(out, nodes[s])
	}
	return out
}

// readJSONLD parses a JSON-LD document back into triples by converting it to
// N-Quads and decoding those.
func readJSONLD(r io.Reader) ([]rdf.Triple, error) {
	var doc interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("jsonld decode: %w", err)
	}

	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	opts.Format = "application/n-quads"
	quads, err := proc.ToRDF(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("jsonld to rdf: %w", err)
	}
	nq, ok := quads.(string)
	if !ok {
		return nil, fmt.Errorf("jsonld to rdf: unexpected result type %T", quads)
	}

	dec := knakk.NewTripleDecoder(strings.NewReader(nq), knakk.NTriples)
	var out []rdf.Triple
	for {
		t, err := dec.Decode()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode n-quads: %w", err)
		}
		out = append(out, fromKnakk(t))
	}
}

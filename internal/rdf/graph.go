package rdf

// Graph accumulates triples in insertion order along with the prefix
// bindings used when the graph is serialized. Adding performs no validation.
// Not safe for concurrent writers; the pipeline is single-threaded.
type Graph struct {
	triples  []Triple
	bindings []Binding
	byPrefix map[string]int
}

// NewGraph returns an empty graph with no bindings.
func NewGraph() *Graph {
	return &Graph{byPrefix: make(map[string]int)}
}

// Bind registers a prefix for a namespace. Rebinding an existing prefix
// replaces its namespace.
func (g *Graph) Bind(prefix string, ns IRI) {
	if i, ok := g.byPrefix[prefix]; ok {
		g.bindings[i].Namespace = ns
		return
	}
	g.byPrefix[prefix] = len(g.bindings)
	g.bindings = append(g.bindings, Binding{Prefix: prefix, Namespace: ns})
}

// Bindings returns the prefix bindings in the order they were bound.
func (g *Graph) Bindings() []Binding {
	out := make([]Binding, len(g.bindings))
	copy(out, g.bindings)
	return out
}

// Add appends one triple.
func (g *Graph) Add(t Triple) { g.triples = append(g.triples, t) }

// AddAll appends a statement bundle in order.
func (g *Graph) AddAll(ts []Triple) { g.triples = append(g.triples, ts...) }

// Len returns the number of triples in the graph.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns a copy of the graph's triples in insertion order.
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Objects returns every object of the given subject and predicate.
func (g *Graph) Objects(subject, predicate IRI) []Object {
	var out []Object
	for _, t := range g.triples {
		if t.Subject == subject && t.Predicate == predicate {
			out = append(out, t.Object)
		}
	}
	return out
}

// SubjectsOfType returns the subjects carrying the given type, where typePred
// is the rdf:type predicate IRI.
func (g *Graph) SubjectsOfType(typePred, class IRI) []IRI {
	var out []IRI
	for _, t := range g.triples {
		if t.Predicate == typePred && t.Object.IsIRI && IRI(t.Object.Value) == class {
			out = append(out, t.Subject)
		}
	}
	return out
}

package validate

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/gustycube/casedns/internal/rdf"
	"github.com/gustycube/casedns/internal/vocab"
)

// propertyShape is one sh:property constraint block. minCount/maxCount are
// -1 when unset.
type propertyShape struct {
	path     rdf.IRI
	minCount int
	maxCount int
	datatype rdf.IRI
	class    rdf.IRI
	nodeKind rdf.IRI
}

// nodeShape is a shape with an sh:targetClass.
type nodeShape struct {
	id          rdf.IRI
	targetClass rdf.IRI
	properties  []propertyShape
}

// index groups triples by subject then predicate.
type index map[rdf.IRI]map[rdf.IRI][]rdf.Object

func buildIndex(triples []rdf.Triple) index {
	ix := make(index)
	for _, t := range triples {
		preds, ok := ix[t.Subject]
		if !ok {
			preds = make(map[rdf.IRI][]rdf.Object)
			ix[t.Subject] = preds
		}
		preds[t.Predicate] = append(preds[t.Predicate], t.Object)
	}
	return ix
}

// extractShapes collects every class-targeted node shape with its property
// constraints. Non-IRI sh:path values (property paths) are skipped.
func extractShapes(ont []rdf.Triple) []nodeShape {
	ix := buildIndex(ont)

	var subjects []rdf.IRI
	for s := range ix {
		subjects = append(subjects, s)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i] < subjects[j] })

	var shapes []nodeShape
	for _, s := range subjects {
		targets := ix[s][vocab.ShaclTargetClass]
		if len(targets) == 0 || !targets[0].IsIRI {
			continue
		}
		shape := nodeShape{id: s, targetClass: rdf.IRI(targets[0].Value)}
		for _, p := range ix[s][vocab.ShaclProperty] {
			if !p.IsIRI {
				continue
			}
			ps, ok := propertyShapeAt(ix, rdf.IRI(p.Value))
			if ok {
				shape.properties = append(shape.properties, ps)
			}
		}
		if len(shape.properties) > 0 {
			shapes = append(shapes, shape)
		}
	}
	return shapes
}

func propertyShapeAt(ix index, node rdf.IRI) (propertyShape, bool) {
	preds, ok := ix[node]
	if !ok {
		return propertyShape{}, false
	}
	ps := propertyShape{minCount: -1, maxCount: -1}

	paths := preds[vocab.ShaclPath]
	if len(paths) == 0 || !paths[0].IsIRI || rdf.IRI(paths[0].Value).IsBlank() {
		return propertyShape{}, false
	}
	ps.path = rdf.IRI(paths[0].Value)

	if n, ok := intObject(preds[vocab.ShaclMinCount]); ok {
		ps.minCount = n
	}
	if n, ok := intObject(preds[vocab.ShaclMaxCount]); ok {
		ps.maxCount = n
	}
	if o := firstIRI(preds[vocab.ShaclDatatype]); o != "" {
		ps.datatype = o
	}
	if o := firstIRI(preds[vocab.ShaclClass]); o != "" {
		ps.class = o
	}
	if o := firstIRI(preds[vocab.ShaclNodeKind]); o != "" {
		ps.nodeKind = o
	}
	return ps, true
}

func intObject(objs []rdf.Object) (int, bool) {
	if len(objs) == 0 || objs[0].IsIRI {
		return 0, false
	}
	n, err := strconv.Atoi(objs[0].Value)
	if err != nil {
		return 0, false
	}
	return n, true
}

func firstIRI(objs []rdf.Object) rdf.IRI {
	if len(objs) == 0 || !objs[0].IsIRI {
		return ""
	}
	return rdf.IRI(objs[0].Value)
}

// evaluate checks every focus node of every shape, returning one line per
// violation.
func evaluate(shapes []nodeShape, data []rdf.Triple) []string {
	ix := buildIndex(data)

	byType := make(map[rdf.IRI][]rdf.IRI)
	for s, preds := range ix {
		for _, o := range preds[vocab.RDFType] {
			if o.IsIRI {
				byType[rdf.IRI(o.Value)] = append(byType[rdf.IRI(o.Value)], s)
			}
		}
	}
	for _, nodes := range byType {
		sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	}

	var violations []string
	for _, shape := range shapes {
		for _, focus := range byType[shape.targetClass] {
			for _, ps := range shape.properties {
				violations = append(violations, checkProperty(ix, shape, focus, ps)...)
			}
		}
	}
	return violations
}

func checkProperty(ix index, shape nodeShape, focus rdf.IRI, ps propertyShape) []string {
	objs := ix[focus][ps.path]
	var out []string

	if ps.minCount >= 0 && len(objs) < ps.minCount {
		out = append(out, fmt.Sprintf("%s (shape %s): path %s: %d values, minCount %d",
			focus, shape.id, ps.path, len(objs), ps.minCount))
	}
	if ps.maxCount >= 0 && len(objs) > ps.maxCount {
		out = append(out, fmt.Sprintf("%s (shape %s): path %s: %d values, maxCount %d",
			focus, shape.id, ps.path, len(objs), ps.maxCount))
	}

	for _, o := range objs {
		if ps.datatype != "" {
			if o.IsIRI || !datatypeMatches(o.Datatype, ps.datatype) {
				out = append(out, fmt.Sprintf("%s (shape %s): path %s: value %q is not of datatype %s",
					focus, shape.id, ps.path, o.Value, ps.datatype))
			}
		}
		if ps.class != "" {
			if !o.IsIRI {
				out = append(out, fmt.Sprintf("%s (shape %s): path %s: literal %q where instance of %s expected",
					focus, shape.id, ps.path, o.Value, ps.class))
			} else if types := ix[rdf.IRI(o.Value)][vocab.RDFType]; len(types) > 0 && !hasType(types, ps.class) {
				out = append(out, fmt.Sprintf("%s (shape %s): path %s: %s is not an instance of %s",
					focus, shape.id, ps.path, o.Value, ps.class))
			}
		}
		if ps.nodeKind != "" && !nodeKindMatches(o, ps.nodeKind) {
			out = append(out, fmt.Sprintf("%s (shape %s): path %s: value %q violates nodeKind %s",
				focus, shape.id, ps.path, o.Value, ps.nodeKind))
		}
	}
	return out
}

// datatypeMatches treats an untagged literal as xsd:string.
func datatypeMatches(got, want rdf.IRI) bool {
	if got == "" {
		got = vocab.XSDString
	}
	return got == want
}

func hasType(types []rdf.Object, class rdf.IRI) bool {
	for _, t := range types {
		if t.IsIRI && rdf.IRI(t.Value) == class {
			return true
		}
	}
	return false
}

func nodeKindMatches(o rdf.Object, kind rdf.IRI) bool {
	switch kind {
	case vocab.ShaclIRIKind:
		return o.IsIRI && !rdf.IRI(o.Value).IsBlank()
	case vocab.ShaclLiteralKind:
		return !o.IsIRI
	case vocab.ShaclBlankOrIRI:
		return o.IsIRI
	default:
		return true
	}
}

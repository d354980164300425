package validate

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gustycube/casedns/internal/ident"
	"github.com/gustycube/casedns/internal/ingest"
	"github.com/gustycube/casedns/internal/mapper"
	"github.com/gustycube/casedns/internal/rdf"
	"github.com/gustycube/casedns/internal/serialize"
	"github.com/gustycube/casedns/internal/vocab"
)

const shapesTTL = `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix uco-core: <https://ontology.unifiedcyberontology.org/uco/core/> .
@prefix uco-observable: <https://ontology.unifiedcyberontology.org/uco/observable/> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

uco-observable:DNSRecord a sh:NodeShape ;
    sh:targetClass uco-observable:DNSRecord ;
    sh:property [
        sh:path uco-core:hasFacet ;
        sh:minCount 2 ;
        sh:nodeKind sh:IRI
    ] ;
    sh:property [
        sh:path uco-core:observationTime ;
        sh:datatype xsd:dateTime ;
        sh:maxCount 1 ] .
`

type stubSource struct {
	triples []rdf.Triple
	err     error
}

func (s stubSource) Load(ctx context.Context, urls []string) ([]rdf.Triple, error) {
	return s.triples, s.err
}

func shapeTriples(t *testing.T) []rdf.Triple {
	t.Helper()
	triples, err := serialize.Read(strings.NewReader(shapesTTL), serialize.FormatTurtle)
	if err != nil {
		t.Fatalf("parse shapes: %v", err)
	}
	return triples
}

func recordTriples(t *testing.T) []rdf.Triple {
	t.Helper()
	m := mapper.New("http://example.org/kb/", ident.NewDeterministic(5))
	triples, err := m.MapRow(ingest.Row{
		Line: 2,
		Fields: map[string]string{
			mapper.ColDomainName:         "evil.org",
			mapper.ColKindOfRelationship: "resolves to",
			mapper.ColIPv4Address:        "203.0.113.5",
			mapper.ColTimeDateStamp:      "2024-01-15T10:30:00Z",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return triples
}

func writeGraph(t *testing.T, triples []rdf.Triple) string {
	t.Helper()
	g := rdf.NewGraph()
	g.Bind("kb", "http://example.org/kb/")
	g.Bind("uco-core", rdf.IRI(vocab.CoreNS))
	g.Bind("uco-observable", rdf.IRI(vocab.ObservableNS))
	g.Bind("xsd", rdf.IRI(vocab.XSDNS))
	g.AddAll(triples)

	path := filepath.Join(t.TempDir(), "graph.json")
	if err := serialize.WriteFile(g, path, serialize.FormatJSONLD); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractShapes(t *testing.T) {
	shapes := extractShapes(shapeTriples(t))
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	s := shapes[0]
	if s.targetClass != vocab.ObservableDNSRecord {
		t.Errorf("unexpected target class: %s", s.targetClass)
	}
	if len(s.properties) != 2 {
		t.Fatalf("expected 2 property shapes, got %d", len(s.properties))
	}
	byPath := make(map[rdf.IRI]propertyShape)
	for _, ps := range s.properties {
		byPath[ps.path] = ps
	}
	facet := byPath[vocab.CoreHasFacet]
	if facet.minCount != 2 || facet.nodeKind != vocab.ShaclIRIKind {
		t.Errorf("unexpected hasFacet constraint: %+v", facet)
	}
	obs := byPath[vocab.CoreObservationTime]
	if obs.maxCount != 1 || obs.datatype != vocab.XSDDateTime {
		t.Errorf("unexpected observationTime constraint: %+v", obs)
	}
}

func TestCheck_Conforming(t *testing.T) {
	path := writeGraph(t, recordTriples(t))
	c := NewShapeChecker(stubSource{triples: shapeTriples(t)}, nil, serialize.FormatJSONLD)

	report, err := c.Check(context.Background(), path)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !report.Conforms {
		t.Errorf("expected conforming graph, got violations:\n%s", report.Text)
	}
}

func TestCheck_MissingFacets(t *testing.T) {
	var trimmed []rdf.Triple
	for _, tr := range recordTriples(t) {
		if tr.Predicate == vocab.CoreHasFacet {
			continue
		}
		trimmed = append(trimmed, tr)
	}
	path := writeGraph(t, trimmed)
	c := NewShapeChecker(stubSource{triples: shapeTriples(t)}, nil, serialize.FormatJSONLD)

	report, err := c.Check(context.Background(), path)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if report.Conforms {
		t.Fatal("expected nonconforming graph")
	}
	if !strings.Contains(report.Text, "hasFacet") || !strings.Contains(report.Text, "minCount") {
		t.Errorf("expected report to name the violated path, got:\n%s", report.Text)
	}
}

func TestCheck_DuplicateObservationTime(t *testing.T) {
	triples := recordTriples(t)
	for _, tr := range triples {
		if tr.Predicate == vocab.CoreObservationTime {
			extra := tr
			extra.Object = rdf.Typed("2024-02-01T00:00:00Z", vocab.XSDDateTime)
			triples = append(triples, extra)
			break
		}
	}
	path := writeGraph(t, triples)
	c := NewShapeChecker(stubSource{triples: shapeTriples(t)}, nil, serialize.FormatJSONLD)

	report, err := c.Check(context.Background(), path)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if report.Conforms {
		t.Fatal("expected maxCount violation")
	}
	if !strings.Contains(report.Text, "maxCount") {
		t.Errorf("expected maxCount in report, got:\n%s", report.Text)
	}
}

func TestCheck_OntologyUnavailable(t *testing.T) {
	path := writeGraph(t, recordTriples(t))
	c := NewShapeChecker(stubSource{err: errors.New("connection refused")}, nil, serialize.FormatJSONLD)

	_, err := c.Check(context.Background(), path)
	var ue *UnavailableError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
	if ue.Source != "ontology" {
		t.Errorf("unexpected source: %q", ue.Source)
	}
}

func TestCheck_UnreadableData(t *testing.T) {
	c := NewShapeChecker(stubSource{triples: shapeTriples(t)}, nil, serialize.FormatJSONLD)
	_, err := c.Check(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	var ue *UnavailableError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UnavailableError, got %v", err)
	}
}

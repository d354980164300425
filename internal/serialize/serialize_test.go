package serialize

import (
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/gustycube/casedns/internal/ident"
	"github.com/gustycube/casedns/internal/ingest"
	"github.com/gustycube/casedns/internal/mapper"
	"github.com/gustycube/casedns/internal/rdf"
	"github.com/gustycube/casedns/internal/vocab"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json-ld", FormatJSONLD, false},
		{"jsonld", FormatJSONLD, false},
		{"JSON-LD", FormatJSONLD, false},
		{"turtle", FormatTurtle, false},
		{"ttl", FormatTurtle, false},
		{"ntriples", FormatNTriples, false},
		{"nt", FormatNTriples, false},
		{"n-triples", FormatNTriples, false},
		{"rdfxml", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGuessFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.json", FormatJSONLD},
		{"out.jsonld", FormatJSONLD},
		{"out.TTL", FormatTurtle},
		{"out.turtle", FormatTurtle},
		{"out.nt", FormatNTriples},
		{"out.rdf", FormatJSONLD},
		{"out", FormatJSONLD},
	}
	for _, tt := range tests {
		if got := GuessFormat(tt.path); got != tt.want {
			t.Errorf("GuessFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var serr *Error
	err := Write(rdf.NewGraph(), nil, Format("rdfxml"))
	if !errors.As(err, &serr) {
		t.Fatalf("expected *Error, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatJSONLD, FormatTurtle, FormatNTriples} {
		t.Run(string(f), func(t *testing.T) {
			g := sampleGraph(t)
			path := filepath.Join(t.TempDir(), "graph.out")

			if err := WriteFile(g, path, f); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			got, err := ReadFile(path, f)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			assertSameTriples(t, g.Triples(), got)
		})
	}
}

func TestRoundTrip_Datatypes(t *testing.T) {
	g := sampleGraph(t)
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteFile(g, path, FormatJSONLD); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path, FormatJSONLD)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var sawTime, sawPlain bool
	for _, tr := range got {
		switch tr.Predicate {
		case vocab.CoreObservationTime:
			if tr.Object.Datatype != vocab.XSDDateTime {
				t.Errorf("observationTime datatype = %q, want xsd:dateTime", tr.Object.Datatype)
			}
			sawTime = true
		case vocab.ObservableRecordType:
			if tr.Object.Datatype != "" || tr.Object.IsIRI {
				t.Errorf("recordType should round-trip as a plain literal, got %+v", tr.Object)
			}
			sawPlain = true
		}
	}
	if !sawTime || !sawPlain {
		t.Errorf("round-trip lost statements: sawTime=%v sawPlain=%v", sawTime, sawPlain)
	}
}

func TestRoundTrip_EmptyGraph(t *testing.T) {
	g := rdf.NewGraph()
	g.Bind("kb", "http://example.org/kb/")
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := WriteFile(g, path, FormatJSONLD); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path, FormatJSONLD)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no triples from empty graph, got %d", len(got))
	}
}

func TestReadFile_MissingFile(t *testing.T) {
	var serr *Error
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.json"), FormatJSONLD)
	if !errors.As(err, &serr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if serr.Path == "" {
		t.Error("expected error to carry the path")
	}
}

func sampleGraph(t *testing.T) *rdf.Graph {
	t.Helper()
	g := rdf.NewGraph()
	g.Bind("kb", "http://example.org/kb/")
	g.Bind("uco-core", rdf.IRI(vocab.CoreNS))
	g.Bind("uco-observable", rdf.IRI(vocab.ObservableNS))
	g.Bind("xsd", rdf.IRI(vocab.XSDNS))

	m := mapper.New("http://example.org/kb/", ident.NewDeterministic(3))
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
	g.AddAll(triples)
	return g
}

func assertSameTriples(t *testing.T, want, got []rdf.Triple) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("triple count mismatch: want %d, got %d", len(want), len(got))
	}
	key := func(tr rdf.Triple) string {
		o := tr.Object
		return string(tr.Subject) + "|" + string(tr.Predicate) + "|" + o.Value + "|" + string(o.Datatype)
	}
	a, b := make([]string, 0, len(want)), make([]string, 0, len(got))
	for _, tr := range want {
		a = append(a, key(tr))
	}
	for _, tr := range got {
		b = append(b, key(tr))
	}
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("triple mismatch:\nwant %s\ngot  %s", a[i], b[i])
		}
	}
}

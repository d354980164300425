// Package mapper turns passive-DNS CSV rows into CASE/UCO graph statements.
// The mapping is fixed: every row yields one DNSRecord with a domain-name
// facet and an IPv4-address facet, plus one Resolved_To relationship between
// the facets. There is no per-row branching; the kindOfRelationship column is
// required to be present but its value does not vary the output.
package mapper

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/gustycube/casedns/internal/ident"
	"github.com/gustycube/casedns/internal/ingest"
	"github.com/gustycube/casedns/internal/metrics"
	"github.com/gustycube/casedns/internal/rdf"
	"github.com/gustycube/casedns/internal/vocab"
	"go.opentelemetry.io/otel"
)

// Required CSV column names, matching the original passive-DNS export header.
const (
	ColDomainName         = "observable:DomainName"
	ColKindOfRelationship = "core:kindOfRelationship"
	ColIPv4Address        = "observable:IPv4Address"
	ColTimeDateStamp      = "observable:timeDateStamp"
)

// KindResolvedTo is the relationship kind emitted for every row.
const KindResolvedTo = "Resolved_To"

// MissingFieldError reports a row lacking one of the required columns.
type MissingFieldError struct {
	Field string
	Line  int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("csv line %d: missing required field %q", e.Line, e.Field)
}

// Mapper builds statement bundles for rows, minting node IRIs under the
// knowledge-base namespace.
type Mapper struct {
	kb  rdf.IRI
	gen *ident.Generator
}

// New returns a Mapper minting identifiers under kbIRI using gen.
func New(kbIRI rdf.IRI, gen *ident.Generator) *Mapper {
	return &Mapper{kb: kbIRI, gen: gen}
}

// MapRow maps one row to its fixed statement bundle. Exactly four
// identifiers are drawn: record, domain facet, IP facet, relationship. Both
// facets exist in the bundle before the relationship that references them.
func (m *Mapper) MapRow(row ingest.Row) ([]rdf.Triple, error) {
	domain, ok := row.Fields[ColDomainName]
	if !ok {
		return nil, &MissingFieldError{Field: ColDomainName, Line: row.Line}
	}
	if _, ok := row.Fields[ColKindOfRelationship]; !ok {
		return nil, &MissingFieldError{Field: ColKindOfRelationship, Line: row.Line}
	}
	ip, ok := row.Fields[ColIPv4Address]
	if !ok {
		return nil, &MissingFieldError{Field: ColIPv4Address, Line: row.Line}
	}
	stamp, ok := row.Fields[ColTimeDateStamp]
	if !ok {
		return nil, &MissingFieldError{Field: ColTimeDateStamp, Line: row.Line}
	}

	record := m.mint("DNSRecord")
	domainFacet := m.mint("DomainNameFacet")
	ipFacet := m.mint("IPv4AddressFacet")
	relationship := m.mint("Relationship")

	triples := []rdf.Triple{
		{Subject: record, Predicate: vocab.RDFType, Object: rdf.Ref(vocab.ObservableDNSRecord)},
		{Subject: record, Predicate: vocab.CoreObservationTime, Object: rdf.Typed(stamp, vocab.XSDDateTime)},
		{Subject: record, Predicate: vocab.ObservableRecordType, Object: rdf.Str("A")},
		{Subject: record, Predicate: vocab.ObservableIsPassiveDNS, Object: boolLit(true)},

		{Subject: domainFacet, Predicate: vocab.RDFType, Object: rdf.Ref(vocab.ObservableDomainNameFacet)},
		{Subject: domainFacet, Predicate: vocab.ObservableValue, Object: rdf.Str(domain)},

		{Subject: ipFacet, Predicate: vocab.RDFType, Object: rdf.Ref(vocab.ObservableIPv4AddressFacet)},
		{Subject: ipFacet, Predicate: vocab.ObservableAddressValue, Object: rdf.Str(ip)},

		{Subject: record, Predicate: vocab.CoreHasFacet, Object: rdf.Ref(domainFacet)},
		{Subject: record, Predicate: vocab.CoreHasFacet, Object: rdf.Ref(ipFacet)},

		{Subject: relationship, Predicate: vocab.RDFType, Object: rdf.Ref(vocab.CoreRelationship)},
		{Subject: relationship, Predicate: vocab.CoreSource, Object: rdf.Ref(domainFacet)},
		{Subject: relationship, Predicate: vocab.CoreTarget, Object: rdf.Ref(ipFacet)},
		{Subject: relationship, Predicate: vocab.CoreIsDirectional, Object: boolLit(true)},
		{Subject: relationship, Predicate: vocab.CoreKindOfRelationship, Object: rdf.Str(KindResolvedTo)},
	}

	metrics.StatementsTotal.WithLabelValues("record").Add(4)
	metrics.StatementsTotal.WithLabelValues("facet").Add(6)
	metrics.StatementsTotal.WithLabelValues("relationship").Add(5)
	return triples, nil
}

// ConvertFile reads every row of the CSV at path, in order, merging each
// row's statements into g. The first bad row aborts the whole conversion;
// nothing is rolled back, but callers serialize only after a nil return.
// Returns the number of rows converted.
func (m *Mapper) ConvertFile(ctx context.Context, path string, g *rdf.Graph) (int, error) {
	tr := otel.Tracer("casedns/mapper")
	_, span := tr.Start(ctx, "ConvertFile")
	defer span.End()

	r, closer, err := ingest.Open(path)
	if err != nil {
		return 0, err
	}
	defer closer()

	rows := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			metrics.RowsTotal.WithLabelValues("error").Inc()
			return rows, err
		}
		triples, err := m.MapRow(row)
		if err != nil {
			metrics.RowsTotal.WithLabelValues("error").Inc()
			return rows, err
		}
		g.AddAll(triples)
		rows++
		metrics.RowsTotal.WithLabelValues("ok").Inc()
	}
}

func (m *Mapper) mint(class string) rdf.IRI {
	return m.kb + rdf.IRI(class+"-"+m.gen.Next())
}

func boolLit(b bool) rdf.Object {
	return rdf.Typed(strconv.FormatBool(b), vocab.XSDBoolean)
}

// Package validate checks a serialized graph against the SHACL property
// constraints embedded in the UCO ontology. It is deliberately narrow: node
// shapes targeted by class, with cardinality, datatype, class and node-kind
// constraints — the subset the UCO shapes exercise for the graphs this tool
// produces. It is not a general SHACL engine.
package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/gustycube/casedns/internal/metrics"
	"github.com/gustycube/casedns/internal/rdf"
	"github.com/gustycube/casedns/internal/serialize"
	"go.opentelemetry.io/otel"
)

// Report is the outcome of a conformance check.
type Report struct {
	Conforms bool
	Text     string
}

// Checker validates a serialized graph file. The pipeline depends on this
// seam, not on a concrete engine, so tests can substitute a stub.
type Checker interface {
	Check(ctx context.Context, dataPath string) (Report, error)
}

// OntologySource supplies the constraint graph. Satisfied by
// *ontology.Loader.
type OntologySource interface {
	Load(ctx context.Context, urls []string) ([]rdf.Triple, error)
}

// UnavailableError means validation could not be performed at all: ontology
// resources unreachable or the data graph unparseable. It is never a
// statement about conformance.
type UnavailableError struct {
	Source string
	Err    error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("cannot validate: %s: %v", e.Source, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// ShapeChecker loads ontology shapes from an OntologySource and evaluates
// them against the data graph.
type ShapeChecker struct {
	source OntologySource
	urls   []string
	format serialize.Format
}

// NewShapeChecker builds a ShapeChecker reading shapes from urls and parsing
// the data graph as format.
func NewShapeChecker(source OntologySource, urls []string, format serialize.Format) *ShapeChecker {
	return &ShapeChecker{source: source, urls: urls, format: format}
}

// Check implements Checker.
func (c *ShapeChecker) Check(ctx context.Context, dataPath string) (Report, error) {
	tr := otel.Tracer("casedns/validate")
	ctx, span := tr.Start(ctx, "Check")
	defer span.End()

	ont, err := c.source.Load(ctx, c.urls)
	if err != nil {
		metrics.ValidationsTotal.WithLabelValues("unavailable").Inc()
		return Report{}, &UnavailableError{Source: "ontology", Err: err}
	}

	data, err := serialize.ReadFile(dataPath, c.format)
	if err != nil {
		metrics.ValidationsTotal.WithLabelValues("unavailable").Inc()
		return Report{}, &UnavailableError{Source: dataPath, Err: err}
	}

	shapes := extractShapes(ont)
	violations := evaluate(shapes, data)
	if len(violations) > 0 {
		metrics.ValidationsTotal.WithLabelValues("nonconforming").Inc()
		return Report{Conforms: false, Text: strings.Join(violations, "\n")}, nil
	}
	metrics.ValidationsTotal.WithLabelValues("conforming").Inc()
	return Report{Conforms: true}, nil
}

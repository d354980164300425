// Package rdf holds the triple model and the in-memory graph the converter
// builds before serialization. The graph is write-once: statements are added
// while rows are processed and never updated or removed.
package rdf

import "strings"

// IRI is an absolute IRI, or a blank-node label carrying the "_:" prefix when
// a parsed graph contains anonymous nodes.
type IRI string

// IsBlank reports whether the IRI is a blank-node label.
func (i IRI) IsBlank() bool { return strings.HasPrefix(string(i), "_:") }

// Object is the object position of a triple: either a node reference or a
// literal with an optional datatype.
type Object struct {
	Value    string
	Datatype IRI
	IsIRI    bool
}

// Ref returns an Object referencing another node.
func Ref(iri IRI) Object { return Object{Value: string(iri), IsIRI: true} }

// Str returns a plain string literal Object.
func Str(v string) Object { return Object{Value: v} }

// Typed returns a literal Object tagged with a datatype IRI.
func Typed(v string, datatype IRI) Object { return Object{Value: v, Datatype: datatype} }

// Triple is one (subject, predicate, object) statement.
type Triple struct {
	Subject   IRI
	Predicate IRI
	Object    Object
}

// Binding associates a prefix label with a namespace IRI. Bindings shorten
// the serialized form only; they never change the triples.
type Binding struct {
	Prefix    string
	Namespace IRI
}

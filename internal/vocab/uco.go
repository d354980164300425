// Package vocab defines the UCO and W3C vocabulary IRIs the converter emits.
// The terms mirror the CASE/UCO ontology; only the subset this tool uses is
// declared.
package vocab

import "github.com/gustycube/casedns/internal/rdf"

// Namespace base IRIs.
const (
	// CoreNS is the UCO core namespace.
	CoreNS = "https://ontology.unifiedcyberontology.org/uco/core/"

	// ObservableNS is the UCO observable namespace.
	ObservableNS = "https://ontology.unifiedcyberontology.org/uco/observable/"

	// VocabularyNS is the UCO vocabulary namespace.
	VocabularyNS = "https://ontology.unifiedcyberontology.org/uco/vocabulary/"

	// RDFNS is the RDF syntax namespace.
	RDFNS = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// XSDNS is the XML Schema datatype namespace.
	XSDNS = "http://www.w3.org/2001/XMLSchema#"

	// ShaclNS is the SHACL constraint vocabulary namespace.
	ShaclNS = "http://www.w3.org/ns/shacl#"
)

// RDF and XSD terms.
const (
	RDFType rdf.IRI = RDFNS + "type"

	XSDDateTime rdf.IRI = XSDNS + "dateTime"
	XSDBoolean  rdf.IRI = XSDNS + "boolean"
	XSDString   rdf.IRI = XSDNS + "string"
)

// Class IRIs for the observables this tool creates.
const (
	// ObservableDNSRecord is one observed DNS resolution event.
	ObservableDNSRecord rdf.IRI = ObservableNS + "DNSRecord"

	// ObservableDomainNameFacet holds the domain-name attributes of a record.
	ObservableDomainNameFacet rdf.IRI = ObservableNS + "DomainNameFacet"

	// ObservableIPv4AddressFacet holds the resolved-address attributes.
	ObservableIPv4AddressFacet rdf.IRI = ObservableNS + "IPv4AddressFacet"

	// CoreRelationship is the directional link between two observables.
	CoreRelationship rdf.IRI = CoreNS + "Relationship"
)

// Property IRIs.
const (
	CoreObservationTime    rdf.IRI = CoreNS + "observationTime"
	CoreHasFacet           rdf.IRI = CoreNS + "hasFacet"
	CoreSource             rdf.IRI = CoreNS + "source"
	CoreTarget             rdf.IRI = CoreNS + "target"
	CoreIsDirectional      rdf.IRI = CoreNS + "isDirectional"
	CoreKindOfRelationship rdf.IRI = CoreNS + "kindOfRelationship"

	ObservableRecordType   rdf.IRI = ObservableNS + "recordType"
	ObservableIsPassiveDNS rdf.IRI = ObservableNS + "isPassiveDNS"
	ObservableValue        rdf.IRI = ObservableNS + "value"
	ObservableAddressValue rdf.IRI = ObservableNS + "addressValue"
)

// SHACL terms read by the validator. Shape definitions are embedded in the
// fetched UCO ontology files.
const (
	ShaclTargetClass rdf.IRI = ShaclNS + "targetClass"
	ShaclProperty    rdf.IRI = ShaclNS + "property"
	ShaclPath        rdf.IRI = ShaclNS + "path"
	ShaclMinCount    rdf.IRI = ShaclNS + "minCount"
	ShaclMaxCount    rdf.IRI = ShaclNS + "maxCount"
	ShaclDatatype    rdf.IRI = ShaclNS + "datatype"
	ShaclClass       rdf.IRI = ShaclNS + "class"
	ShaclNodeKind    rdf.IRI = ShaclNS + "nodeKind"
	ShaclIRIKind     rdf.IRI = ShaclNS + "IRI"
	ShaclLiteralKind rdf.IRI = ShaclNS + "Literal"
	ShaclBlankOrIRI  rdf.IRI = ShaclNS + "BlankNodeOrIRI"
)

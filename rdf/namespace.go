package rdf

import "strings"

// Namespace is a URI prefix for a vocabulary.
type Namespace string

// Term returns the Symbol for local within the namespace.
func (ns Namespace) Term(local string) Symbol { return Symbol{URI: string(ns) + local} }

// URI returns the namespace prefix.
func (ns Namespace) URI() string { return string(ns) }

// Vocabulary namespaces. LINK, HTTP and HTTPH are the vocabularies the fetch
// layer records request and response metadata with.
const (
	LINK   Namespace = "http://www.w3.org/2007/ont/link#"
	HTTP   Namespace = "http://www.w3.org/2007/ont/http#"
	HTTPH  Namespace = "http://www.w3.org/2007/ont/httph#"
	RDF    Namespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS   Namespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWL    Namespace = "http://www.w3.org/2002/07/owl#"
	XSD    Namespace = "http://www.w3.org/2001/XMLSchema#"
	DC     Namespace = "http://purl.org/dc/elements/1.1/"
	DCT    Namespace = "http://purl.org/dc/terms/"
	FOAF   Namespace = "http://xmlns.com/foaf/0.1/"
	ACL    Namespace = "http://www.w3.org/ns/auth/acl#"
	CERT   Namespace = "http://www.w3.org/ns/auth/cert#"
	LDP    Namespace = "http://www.w3.org/ns/ldp#"
	STAT   Namespace = "http://www.w3.org/ns/posix/stat#"
	SPACE  Namespace = "http://www.w3.org/ns/pim/space#"
	SIOC   Namespace = "http://rdfs.org/sioc/ns#"
	RSS    Namespace = "http://purl.org/rss/1.0/"
	SCHEMA Namespace = "http://schema.org/"

	// IANALinkRelations is the base for registered Link header relation types.
	IANALinkRelations Namespace = "http://www.iana.org/assignments/link-relations/"
)

// Prefixes returns a fresh map of conventional prefixes to their namespaces.
func Prefixes() map[string]Namespace {
	return map[string]Namespace{
		"link":   LINK,
		"http":   HTTP,
		"httph":  HTTPH,
		"rdf":    RDF,
		"rdfs":   RDFS,
		"owl":    OWL,
		"xsd":    XSD,
		"dc":     DC,
		"dct":    DCT,
		"foaf":   FOAF,
		"acl":    ACL,
		"cert":   CERT,
		"ldp":    LDP,
		"stat":   STAT,
		"space":  SPACE,
		"sioc":   SIOC,
		"rss":    RSS,
		"schema": SCHEMA,
	}
}

// Expand resolves a compact "prefix:local" name against Prefixes.
func Expand(curie string) (Symbol, bool) {
	prefix, local, ok := strings.Cut(curie, ":")
	if !ok {
		return Symbol{}, false
	}
	ns, ok := Prefixes()[prefix]
	if !ok {
		return Symbol{}, false
	}
	return ns.Term(local), true
}

// Frequently used terms.
var (
	RDFType        = RDF.Term("type")
	RDFSLabel      = RDFS.Term("label")
	XSDString      = XSD.Term("string")
	LinkRequested  = LINK.Term("requestedURI")
	LinkResponse   = LINK.Term("response")
	HTTPStatus     = HTTP.Term("status")
	HTTPStatusText = HTTP.Term("statusText")
)

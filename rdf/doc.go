// Package rdf provides the RDF term model used by the pointed-graph packages.
//
// A Term is exactly one of Symbol, Literal or BlankNode. The set is closed, so a
// type switch over those three cases is exhaustive:
//
//	switch t := term.(type) {
//	case rdf.Symbol:
//	    // t.URI
//	case rdf.Literal:
//	    // t.Value, t.Lang, t.Datatype
//	case rdf.BlankNode:
//	    // t.ID
//	}
//
// Values from untyped sources (decoded JSON, RDF/JS-shaped maps) are turned into
// terms with FromTagged, which validates the "termType" tag instead of trusting it.
//
// A Statement is a triple plus an optional Why term naming the document or
// response node it was recorded for.
//
// The package also carries the vocabulary namespaces (LINK, HTTP, HTTPH, RDF,
// RDFS, OWL, FOAF, ACL, ...) and streaming codecs:
//   - Decode: NewDecoder for N-Triples, N-Quads and JSON-LD.
//   - Encode: NewEncoder for N-Triples and N-Quads.
//   - Parse: push-style decoding into a Handler.
//   - DetectFormat: sniffing for bodies served without a usable media type.
//
// Example:
//
//	dec, err := rdf.NewDecoder(strings.NewReader(input), rdf.FormatNTriples)
//	if err != nil {
//	    // handle error
//	}
//	defer dec.Close()
//
//	for {
//	    stmt, err := dec.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    // process stmt.Subject, stmt.Predicate, stmt.Object
//	}
//
// Unsupported formats return ErrUnsupportedFormat; use Code to map any error
// from this package to an ErrorCode.
package rdf

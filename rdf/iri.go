package rdf

import (
	"fmt"
	"net/url"
	"strings"
)

// ResolveIRI resolves ref against base according to RFC 3986. Absolute
// references are returned unchanged.
func ResolveIRI(base, ref string) (string, error) {
	relURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid IRI %q: %w", ref, err)
	}
	if relURL.Scheme != "" || base == "" {
		return ref, nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base IRI %q: %w", base, err)
	}
	return baseURL.ResolveReference(relURL).String(), nil
}

// ValidateIRI performs basic RFC 3987 checks: the IRI must parse, a scheme
// must start with a letter and the IRI must not contain control characters,
// spaces or angle brackets. Relative IRIs are accepted.
func ValidateIRI(iri string) error {
	if iri == "" {
		return fmt.Errorf("empty IRI")
	}
	parsed, err := url.Parse(iri)
	if err != nil {
		return fmt.Errorf("invalid IRI syntax: %w", err)
	}
	if parsed.Scheme == "" && strings.HasPrefix(iri, "//") {
		return fmt.Errorf("relative IRI without scheme: %s", iri)
	}
	if parsed.Scheme != "" {
		first := parsed.Scheme[0]
		if !((first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')) {
			return fmt.Errorf("scheme must start with a letter: %s", iri)
		}
	}
	for i, r := range iri {
		if r <= 0x20 || r == '<' || r == '>' {
			return fmt.Errorf("invalid character %q at position %d in IRI: %s", r, i, iri)
		}
	}
	return nil
}

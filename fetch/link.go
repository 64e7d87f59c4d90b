package fetch

import (
	"strings"

	"github.com/geoknoesis/pointedgraph/rdf"
)

// Link is one relation from an HTTP Link header.
type Link struct {
	Rel    rdf.Symbol
	Target rdf.Symbol
}

// ParseLinkHeader parses Link header values such as
//
//	<.acl>; rel="acl", <meta>; rel="describedby"
//
// Targets are resolved against base. Registered relation names map into the
// IANA link relation namespace; relations that are absolute URIs are kept as
// they are. A value with several space-separated relations yields one Link per
// relation. Malformed entries are skipped.
func ParseLinkHeader(values []string, base string) []Link {
	var links []Link
	for _, value := range values {
		for _, entry := range splitLinkEntries(value) {
			target, params, ok := cutLinkTarget(entry)
			if !ok {
				continue
			}
			resolved, err := rdf.ResolveIRI(base, target)
			if err != nil || rdf.ValidateIRI(resolved) != nil {
				continue
			}
			for _, rel := range strings.Fields(linkParam(params, "rel")) {
				links = append(links, Link{Rel: relSymbol(rel), Target: rdf.Sym(resolved)})
			}
		}
	}
	return links
}

// splitLinkEntries splits on commas outside angle brackets and quotes.
func splitLinkEntries(value string) []string {
	var (
		entries []string
		inURI   bool
		inQuote bool
		start   int
	)
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '<':
			if !inQuote {
				inURI = true
			}
		case '>':
			if !inQuote {
				inURI = false
			}
		case '"':
			if !inURI {
				inQuote = !inQuote
			}
		case ',':
			if !inURI && !inQuote {
				entries = append(entries, value[start:i])
				start = i + 1
			}
		}
	}
	return append(entries, value[start:])
}

func cutLinkTarget(entry string) (target, params string, ok bool) {
	entry = strings.TrimSpace(entry)
	if !strings.HasPrefix(entry, "<") {
		return "", "", false
	}
	end := strings.IndexByte(entry, '>')
	if end < 0 {
		return "", "", false
	}
	return entry[1:end], entry[end+1:], true
}

func linkParam(params, name string) string {
	for _, param := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), name) {
			continue
		}
		return strings.Trim(strings.TrimSpace(value), `"`)
	}
	return ""
}

func relSymbol(rel string) rdf.Symbol {
	if strings.Contains(rel, ":") {
		return rdf.Sym(rel)
	}
	return rdf.IANALinkRelations.Term(strings.ToLower(rel))
}

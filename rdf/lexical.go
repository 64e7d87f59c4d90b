package rdf

import "strings"

// isValidLangTag checks the BCP 47 shape used by RDF 1.2: a primary subtag of
// 1-8 letters, alphanumeric subtags, and an optional --ltr or --rtl direction.
func isValidLangTag(tag string) bool {
	if base, dir, ok := strings.Cut(tag, "--"); ok {
		if dir != "ltr" && dir != "rtl" {
			return false
		}
		tag = base
	}
	if tag == "" {
		return false
	}
	for i, part := range strings.Split(tag, "-") {
		if part == "" || (i == 0 && len(part) > 8) {
			return false
		}
		for j := 0; j < len(part); j++ {
			ch := part[j]
			letter := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
			digit := ch >= '0' && ch <= '9'
			if !letter && (i == 0 || !digit) {
				return false
			}
		}
	}
	return true
}

// DetectFormat guesses the format of a document from its first bytes. It
// recognizes JSON-LD, N-Quads and N-Triples and reports false for anything
// else, Turtle included.
func DetectFormat(sample []byte) (Format, bool) {
	text := strings.TrimSpace(string(sample))
	if text == "" {
		return "", false
	}
	if text[0] == '{' || text[0] == '[' {
		return FormatJSONLD, true
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "<") && !strings.HasPrefix(line, "_:") {
			return "", false
		}
		if _, err := parseNTLine(line, FormatNQuads, Options{}); err != nil {
			return "", false
		}
		if _, err := parseNTLine(line, FormatNTriples, Options{}); err != nil {
			return FormatNQuads, true
		}
		return FormatNTriples, true
	}
	return "", false
}

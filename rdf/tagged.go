package rdf

import "fmt"

// FromTagged builds a Term from an untyped value carrying a "termType" tag,
// such as a decoded JSON object. Both the short tags ("symbol", "literal",
// "bnode") and the RDF/JS names ("NamedNode", "Literal", "BlankNode") are accepted.
func FromTagged(v map[string]any) (Term, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrNotATerm)
	}
	tag, ok := v["termType"].(string)
	if !ok || tag == "" {
		return nil, fmt.Errorf("%w: missing termType in %v", ErrNotATerm, v)
	}
	switch tag {
	case "symbol", "NamedNode":
		uri := firstString(v, "uri", "value")
		if uri == "" {
			return nil, fmt.Errorf("%w: symbol without uri", ErrInvalidTerm)
		}
		return Symbol{URI: uri}, nil
	case "literal", "Literal":
		value, ok := v["value"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: literal without value", ErrInvalidTerm)
		}
		lit := Literal{Value: value, Lang: firstString(v, "lang", "language")}
		switch dt := v["datatype"].(type) {
		case string:
			lit.Datatype = Symbol{URI: dt}
		case map[string]any:
			term, err := FromTagged(dt)
			if err != nil {
				return nil, fmt.Errorf("literal datatype: %w", err)
			}
			sym, ok := term.(Symbol)
			if !ok {
				return nil, fmt.Errorf("%w: literal datatype is a %s", ErrInvalidTerm, term.Kind())
			}
			lit.Datatype = sym
		}
		return lit, nil
	case "bnode", "BlankNode":
		id := firstString(v, "id", "value")
		if id == "" {
			return nil, fmt.Errorf("%w: blank node without id", ErrInvalidTerm)
		}
		return BNode(id), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTermType, tag)
	}
}

func firstString(v map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := v[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

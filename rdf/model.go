package rdf

import (
	"fmt"
	"strings"
)

// Kind identifies the classification of an RDF term.
type Kind uint8

const (
	// KindSymbol represents a URI-identified resource.
	KindSymbol Kind = iota + 1
	// KindLiteral represents a literal value.
	KindLiteral
	// KindBlankNode represents an anonymous resource.
	KindBlankNode
)

// String returns the tag used for the kind in untyped term sources.
func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindLiteral:
		return "literal"
	case KindBlankNode:
		return "bnode"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Term is a value that can appear in RDF statements.
// The set of implementations is closed: Symbol, Literal and BlankNode.
type Term interface {
	Kind() Kind
	String() string
	isTerm()
}

// Symbol represents a URI-identified resource.
type Symbol struct {
	// URI is the absolute URI of the resource.
	URI string
}

// Kind returns KindSymbol.
func (s Symbol) Kind() Kind { return KindSymbol }

// String returns the URI in angle brackets.
func (s Symbol) String() string { return "<" + s.URI + ">" }

func (Symbol) isTerm() {}

// Literal represents an RDF literal.
type Literal struct {
	// Value is the lexical form.
	Value string
	// Lang is the language tag, if any.
	Lang string
	// Datatype is the datatype, if any.
	Datatype Symbol
}

// Kind returns KindLiteral.
func (l Literal) Kind() Kind { return KindLiteral }

// String returns a string representation of the literal.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Value, l.Lang)
	}
	if l.Datatype.URI != "" {
		return fmt.Sprintf("%q^^<%s>", l.Value, l.Datatype.URI)
	}
	return fmt.Sprintf("%q", l.Value)
}

func (Literal) isTerm() {}

// BlankNode represents an RDF blank node.
type BlankNode struct {
	// ID is the identifier without the "_:" prefix.
	ID string
}

// Kind returns KindBlankNode.
func (b BlankNode) Kind() Kind { return KindBlankNode }

// String returns the identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

func (BlankNode) isTerm() {}

// Sym returns a Symbol for uri.
func Sym(uri string) Symbol { return Symbol{URI: uri} }

// Lit returns a plain literal.
func Lit(value string) Literal { return Literal{Value: value} }

// LangLit returns a language-tagged literal.
func LangLit(value, lang string) Literal { return Literal{Value: value, Lang: lang} }

// TypedLit returns a literal with a datatype.
func TypedLit(value string, datatype Symbol) Literal {
	return Literal{Value: value, Datatype: datatype}
}

// BNode returns a blank node. A leading "_:" is stripped.
func BNode(id string) BlankNode { return BlankNode{ID: strings.TrimPrefix(id, "_:")} }

// TermType returns the kind of t, or ErrNotATerm if t carries no classification.
func TermType(t Term) (Kind, error) {
	if t == nil {
		return 0, fmt.Errorf("%w: <nil>", ErrNotATerm)
	}
	switch t.(type) {
	case Symbol, Literal, BlankNode:
		return t.Kind(), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotATerm, t)
	}
}

// Equal reports whether a and b denote the same term.
func Equal(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a == b
}

// Key returns a string that identifies t among all terms.
// Literals with equal value but different language or datatype get different keys.
func Key(t Term) string {
	switch v := t.(type) {
	case Symbol:
		return "S" + v.URI
	case BlankNode:
		return "B" + v.ID
	case Literal:
		return "L" + v.Value + "\x00" + v.Lang + "\x00" + v.Datatype.URI
	default:
		return ""
	}
}

// Statement is a triple with an optional context term recording where it came from.
type Statement struct {
	// Subject is a Symbol or BlankNode.
	Subject Term
	// Predicate is the relation.
	Predicate Symbol
	// Object is any term.
	Object Term
	// Why is the context (document or response node), or nil.
	Why Term
}

// String renders the statement in N-Quads form without the trailing newline.
func (s Statement) String() string {
	line := renderTerm(s.Subject) + " " + renderTerm(s.Predicate) + " " + renderTerm(s.Object)
	if s.Why != nil {
		line += " " + renderTerm(s.Why)
	}
	return line + " ."
}

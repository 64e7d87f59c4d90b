package pg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/geoknoesis/pointedgraph/rdf"
)

// ErrIllegalArgument marks a failed precondition.
var ErrIllegalArgument = errors.New("illegal argument")

// CheckArgument returns an ErrIllegalArgument error carrying message when
// condition is false.
func CheckArgument(condition bool, message string) error {
	if condition {
		return nil
	}
	if message == "" {
		message = "no description"
	}
	return fmt.Errorf("%w: %s", ErrIllegalArgument, message)
}

// Fragmentless removes the fragment from url, which gives the document location.
func Fragmentless(url string) string {
	doc, _, _ := strings.Cut(url, "#")
	return doc
}

// IsFragmentless reports whether url has no fragment.
func IsFragmentless(url string) bool {
	return !strings.Contains(url, "#")
}

// TermType returns the classification of node. It fails with rdf.ErrNotATerm
// when node carries none.
func TermType(node rdf.Term) (rdf.Kind, error) {
	return rdf.TermType(node)
}

func isKind(node rdf.Term, kind rdf.Kind) (bool, error) {
	k, err := rdf.TermType(node)
	if err != nil {
		return false, err
	}
	return k == kind, nil
}

// IsLiteralNode reports whether node is a literal.
func IsLiteralNode(node rdf.Term) (bool, error) { return isKind(node, rdf.KindLiteral) }

// IsSymbolNode reports whether node is a symbol.
func IsSymbolNode(node rdf.Term) (bool, error) { return isKind(node, rdf.KindSymbol) }

// IsBlankNode reports whether node is a blank node.
func IsBlankNode(node rdf.Term) (bool, error) { return isKind(node, rdf.KindBlankNode) }

// LiteralNodeToValue returns the lexical value of a literal node.
func LiteralNodeToValue(node rdf.Term) (string, error) {
	ok, err := IsLiteralNode(node)
	if err != nil {
		return "", err
	}
	if err := CheckArgument(ok, "node is not a literal node: "+node.String()); err != nil {
		return "", err
	}
	return node.(rdf.Literal).Value, nil
}

// SymbolNodeToURL returns the URI of a symbol node.
func SymbolNodeToURL(node rdf.Term) (string, error) {
	ok, err := IsSymbolNode(node)
	if err != nil {
		return "", err
	}
	if err := CheckArgument(ok, "node is not a symbol node: "+node.String()); err != nil {
		return "", err
	}
	return node.(rdf.Symbol).URI, nil
}

// IsFragmentlessSymbol reports whether node is a symbol without a fragment.
func IsFragmentlessSymbol(node rdf.Term) (bool, error) {
	ok, err := IsSymbolNode(node)
	if err != nil || !ok {
		return false, err
	}
	return IsFragmentless(node.(rdf.Symbol).URI), nil
}

package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/pointedgraph/rdf"
)

func TestPredicatesRejectUntypedTerm(t *testing.T) {
	_, err := TermType(nil)
	assert.ErrorIs(t, err, rdf.ErrNotATerm)

	for name, check := range map[string]func(rdf.Term) (bool, error){
		"literal":      IsLiteralNode,
		"symbol":       IsSymbolNode,
		"blank":        IsBlankNode,
		"fragmentless": IsFragmentlessSymbol,
	} {
		_, err := check(nil)
		assert.ErrorIs(t, err, rdf.ErrNotATerm, name)
	}
	_, err = LiteralNodeToValue(nil)
	assert.ErrorIs(t, err, rdf.ErrNotATerm)
	_, err = SymbolNodeToURL(nil)
	assert.ErrorIs(t, err, rdf.ErrNotATerm)
}

func TestPredicates(t *testing.T) {
	lit, sym, blank := rdf.Lit("v"), rdf.Sym("http://example.org/a"), rdf.BNode("b")

	ok, err := IsLiteralNode(lit)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = IsLiteralNode(sym)
	assert.False(t, ok)

	ok, _ = IsSymbolNode(sym)
	assert.True(t, ok)
	ok, _ = IsBlankNode(blank)
	assert.True(t, ok)
	ok, _ = IsBlankNode(lit)
	assert.False(t, ok)

	kind, err := TermType(blank)
	require.NoError(t, err)
	assert.Equal(t, rdf.KindBlankNode, kind)
}

func TestAccessors(t *testing.T) {
	value, err := LiteralNodeToValue(rdf.LangLit("bonjour", "fr"))
	require.NoError(t, err)
	assert.Equal(t, "bonjour", value)

	url, err := SymbolNodeToURL(rdf.Sym("http://example.org/doc#part"))
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/doc#part", url)

	_, err = LiteralNodeToValue(rdf.Sym("http://example.org/a"))
	assert.ErrorIs(t, err, ErrIllegalArgument)
	_, err = SymbolNodeToURL(rdf.Lit("http://example.org/a"))
	assert.ErrorIs(t, err, ErrIllegalArgument)
	_, err = SymbolNodeToURL(rdf.BNode("x"))
	assert.ErrorIs(t, err, ErrIllegalArgument)
}

func TestFragmentless(t *testing.T) {
	assert.Equal(t, "http://example.org/doc", Fragmentless("http://example.org/doc#part"))
	assert.Equal(t, "http://example.org/doc", Fragmentless("http://example.org/doc"))
	assert.False(t, IsFragmentless("http://example.org/doc#part"))
	assert.True(t, IsFragmentless("http://example.org/doc"))

	ok, err := IsFragmentlessSymbol(rdf.Sym("http://example.org/doc"))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = IsFragmentlessSymbol(rdf.Sym("http://example.org/doc#me"))
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = IsFragmentlessSymbol(rdf.Lit("http://example.org/doc"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckArgument(t *testing.T) {
	assert.NoError(t, CheckArgument(true, "fine"))
	err := CheckArgument(false, "")
	assert.ErrorIs(t, err, ErrIllegalArgument)
	assert.Contains(t, err.Error(), "no description")
}

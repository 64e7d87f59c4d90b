package store

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/pointedgraph/rdf"
)

var (
	alice = rdf.Sym("http://example.org/alice")
	bob   = rdf.Sym("http://example.org/bob")
	doc   = rdf.Sym("http://example.org/doc")
	other = rdf.Sym("http://example.org/other")
	name  = rdf.FOAF.Term("name")
	knows = rdf.FOAF.Term("knows")
)

func fixture(t *testing.T) *Store {
	t.Helper()
	s := New()
	require.NoError(t, s.AddAll([]rdf.Statement{
		{Subject: alice, Predicate: name, Object: rdf.Lit("Alice"), Why: doc},
		{Subject: alice, Predicate: knows, Object: bob, Why: doc},
		{Subject: bob, Predicate: name, Object: rdf.Lit("Bob"), Why: other},
		{Subject: alice, Predicate: knows, Object: rdf.BNode("x"), Why: doc},
	}))
	return s
}

func TestAddIgnoresDuplicates(t *testing.T) {
	s := fixture(t)
	added, err := s.Add(alice, name, rdf.Lit("Alice"), doc)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 4, s.Len())

	added, err = s.Add(alice, name, rdf.Lit("Alice"), other)
	require.NoError(t, err)
	assert.True(t, added, "same triple in another context is a distinct statement")
}

func TestAddRejectsInvalid(t *testing.T) {
	s := New()
	_, err := s.Add(nil, name, rdf.Lit("x"), nil)
	assert.Error(t, err)
	_, err = s.Add(rdf.Lit("x"), name, rdf.Lit("x"), nil)
	assert.Error(t, err)
	_, err = s.Add(alice, rdf.Symbol{}, rdf.Lit("x"), nil)
	assert.Error(t, err)
}

func TestMatchWildcards(t *testing.T) {
	s := fixture(t)

	assert.Len(t, s.Match(nil, rdf.Symbol{}, nil, nil), 4)
	assert.Len(t, s.Match(alice, rdf.Symbol{}, nil, nil), 3)
	assert.Len(t, s.Match(nil, name, nil, nil), 2)
	assert.Len(t, s.Match(nil, name, nil, other), 1)
	assert.Empty(t, s.Match(nil, name, nil, rdf.Sym("http://example.org/none")))

	got := s.Match(nil, rdf.Symbol{}, rdf.Lit("Bob"), nil)
	require.Len(t, got, 1)
	assert.Equal(t, bob, got[0].Subject)
}

func TestMatchInsertionOrder(t *testing.T) {
	s := fixture(t)
	objects := s.Each(alice, knows, nil, doc)
	assert.Equal(t, []rdf.Term{bob, rdf.BNode("x")}, objects)
}

func TestEachAndAny(t *testing.T) {
	s := fixture(t)
	assert.Equal(t, []rdf.Term{alice, bob}, s.Each(nil, name, nil, nil))
	assert.Equal(t, rdf.Term(rdf.Lit("Alice")), s.Any(alice, name, nil, nil))
	assert.Equal(t, rdf.Term(doc), s.Any(alice, name, rdf.Lit("Alice"), nil))
	assert.Nil(t, s.Any(bob, knows, nil, nil))
}

func TestRemoveMatches(t *testing.T) {
	s := fixture(t)
	assert.Equal(t, 3, s.RemoveMatches(nil, rdf.Symbol{}, nil, doc))
	assert.Equal(t, 1, s.Len())
	assert.Empty(t, s.Match(alice, rdf.Symbol{}, nil, nil))
	assert.Len(t, s.Match(bob, name, nil, nil), 1)
	assert.Equal(t, 0, s.RemoveMatches(nil, rdf.Symbol{}, nil, doc))
}

func TestDump(t *testing.T) {
	s := fixture(t)
	var buf strings.Builder
	require.NoError(t, s.Dump(&buf, rdf.FormatNQuads))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `<http://example.org/alice> <http://xmlns.com/foaf/0.1/name> "Alice" <http://example.org/doc> .`, lines[0])

	assert.Error(t, s.Dump(&buf, rdf.FormatJSONLD))
}

func TestConcurrentAdd(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = s.Add(rdf.BNode(string(rune('a'+i))), name, rdf.Lit(strings.Repeat("x", j+1)), nil)
				_ = s.Match(nil, name, nil, nil)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 400, s.Len())
}

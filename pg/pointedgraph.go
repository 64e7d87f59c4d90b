package pg

import (
	"fmt"

	"github.com/geoknoesis/pointedgraph/rdf"
	"github.com/geoknoesis/pointedgraph/store"
)

// PointedGraph is a store together with the term navigation starts from.
// Why scopes navigation to one context (usually a document); nil means every
// context in the store.
type PointedGraph struct {
	store   *store.Store
	pointer rdf.Term
	why     rdf.Term
}

// New returns a pointed graph over st.
func New(st *store.Store, pointer rdf.Term, why rdf.Term) PointedGraph {
	return PointedGraph{store: st, pointer: pointer, why: why}
}

// ForSymbol points at sym within the document that contains it.
func ForSymbol(st *store.Store, sym rdf.Symbol) PointedGraph {
	return New(st, sym, rdf.Sym(Fragmentless(sym.URI)))
}

// Store returns the underlying store.
func (p PointedGraph) Store() *store.Store { return p.store }

// Pointer returns the current term.
func (p PointedGraph) Pointer() rdf.Term { return p.pointer }

// Why returns the context navigation is scoped to, or nil.
func (p PointedGraph) Why() rdf.Term { return p.why }

func (p PointedGraph) String() string {
	if p.why == nil {
		return fmt.Sprintf("PG(%v)", p.pointer)
	}
	return fmt.Sprintf("PG(%v in %v)", p.pointer, p.why)
}

// Document returns the URI of the document the pointer belongs to: the
// fragment-less pointer for symbols, otherwise the URI of a symbol context.
func (p PointedGraph) Document() (string, error) {
	if sym, ok := p.pointer.(rdf.Symbol); ok {
		return Fragmentless(sym.URI), nil
	}
	if sym, ok := p.why.(rdf.Symbol); ok {
		return Fragmentless(sym.URI), nil
	}
	return "", CheckArgument(false, fmt.Sprintf("no document for %v", p))
}

// Rels follows rel one hop from the pointer. Order is unspecified.
func (p PointedGraph) Rels(rel rdf.Symbol) []PointedGraph {
	if p.store == nil || p.pointer == nil {
		return nil
	}
	if _, ok := p.pointer.(rdf.Literal); ok {
		return nil
	}
	terms := p.store.Each(p.pointer, rel, nil, p.why)
	out := make([]PointedGraph, len(terms))
	for i, t := range terms {
		out[i] = PointedGraph{store: p.store, pointer: t, why: p.why}
	}
	return out
}

// Rel follows rel and requires exactly one result.
func (p PointedGraph) Rel(rel rdf.Symbol) (PointedGraph, error) {
	pgs := p.Rels(rel)
	if len(pgs) != 1 {
		return PointedGraph{}, &CardinalityError{Subject: p.pointer, Predicate: rel, Why: p.why, Count: len(pgs)}
	}
	return pgs[0], nil
}

// Jump moves the context to the document of a symbol pointer, which is where
// statements about a resource from another document live. Other pointers are
// returned unchanged.
func (p PointedGraph) Jump() PointedGraph {
	if sym, ok := p.pointer.(rdf.Symbol); ok {
		return ForSymbol(p.store, sym)
	}
	return p
}

// IsLiteralPointer reports whether the pointer is a literal.
func (p PointedGraph) IsLiteralPointer() bool { _, ok := p.pointer.(rdf.Literal); return ok }

// IsSymbolPointer reports whether the pointer is a symbol.
func (p PointedGraph) IsSymbolPointer() bool { _, ok := p.pointer.(rdf.Symbol); return ok }

// IsBlankNodePointer reports whether the pointer is a blank node.
func (p PointedGraph) IsBlankNodePointer() bool { _, ok := p.pointer.(rdf.BlankNode); return ok }

// GetLiteral returns the literal values reachable through any of rels.
func (p PointedGraph) GetLiteral(rels ...rdf.Symbol) []string {
	var out []string
	for _, rel := range rels {
		for _, next := range p.Rels(rel) {
			if lit, ok := next.pointer.(rdf.Literal); ok {
				out = append(out, lit.Value)
			}
		}
	}
	return out
}

package pg

import "github.com/geoknoesis/pointedgraph/rdf"

// GetNodes returns the terms reachable from p through rel.
func GetNodes(p PointedGraph, rel rdf.Symbol) []rdf.Term {
	return Map(p.Rels(rel), PointedGraph.Pointer)
}

func getNodesOfKind(p PointedGraph, rel rdf.Symbol, kind rdf.Kind) []rdf.Term {
	return Filter(GetNodes(p, rel), func(t rdf.Term) bool { return t.Kind() == kind })
}

// GetLiteralNodes returns the literal terms reachable through rel.
func GetLiteralNodes(p PointedGraph, rel rdf.Symbol) []rdf.Term {
	return getNodesOfKind(p, rel, rdf.KindLiteral)
}

// GetSymbolNodes returns the symbol terms reachable through rel.
func GetSymbolNodes(p PointedGraph, rel rdf.Symbol) []rdf.Term {
	return getNodesOfKind(p, rel, rdf.KindSymbol)
}

// GetBlankNodes returns the blank node terms reachable through rel.
func GetBlankNodes(p PointedGraph, rel rdf.Symbol) []rdf.Term {
	return getNodesOfKind(p, rel, rdf.KindBlankNode)
}

// GetLiteralValues collects the literal values of rels across pgs into one slice.
func GetLiteralValues(pgs []PointedGraph, rels ...rdf.Symbol) []string {
	var out []string
	for _, p := range pgs {
		out = append(out, p.GetLiteral(rels...)...)
	}
	return out
}

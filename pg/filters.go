package pg

import "github.com/geoknoesis/pointedgraph/rdf"

// Filter returns the elements of in for which keep is true.
func Filter[T any](in []T, keep func(T) bool) []T {
	var out []T
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Map applies fn to every element of in.
func Map[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

// MapErr applies fn to every element of in and stops at the first error.
func MapErr[T, U any](in []T, fn func(T) (U, error)) ([]U, error) {
	out := make([]U, 0, len(in))
	for _, v := range in {
		u, err := fn(v)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// IsLiteralPointer is a filter for literal pointers.
func IsLiteralPointer(p PointedGraph) bool { return p.IsLiteralPointer() }

// IsBlankNodePointer is a filter for blank node pointers.
func IsBlankNodePointer(p PointedGraph) bool { return p.IsBlankNodePointer() }

// IsSymbolPointer is a filter for symbol pointers.
func IsSymbolPointer(p PointedGraph) bool { return p.IsSymbolPointer() }

// LiteralPointerToValue returns the value of a literal pointer.
func LiteralPointerToValue(p PointedGraph) (string, error) {
	return LiteralNodeToValue(p.pointer)
}

// SymbolPointerToValue returns the URI of a symbol pointer.
func SymbolPointerToValue(p PointedGraph) (string, error) {
	return SymbolNodeToURL(p.pointer)
}

// TripleToSubject returns the subject of s.
func TripleToSubject(s rdf.Statement) rdf.Term { return s.Subject }

// TripleToPredicate returns the predicate of s.
func TripleToPredicate(s rdf.Statement) rdf.Term { return s.Predicate }

// TripleToObject returns the object of s.
func TripleToObject(s rdf.Statement) rdf.Term { return s.Object }

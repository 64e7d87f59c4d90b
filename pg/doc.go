// Package pg provides helpers over pointed graphs: a store plus a term the
// navigation starts from.
//
// The helpers fall into five groups:
//   - term predicates and accessors (IsLiteralNode, SymbolNodeToURL, Fragmentless, ...)
//   - relation readout (Rels, GetLiteralNodes, GetLiteralValues, ...)
//   - metadata readout of documents loaded by package fetch (ResponseStatus,
//     ResponseHeader, ...)
//   - access control derived from the Allow header (AccessControl)
//   - filters and transformers usable with Filter and Map
//
// Every helper is a pure readout of the store; nothing here mutates it.
package pg

package pg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/geoknoesis/pointedgraph/fetch"
	"github.com/geoknoesis/pointedgraph/rdf"
	"github.com/geoknoesis/pointedgraph/store"
)

// ErrCardinality matches every CardinalityError.
var ErrCardinality = errors.New("unexpected number of matching statements")

// CardinalityError reports a lookup that required exactly one matching
// statement and found Count. Nil pattern positions are wildcards.
type CardinalityError struct {
	Subject   rdf.Term
	Predicate rdf.Symbol
	Object    rdf.Term
	Why       rdf.Term
	Count     int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("expected exactly one statement matching (%s %s %s %s), found %d",
		patternTerm(e.Subject), patternTerm(e.Predicate), patternTerm(e.Object), patternTerm(e.Why), e.Count)
}

func (e *CardinalityError) Is(target error) bool { return target == ErrCardinality }

func patternTerm(t rdf.Term) string {
	if t == nil {
		return "?"
	}
	return t.String()
}

// theStatement returns the single statement matching the pattern.
func theStatement(st *store.Store, s rdf.Term, p rdf.Symbol, o rdf.Term, why rdf.Term) (rdf.Statement, error) {
	stmts := st.Match(s, p, o, why)
	if len(stmts) != 1 {
		return rdf.Statement{}, &CardinalityError{Subject: s, Predicate: p, Object: o, Why: why, Count: len(stmts)}
	}
	return stmts[0], nil
}

// RequestNode returns the request node the fetcher recorded for fetchableURI.
// The URI must be fragment-less.
func RequestNode(st *store.Store, fetchableURI string) (rdf.Term, error) {
	if err := CheckArgument(IsFragmentless(fetchableURI), "uri must be fragment-less: "+fetchableURI); err != nil {
		return nil, err
	}
	stmt, err := theStatement(st, nil, rdf.LinkRequested, rdf.Lit(fetchableURI), fetch.AppNode())
	if err != nil {
		return nil, err
	}
	return stmt.Subject, nil
}

// ResponseNode returns the response node linked from requestNode.
func ResponseNode(st *store.Store, requestNode rdf.Term) (rdf.Term, error) {
	if requestNode == nil {
		return nil, fmt.Errorf("request node: %w", rdf.ErrNotATerm)
	}
	stmt, err := theStatement(st, requestNode, rdf.LinkResponse, nil, fetch.AppNode())
	if err != nil {
		return nil, err
	}
	return stmt.Object, nil
}

// RequestNode returns the request node of the pointer's document.
func (p PointedGraph) RequestNode() (rdf.Term, error) {
	doc, err := p.Document()
	if err != nil {
		return nil, err
	}
	return RequestNode(p.store, doc)
}

// ResponseNode returns the response node of the pointer's document.
func (p PointedGraph) ResponseNode() (rdf.Term, error) {
	req, err := p.RequestNode()
	if err != nil {
		return nil, err
	}
	return ResponseNode(p.store, req)
}

func (p PointedGraph) responseLiteral(predicate rdf.Symbol) (string, error) {
	resp, err := p.ResponseNode()
	if err != nil {
		return "", err
	}
	stmt, err := theStatement(p.store, resp, predicate, nil, resp)
	if err != nil {
		return "", err
	}
	return LiteralNodeToValue(stmt.Object)
}

// ResponseStatus returns the HTTP status code of the pointer's document.
func (p PointedGraph) ResponseStatus() (int, error) {
	value, err := p.responseLiteral(rdf.HTTPStatus)
	if err != nil {
		return 0, err
	}
	code, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: status %q is not a number", ErrIllegalArgument, value)
	}
	return code, nil
}

// ResponseStatusText returns the HTTP status text of the pointer's document.
func (p PointedGraph) ResponseStatusText() (string, error) {
	return p.responseLiteral(rdf.HTTPStatusText)
}

// ResponseHeader returns the value of the named response header. Names match
// case-insensitively. A missing header gives ok == false and no error; more
// than one recorded value is a CardinalityError.
func (p PointedGraph) ResponseHeader(name string) (value string, ok bool, err error) {
	resp, err := p.ResponseNode()
	if err != nil {
		return "", false, err
	}
	predicate := rdf.HTTPH.Term(strings.ToLower(name))
	stmts := p.store.Match(resp, predicate, nil, resp)
	switch len(stmts) {
	case 0:
		return "", false, nil
	case 1:
		value, err := LiteralNodeToValue(stmts[0].Object)
		if err != nil {
			return "", false, err
		}
		return value, true, nil
	default:
		return "", false, &CardinalityError{Subject: resp, Predicate: predicate, Why: resp, Count: len(stmts)}
	}
}

// LinkTargets returns the targets of the Link header relation rel recorded
// for the pointer's document. rel is a registered relation name such as
// "acl" or an absolute relation URI.
func (p PointedGraph) LinkTargets(rel string) ([]rdf.Symbol, error) {
	resp, err := p.ResponseNode()
	if err != nil {
		return nil, err
	}
	doc, err := p.Document()
	if err != nil {
		return nil, err
	}
	relSym := rdf.IANALinkRelations.Term(strings.ToLower(rel))
	if strings.Contains(rel, ":") {
		relSym = rdf.Sym(rel)
	}
	var out []rdf.Symbol
	for _, t := range p.store.Each(rdf.Sym(doc), relSym, nil, resp) {
		if sym, ok := t.(rdf.Symbol); ok {
			out = append(out, sym)
		}
	}
	return out, nil
}

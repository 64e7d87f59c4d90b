package rdf

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	ld "github.com/piprate/json-gold/ld"
)

// jsonldDecoder converts a whole JSON-LD document up front and replays the
// resulting statements. JSON-LD has no streaming form.
type jsonldDecoder struct {
	stmts []Statement
	index int
	err   error
}

func newJSONLDDecoder(r io.Reader, opts Options) *jsonldDecoder {
	dec := &jsonldDecoder{}
	stmts, err := decodeJSONLD(r, opts)
	if err != nil {
		dec.err = &ParseError{Format: FormatJSONLD, Err: err}
		return dec
	}
	dec.stmts = stmts
	return dec
}

func (d *jsonldDecoder) Next() (Statement, error) {
	if d.err != nil {
		return Statement{}, d.err
	}
	if d.index >= len(d.stmts) {
		return Statement{}, io.EOF
	}
	s := d.stmts[d.index]
	d.index++
	return s, nil
}

func (d *jsonldDecoder) Close() error { return nil }

func decodeJSONLD(r io.Reader, opts Options) ([]Statement, error) {
	if opts.Context != nil && opts.Context.Err() != nil {
		return nil, opts.Context.Err()
	}
	var doc interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	proc := ld.NewJsonLdProcessor()
	goldOpts := ld.NewJsonLdOptions(opts.Base)
	result, err := proc.ToRDF(doc, goldOpts)
	if err != nil {
		return nil, err
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return nil, fmt.Errorf("unexpected ToRDF result %T", result)
	}

	// Graph iteration order in json-gold is a map order; sort for stable output.
	names := make([]string, 0, len(dataset.Graphs))
	for name := range dataset.Graphs {
		names = append(names, name)
	}
	sort.Strings(names)

	var stmts []Statement
	for _, name := range names {
		why := opts.Why
		if name != "@default" {
			why = fromGoldGraphName(name, opts.BlankNodePrefix)
		}
		for _, quad := range dataset.Graphs[name] {
			if quad == nil {
				continue
			}
			stmt, err := fromGoldQuad(quad, why, opts.BlankNodePrefix)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, stmt)
		}
	}
	return stmts, nil
}

func fromGoldQuad(quad *ld.Quad, why Term, prefix string) (Statement, error) {
	subject, err := fromGoldNode(quad.Subject, prefix)
	if err != nil {
		return Statement{}, err
	}
	predicate, ok := quad.Predicate.(ld.IRI)
	if !ok {
		return Statement{}, fmt.Errorf("predicate %v is not an IRI", quad.Predicate)
	}
	object, err := fromGoldNode(quad.Object, prefix)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Subject: subject, Predicate: Symbol{URI: predicate.Value}, Object: object, Why: why}, nil
}

func fromGoldNode(node ld.Node, prefix string) (Term, error) {
	switch n := node.(type) {
	case ld.IRI:
		return Symbol{URI: n.Value}, nil
	case ld.BlankNode:
		return BNode(prefix + BNode(n.Attribute).ID), nil
	case ld.Literal:
		lit := Literal{Value: n.Value, Lang: n.Language}
		if n.Language == "" && n.Datatype != "" && n.Datatype != XSDString.URI {
			lit.Datatype = Symbol{URI: n.Datatype}
		}
		return lit, nil
	default:
		return nil, fmt.Errorf("%w: json-ld node %T", ErrNotATerm, node)
	}
}

func fromGoldGraphName(name, prefix string) Term {
	if len(name) > 2 && name[:2] == "_:" {
		return BNode(prefix + name[2:])
	}
	return Symbol{URI: name}
}

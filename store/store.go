// Package store provides an indexed in-memory RDF statement store.
//
// Statements are indexed by subject, predicate, object and context (Why).
// Lookups take a pattern where nil positions act as wildcards. A Store is safe
// for concurrent use.
package store

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/geoknoesis/pointedgraph/rdf"
)

const (
	posSubject = iota
	posPredicate
	posObject
	posWhy
	numPositions
)

type entry struct {
	stmt rdf.Statement
	seq  uint64
}

// Store is an in-memory statement store.
type Store struct {
	mu      sync.RWMutex
	seq     uint64
	entries map[string]*entry
	index   [numPositions]map[string]map[string]*entry
}

// New returns an empty store.
func New() *Store {
	s := &Store{entries: make(map[string]*entry)}
	for i := range s.index {
		s.index[i] = make(map[string]map[string]*entry)
	}
	return s
}

func statementKey(st rdf.Statement) string {
	return rdf.Key(st.Subject) + "\x01" + rdf.Key(st.Predicate) + "\x01" + rdf.Key(st.Object) + "\x01" + rdf.Key(st.Why)
}

func positions(st rdf.Statement) [numPositions]rdf.Term {
	return [numPositions]rdf.Term{st.Subject, st.Predicate, st.Object, st.Why}
}

// Add inserts a statement. why may be nil.
// It reports whether the statement was new.
func (s *Store) Add(subject rdf.Term, predicate rdf.Symbol, object rdf.Term, why rdf.Term) (bool, error) {
	return s.AddStatement(rdf.Statement{Subject: subject, Predicate: predicate, Object: object, Why: why})
}

// AddStatement inserts st. Duplicate statements are ignored.
func (s *Store) AddStatement(st rdf.Statement) (bool, error) {
	if st.Subject == nil || st.Object == nil || st.Predicate.URI == "" {
		return false, fmt.Errorf("store: incomplete statement %v", st)
	}
	if _, ok := st.Subject.(rdf.Literal); ok {
		return false, fmt.Errorf("store: literal subject in %v", st)
	}
	key := statementKey(st)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; ok {
		return false, nil
	}
	s.seq++
	e := &entry{stmt: st, seq: s.seq}
	s.entries[key] = e
	for pos, term := range positions(st) {
		if term == nil {
			continue
		}
		tk := rdf.Key(term)
		bucket := s.index[pos][tk]
		if bucket == nil {
			bucket = make(map[string]*entry)
			s.index[pos][tk] = bucket
		}
		bucket[key] = e
	}
	return true, nil
}

// AddAll inserts every statement, stopping at the first invalid one.
func (s *Store) AddAll(stmts []rdf.Statement) error {
	for _, st := range stmts {
		if _, err := s.AddStatement(st); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of statements.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Match returns the statements matching the pattern. Nil arguments are
// wildcards; a zero predicate is a wildcard too. Results are ordered by
// insertion, which callers should treat as unspecified.
func (s *Store) Match(subject rdf.Term, predicate rdf.Symbol, object rdf.Term, why rdf.Term) []rdf.Statement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := s.match(pattern(subject, predicate, object, why))
	out := make([]rdf.Statement, len(matched))
	for i, e := range matched {
		out[i] = e.stmt
	}
	return out
}

func pattern(subject rdf.Term, predicate rdf.Symbol, object rdf.Term, why rdf.Term) [numPositions]rdf.Term {
	var p rdf.Term
	if predicate.URI != "" {
		p = predicate
	}
	return [numPositions]rdf.Term{subject, p, object, why}
}

// match must be called with the lock held.
func (s *Store) match(pat [numPositions]rdf.Term) []*entry {
	var candidates map[string]*entry
	bound := false
	for pos, term := range pat {
		if term == nil {
			continue
		}
		bucket := s.index[pos][rdf.Key(term)]
		if len(bucket) == 0 {
			return nil
		}
		if !bound || len(bucket) < len(candidates) {
			candidates = bucket
			bound = true
		}
	}
	if !bound {
		candidates = s.entries
	}

	out := make([]*entry, 0, len(candidates))
	for _, e := range candidates {
		if matches(e.stmt, pat) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func matches(st rdf.Statement, pat [numPositions]rdf.Term) bool {
	for pos, term := range positions(st) {
		if pat[pos] != nil && !rdf.Equal(pat[pos], term) {
			return false
		}
	}
	return true
}

// Each returns, for every matching statement, the term in the first wildcard
// position (subject, then object, then predicate, then why).
func (s *Store) Each(subject rdf.Term, predicate rdf.Symbol, object rdf.Term, why rdf.Term) []rdf.Term {
	stmts := s.Match(subject, predicate, object, why)
	out := make([]rdf.Term, 0, len(stmts))
	for _, st := range stmts {
		if t := wildcardTerm(st, subject, predicate, object, why); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Any returns the wildcard term of the first matching statement, or nil.
func (s *Store) Any(subject rdf.Term, predicate rdf.Symbol, object rdf.Term, why rdf.Term) rdf.Term {
	terms := s.Each(subject, predicate, object, why)
	if len(terms) == 0 {
		return nil
	}
	return terms[0]
}

func wildcardTerm(st rdf.Statement, subject rdf.Term, predicate rdf.Symbol, object rdf.Term, why rdf.Term) rdf.Term {
	switch {
	case subject == nil:
		return st.Subject
	case object == nil:
		return st.Object
	case predicate.URI == "":
		return st.Predicate
	case why == nil:
		return st.Why
	default:
		return nil
	}
}

// RemoveMatches deletes every statement matching the pattern and returns how
// many were removed.
func (s *Store) RemoveMatches(subject rdf.Term, predicate rdf.Symbol, object rdf.Term, why rdf.Term) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := s.match(pattern(subject, predicate, object, why))
	for _, e := range matched {
		key := statementKey(e.stmt)
		delete(s.entries, key)
		for pos, term := range positions(e.stmt) {
			if term == nil {
				continue
			}
			tk := rdf.Key(term)
			bucket := s.index[pos][tk]
			delete(bucket, key)
			if len(bucket) == 0 {
				delete(s.index[pos], tk)
			}
		}
	}
	return len(matched)
}

// Dump writes every statement in insertion order.
func (s *Store) Dump(w io.Writer, format rdf.Format) error {
	enc, err := rdf.NewEncoder(w, format)
	if err != nil {
		return err
	}
	for _, st := range s.Match(nil, rdf.Symbol{}, nil, nil) {
		if err := enc.Write(st); err != nil {
			_ = enc.Close()
			return err
		}
	}
	return enc.Close()
}

package pg

import (
	"strings"

	"bitbucket.org/creachadair/stringset"
)

// Mode is a Web Access Control permission class.
type Mode string

const (
	ModeRead    Mode = "READ"
	ModeWrite   Mode = "WRITE"
	ModeAppend  Mode = "APPEND"
	ModeControl Mode = "CONTROL"
)

// Verbs that take part in mode derivation.
const (
	VerbGet    = "GET"
	VerbPost   = "POST"
	VerbPut    = "PUT"
	VerbPatch  = "PATCH"
	VerbDelete = "DELETE"
)

// AccessControl is the set of allowed HTTP verbs of a resource and the modes
// derived from them.
type AccessControl struct {
	verbs stringset.Set
	modes stringset.Set
}

// ParseAllow derives access control from an Allow header value. When the
// header is absent (present == false) only GET is allowed.
func ParseAllow(value string, present bool) AccessControl {
	if !present {
		return FromVerbs(VerbGet)
	}
	return FromVerbs(strings.Split(value, ",")...)
}

// FromVerbs derives access control from a verb list. Verbs are trimmed and
// upper-cased; empty entries are dropped.
func FromVerbs(verbs ...string) AccessControl {
	set := stringset.New()
	for _, v := range verbs {
		if v = strings.ToUpper(strings.TrimSpace(v)); v != "" {
			set.Add(v)
		}
	}
	return AccessControl{verbs: set, modes: deriveModes(set)}
}

// deriveModes maps verbs to modes. No verb combination yields ModeControl:
// Allow does not say who may change the access rules.
func deriveModes(verbs stringset.Set) stringset.Set {
	modes := stringset.New()
	if verbs.Contains(VerbGet) {
		modes.Add(string(ModeRead))
	}
	if verbs.Contains(VerbPost, VerbPut, VerbPatch, VerbDelete) {
		modes.Add(string(ModeWrite))
	}
	if verbs.Contains(VerbPost) {
		modes.Add(string(ModeAppend))
	}
	return modes
}

// Verbs returns the allowed verbs in sorted order.
func (a AccessControl) Verbs() []string { return a.verbs.Elements() }

// Modes returns the derived modes in sorted order.
func (a AccessControl) Modes() []Mode {
	return Map(a.modes.Elements(), func(s string) Mode { return Mode(s) })
}

// IsVerbAllowed reports whether verb is allowed. Case is ignored.
func (a AccessControl) IsVerbAllowed(verb string) bool {
	return a.verbs.Contains(strings.ToUpper(strings.TrimSpace(verb)))
}

// IsModeAllowed reports whether mode was derived.
func (a AccessControl) IsModeAllowed(mode Mode) bool {
	return a.modes.Contains(string(mode))
}

// AccessControl reads the Allow header of the pointer's document. It is
// computed afresh on every call.
func (p PointedGraph) AccessControl() (AccessControl, error) {
	value, ok, err := p.ResponseHeader("Allow")
	if err != nil {
		return AccessControl{}, err
	}
	return ParseAllow(value, ok), nil
}

// Package catalog implements the top-level container of spec §4.1: the
// Catalog, the six-species lattice of spec §3.4, the CatalogDef/
// upstream relation, and the strict flag. Grounded on the teacher's
// dataset/database layer (go/store/datas), generalized from noms'
// single "database" concept to CHEAP's six-species lattice.
package catalog

import "strings"

// Species is one of the six catalog roles of spec §3.4, each fixing a
// two-axis policy: whether the caller may write locally, and the
// implicit upstream-propagation rule.
type Species uint8

const (
	Source Species = iota
	Sink
	Mirror
	Cache
	Clone
	Fork
)

var speciesNames = [...]string{
	Source: "source",
	Sink:   "sink",
	Mirror: "mirror",
	Cache:  "cache",
	Clone:  "clone",
	Fork:   "fork",
}

// String returns the lowercase wire-format species name (spec §6).
func (s Species) String() string { return speciesNames[s] }

// SpeciesByName resolves a lowercase wire-format species name.
func SpeciesByName(name string) (Species, bool) {
	for i, n := range speciesNames {
		if n == strings.ToLower(name) {
			return Species(i), true
		}
	}
	return 0, false
}

// LocalWritesAllowed reports whether the caller may write directly to a
// catalog of this species (spec §3.4 table).
func (s Species) LocalWritesAllowed() bool {
	switch s {
	case Source, Mirror:
		return false
	default:
		return true
	}
}

// BacksExternalSource reports whether this species is backed by an
// external source descriptor (true for source/sink) versus another
// catalog (true for mirror/cache/clone/fork).
func (s Species) BacksExternalSource() bool {
	return s == Source || s == Sink
}

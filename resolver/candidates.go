package resolver

import "github.com/openmodule/classspace/module"

// CandidateSet holds the ordered list of sources that could satisfy one
// requirement of one importing module, plus the odometer's current tentative
// pick. Index 0 is always the
// currently-preferred candidate; Advance rotates to the next one during
// backtracking.
type CandidateSet struct {
	Importer    *module.Module
	Requirement module.Requirement
	Sources     []PackageSource

	// idx is the position within Sources currently wired. It starts at 0
	// (the highest-ranked candidate); incrementCandidateConfiguration
	// advances it and resets it to 0 when carrying into a later set.
	idx int
}

// NewCandidateSet builds a candidate set already sorted into resolver
// order.
func NewCandidateSet(importer *module.Module, req module.Requirement, sources []PackageSource) *CandidateSet {
	sortSources(sources)
	return &CandidateSet{Importer: importer, Requirement: req, Sources: sources}
}

func (cs *CandidateSet) Current() (PackageSource, bool) {
	if cs.idx >= len(cs.Sources) {
		return PackageSource{}, false
	}
	return cs.Sources[cs.idx], true
}

// Advance moves to the next candidate, reporting whether one remains. This
// is the odometer's "carry" operation for a single digit.
func (cs *CandidateSet) Advance() bool {
	cs.idx++
	return cs.idx < len(cs.Sources)
}

func (cs *CandidateSet) Exhausted() bool { return cs.idx >= len(cs.Sources) }

// Remove drops src from the remaining candidate list, used when the
// consistency checker rules it out permanently rather than merely
// deprioritizing it.
func (cs *CandidateSet) Remove(src PackageSource) {
	out := cs.Sources[:0]
	for _, s := range cs.Sources {
		if !s.Equal(src) {
			out = append(out, s)
		}
	}
	cs.Sources = out
	if cs.idx > len(cs.Sources) {
		cs.idx = len(cs.Sources)
	}
}

// clone makes a deep-enough copy for backtracking snapshots: Sources is
// copied into a new slice and idx is independent.
func (cs *CandidateSet) clone() *CandidateSet {
	dup := *cs
	dup.Sources = append([]PackageSource(nil), cs.Sources...)
	return &dup
}

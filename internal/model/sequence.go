package model

import (
	"iter"
	"sort"
)

// Region is a contiguous span of residues, 1-based and inclusive on
// both ends.
type Region struct {
	Start int
	End   int
}

// Length returns the number of residues in the region.
func (r Region) Length() int {
	return r.End - r.Start + 1
}

// SequenceAssignments owns the set of assignments accepted so far for
// one sequence. The set is only ever mutated through TryAssign, which
// enforces the overlap policy, so the invariant that no two accepted
// assignments conflict holds at all times.
type SequenceAssignments struct {
	ID          string
	Length      int
	Assignments []Assignment
}

// NewSequenceAssignments creates an empty assignment set for the
// sequence with the given ID and length.
func NewSequenceAssignments(id string, length int) *SequenceAssignments {
	return &SequenceAssignments{ID: id, Length: length}
}

// TryAssign attempts to add the assignment to the set. The subfamily
// suffix is stripped from the domain ID before anything else. When
// check is false the assignment is appended unconditionally; callers
// use this when re-loading a file that has already been filtered.
// Otherwise the candidate is classified against every accepted
// assignment and rejected as soon as one classification falls outside
// the policy. Returns whether the assignment was added.
func (s *SequenceAssignments) TryAssign(a Assignment, policy OverlapPolicy, check bool) bool {
	a = a.StripSubfamily()

	if check {
		for _, existing := range s.Assignments {
			if t := Classify(a, existing, policy.MaxOverlap); !policy.Permits(t) {
				return false
			}
		}
	}

	s.Assignments = append(s.Assignments, a)
	return true
}

// matchesSources reports whether the assignment's source is in the
// given list; an empty list matches everything.
func matchesSources(a Assignment, sources []string) bool {
	if len(sources) == 0 {
		return true
	}
	for _, src := range sources {
		if a.Source == src {
			return true
		}
	}
	return false
}

// Coverage returns the fraction of residues covered by at least one
// accepted assignment. When sources are given, only assignments from
// those sources count.
func (s *SequenceAssignments) Coverage(sources ...string) float64 {
	if s.Length <= 0 {
		return 0
	}
	covered := s.coverageFlags(sources)
	count := 0
	for i := 1; i <= s.Length; i++ {
		if covered[i] {
			count++
		}
	}
	return float64(count) / float64(s.Length)
}

// CoveredResidues returns the number of residues covered by at least
// one accepted assignment from the given sources (all sources when the
// list is empty).
func (s *SequenceAssignments) CoveredResidues(sources ...string) int {
	covered := s.coverageFlags(sources)
	count := 0
	for i := 1; i <= s.Length; i++ {
		if covered[i] {
			count++
		}
	}
	return count
}

// coverageFlags builds the per-residue coverage array; index 0 is
// unused so positions map directly.
func (s *SequenceAssignments) coverageFlags(sources []string) []bool {
	covered := make([]bool, s.Length+1)
	for _, a := range s.Assignments {
		if !matchesSources(a, sources) {
			continue
		}
		for i := a.Start; i <= a.End && i <= s.Length; i++ {
			covered[i] = true
		}
	}
	return covered
}

// DomainArchitecture returns the domain IDs of the accepted
// assignments ordered by ascending starting position, optionally
// restricted to the given sources.
func (s *SequenceAssignments) DomainArchitecture(sources ...string) []string {
	selected := make([]Assignment, 0, len(s.Assignments))
	for _, a := range s.Assignments {
		if matchesSources(a, sources) {
			selected = append(selected, a)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Start < selected[j].Start
	})
	arch := make([]string, len(selected))
	for i, a := range selected {
		arch[i] = a.Domain
	}
	return arch
}

// SortedAssignments returns the accepted assignments ordered by
// ascending starting position.
func (s *SequenceAssignments) SortedAssignments() []Assignment {
	sorted := make([]Assignment, len(s.Assignments))
	copy(sorted, s.Assignments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})
	return sorted
}

// DataSources returns the sorted distinct sources of the accepted
// assignments.
func (s *SequenceAssignments) DataSources() []string {
	seen := make(map[string]bool)
	for _, a := range s.Assignments {
		seen[a.Source] = true
	}
	sources := make([]string, 0, len(seen))
	for src := range seen {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	return sources
}

// IsCompletelyUnassigned reports whether no accepted assignment touches
// the given region.
func (s *SequenceAssignments) IsCompletelyUnassigned(start, end int) bool {
	for _, a := range s.Assignments {
		if a.End >= start && a.Start <= end {
			return false
		}
	}
	return true
}

// UnassignedRegions returns the maximal gaps not covered by any
// accepted assignment, scanning left to right. The sequence is lazy and
// can be restarted by ranging over it again.
func (s *SequenceAssignments) UnassignedRegions() iter.Seq[Region] {
	return func(yield func(Region) bool) {
		covered := s.coverageFlags(nil)
		pos := 1
		for pos <= s.Length {
			for pos <= s.Length && covered[pos] {
				pos++
			}
			if pos > s.Length {
				return
			}
			start := pos
			for pos <= s.Length && !covered[pos] {
				pos++
			}
			if !yield(Region{Start: start, End: pos - 1}) {
				return
			}
		}
	}
}

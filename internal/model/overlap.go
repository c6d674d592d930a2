package model

// DefaultMaxOverlap is the default maximum overlap size allowed between
// partially overlapping assignments of the same source.
const DefaultMaxOverlap = 20

// OverlapType classifies the geometric and provenance relationship
// between two assignments on the same sequence
type OverlapType int

const (
	NoOverlap          OverlapType = iota // no conflict between the two assignments
	Duplicate                             // identical start and end positions
	Insertion                             // one contains the other, same source
	InsertionDifferent                    // one contains the other, different sources
	Different                             // partial overlap, different sources
	Overlap                               // partial overlap, same source, above the size limit
)

func (t OverlapType) String() string {
	switch t {
	case NoOverlap:
		return "NO_OVERLAP"
	case Duplicate:
		return "DUPLICATE"
	case Insertion:
		return "INSERTION"
	case InsertionDifferent:
		return "INSERTION_DIFFERENT"
	case Different:
		return "DIFFERENT"
	case Overlap:
		return "OVERLAP"
	default:
		return "UNKNOWN"
	}
}

// OverlapPolicy decides which overlap relationships between a candidate
// and an already accepted assignment still permit the candidate to be
// inserted. MaxOverlap is carried here so the threshold is threaded
// explicitly into every classification instead of living in a global.
type OverlapPolicy struct {
	Allowed    map[OverlapType]bool
	MaxOverlap int
}

// DefaultOverlapPolicy permits disjoint placements and same-source
// domain insertions, with the default overlap size limit.
func DefaultOverlapPolicy() OverlapPolicy {
	return OverlapPolicy{
		Allowed: map[OverlapType]bool{
			NoOverlap: true,
			Insertion: true,
		},
		MaxOverlap: DefaultMaxOverlap,
	}
}

// WithMaxOverlap returns a copy of the policy with a different overlap
// size limit.
func (p OverlapPolicy) WithMaxOverlap(size int) OverlapPolicy {
	p.MaxOverlap = size
	return p
}

// Permits reports whether the policy allows a candidate whose
// classification against an existing assignment came out as t.
func (p OverlapPolicy) Permits(t OverlapType) bool {
	return p.Allowed[t]
}

// Classify computes the relationship between a candidate assignment and
// an existing one on the same sequence. The cases are evaluated in a
// fixed priority order: duplicate span, containment in either
// direction, left and right overhang partial overlaps, then disjoint.
// For same-source partial overlaps the result is Overlap only when the
// shared region is longer than maxOverlap residues.
func Classify(candidate, existing Assignment, maxOverlap int) OverlapType {
	start, end := candidate.Start, candidate.End
	otherStart, otherEnd := existing.Start, existing.End
	sameSource := existing.Source == candidate.Source

	if otherStart == start && otherEnd == end {
		return Duplicate
	}

	if otherStart <= start && otherEnd >= end {
		// The candidate is inserted into the existing assignment.
		if sameSource {
			return Insertion
		}
		return InsertionDifferent
	}

	if otherStart >= start && otherEnd <= end {
		// The candidate contains the existing assignment completely.
		if sameSource {
			return Insertion
		}
		return InsertionDifferent
	}

	if otherStart <= start && otherEnd <= end && otherEnd >= start {
		if !sameSource {
			return Different
		}
		if otherEnd-start+1 > maxOverlap {
			return Overlap
		}
		return NoOverlap
	}

	if otherStart >= start && otherEnd >= end && otherStart <= end {
		if !sameSource {
			return Different
		}
		if end-otherStart+1 > maxOverlap {
			return Overlap
		}
		return NoOverlap
	}

	return NoOverlap
}

// OverlapSize returns the number of residues shared by the two
// assignments, 0 when they are disjoint. Used by coverage statistics,
// not by Classify.
func OverlapSize(a, b Assignment) int {
	start, end := a.Start, a.End
	if b.Start > start {
		start = b.Start
	}
	if b.End < end {
		end = b.End
	}
	if end < start {
		return 0
	}
	return end - start + 1
}

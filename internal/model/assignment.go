package model

import (
	"fmt"
	"strings"
)

// subfamilyMarker separates a domain ID from its subfamily suffix
// (e.g. PTHR11863:SF4). Subfamilies are never stored or compared.
const subfamilyMarker = ":SF"

// Assignment represents one candidate domain hit on one sequence, as
// produced by a single evidence source. Values are never mutated after
// parsing; derived variants are returned as copies.
type Assignment struct {
	SequenceID     string  // ID of the sequence the hit belongs to
	SequenceLength int     // length of the sequence, uniform across the group
	Start          int     // starting position, 1-based inclusive
	End            int     // ending position, 1-based inclusive
	Source         string  // evidence source that produced the hit (e.g. HMMPfam)
	Domain         string  // domain ID according to the source
	EValue         float64 // E-value of the hit, meaningful only if HasEValue
	HasEValue      bool    // whether the source reported an E-value
	CanonicalID    string  // resolved canonical ID for Domain, empty if unknown
	Comment        string  // free-text annotation
}

// AssignedLength returns the number of residues the assignment spans.
func (a Assignment) AssignedLength() int {
	return a.End - a.Start + 1
}

// StripSubfamily returns a copy of the assignment with any subfamily
// suffix removed from the domain ID.
func (a Assignment) StripSubfamily() Assignment {
	if idx := strings.Index(a.Domain, subfamilyMarker); idx >= 0 {
		a.Domain = a.Domain[:idx]
	}
	return a
}

// Resolver maps a raw domain ID (and the canonical cross-reference
// reported alongside it, if any) to its canonical ancestor ID. An
// implementation must be idempotent and must never cycle.
type Resolver interface {
	Resolve(domain, canonical string) string
}

// Resolve returns a copy of the assignment whose Domain is replaced by
// its canonical ancestor according to the given resolver. The receiver
// is returned unchanged when the resolver agrees with the current ID.
func (a Assignment) Resolve(r Resolver) Assignment {
	anc := r.Resolve(a.Domain, a.CanonicalID)
	if anc != "" && anc != a.Domain {
		a.Domain = anc
	}
	return a
}

// ShortString is the compact representation used in logs and reports.
func (a Assignment) ShortString() string {
	return fmt.Sprintf("%s(%d-%d)", a.Domain, a.Start, a.End)
}

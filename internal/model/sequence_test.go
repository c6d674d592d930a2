package model

import (
	"testing"
)

func seqHit(source, domain string, start, end int) Assignment {
	return Assignment{
		SequenceID:     "seq1",
		SequenceLength: 100,
		Start:          start,
		End:            end,
		Source:         source,
		Domain:         domain,
	}
}

func TestTryAssign_StripsSubfamily(t *testing.T) {
	seq := NewSequenceAssignments("seq1", 100)
	policy := DefaultOverlapPolicy()

	if !seq.TryAssign(seqHit("HMMPanther", "PTHR11863:SF4", 1, 50), policy, true) {
		t.Fatal("first assignment should be accepted")
	}
	if got := seq.Assignments[0].Domain; got != "PTHR11863" {
		t.Errorf("expected subfamily suffix stripped, got %q", got)
	}
}

func TestTryAssign_RejectsDuplicate(t *testing.T) {
	seq := NewSequenceAssignments("seq1", 100)
	policy := DefaultOverlapPolicy()
	a := seqHit("HMMPfam", "PF00069", 10, 60)

	if !seq.TryAssign(a, policy, true) {
		t.Fatal("first insertion should succeed")
	}
	if seq.TryAssign(a, policy, true) {
		t.Error("inserting the same assignment twice should be rejected")
	}
	if len(seq.Assignments) != 1 {
		t.Errorf("expected 1 accepted assignment, got %d", len(seq.Assignments))
	}
}

func TestTryAssign_NoCheckAppendsUnconditionally(t *testing.T) {
	seq := NewSequenceAssignments("seq1", 100)
	policy := DefaultOverlapPolicy()
	a := seqHit("HMMPfam", "PF00069", 10, 60)

	seq.TryAssign(a, policy, true)
	if !seq.TryAssign(a, policy, false) {
		t.Error("unchecked insertion should always succeed")
	}
	if len(seq.Assignments) != 2 {
		t.Errorf("expected 2 assignments after unchecked insertion, got %d", len(seq.Assignments))
	}
}

func TestTryAssign_SameSourceInsertionAllowed(t *testing.T) {
	seq := NewSequenceAssignments("seq1", 100)
	policy := DefaultOverlapPolicy()

	if !seq.TryAssign(seqHit("HMMPfam", "PF00001", 1, 100), policy, true) {
		t.Fatal("outer assignment should be accepted")
	}
	if !seq.TryAssign(seqHit("HMMPfam", "PF00002", 20, 30), policy, true) {
		t.Error("same-source domain insertion should be accepted")
	}
	if seq.TryAssign(seqHit("HMMSmart", "SM00001", 40, 60), policy, true) {
		t.Error("cross-source insertion should be rejected")
	}
}

func TestTryAssign_OverlapLimit(t *testing.T) {
	policy := DefaultOverlapPolicy().WithMaxOverlap(5)
	seq := NewSequenceAssignments("seq1", 100)

	if !seq.TryAssign(seqHit("X", "D1", 1, 50), policy, true) {
		t.Fatal("first assignment should be accepted")
	}
	// Overlap of 11 residues exceeds the limit of 5.
	if seq.TryAssign(seqHit("X", "D2", 40, 90), policy, true) {
		t.Error("overlap above the limit should be rejected")
	}
	// With the default limit of 20 the same geometry is fine.
	seq2 := NewSequenceAssignments("seq1", 100)
	def := DefaultOverlapPolicy()
	seq2.TryAssign(seqHit("X", "D1", 1, 50), def, true)
	if !seq2.TryAssign(seqHit("X", "D2", 40, 90), def, true) {
		t.Error("overlap below the limit should be accepted")
	}
}

func TestCoverage(t *testing.T) {
	seq := NewSequenceAssignments("seq1", 100)
	policy := DefaultOverlapPolicy()

	if got := seq.Coverage(); got != 0 {
		t.Errorf("empty sequence coverage = %f, want 0", got)
	}

	seq.TryAssign(seqHit("HMMPfam", "PF00001", 1, 50), policy, true)
	if got := seq.Coverage(); got != 0.5 {
		t.Errorf("coverage = %f, want 0.5", got)
	}

	prev := seq.Coverage()
	seq.TryAssign(seqHit("HMMSmart", "SM00001", 61, 90), policy, true)
	got := seq.Coverage()
	if got < prev {
		t.Errorf("coverage decreased from %f to %f", prev, got)
	}
	if got != 0.8 {
		t.Errorf("coverage = %f, want 0.8", got)
	}
	if got > 1.0 {
		t.Errorf("coverage %f exceeds 1.0", got)
	}

	if got := seq.Coverage("HMMPfam"); got != 0.5 {
		t.Errorf("source-filtered coverage = %f, want 0.5", got)
	}
	if got := seq.CoveredResidues("HMMSmart"); got != 30 {
		t.Errorf("covered residues = %d, want 30", got)
	}
}

func TestDomainArchitecture(t *testing.T) {
	seq := NewSequenceAssignments("seq1", 100)
	policy := DefaultOverlapPolicy()

	// Insert out of positional order; the architecture must be sorted
	// by starting position.
	seq.TryAssign(seqHit("HMMPfam", "PF00002", 61, 90), policy, true)
	seq.TryAssign(seqHit("HMMPfam", "PF00001", 1, 50), policy, true)

	arch := seq.DomainArchitecture()
	if len(arch) != 2 || arch[0] != "PF00001" || arch[1] != "PF00002" {
		t.Errorf("unexpected architecture %v", arch)
	}

	if got := seq.DomainArchitecture("HMMSmart"); len(got) != 0 {
		t.Errorf("expected empty filtered architecture, got %v", got)
	}
}

func TestDataSources(t *testing.T) {
	seq := NewSequenceAssignments("seq1", 100)
	policy := DefaultOverlapPolicy()
	seq.TryAssign(seqHit("HMMSmart", "SM00001", 61, 90), policy, true)
	seq.TryAssign(seqHit("HMMPfam", "PF00001", 1, 50), policy, true)

	sources := seq.DataSources()
	if len(sources) != 2 || sources[0] != "HMMPfam" || sources[1] != "HMMSmart" {
		t.Errorf("unexpected sources %v", sources)
	}
}

func TestUnassignedRegions_PartitionLaw(t *testing.T) {
	seq := NewSequenceAssignments("seq1", 100)
	policy := DefaultOverlapPolicy()
	seq.TryAssign(seqHit("X", "D1", 11, 40), policy, true)
	seq.TryAssign(seqHit("X", "D2", 61, 80), policy, true)

	var regions []Region
	for r := range seq.UnassignedRegions() {
		regions = append(regions, r)
	}

	want := []Region{{1, 10}, {41, 60}, {81, 100}}
	if len(regions) != len(want) {
		t.Fatalf("expected %d gaps, got %v", len(want), regions)
	}
	for i, r := range regions {
		if r != want[i] {
			t.Errorf("gap %d = %v, want %v", i, r, want[i])
		}
	}

	// Gaps plus covered residues partition the full range exactly.
	total := 0
	for _, r := range regions {
		total += r.Length()
	}
	if total+seq.CoveredResidues() != seq.Length {
		t.Errorf("gaps (%d) and covered residues (%d) do not partition length %d",
			total, seq.CoveredResidues(), seq.Length)
	}
}

func TestUnassignedRegions_Restartable(t *testing.T) {
	seq := NewSequenceAssignments("seq1", 100)
	policy := DefaultOverlapPolicy()
	seq.TryAssign(seqHit("X", "D1", 21, 100), policy, true)

	gaps := seq.UnassignedRegions()
	first, second := 0, 0
	for range gaps {
		first++
	}
	for range gaps {
		second++
	}
	if first != 1 || second != 1 {
		t.Errorf("iterator not restartable: first pass %d, second pass %d", first, second)
	}
}

func TestUnassignedRegions_FullyCovered(t *testing.T) {
	seq := NewSequenceAssignments("seq1", 100)
	policy := DefaultOverlapPolicy()
	seq.TryAssign(seqHit("X", "D1", 1, 100), policy, true)

	for r := range seq.UnassignedRegions() {
		t.Errorf("unexpected gap %v on a fully covered sequence", r)
	}
}

func TestIsCompletelyUnassigned(t *testing.T) {
	seq := NewSequenceAssignments("seq1", 100)
	policy := DefaultOverlapPolicy()
	seq.TryAssign(seqHit("X", "D1", 11, 40), policy, true)

	if !seq.IsCompletelyUnassigned(41, 100) {
		t.Error("region after the assignment should be unassigned")
	}
	if seq.IsCompletelyUnassigned(40, 50) {
		t.Error("region touching the assignment should not be unassigned")
	}
}

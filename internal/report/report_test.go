package report

import (
	"strings"
	"testing"

	"github.com/pkarolyi/genefam/internal/interpro"
	"github.com/pkarolyi/genefam/internal/model"
)

func sequence(id string, length int, assignments ...model.Assignment) *model.SequenceAssignments {
	seq := &model.SequenceAssignments{ID: id, Length: length}
	for _, a := range assignments {
		a.SequenceID = id
		a.SequenceLength = length
		seq.TryAssign(a, model.DefaultOverlapPolicy(), false)
	}
	return seq
}

func assignment(source, domain string, start, end int) model.Assignment {
	return model.Assignment{Source: source, Domain: domain, Start: start, End: end}
}

func TestWriteSequenceStats(t *testing.T) {
	seq := sequence("seq1", 100,
		assignment("HMMPfam", "PF00001", 1, 40),
		assignment("HMMSmart", "SM00001", 31, 60),
	)

	var out strings.Builder
	if err := WriteSequenceStats(&out, seq); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"seq1\t100\tHMMPfam\t40\t0.4000",
		"seq1\t100\tHMMSmart\t30\t0.3000",
		"seq1\t100\tALL\t60\t0.6000",
	}, "\n") + "\n"
	if out.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestGenomeStats(t *testing.T) {
	stats := NewGenomeStats()
	stats.Add(sequence("seq1", 100, assignment("HMMPfam", "PF00001", 1, 40)))
	stats.Add(sequence("seq2", 100,
		assignment("HMMPfam", "PF00001", 1, 40),
		assignment("HMMSmart", "SM00001", 51, 60),
	))
	stats.Add(sequence("seq3", 200))

	var out strings.Builder
	if err := stats.Write(&out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 400 residues total; Pfam covers 80, Smart 10, combined 90. seq1
	// and seq2 share one Pfam architecture, seq2 adds a combined one.
	want := strings.Join([]string{
		"HMMPfam\t2\t1\t0.2000",
		"HMMSmart\t1\t1\t0.0250",
		"ALL\t3\t2\t0.2250",
	}, "\n") + "\n"
	if out.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestArchitectureIndex(t *testing.T) {
	index := NewArchitectureIndex()
	index.Add(sequence("seq1", 100,
		assignment("HMMPfam", "PF00001", 1, 40),
		assignment("HMMSmart", "SM00001", 51, 60),
	))
	index.Add(sequence("seq2", 100,
		assignment("HMMPfam", "PF00001", 5, 45),
		assignment("HMMSmart", "SM00001", 55, 65),
	))
	index.Add(sequence("seq3", 100, assignment("HMMPfam", "PF00002", 1, 40)))
	index.Add(sequence("seq4", 100))

	groups := index.Groups()
	if len(groups) != 3 {
		t.Fatalf("expected 3 architecture families, got %d", len(groups))
	}
	if groups[0].Architecture != "PF00001;SM00001" || len(groups[0].Members) != 2 {
		t.Errorf("largest family = %q with %d members", groups[0].Architecture, len(groups[0].Members))
	}
	// Singleton families tie on size and fall back to the architecture
	// string.
	if groups[1].Architecture != noAssignment {
		t.Errorf("second family = %q, want %q", groups[1].Architecture, noAssignment)
	}
	if groups[2].Architecture != "PF00002" {
		t.Errorf("third family = %q, want PF00002", groups[2].Architecture)
	}
}

func TestArchitectureIndexWrite(t *testing.T) {
	index := NewArchitectureIndex()
	index.Add(sequence("seq1", 100,
		assignment("HMMPfam", "PF00001", 1, 40),
		assignment("HMMSmart", "SM00001", 51, 60),
	))

	var out strings.Builder
	if err := index.Write(&out, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), "seq1\t1\tPF00001;SM00001\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	out.Reset()
	names := interpro.Names{"PF00001": "Kinase domain"}
	if err := index.Write(&out, names); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "seq1\t1\tPF00001;SM00001\tKinase domain;SM00001\tPF00001(1-40);SM00001(51-60)\n"
	if got := out.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteUnassigned(t *testing.T) {
	seq := sequence("seq1", 100,
		assignment("HMMPfam", "PF00001", 11, 40),
		assignment("HMMSmart", "SM00001", 61, 80),
	)

	var out strings.Builder
	if err := WriteUnassigned(&out, seq, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "seq1\t1\t10\nseq1\t41\t60\nseq1\t81\t100\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}

	out.Reset()
	if err := WriteUnassigned(&out, seq, 15); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out.String(), "seq1\t41\t60\n"; got != want {
		t.Errorf("min fragment filter: got %q, want %q", got, want)
	}
}

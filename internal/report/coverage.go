// Package report derives read-side reports from accepted assignment
// sets: coverage statistics, domain architecture families and
// unassigned-region listings.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkarolyi/genefam/internal/model"
)

// allSources is the pseudo-source aggregating every data source in the
// coverage reports.
const allSources = "ALL"

// WriteSequenceStats writes one row per data source of the sequence
// (ID, length, source, covered residues, covered fraction) followed by
// an ALL row combining every source.
func WriteSequenceStats(w io.Writer, seq *model.SequenceAssignments) error {
	for _, source := range seq.DataSources() {
		covered := seq.CoveredResidues(source)
		cov := seq.Coverage(source)
		if _, err := fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%.4f\n", seq.ID, seq.Length, source, covered, cov); err != nil {
			return err
		}
	}
	covered := seq.CoveredResidues()
	cov := seq.Coverage()
	_, err := fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%.4f\n", seq.ID, seq.Length, allSources, covered, cov)
	return err
}

// GenomeStats aggregates per-source statistics over a whole collection
// of sequences: how many sequences each source annotates, how many
// distinct domain architectures it produces and what fraction of all
// residues it covers.
type GenomeStats struct {
	sequences     map[string]int
	covered       map[string]int
	architectures map[string]map[string]bool
	totalResidues int
}

// NewGenomeStats returns an empty accumulator.
func NewGenomeStats() *GenomeStats {
	return &GenomeStats{
		sequences:     make(map[string]int),
		covered:       make(map[string]int),
		architectures: make(map[string]map[string]bool),
	}
}

func (g *GenomeStats) addArchitecture(source string, arch []string) {
	if len(arch) == 0 {
		return
	}
	key := strings.Join(arch, ";")
	if g.architectures[source] == nil {
		g.architectures[source] = make(map[string]bool)
	}
	g.architectures[source][key] = true
}

// Add folds one sequence into the statistics.
func (g *GenomeStats) Add(seq *model.SequenceAssignments) {
	g.totalResidues += seq.Length
	for _, source := range seq.DataSources() {
		g.sequences[source]++
		g.covered[source] += seq.CoveredResidues(source)
		g.addArchitecture(source, seq.DomainArchitecture(source))
	}
	g.sequences[allSources]++
	g.covered[allSources] += seq.CoveredResidues()
	g.addArchitecture(allSources, seq.DomainArchitecture())
}

// Write emits one row per source (source, sequences annotated,
// distinct architectures, covered residue fraction), sources sorted
// alphabetically with ALL last.
func (g *GenomeStats) Write(w io.Writer) error {
	sources := make([]string, 0, len(g.sequences))
	for source := range g.sequences {
		if source != allSources {
			sources = append(sources, source)
		}
	}
	sort.Strings(sources)
	sources = append(sources, allSources)

	for _, source := range sources {
		fraction := 0.0
		if g.totalResidues > 0 {
			fraction = float64(g.covered[source]) / float64(g.totalResidues)
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%.4f\n",
			source, g.sequences[source], len(g.architectures[source]), fraction); err != nil {
			return err
		}
	}
	return nil
}

// Package consensus selects, for each sequence, one consistent set of
// domain assignments out of the candidates produced by multiple
// disagreeing evidence sources.
package consensus

import (
	"errors"
	"sort"

	"github.com/pkarolyi/genefam/internal/filter"
	"github.com/pkarolyi/genefam/internal/interpro"
	"github.com/pkarolyi/genefam/internal/model"
)

// ErrAmbiguousLength is returned when the candidates of one sequence
// disagree about the sequence length; the whole sequence is excluded.
var ErrAmbiguousLength = errors.New("ambiguous sequence length in input file")

// Selected is one accepted candidate tagged with the 1-based stage
// that selected it.
type Selected struct {
	Record interpro.Record
	Stage  int
}

// Builder runs the staged consensus selection for one sequence at a
// time.
//
// Stage 1 picks the single allowed source with the highest coverage and
// seeds the result with its candidates; sources are visited in
// lexicographic order and only a strictly higher coverage replaces the
// current best, so coverage ties resolve to the lexicographically
// smaller source name. The remaining stages backfill from the pooled
// unused candidates sorted by descending assigned length, ties keeping
// their original input order.
type Builder struct {
	// Policy is the overlap policy applied on every insertion,
	// including the overlap size limit.
	Policy model.OverlapPolicy

	// Stages gates which sources are eligible in each round. Stage 1
	// is the primary source selection.
	Stages []filter.Set

	// Resolver, when set, remaps candidate domain IDs to their
	// canonical ancestors before selection.
	Resolver model.Resolver
}

// NewBuilder creates a builder from the configuration, falling back to
// the default stage setup when none is configured.
func NewBuilder(cfg *model.Config) *Builder {
	stages := cfg.Stages
	if len(stages) == 0 {
		stages = model.DefaultStages()
	}
	return &Builder{
		Policy: model.DefaultOverlapPolicy().WithMaxOverlap(cfg.MaxOverlap),
		Stages: filter.ParseStages(stages),
	}
}

// candidate pairs a record with its position in the input group.
type candidate struct {
	record interpro.Record
	index  int
}

// Build selects the accepted subset of the group's candidates. The
// returned records are in original input order. An empty result with a
// nil error means no stage selected anything; ErrAmbiguousLength means
// the group disagreed about the sequence length.
func (b *Builder) Build(group *interpro.Group) ([]Selected, error) {
	if len(group.Records) == 0 {
		return nil, nil
	}

	seqLength := group.Records[0].Assignment.SequenceLength
	for _, rec := range group.Records {
		if rec.Assignment.SequenceLength != seqLength {
			return nil, ErrAmbiguousLength
		}
	}

	// Group candidates by source, preserving input order both within
	// and across sources.
	bySource := make(map[string][]candidate)
	for i, rec := range group.Records {
		if b.Resolver != nil {
			rec.Assignment = rec.Assignment.Resolve(b.Resolver)
		}
		src := rec.Assignment.Source
		bySource[src] = append(bySource[src], candidate{record: rec, index: i})
	}
	sources := make([]string, 0, len(bySource))
	for src := range bySource {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	// Stage 1: the allowed source covering the most of the sequence.
	firstStage := b.Stages[0]
	bestSource, bestCoverage := "", -1.0
	for _, src := range sources {
		if !firstStage.Contains(src) {
			continue
		}
		scratch := model.NewSequenceAssignments(group.ID, seqLength)
		for _, c := range bySource[src] {
			scratch.TryAssign(c.record.Assignment, b.Policy, true)
		}
		if cov := scratch.Coverage(); cov > bestCoverage {
			bestSource, bestCoverage = src, cov
		}
	}
	if bestSource == "" {
		return nil, nil
	}

	type picked struct {
		candidate candidate
		stage     int
	}

	seq := model.NewSequenceAssignments(group.ID, seqLength)
	var picks []picked
	for _, c := range bySource[bestSource] {
		if seq.TryAssign(c.record.Assignment, b.Policy, true) {
			picks = append(picks, picked{candidate: c, stage: 1})
		}
	}

	// Pool the unused candidates, longest assignment first; the sort
	// is stable so equal lengths keep their input order.
	var pool []candidate
	for _, src := range sources {
		if src == bestSource {
			continue
		}
		pool = append(pool, bySource[src]...)
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].index < pool[j].index
	})
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].record.Assignment.AssignedLength() > pool[j].record.Assignment.AssignedLength()
	})

	// Stages 2..N: greedy backfill. A candidate accepted in one stage
	// is not reconsidered in later ones.
	used := make([]bool, len(pool))
	for stageNo := 2; stageNo <= len(b.Stages); stageNo++ {
		stage := b.Stages[stageNo-1]
		for i, c := range pool {
			if used[i] || !stage.Contains(c.record.Assignment.Source) {
				continue
			}
			if seq.TryAssign(c.record.Assignment, b.Policy, true) {
				used[i] = true
				picks = append(picks, picked{candidate: c, stage: stageNo})
			}
		}
	}

	// Emit in original input order; the stage tag carries the
	// selection round, not the row position.
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].candidate.index < picks[j].candidate.index
	})
	selected := make([]Selected, len(picks))
	for i, p := range picks {
		selected[i] = Selected{Record: p.candidate.record, Stage: p.stage}
	}
	return selected, nil
}

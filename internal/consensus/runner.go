package consensus

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pkarolyi/genefam/internal/filter"
	"github.com/pkarolyi/genefam/internal/interpro"
)

// Exclusion reasons written to the exclusion log.
const (
	reasonNotInIDList   = "not in the list of valid sequence IDs"
	reasonNothingPassed = "no assignments in the input data file passed the filters"
	reasonBadLength     = "ambiguous sequence length in input file"
	reasonOutOfOrder    = "out-of-order group: sequence ID seen in an earlier block"
	reasonNoneSelected  = "no assignments were selected after executing all the stages"
)

// Runner streams grouped assignment records through the record-level
// gates and the staged builder, writing the accepted rows tagged with
// their selection stage. One group is buffered at a time, so memory
// stays bounded by the largest group regardless of input size.
type Runner struct {
	Builder *Builder

	// EValue gates candidates by per-source E-value thresholds.
	EValue *filter.EValueFilter

	// Ignored sources are dropped from the input before grouping by
	// source.
	Ignored filter.Set

	// ValidIDs restricts processing to the listed sequence IDs.
	ValidIDs filter.Set

	// Exclusions receives one entry per excluded sequence; nil is fine.
	Exclusions *ExclusionLog

	// Warnf, when set, receives warnings about malformed lines and
	// excluded sequences.
	Warnf func(format string, args ...any)
}

func (r *Runner) warnf(format string, args ...any) {
	if r.Warnf != nil {
		r.Warnf(format, args...)
	}
}

// Run consumes the assignment stream and writes the selected rows.
// Data problems never abort the run: malformed lines are warned about
// and skipped, problem sequences are excluded and logged. Only I/O
// failures are returned.
func (r *Runner) Run(in io.Reader, out io.Writer) error {
	w := bufio.NewWriter(out)
	reader := interpro.NewGroupReader(in)
	reader.OnError = func(err error) {
		r.warnf("skipping malformed line: %v", err)
	}

	for {
		group, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read assignments: %w", err)
		}
		if err := r.processGroup(group, w); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (r *Runner) processGroup(group *interpro.Group, w *bufio.Writer) error {
	if group.OutOfOrder {
		r.warnf("sequence %s appears in multiple non-adjacent blocks, skipping the later one", group.ID)
		r.Exclusions.Log(group.ID, reasonOutOfOrder)
		return nil
	}
	if !r.ValidIDs.Contains(group.ID) {
		r.Exclusions.Log(group.ID, reasonNotInIDList)
		return nil
	}

	kept := group.Records[:0:0]
	for _, rec := range group.Records {
		if r.Ignored.Contains(rec.Assignment.Source) {
			continue
		}
		if r.EValue != nil && !r.EValue.Accepts(rec.Assignment) {
			continue
		}
		kept = append(kept, rec)
	}
	if len(kept) == 0 {
		r.Exclusions.Log(group.ID, reasonNothingPassed)
		return nil
	}

	selected, err := r.Builder.Build(&interpro.Group{ID: group.ID, Records: kept})
	if errors.Is(err, ErrAmbiguousLength) {
		r.warnf("sequence %s has assignments with different sequence lengths, skipping", group.ID)
		r.Exclusions.Log(group.ID, reasonBadLength)
		return nil
	}
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		r.Exclusions.Log(group.ID, reasonNoneSelected)
		return nil
	}

	for _, sel := range selected {
		if _, err := fmt.Fprintln(w, FormatSelected(sel)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

// FormatSelected renders an accepted row: the original line padded to
// the full column count with the selection stage appended as the final
// column.
func FormatSelected(sel Selected) string {
	line := strings.TrimRight(sel.Record.Line, "\r\n")
	if missing := 13 - strings.Count(line, "\t"); missing > 0 {
		line += strings.Repeat("\t", missing)
	}
	return fmt.Sprintf("%s\t%d", line, sel.Stage)
}

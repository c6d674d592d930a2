package report

import (
	"fmt"
	"io"

	"github.com/pkarolyi/genefam/internal/model"
)

// WriteUnassigned writes one row per unassigned region of the sequence
// (ID, start, end, both 1-based inclusive), skipping fragments shorter
// than minFragment residues.
func WriteUnassigned(w io.Writer, seq *model.SequenceAssignments, minFragment int) error {
	for region := range seq.UnassignedRegions() {
		if region.Length() < minFragment {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\n", seq.ID, region.Start, region.End); err != nil {
			return err
		}
	}
	return nil
}

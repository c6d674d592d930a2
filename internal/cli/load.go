package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pkarolyi/genefam/internal/interpro"
	"github.com/pkarolyi/genefam/internal/model"
)

// loadSequences reads a whole assignment file into one assignment set
// per sequence, in first-seen order. Malformed lines and records whose
// sequence length disagrees with an earlier record of the same
// sequence are warned about and skipped. When check is false the
// overlap policy is not enforced, which is the right mode for files
// already produced by the filter command.
func loadSequences(r io.Reader, policy model.OverlapPolicy, check bool, resolver model.Resolver) ([]*model.SequenceAssignments, error) {
	byID := make(map[string]*model.SequenceAssignments)
	var order []*model.SequenceAssignments

	reader := interpro.NewReader(r)
	for {
		rec, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *interpro.ParseError
			if errors.As(err, &perr) {
				fmt.Fprintf(os.Stderr, "Warning: skipping malformed line: %v\n", err)
				continue
			}
			return nil, fmt.Errorf("read assignments: %w", err)
		}

		a := rec.Assignment
		if resolver != nil {
			a = a.Resolve(resolver)
		}

		seq, ok := byID[a.SequenceID]
		if !ok {
			seq = model.NewSequenceAssignments(a.SequenceID, a.SequenceLength)
			byID[a.SequenceID] = seq
			order = append(order, seq)
		}
		if seq.Length != a.SequenceLength {
			fmt.Fprintf(os.Stderr, "Warning: conflicting lengths for %s: %d and %d, skipping record\n",
				a.SequenceID, seq.Length, a.SequenceLength)
			continue
		}
		seq.TryAssign(a, policy, check)
	}
	return order, nil
}

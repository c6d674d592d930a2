package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkarolyi/genefam/internal/model"
	"github.com/pkarolyi/genefam/internal/report"
	"github.com/spf13/cobra"
)

var (
	unassignedMinLength   int
	unassignedMinFragment int
	unassignedMaxOverlap  int
)

// unassignedCmd represents the unassigned command
var unassignedCmd = &cobra.Command{
	Use:   "unassigned [assignment_file]",
	Short: "List the regions not covered by any accepted assignment",
	Long: `Unassigned reads a domain assignment file and prints every maximal
region not covered by any accepted assignment, one per line:

  seqID  start  end

A sequence ID may appear many times when multiple gaps are present.
Coordinates are 1-based and inclusive.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUnassigned,
}

func init() {
	rootCmd.AddCommand(unassignedCmd)

	unassignedCmd.Flags().IntVarP(&unassignedMinLength, "min-length", "l", 0, "minimum sequence length required to report its gaps")
	unassignedCmd.Flags().IntVarP(&unassignedMinFragment, "min-fragment-length", "f", 1, "minimum gap length to report")
	unassignedCmd.Flags().IntVar(&unassignedMaxOverlap, "max-overlap", model.DefaultMaxOverlap, "maximum overlap allowed between assignments of the same source")
}

func runUnassigned(cmd *cobra.Command, args []string) error {
	if unassignedMinFragment < 1 {
		fmt.Fprintln(os.Stderr, "Warning: minimum fragment length is not positive, assuming 1")
		unassignedMinFragment = 1
	}

	in, err := openInput(args)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	policy := model.DefaultOverlapPolicy().WithMaxOverlap(unassignedMaxOverlap)
	sequences, err := loadSequences(in, policy, true, nil)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(os.Stdout)
	for _, seq := range sequences {
		if seq.Length < unassignedMinLength {
			continue
		}
		if err := report.WriteUnassigned(w, seq, unassignedMinFragment); err != nil {
			return err
		}
	}
	return w.Flush()
}

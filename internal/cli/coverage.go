package cli

import (
	"bufio"
	"os"

	"github.com/pkarolyi/genefam/internal/model"
	"github.com/pkarolyi/genefam/internal/report"
	"github.com/spf13/cobra"
)

var (
	coverageGenome     bool
	coverageNoCheck    bool
	coverageMaxOverlap int
)

// coverageCmd represents the coverage command
var coverageCmd = &cobra.Command{
	Use:   "coverage [assignment_file]",
	Short: "Coverage statistics per sequence or per collection",
	Long: `Coverage reads a domain assignment file and prints, for each sequence
and data source, the number and fraction of residues covered by at
least one assignment; the pseudo-source ALL combines every source.

With --genome one aggregate row is printed per data source instead:
sequences annotated, distinct domain architectures and the fraction of
all residues covered.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCoverage,
}

func init() {
	rootCmd.AddCommand(coverageCmd)

	coverageCmd.Flags().BoolVar(&coverageGenome, "genome", false, "print collection-level statistics instead of per-sequence rows")
	coverageCmd.Flags().BoolVar(&coverageNoCheck, "no-check", false, "skip the overlap check when loading (for already filtered files)")
	coverageCmd.Flags().IntVar(&coverageMaxOverlap, "max-overlap", model.DefaultMaxOverlap, "maximum overlap allowed between assignments of the same source")
}

func runCoverage(cmd *cobra.Command, args []string) error {
	in, err := openInput(args)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	policy := model.DefaultOverlapPolicy().WithMaxOverlap(coverageMaxOverlap)
	sequences, err := loadSequences(in, policy, !coverageNoCheck, nil)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(os.Stdout)
	if coverageGenome {
		stats := report.NewGenomeStats()
		for _, seq := range sequences {
			stats.Add(seq)
		}
		if err := stats.Write(w); err != nil {
			return err
		}
		return w.Flush()
	}

	for _, seq := range sequences {
		if err := report.WriteSequenceStats(w, seq); err != nil {
			return err
		}
	}
	return w.Flush()
}

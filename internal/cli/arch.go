package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkarolyi/genefam/internal/interpro"
	"github.com/pkarolyi/genefam/internal/model"
	"github.com/pkarolyi/genefam/internal/report"
	"github.com/spf13/cobra"
)

var (
	archInterProFile string
	archNamesFile    string
	archNoCheck      bool
	archMaxOverlap   int
)

// archCmd represents the arch command
var archCmd = &cobra.Command{
	Use:   "arch [assignment_file]",
	Short: "Group sequences by their domain architecture",
	Long: `Arch reads a filtered domain assignment file, derives the domain
architecture of each sequence (its ordered tuple of domain IDs) and
prints one row per sequence with the size of its architecture family,
largest families first:

  seqID  family_size  architecture

Sequences without any accepted assignment fall into the NO_ASSIGNMENT
family. With --names each row also carries the per-domain descriptions
and the positional form of the architecture.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runArch,
}

func init() {
	rootCmd.AddCommand(archCmd)

	archCmd.Flags().StringVarP(&archInterProFile, "interpro-file", "i", "", "InterPro parent-child file used to remap domain IDs")
	archCmd.Flags().StringVarP(&archNamesFile, "names", "n", "", "tab-separated file assigning names to domain IDs")
	archCmd.Flags().BoolVar(&archNoCheck, "no-check", false, "skip the overlap check when loading (for already filtered files)")
	archCmd.Flags().IntVar(&archMaxOverlap, "max-overlap", model.DefaultMaxOverlap, "maximum overlap allowed between assignments of the same source")
}

func runArch(cmd *cobra.Command, args []string) error {
	var resolver model.Resolver
	if archInterProFile != "" {
		ip, err := interpro.LoadInterPro(archInterProFile)
		if err != nil {
			return err
		}
		resolver = ip
		if verbose {
			fmt.Fprintf(os.Stderr, "Loaded InterPro IDs from %s\n", archInterProFile)
		}
	}

	var names interpro.Names
	if archNamesFile != "" {
		var err error
		names, err = interpro.LoadNames(archNamesFile)
		if err != nil {
			return err
		}
	}

	in, err := openInput(args)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	policy := model.DefaultOverlapPolicy().WithMaxOverlap(archMaxOverlap)
	sequences, err := loadSequences(in, policy, !archNoCheck, resolver)
	if err != nil {
		return err
	}

	index := report.NewArchitectureIndex()
	for _, seq := range sequences {
		index.Add(seq)
	}

	w := bufio.NewWriter(os.Stdout)
	if err := index.Write(w, names); err != nil {
		return err
	}
	return w.Flush()
}

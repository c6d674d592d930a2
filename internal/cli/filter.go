package cli

import (
	"fmt"
	"os"

	"github.com/pkarolyi/genefam/internal/consensus"
	"github.com/pkarolyi/genefam/internal/filter"
	"github.com/pkarolyi/genefam/internal/interpro"
	"github.com/pkarolyi/genefam/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	filterExcluded     []string
	filterEValue       string
	filterInterProFile string
	filterIDFile       string
	filterExclusionLog string
	filterMaxOverlap   int
	filterStages       []string
)

// filterCmd represents the filter command
var filterCmd = &cobra.Command{
	Use:   "filter [assignment_file]",
	Short: "Select a consensus assignment set for each sequence",
	Long: `Filter determines a consensus domain architecture for each sequence
from the raw iprscan assignment stream, which must be grouped by
sequence ID. Accepted rows are printed with the 1-based number of the
stage that selected them appended as the final column.

The default stage setup is:

  1. Take the source with the maximal coverage as the primary
     assignment, excluding HMMPanther and Gene3D.
  2. Backfill the remaining regions with the unused assignments,
     longest first, still excluding HMMPanther and Gene3D.
  3. Repeat step 2 with all sources.

Example:
  genefam filter assignments.tsv > filtered.tsv
  sort -k1,1 raw.tsv | genefam filter --max-overlap 10 -x SignalP`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringArrayVarP(&filterExcluded, "exclude", "x", nil, "add SOURCE to the list of ignored sources")
	filterCmd.Flags().StringVarP(&filterEValue, "e-value", "e", "", "E-value thresholds as source=threshold;...;default")
	filterCmd.Flags().StringVarP(&filterInterProFile, "interpro-file", "i", "", "InterPro parent-child file used to remap domain IDs")
	filterCmd.Flags().StringVarP(&filterIDFile, "gene-ids", "g", "", "only consider sequence IDs listed in FILE")
	filterCmd.Flags().StringVar(&filterExclusionLog, "log-exclusions", "", "log excluded sequences with reasons to FILE")
	filterCmd.Flags().IntVar(&filterMaxOverlap, "max-overlap", model.DefaultMaxOverlap, "maximum overlap allowed between assignments of the same source")
	filterCmd.Flags().StringArrayVar(&filterStages, "stage", nil, "stage source-set expression, repeatable (e.g. ALL-HMMPanther-Gene3D)")
}

// filterConfig layers the config file under the flags that were
// actually set on the command line.
func filterConfig(cmd *cobra.Command) *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring invalid configuration: %v\n", err)
		cfg = model.DefaultConfig()
	}

	if cmd.Flags().Changed("max-overlap") {
		cfg.MaxOverlap = filterMaxOverlap
	}
	if cmd.Flags().Changed("stage") {
		cfg.Stages = filterStages
	}
	if cmd.Flags().Changed("e-value") {
		cfg.EValueThresholds = filterEValue
	}
	if cmd.Flags().Changed("exclude") {
		cfg.IgnoredSources = append(cfg.IgnoredSources, filterExcluded...)
	}
	if cmd.Flags().Changed("interpro-file") {
		cfg.InterProFile = filterInterProFile
	}
	if cmd.Flags().Changed("gene-ids") {
		cfg.SequenceIDFile = filterIDFile
	}
	if cmd.Flags().Changed("log-exclusions") {
		cfg.ExclusionLogFile = filterExclusionLog
	}
	return cfg
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg := filterConfig(cmd)

	evalue, err := filter.ParseEValueFilter(cfg.EValueThresholds)
	if err != nil {
		return err
	}

	validIDs, err := filter.LoadIDSet(cfg.SequenceIDFile)
	if err != nil {
		return err
	}
	if verbose && cfg.SequenceIDFile != "" {
		fmt.Fprintf(os.Stderr, "Loaded sequence IDs from %s\n", cfg.SequenceIDFile)
	}

	builder := consensus.NewBuilder(cfg)
	if cfg.InterProFile != "" {
		ip, err := interpro.LoadInterPro(cfg.InterProFile)
		if err != nil {
			return err
		}
		builder.Resolver = ip
		if verbose {
			fmt.Fprintf(os.Stderr, "Loaded InterPro IDs from %s\n", cfg.InterProFile)
		}
	}

	exclusions, err := consensus.OpenExclusionLog(cfg.ExclusionLogFile)
	if err != nil {
		return err
	}
	defer func() { _ = exclusions.Close() }()

	in, err := openInput(args)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	runner := &consensus.Runner{
		Builder:    builder,
		EValue:     evalue,
		Ignored:    filter.NewSet(cfg.IgnoredSources...),
		ValidIDs:   validIDs,
		Exclusions: exclusions,
		Warnf: func(format string, a ...any) {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", a...)
		},
	}
	return runner.Run(in, os.Stdout)
}

// openInput opens the optional positional input file; no argument or
// "-" means standard input.
func openInput(args []string) (*os.File, error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

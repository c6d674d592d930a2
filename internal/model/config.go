package model

// Config is the configuration surface of the consensus pipeline. It is
// populated from defaults, the config file, GENEFAM_* environment
// variables and command line flags, in increasing priority.
type Config struct {
	// MaxOverlap is the maximum overlap size allowed between partially
	// overlapping assignments of the same data source.
	MaxOverlap int `mapstructure:"max_overlap" yaml:"max_overlap"`

	// Stages are the source-set expressions gating each consensus
	// round, e.g. "ALL-HMMPanther-Gene3D". Stage 1 is the primary
	// source selection.
	Stages []string `mapstructure:"stages" yaml:"stages"`

	// EValueThresholds is a semicolon-separated list of
	// source=threshold pairs; a bare number sets the default
	// threshold, e.g. "HMMPfam=0.001;HMMSmart=0.005;0.007".
	EValueThresholds string `mapstructure:"evalue_thresholds" yaml:"evalue_thresholds"`

	// IgnoredSources are dropped from the input before anything else.
	IgnoredSources []string `mapstructure:"ignored_sources" yaml:"ignored_sources"`

	// InterProFile is the parent-child mapping used to remap domain
	// IDs to their most remote ancestor. Empty disables remapping.
	InterProFile string `mapstructure:"interpro_file" yaml:"interpro_file"`

	// SequenceIDFile restricts processing to the sequence IDs listed
	// in the file, one per line. Empty accepts every sequence.
	SequenceIDFile string `mapstructure:"sequence_id_file" yaml:"sequence_id_file"`

	// ExclusionLogFile receives one line per excluded sequence with
	// the reason for the exclusion. Empty disables the log.
	ExclusionLogFile string `mapstructure:"exclusion_log_file" yaml:"exclusion_log_file"`
}

// DefaultStages is the stage setup used when the configuration does not
// override it: two rounds without HMMPanther and Gene3D, then one
// unrestricted round.
func DefaultStages() []string {
	return []string{
		"ALL-HMMPanther-Gene3D",
		"ALL-HMMPanther-Gene3D",
		"ALL",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxOverlap:       DefaultMaxOverlap,
		Stages:           DefaultStages(),
		EValueThresholds: "inf",
	}
}

// Package cli defines the primer-scout command surface. Flag values land in
// Options; all wiring and exit-code policy lives in package app.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yash27-lab/primer-scout/internal/engine"
	"github.com/yash27-lab/primer-scout/internal/version"
)

// Options holds all CLI flags.
type Options struct {
	PrimerFile string
	RefFiles   []string

	MaxMismatches int
	NoRevcomp     bool
	OnUnknownBase string

	Summary   bool
	CountOnly bool
	JSON      bool
	NoHeader  bool

	Threads  int
	Progress bool

	LogLevel  string
	LogFormat string
}

// Validate checks cross-flag constraints that cobra cannot express.
func (o *Options) Validate() error {
	if o.Summary && o.CountOnly {
		return errors.New("--summary conflicts with --count-only")
	}
	if o.MaxMismatches < 0 {
		return errors.New("--max-mismatches must be >= 0")
	}
	if _, err := engine.ParseUnknownPolicy(o.OnUnknownBase); err != nil {
		return err
	}
	return nil
}

// NewRootCommand builds the root command. run receives the parsed Options;
// usage and errors are silenced so the caller owns all error rendering.
func NewRootCommand(run func(cmd *cobra.Command, opts *Options) error) *cobra.Command {
	const long = `primer-scout screens every primer of a panel against one or more reference
FASTA files and reports each position matching within a bounded number of
mismatches, on either strand. Output is deterministic regardless of worker
count: hits are ordered by (contig, start, primer, strand).`

	opts := &Options{}
	cmd := &cobra.Command{
		Use:           "primer-scout",
		Short:         "Screen a primer panel against FASTA references for off-target hits",
		Long:          long,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.PrimerFile, "primers", "p", "", "primer panel file (.tsv/.csv, plain or .gz) [required]")
	f.StringArrayVarP(&opts.RefFiles, "reference", "r", nil, "reference FASTA file(s), plain or .gz (repeatable) [required]")
	f.IntVarP(&opts.MaxMismatches, "max-mismatches", "k", 1, "allowed substitutions per hit")
	f.BoolVar(&opts.NoRevcomp, "no-revcomp", false, "disable reverse-complement scanning")
	f.StringVar(&opts.OnUnknownBase, "on-unknown-base", "mismatch", "reference bytes outside the IUPAC alphabet: mismatch | wildcard | reject")
	f.BoolVar(&opts.Summary, "summary", false, "output per-primer summary rows")
	f.BoolVar(&opts.CountOnly, "count-only", false, "output only the total number of hits")
	f.BoolVar(&opts.JSON, "json", false, "emit one JSON object per line instead of TSV")
	f.BoolVar(&opts.NoHeader, "no-header", false, "suppress the header line in TSV output")
	f.IntVar(&opts.Threads, "threads", 0, "worker threads (0 = all CPUs)")
	f.BoolVar(&opts.Progress, "progress", false, "per-file byte progress bars on stderr")
	f.StringVar(&opts.LogLevel, "log-level", "warn", "log level: debug | info | warn | error")
	f.StringVar(&opts.LogFormat, "log-format", "text", "log format: text | json")

	_ = cmd.MarkFlagRequired("primers")
	_ = cmd.MarkFlagRequired("reference")
	return cmd
}

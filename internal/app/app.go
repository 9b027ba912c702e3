// Package app wires configuration, input loading, the scan pipeline and
// output rendering together, and owns the exit-code policy:
// 0 success, 2 usage or input validation, 3 runtime failure.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yash27-lab/primer-scout/internal/cli"
	"github.com/yash27-lab/primer-scout/internal/config"
	"github.com/yash27-lab/primer-scout/internal/engine"
	"github.com/yash27-lab/primer-scout/internal/fasta"
	"github.com/yash27-lab/primer-scout/internal/guard"
	"github.com/yash27-lab/primer-scout/internal/logx"
	"github.com/yash27-lab/primer-scout/internal/output"
	"github.com/yash27-lab/primer-scout/internal/pipeline"
	"github.com/yash27-lab/primer-scout/internal/primer"
)

// usageError marks failures caused by the invocation or its input files
// rather than by the scan itself.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	entered := false
	cmd := cli.NewRootCommand(func(c *cobra.Command, opts *cli.Options) error {
		entered = true
		return execute(c.Context(), opts, stdout, stderr)
	})
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(parent)
	if err == nil {
		return 0
	}
	_, _ = fmt.Fprintln(stderr, "error:", err)
	var ue usageError
	if !entered || errors.As(err, &ue) {
		return 2 // cobra parse failure or bad invocation/input
	}
	return 3
}

func execute(ctx context.Context, opts *cli.Options, stdout, stderr io.Writer) error {
	logx.Setup(opts.LogLevel, opts.LogFormat, stderr)
	log := logx.WithComponent("app")

	if err := opts.Validate(); err != nil {
		return usageError{err}
	}
	policy, _ := engine.ParseUnknownPolicy(opts.OnUnknownBase)

	lim, err := config.LoadLimits()
	if err != nil {
		return usageError{err}
	}

	if err := lim.CheckPrimerFile(opts.PrimerFile); err != nil {
		return err
	}
	panel, err := loadPanel(opts.PrimerFile, lim)
	if err != nil {
		return usageError{fmt.Errorf("%s: %w", opts.PrimerFile, err)}
	}
	log.Debug("panel loaded", "primers", len(panel))

	threads := config.ClampThreads(opts.Threads)
	eng := engine.New(engine.Config{MaxMismatches: opts.MaxMismatches, Unknown: policy})

	start := time.Now()
	res, err := pipeline.Scan(ctx, pipeline.Config{
		Threads:  threads,
		Revcomp:  !opts.NoRevcomp,
		Progress: opts.Progress,
	}, opts.RefFiles, panel, eng, lim)
	if err != nil {
		return err
	}
	log.Info("scan complete",
		"files", len(opts.RefFiles),
		"contigs", res.Contigs,
		"bases", humanize.Comma(res.Bases),
		"hits", res.TotalHits,
		"threads", threads,
		"elapsed", time.Since(start).Round(time.Millisecond))

	return render(stdout, opts, res)
}

func loadPanel(path string, lim guard.Limits) ([]*primer.Primer, error) {
	rc, err := fasta.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return primer.Load(rc, lim)
}

func render(stdout io.Writer, opts *cli.Options, res *pipeline.Result) error {
	outw := bufio.NewWriter(stdout)
	header := !opts.NoHeader

	var err error
	switch {
	case opts.CountOnly:
		if opts.JSON {
			err = output.WriteCountJSON(outw, res.TotalHits)
		} else {
			err = output.WriteCount(outw, res.TotalHits)
		}
	case opts.Summary:
		if opts.JSON {
			err = output.WriteSummariesJSON(outw, res.Summaries)
		} else {
			err = output.WriteSummaries(outw, res.Summaries, header)
		}
	default:
		if opts.JSON {
			err = output.WriteHitsJSON(outw, res.Hits)
		} else {
			err = output.WriteHits(outw, res.Hits, header)
		}
	}
	if err == nil {
		err = outw.Flush()
	}
	if output.IsBrokenPipe(err) {
		return nil
	}
	return err
}

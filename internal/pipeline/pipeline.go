// Package pipeline enumerates (primer, contig, strand) tasks over streamed
// reference files, fans them out across a bounded worker pool, and merges the
// per-task hit streams into deterministic hit, summary and count views.
package pipeline

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/yash27-lab/primer-scout/internal/engine"
	"github.com/yash27-lab/primer-scout/internal/fasta"
	"github.com/yash27-lab/primer-scout/internal/guard"
	"github.com/yash27-lab/primer-scout/internal/primer"
)

// Config controls scheduling; matching parameters live in engine.Config.
type Config struct {
	Threads  int  // worker goroutines (>=1)
	Revcomp  bool // also scan each primer's reverse complement
	Progress bool // byte-progress bar per reference file (stderr)
}

// Result is the aggregated outcome of one scan. Hits are in canonical order
// and Summaries are one row per panel entry, ordered by primer name.
type Result struct {
	Hits      []engine.Hit
	Summaries []Summary
	TotalHits int

	Contigs int
	Bases   int64
}

type task struct {
	file   string
	contig string
	seq    []byte
	idx    int // panel index
	strand engine.Strand
}

type taskResult struct {
	idx  int
	hits []engine.Hit
}

// Scan runs the full primer × contig × strand task set. Contig buffers are
// shared read-only across workers; the only synchronization is the channel
// hand-off and the join before aggregation. Any task or input error cancels
// the whole scan via the errgroup context: no partial result is returned.
func Scan(ctx context.Context, cfg Config, refFiles []string, panel []*primer.Primer, eng *engine.Engine, lim guard.Limits) (*Result, error) {
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	tasks := make(chan task, threads*2)
	results := make(chan taskResult, threads*2)

	var contigs, bases atomic.Int64

	// Feeder: stream contigs in file order, emit one task per panel entry
	// and enabled strand.
	g.Go(func() error {
		defer close(tasks)
		for _, path := range refFiles {
			err := fasta.StreamPathCtx(gctx, path, lim, cfg.Progress, func(rec fasta.Record) error {
				if err := eng.ValidateReference(rec.ID, rec.Seq); err != nil {
					return err
				}
				contigs.Add(1)
				bases.Add(int64(len(rec.Seq)))
				for i, p := range panel {
					if err := send(gctx, tasks, task{path, rec.ID, rec.Seq, i, engine.StrandForward}); err != nil {
						return err
					}
					if cfg.Revcomp && !p.Palindromic() {
						if err := send(gctx, tasks, task{path, rec.ID, rec.Seq, i, engine.StrandReverse}); err != nil {
							return err
						}
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	// Workers: each task is independent and touches no shared mutable state.
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		g.Go(func() error {
			defer wg.Done()
			for t := range tasks {
				hits := eng.ScanStrand(t.file, t.contig, t.seq, panel[t.idx], t.strand)
				if len(hits) == 0 {
					continue
				}
				select {
				case results <- taskResult{idx: t.idx, hits: hits}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Join barrier: collect every per-task stream, then aggregate.
	var all []panelHit
	accs := make([]summaryAcc, len(panel))
	for res := range results {
		for _, h := range res.hits {
			all = append(all, panelHit{panel: res.idx, hit: h})
		}
		accs[res.idx].fold(res.hits)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortHits(all)
	hits := make([]engine.Hit, len(all))
	for i, ph := range all {
		hits[i] = ph.hit
	}
	return &Result{
		Hits:      hits,
		Summaries: summarize(panel, accs),
		TotalHits: len(hits),
		Contigs:   int(contigs.Load()),
		Bases:     bases.Load(),
	}, nil
}

func send(ctx context.Context, ch chan<- task, t task) error {
	select {
	case ch <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

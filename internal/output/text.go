package output

import (
	"fmt"
	"io"

	"github.com/yash27-lab/primer-scout/internal/engine"
	"github.com/yash27-lab/primer-scout/internal/pipeline"
)

// WriteHits prints one TSV row per hit, in the order given.
func WriteHits(w io.Writer, hits []engine.Hit, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, HitsHeader); err != nil {
			return err
		}
	}
	for _, h := range hits {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%d\t%s\n",
			h.File, h.Contig, h.Primer, h.PrimerLen,
			h.Start, h.End, h.Strand, h.Mismatches, h.Matched)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteSummaries prints one TSV row per panel entry.
func WriteSummaries(w io.Writer, rows []pipeline.Summary, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, SummaryHeader); err != nil {
			return err
		}
	}
	for _, s := range rows {
		_, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			s.Primer, s.PrimerLen, s.TotalHits, s.PerfectHits,
			s.ForwardHits, s.ReverseHits, s.ContigsWithHits)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteCount prints the total as a bare integer line.
func WriteCount(w io.Writer, total int) error {
	_, err := fmt.Fprintf(w, "%d\n", total)
	return err
}

// Package output renders the aggregated scan views as TSV or NDJSON. It is
// the only package that knows how results look on the wire; the engine and
// pipeline stay agnostic to rendering.
package output

import (
	"errors"
	"io"
	"syscall"
)

// Canonical header rows for the TSV views. Single source of truth; keep the
// column order in sync with the row formatters below.
const (
	HitsHeader    = "file\tcontig\tprimer\tprimer_len\tstart\tend\tstrand\tmismatches\tmatched"
	SummaryHeader = "primer\tprimer_len\ttotal_hits\tperfect_hits\tforward_hits\treverse_hits\tcontigs_with_hits"
)

// IsBrokenPipe reports whether err means the consumer went away, as when a
// `primer-scout ... | head` pipeline closes stdout early. Callers treat it
// as a clean stop rather than a failure.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

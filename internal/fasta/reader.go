// Package fasta streams reference sequences: one fully materialized,
// normalized buffer per contig, size-checked against the resource limits
// before it reaches the matcher.
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yash27-lab/primer-scout/internal/guard"
	"github.com/yash27-lab/primer-scout/internal/primer"
)

// Record is one parsed contig. Seq is normalized (uppercase, U→T) exactly
// once here so every scan task can share the buffer read-only.
type Record struct {
	ID  string
	Seq []byte
}

// StreamCtx parses FASTA from r and calls emit once per contig, in file
// order. It is cancelable between lines and stops on the first emit error.
func StreamCtx(ctx context.Context, r io.Reader, lim guard.Limits, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	// Scanner's cap is max(cap(buf), max), so the initial buffer must not
	// exceed the configured limit.
	bufSize := 64 * 1024
	if lim.MaxReferenceLineBytes < bufSize {
		bufSize = lim.MaxReferenceLineBytes
	}
	sc.Buffer(make([]byte, bufSize), lim.MaxReferenceLineBytes)

	var (
		id   string
		seen bool
		seq  = make([]byte, 0, 1<<20)
	)
	flush := func() error {
		if err := lim.CheckContig(id, len(seq)); err != nil {
			return err
		}
		rec := Record{ID: id, Seq: append([]byte(nil), seq...)}
		seq = seq[:0]
		return emit(rec)
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if seen {
				if err := flush(); err != nil {
					return err
				}
			}
			id = parseHeaderID(line[1:])
			seen = true
			continue
		}
		if !seen {
			return errors.New("invalid FASTA: found sequence before header")
		}
		for _, c := range line {
			seq = append(seq, primer.NormalizeBase(c))
		}
		if err := lim.CheckContig(id, len(seq)); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return guard.LineError("reference", lim.MaxReferenceLineBytes)
		}
		return fmt.Errorf("fasta scan: %w", err)
	}
	if seen {
		return flush()
	}
	return nil
}

// StreamPathCtx opens path (plain or gzip, "-" for stdin) and streams its
// contigs through StreamCtx.
func StreamPathCtx(ctx context.Context, path string, lim guard.Limits, progress bool, emit func(Record) error) error {
	rc, err := OpenProgress(path, progress)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	if err := StreamCtx(ctx, rc, lim, emit); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		hdr = hdr[:i]
	}
	if len(hdr) == 0 {
		return "unknown_contig"
	}
	return string(hdr)
}

// Package guard bounds input sizes before any buffer reaches the matcher.
// A violated limit fails the whole run; there is no partial output.
package guard

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
)

// ErrInputTooLarge reports a violated resource limit.
var ErrInputTooLarge = errors.New("input too large")

// Defaults for the four limits. Each can be overridden independently via
// PRIMER_SCOUT_* environment variables or the optional config file
// (see package config).
const (
	DefaultMaxPrimerFileBytes    = 64 << 20 // whole primer panel file
	DefaultMaxPrimerLineBytes    = 1 << 20  // single primer-file line
	DefaultMaxReferenceLineBytes = 64 << 20 // single reference line
	DefaultMaxContigBases        = 1 << 30  // bases in one contig
)

// Limits is resolved once at startup and passed by value; nothing re-reads
// the environment mid-scan.
type Limits struct {
	MaxPrimerFileBytes    int64
	MaxPrimerLineBytes    int
	MaxReferenceLineBytes int
	MaxContigBases        int
}

func Default() Limits {
	return Limits{
		MaxPrimerFileBytes:    DefaultMaxPrimerFileBytes,
		MaxPrimerLineBytes:    DefaultMaxPrimerLineBytes,
		MaxReferenceLineBytes: DefaultMaxReferenceLineBytes,
		MaxContigBases:        DefaultMaxContigBases,
	}
}

// CheckPrimerFile stats path and rejects panels larger than the configured
// byte limit. Stdin ("-") cannot be sized ahead of time and is skipped.
func (l Limits) CheckPrimerFile(path string) error {
	if path == "-" {
		return nil
	}
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fi.Size() > l.MaxPrimerFileBytes {
		return fmt.Errorf("%w: primer file %s is %s (limit %s)",
			ErrInputTooLarge, path,
			humanize.IBytes(uint64(fi.Size())),
			humanize.IBytes(uint64(l.MaxPrimerFileBytes)))
	}
	return nil
}

// CheckContig rejects contigs with more bases than the configured limit.
func (l Limits) CheckContig(name string, bases int) error {
	if bases > l.MaxContigBases {
		return fmt.Errorf("%w: contig %s has %s bases (limit %s)",
			ErrInputTooLarge, name,
			humanize.Comma(int64(bases)),
			humanize.Comma(int64(l.MaxContigBases)))
	}
	return nil
}

// LineError wraps a scanner buffer overflow into the guard taxonomy.
func LineError(what string, limit int) error {
	return fmt.Errorf("%w: %s line exceeds %s",
		ErrInputTooLarge, what, humanize.IBytes(uint64(limit)))
}

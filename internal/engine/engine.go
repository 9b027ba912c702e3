// Package engine contains the matching core: ambiguity-aware window scanning
// of one primer against one contig on one strand. It never imports app, cli,
// output or pipeline; keep it domain-only.
package engine

import (
	"fmt"

	"github.com/yash27-lab/primer-scout/internal/primer"
)

// Strand identifies the orientation a hit was found in. Reverse hits come
// from matching the primer's reverse complement against the forward contig
// buffer; their coordinates stay in forward-reference space.
type Strand byte

const (
	StrandForward Strand = '+'
	StrandReverse Strand = '-'
)

func (s Strand) String() string { return string(byte(s)) }

// Hit is one window of a contig matching a primer within the mismatch
// budget. Start/End are 0-based half-open forward coordinates regardless of
// strand; Matched is the literal forward-strand reference slice.
type Hit struct {
	File       string
	Contig     string
	Primer     string
	PrimerLen  int
	Start      int
	End        int
	Strand     Strand
	Mismatches int
	Matched    string
}

// UnknownPolicy decides how reference bytes outside the IUPAC alphabet are
// treated. Recognized ambiguity codes always match by base-set intersection;
// the policy only governs unrecognized bytes.
type UnknownPolicy int

const (
	// UnknownMismatch counts every comparison against an unrecognized byte
	// as a mismatch. The default: one bad character cannot fail the run and
	// cannot inflate hit counts either.
	UnknownMismatch UnknownPolicy = iota
	// UnknownWildcard treats unrecognized bytes as matching any base.
	UnknownWildcard
	// UnknownReject aborts the scan on the first unrecognized byte.
	UnknownReject
)

func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch s {
	case "mismatch":
		return UnknownMismatch, nil
	case "wildcard":
		return UnknownWildcard, nil
	case "reject":
		return UnknownReject, nil
	}
	return 0, fmt.Errorf("invalid unknown-base policy %q (want mismatch, wildcard or reject)", s)
}

func (p UnknownPolicy) String() string {
	switch p {
	case UnknownWildcard:
		return "wildcard"
	case UnknownReject:
		return "reject"
	default:
		return "mismatch"
	}
}

type Config struct {
	MaxMismatches int
	Unknown       UnknownPolicy
}

// Engine is immutable after New and shared read-only by all scan workers.
type Engine struct {
	cfg     Config
	refMask [256]byte
}

func New(cfg Config) *Engine {
	e := &Engine{cfg: cfg}
	for c := 0; c < 256; c++ {
		if m, ok := primer.Mask(byte(c)); ok {
			e.refMask[c] = m
		} else if cfg.Unknown == UnknownWildcard {
			e.refMask[c] = 0b1111
		}
	}
	return e
}

func (e *Engine) MaxMismatches() int { return e.cfg.MaxMismatches }

// ValidateReference scans seq for bytes outside the alphabet. Only called
// for the reject policy, once per contig before any task is dispatched.
func (e *Engine) ValidateReference(name string, seq []byte) error {
	if e.cfg.Unknown != UnknownReject {
		return nil
	}
	for i, c := range seq {
		if _, ok := primer.Mask(c); !ok {
			return fmt.Errorf("contig %s: %w: %q at base %d",
				name, primer.ErrInvalidCode, c, i+1)
		}
	}
	return nil
}

// ScanStrand runs one (primer, contig, strand) task and returns its hits in
// ascending start order. seq must already be normalized (see fasta).
func (e *Engine) ScanStrand(file, contig string, seq []byte, p *primer.Primer, strand Strand) []Hit {
	masks := p.Masks
	if strand == StrandReverse {
		masks = p.RCMasks
	}
	sites := e.scanWindows(seq, masks)
	if len(sites) == 0 {
		return nil
	}
	hits := make([]Hit, 0, len(sites))
	for _, s := range sites {
		end := s.pos + p.Len()
		hits = append(hits, Hit{
			File:       file,
			Contig:     contig,
			Primer:     p.Name,
			PrimerLen:  p.Len(),
			Start:      s.pos,
			End:        end,
			Strand:     strand,
			Mismatches: s.mismatches,
			Matched:    string(seq[s.pos:end]),
		})
	}
	return hits
}

// Package primer holds the IUPAC alphabet, reverse-complement transform and
// the Primer type shared by the scan engine and the panel loader.
package primer

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrInvalidCode reports a base outside the recognized IUPAC alphabet.
var ErrInvalidCode = errors.New("invalid sequence code")

// Primer is one panel entry. All derived fields are computed once at
// construction; a Primer is immutable afterwards and safe to share across
// scan workers.
type Primer struct {
	Name string
	Seq  []byte // normalized: uppercase, U→T, no whitespace
	RC   []byte // reverse complement of Seq, same length

	Masks   []byte // per-position base-set masks for Seq
	RCMasks []byte // per-position base-set masks for RC

	palindromic bool
}

// New validates and normalizes raw and derives the reverse complement and
// mask tables. Any byte outside the IUPAC alphabet fails with ErrInvalidCode.
func New(name, raw string) (*Primer, error) {
	seq, err := Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("primer %q: %w", name, err)
	}
	if len(seq) == 0 {
		return nil, fmt.Errorf("primer %q: empty sequence", name)
	}
	rc := RevComp(seq)
	p := &Primer{
		Name:        name,
		Seq:         seq,
		RC:          rc,
		Masks:       masksOf(seq),
		RCMasks:     masksOf(rc),
		palindromic: bytes.Equal(seq, rc),
	}
	return p, nil
}

func (p *Primer) Len() int { return len(p.Seq) }

// Palindromic reports whether the primer equals its own reverse complement.
// A reverse scan of such a primer would repeat every forward hit.
func (p *Primer) Palindromic() bool { return p.palindromic }

// Normalize strips whitespace and quotes, uppercases, maps U to T, and
// validates every remaining byte against the IUPAC alphabet.
func Normalize(raw string) ([]byte, error) {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case ' ', '\t', '\r', '\n', '\'', '"':
			continue
		}
		c = NormalizeBase(c)
		if _, ok := Mask(c); !ok {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidCode, raw[i], i+1)
		}
		out = append(out, c)
	}
	return out, nil
}

// NormalizeBase uppercases and maps U/u to T. Unknown bytes pass through
// unchanged so the caller can decide how to treat them.
func NormalizeBase(c byte) byte {
	if c >= 'a' && c <= 'z' {
		c -= 0x20
	}
	if c == 'U' {
		return 'T'
	}
	return c
}

func masksOf(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		m, _ := Mask(c)
		out[i] = m
	}
	return out
}

package output

import (
	"encoding/json"
	"io"

	"github.com/yash27-lab/primer-scout/internal/engine"
	"github.com/yash27-lab/primer-scout/internal/pipeline"
)

// Wire types for NDJSON output. External consumers depend on these field
// names; do not leak internal struct shapes here.

type hitV1 struct {
	File       string `json:"file"`
	Contig     string `json:"contig"`
	Primer     string `json:"primer"`
	PrimerLen  int    `json:"primer_len"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Strand     string `json:"strand"`
	Mismatches int    `json:"mismatches"`
	Matched    string `json:"matched"`
}

type summaryV1 struct {
	Primer          string `json:"primer"`
	PrimerLen       int    `json:"primer_len"`
	TotalHits       int    `json:"total_hits"`
	PerfectHits     int    `json:"perfect_hits"`
	ForwardHits     int    `json:"forward_hits"`
	ReverseHits     int    `json:"reverse_hits"`
	ContigsWithHits int    `json:"contigs_with_hits"`
}

type countV1 struct {
	TotalHits int `json:"total_hits"`
}

// WriteHitsJSON emits one JSON object per hit, one per line.
func WriteHitsJSON(w io.Writer, hits []engine.Hit) error {
	enc := json.NewEncoder(w)
	for _, h := range hits {
		err := enc.Encode(hitV1{
			File:       h.File,
			Contig:     h.Contig,
			Primer:     h.Primer,
			PrimerLen:  h.PrimerLen,
			Start:      h.Start,
			End:        h.End,
			Strand:     h.Strand.String(),
			Mismatches: h.Mismatches,
			Matched:    h.Matched,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteSummariesJSON emits one JSON object per panel entry, one per line.
func WriteSummariesJSON(w io.Writer, rows []pipeline.Summary) error {
	enc := json.NewEncoder(w)
	for _, s := range rows {
		err := enc.Encode(summaryV1{
			Primer:          s.Primer,
			PrimerLen:       s.PrimerLen,
			TotalHits:       s.TotalHits,
			PerfectHits:     s.PerfectHits,
			ForwardHits:     s.ForwardHits,
			ReverseHits:     s.ReverseHits,
			ContigsWithHits: s.ContigsWithHits,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteCountJSON emits a single {"total_hits":N} line.
func WriteCountJSON(w io.Writer, total int) error {
	return json.NewEncoder(w).Encode(countV1{TotalHits: total})
}

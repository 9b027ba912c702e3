package pipeline

import (
	"sort"

	"github.com/yash27-lab/primer-scout/internal/engine"
	"github.com/yash27-lab/primer-scout/internal/primer"
)

// Summary is the per-primer fold of every hit in the run. One row is emitted
// for every panel entry, hits or not.
type Summary struct {
	Primer          string
	PrimerLen       int
	TotalHits       int
	PerfectHits     int
	ForwardHits     int
	ReverseHits     int
	ContigsWithHits int
}

// LessHit is the canonical hit order: (contig, start, primer, strand), with
// the source file as a final tiebreak so multi-file runs stay deterministic.
func LessHit(a, b engine.Hit) bool {
	if a.Contig != b.Contig {
		return a.Contig < b.Contig
	}
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	if a.Primer != b.Primer {
		return a.Primer < b.Primer
	}
	if a.Strand != b.Strand {
		return a.Strand < b.Strand
	}
	return a.File < b.File
}

// panelHit tags a hit with the panel index that produced it. Primer names
// are not required unique, so the name-based canonical key can tie across
// distinct panel entries; panel order breaks those ties.
type panelHit struct {
	panel int
	hit   engine.Hit
}

func sortHits(hits []panelHit) {
	sort.SliceStable(hits, func(i, j int) bool {
		switch {
		case LessHit(hits[i].hit, hits[j].hit):
			return true
		case LessHit(hits[j].hit, hits[i].hit):
			return false
		}
		return hits[i].panel < hits[j].panel
	})
}

// summaryAcc folds hits for one panel entry. Contig identity is (file,
// contig) so same-named contigs from different files count separately.
type summaryAcc struct {
	total, perfect   int
	forward, reverse int
	contigs          map[string]struct{}
}

func (a *summaryAcc) fold(hits []engine.Hit) {
	if a.contigs == nil {
		a.contigs = make(map[string]struct{}, 4)
	}
	for _, h := range hits {
		a.total++
		if h.Mismatches == 0 {
			a.perfect++
		}
		if h.Strand == engine.StrandForward {
			a.forward++
		} else {
			a.reverse++
		}
		a.contigs[h.File+"\x00"+h.Contig] = struct{}{}
	}
}

func summarize(panel []*primer.Primer, accs []summaryAcc) []Summary {
	out := make([]Summary, len(panel))
	for i, p := range panel {
		out[i] = Summary{
			Primer:          p.Name,
			PrimerLen:       p.Len(),
			TotalHits:       accs[i].total,
			PerfectHits:     accs[i].perfect,
			ForwardHits:     accs[i].forward,
			ReverseHits:     accs[i].reverse,
			ContigsWithHits: len(accs[i].contigs),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Primer < out[j].Primer })
	return out
}

package engine

type site struct {
	pos        int
	mismatches int
}

// scanWindows slides the query mask over seq and reports every window whose
// mismatch count stays within the budget. A window is abandoned the moment
// its running count exceeds the budget, which keeps the scan close to
// O(len(seq)) for small budgets.
func (e *Engine) scanWindows(seq, query []byte) []site {
	qlen := len(query)
	if qlen == 0 || len(seq) < qlen {
		return nil
	}
	k := e.cfg.MaxMismatches
	last := len(seq) - qlen
	out := make([]site, 0, 8)

window:
	for pos := 0; pos <= last; pos++ {
		mm := 0
		for j, qm := range query {
			if qm&e.refMask[seq[pos+j]] == 0 {
				mm++
				if mm > k {
					continue window
				}
			}
		}
		out = append(out, site{pos: pos, mismatches: mm})
	}
	return out
}

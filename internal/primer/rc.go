package primer

var complement [256]byte

func init() {
	pairs := map[byte]byte{
		'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A',
		'R': 'Y', 'Y': 'R',
		'S': 'S', 'W': 'W',
		'K': 'M', 'M': 'K',
		'B': 'V', 'V': 'B',
		'D': 'H', 'H': 'D',
		'N': 'N',
	}
	for c, comp := range pairs {
		complement[c] = comp
		complement[c|0x20] = comp
	}
}

// RevComp returns the reverse complement of a normalized IUPAC sequence.
// Complementary ambiguity codes swap (R↔Y, K↔M, B↔V, D↔H); S, W and N map
// to themselves. The input is not modified.
func RevComp(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[seq[n-1-i]]
		if c == 0 {
			c = 'N'
		}
		out[i] = c
	}
	return out
}

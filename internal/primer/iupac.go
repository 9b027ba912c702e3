package primer

/* -------------------------- IUPAC lookup table -------------------------- */

var iupacMask [256]byte // bit0=A bit1=C bit2=G bit3=T

func init() {
	set := func(c, bits byte) {
		iupacMask[c] = bits
		iupacMask[c|0x20] = bits // lowercase mirrors uppercase
	}
	set('A', 1)       // 0001
	set('C', 2)       // 0010
	set('G', 4)       // 0100
	set('T', 8)       // 1000
	set('U', 8)       // RNA input, same base set as T
	set('R', 1|4)     // A/G
	set('Y', 2|8)     // C/T
	set('S', 2|4)     // C/G
	set('W', 1|8)     // A/T
	set('K', 4|8)     // G/T
	set('M', 1|2)     // A/C
	set('B', 2|4|8)   // C/G/T
	set('D', 1|4|8)   // A/G/T
	set('H', 1|2|8)   // A/C/T
	set('V', 1|2|4)   // A/C/G
	set('N', 1|2|4|8) // any
}

// Mask returns the 4-bit base set for an IUPAC code. ok is false for any
// byte outside the recognized alphabet.
func Mask(c byte) (mask byte, ok bool) {
	m := iupacMask[c]
	return m, m != 0
}

// Compatible reports whether two IUPAC codes denote intersecting base sets.
// The relation is symmetric and N intersects every recognized code.
func Compatible(a, b byte) bool {
	return iupacMask[a]&iupacMask[b] != 0
}

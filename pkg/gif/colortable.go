package gif

// RGB is a single color table entry.
type RGB struct {
	R, G, B uint8
}

// ColorTable is a view over packed RGB triplets as they appear on the wire.
type ColorTable []byte

// Len is the number of entries in the table.
func (t ColorTable) Len() int {
	return len(t) / 3
}

func (t ColorTable) Entry(i int) RGB {
	return RGB{R: t[3*i], G: t[3*i+1], B: t[3*i+2]}
}

// Index returns the first entry equal to c, or -1.
func (t ColorTable) Index(c RGB) int {
	for i := 0; i < t.Len(); i++ {
		if t.Entry(i) == c {
			return i
		}
	}
	return -1
}

// EqualTables reports whether two tables of the same length hold the same
// colors at every index. Callers treat tables of different length as
// different and never pass them here.
func EqualTables(a, b ColorTable) bool {
	for i := 0; i < a.Len(); i++ {
		if a.Entry(i) != b.Entry(i) {
			return false
		}
	}
	return true
}

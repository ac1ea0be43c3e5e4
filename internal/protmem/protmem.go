// Package protmem implements the scatter/gather primitive used to hide a
// table lookup's index from timing and cache side channels. Table entries
// are opaque byte blobs; Scatter lays them out under a seeded permutation,
// and Gather reconstructs entries[index] by touching every stored row and
// selecting the right one with a constant-time mask, rather than indexing
// directly into the backing buffer.
package protmem

// A Table holds N equal-size byte entries, physically stored under a
// seed-derived permutation. Table is read-only after Scatter; Gather never
// mutates it.
type Table struct {
	n         int
	entrySize int
	buf       []byte
	// perm[i] is the physical row holding logical entry i.
	perm []int
	// invPerm[r] is the logical index stored at physical row r.
	invPerm []int
}

// splitmix64 is a small, fast, deterministic stream used only to derive a
// public permutation from a public seed; it carries no cryptographic
// weight of its own.
type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return z
}

// Scatter lays out entries (all of equal length) into a single buffer
// under a permutation derived from seed. It panics if entries is empty or
// its members have mismatched lengths, both programmer errors.
func Scatter(entries [][]byte, seed uint64) *Table {
	n := len(entries)
	if n == 0 {
		panic("protmem: Scatter with no entries")
	}
	entrySize := len(entries[0])
	for _, e := range entries {
		if len(e) != entrySize {
			panic("protmem: Scatter with mismatched entry sizes")
		}
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	// Seeded Fisher-Yates shuffle; this only scrambles the physical
	// layout, it is not itself required to be constant-time since the
	// permutation does not depend on any secret beyond the seed.
	sm := splitmix64{state: seed}
	for i := n - 1; i > 0; i-- {
		j := int(sm.next() % uint64(i+1))
		perm[i], perm[j] = perm[j], perm[i]
	}

	invPerm := make([]int, n)
	for logical, physical := range perm {
		invPerm[physical] = logical
	}

	t := &Table{n: n, entrySize: entrySize, perm: perm, invPerm: invPerm}
	t.buf = make([]byte, n*entrySize)
	for logical, e := range entries {
		row := perm[logical]
		copy(t.buf[row*entrySize:(row+1)*entrySize], e)
	}
	return t
}

// Gather sets dst to a copy of the logical entry at index, reading every
// stored row regardless of index so that the memory access pattern does
// not depend on it. len(dst) must equal the table's entry size.
func (t *Table) Gather(dst []byte, index int) {
	if len(dst) != t.entrySize {
		panic("protmem: Gather with wrong destination size")
	}
	for i := range dst {
		dst[i] = 0
	}
	for row := 0; row < t.n; row++ {
		logical := t.invPerm[row]
		mask := ctEqInt(logical, index)
		src := t.buf[row*t.entrySize : (row+1)*t.entrySize]
		for i := 0; i < t.entrySize; i++ {
			dst[i] |= src[i] & mask
		}
	}
}

// ctEqInt returns an all-ones byte mask if a == b, all-zeros otherwise.
func ctEqInt(a, b int) byte {
	x := uint32(a ^ b)
	x |= x >> 16
	x |= x >> 8
	x |= x >> 4
	x |= x >> 2
	x |= x >> 1
	return byte((x & 1) - 1)
}

// EntrySize returns the byte length of each stored entry.
func (t *Table) EntrySize() int { return t.entrySize }

// Len returns the number of entries.
func (t *Table) Len() int { return t.n }

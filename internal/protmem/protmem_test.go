package protmem

import (
	"bytes"
	"testing"
)

func TestScatterGatherRoundTrip(t *testing.T) {
	entries := make([][]byte, 16)
	for i := range entries {
		entries[i] = []byte{byte(i), byte(i * 2), byte(i * 3)}
	}

	tbl := Scatter(entries, 0xC0FFEE)
	if tbl.Len() != 16 {
		t.Fatalf("Len() = %d, want 16", tbl.Len())
	}
	if tbl.EntrySize() != 3 {
		t.Fatalf("EntrySize() = %d, want 3", tbl.EntrySize())
	}

	dst := make([]byte, 3)
	for i, want := range entries {
		tbl.Gather(dst, i)
		if !bytes.Equal(dst, want) {
			t.Fatalf("Gather(%d) = %x, want %x", i, dst, want)
		}
	}
}

func TestScatterDifferentSeedsDifferentLayout(t *testing.T) {
	entries := make([][]byte, 16)
	for i := range entries {
		entries[i] = []byte{byte(i)}
	}
	a := Scatter(entries, 1)
	b := Scatter(entries, 2)
	if bytes.Equal(a.buf, b.buf) {
		t.Fatalf("two different seeds produced the same physical layout")
	}
}

func TestScatterPermutationIsInvertible(t *testing.T) {
	entries := make([][]byte, 8)
	for i := range entries {
		entries[i] = []byte{byte(i)}
	}
	tbl := Scatter(entries, 42)
	for row := 0; row < tbl.n; row++ {
		logical := tbl.invPerm[row]
		if tbl.perm[logical] != row {
			t.Fatalf("perm/invPerm inconsistent at row %d", row)
		}
	}
}

func TestScatterPanicsOnMismatchedSizes(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on mismatched entry sizes")
		}
	}()
	Scatter([][]byte{{1, 2}, {1}}, 0)
}

func TestScatterPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on empty entries")
		}
	}()
	Scatter(nil, 0)
}

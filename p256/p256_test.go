//go:build !ecwstables

package p256

import "testing"

func TestIsCanonicalModulus(t *testing.T) {
	if !IsCanonicalModulus(Params.P) {
		t.Fatalf("Params.P not recognized as canonical")
	}
	other := make([]byte, len(Params.P))
	copy(other, Params.P)
	other[len(other)-1] ^= 1
	if IsCanonicalModulus(other) {
		t.Fatalf("tampered modulus accepted as canonical")
	}
	if IsCanonicalModulus(Params.P[1:]) {
		t.Fatalf("wrong-length modulus accepted as canonical")
	}
}

func TestBuildTablesShape(t *testing.T) {
	tabs, err := BuildTables(1)
	if err != nil {
		t.Fatalf("BuildTables: %v", err)
	}
	if len(tabs.Tables) != NTables {
		t.Fatalf("len(Tables) = %d, want %d", len(tabs.Tables), NTables)
	}
	for i, tb := range tabs.Tables {
		if tb.Len() != PointsPerTable {
			t.Fatalf("table %d has %d entries, want %d", i, tb.Len(), PointsPerTable)
		}
		if tb.EntrySize() != tabs.EntrySize {
			t.Fatalf("table %d entry size = %d, want %d", i, tb.EntrySize(), tabs.EntrySize)
		}
	}
}

func TestBuildTablesFirstTableHoldsIdentityAndG(t *testing.T) {
	tabs, err := BuildTables(1)
	if err != nil {
		t.Fatalf("BuildTables: %v", err)
	}
	mod := tabs.Mod
	dst := make([]byte, tabs.EntrySize)

	tabs.Tables[0].Gather(dst, 0)
	x, y := DecodeEntry(mod, dst)
	if mod.IsZero(x) != 1 || mod.IsZero(y) != 1 {
		t.Fatalf("table 0 entry 0 is not the point at infinity")
	}

	tabs.Tables[0].Gather(dst, 1)
	gx, gy := DecodeEntry(mod, dst)
	xb := make([]byte, ByteLen)
	yb := make([]byte, ByteLen)
	if err := mod.ToBytes(xb, gx); err != nil {
		t.Fatalf("ToBytes(x): %v", err)
	}
	if err := mod.ToBytes(yb, gy); err != nil {
		t.Fatalf("ToBytes(y): %v", err)
	}
	if string(xb) != string(Params.Gx) || string(yb) != string(Params.Gy) {
		t.Fatalf("table 0 entry 1 is not G:\n got  x=%x y=%x\n want x=%x y=%x", xb, yb, Params.Gx, Params.Gy)
	}
}

func TestBuildTablesEntriesTwoAndThreeDistinct(t *testing.T) {
	tabs, err := BuildTables(7)
	if err != nil {
		t.Fatalf("BuildTables: %v", err)
	}
	mod := tabs.Mod
	scratch := make([]byte, tabs.EntrySize)

	tabs.Tables[0].Gather(scratch, 2)
	x2, y2 := DecodeEntry(mod, scratch)
	tabs.Tables[0].Gather(scratch, 3)
	x3, y3 := DecodeEntry(mod, scratch)

	// Entry 2 must not be the point at infinity, and entries 2 and 3 must
	// differ.
	if mod.IsZero(x2) == 1 && mod.IsZero(y2) == 1 {
		t.Fatalf("entry 2 is the point at infinity")
	}
	if mod.IsEqual(x2, x3) == 1 && mod.IsEqual(y2, y3) == 1 {
		t.Fatalf("entries 2 and 3 decoded to the same point")
	}
}

func TestBuildTablesDifferentSeedsSameLogicalEntry(t *testing.T) {
	a, err := BuildTables(1)
	if err != nil {
		t.Fatalf("BuildTables: %v", err)
	}
	b, err := BuildTables(2)
	if err != nil {
		t.Fatalf("BuildTables: %v", err)
	}
	// The underlying coordinates are shared (memoized), but each table's
	// scatter permutation is seed-dependent; gathering logical entry 1
	// (G) from both must still agree once decoded.
	da := make([]byte, a.EntrySize)
	db := make([]byte, b.EntrySize)
	a.Tables[0].Gather(da, 1)
	b.Tables[0].Gather(db, 1)
	ax, ay := DecodeEntry(a.Mod, da)
	bx, by := DecodeEntry(b.Mod, db)
	if a.Mod.IsEqual(ax, bx) != 1 || a.Mod.IsEqual(ay, by) != 1 {
		t.Fatalf("same logical entry under different seeds decoded to different points")
	}
}

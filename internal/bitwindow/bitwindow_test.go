package bitwindow

import "testing"

func digits(it *Iterator) []int {
	n := it.NumWindows()
	out := make([]int, n)
	for i := range out {
		out[i] = it.Next()
	}
	return out
}

func TestLRFourBitWindows(t *testing.T) {
	// 0x1234 = 0001 0010 0011 0100, four nibbles: 1 2 3 4
	got := digits(NewLR(4, []byte{0x12, 0x34}))
	want := []int{1, 2, 3, 4}
	if !equal(got, want) {
		t.Fatalf("LR nibbles = %v, want %v", got, want)
	}
}

func TestRLFourBitWindows(t *testing.T) {
	got := digits(NewRL(4, []byte{0x12, 0x34}))
	want := []int{4, 3, 2, 1}
	if !equal(got, want) {
		t.Fatalf("RL nibbles = %v, want %v", got, want)
	}
}

func TestLeadingZeroBytesSkipped(t *testing.T) {
	// The two zero bytes are dropped; the remaining 0x01 0x02 is 16 bits,
	// i.e. four 4-bit windows 0 1 0 2.
	it := NewLR(4, []byte{0x00, 0x00, 0x01, 0x02})
	if it.NumWindows() != 4 {
		t.Fatalf("NumWindows = %d, want 4 after skipping leading zero bytes", it.NumWindows())
	}
	got := digits(NewLR(4, []byte{0x00, 0x00, 0x01, 0x02}))
	if !equal(got, []int{0, 1, 0, 2}) {
		t.Fatalf("got %v, want [0 1 0 2]", got)
	}
}

func TestZeroScalarYieldsOneWindow(t *testing.T) {
	it := NewLR(4, []byte{0x00})
	if it.NumWindows() != 1 {
		t.Fatalf("NumWindows for zero scalar = %d, want 1", it.NumWindows())
	}
	if d := it.Next(); d != 0 {
		t.Fatalf("zero scalar window = %d, want 0", d)
	}
}

func TestNonMultipleWidth(t *testing.T) {
	// A single byte 0xFF split into three 3-bit windows covers 9 bits,
	// one more than the 8 actually present; the extra high bit is
	// implicit zero padding.
	it := NewLR(3, []byte{0xFF})
	if it.NumWindows() != 3 {
		t.Fatalf("NumWindows = %d, want 3", it.NumWindows())
	}
	got := digits(NewLR(3, []byte{0xFF}))
	want := []int{3, 7, 7} // 0 11111111 split MSB-first into groups of 3
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package ecws

import (
	"encoding/binary"

	"github.com/go-ecws/ecws/internal/bitwindow"
	"github.com/go-ecws/ecws/internal/field"
	"github.com/go-ecws/ecws/internal/protmem"
	"github.com/go-ecws/ecws/p256"
)

// windowWidth is the fixed digit width used by the arbitrary-point
// ladder: a 4-bit window needs a 16-entry table, small enough to scan on
// every lookup without the cost dominating the doublings it amortizes.
const windowWidth = 4

func elementWords(e field.Element) []byte {
	b := make([]byte, len(e)*8)
	for i, w := range e {
		binary.LittleEndian.PutUint64(b[i*8:], w)
	}
	return b
}

func wordsToElement(dst field.Element, b []byte) {
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
}

func encodeProjEntry(entrySize int, x, y, z field.Element) []byte {
	buf := make([]byte, entrySize)
	third := entrySize / 3
	copy(buf[:third], elementWords(x))
	copy(buf[third:2*third], elementWords(y))
	copy(buf[2*third:], elementWords(z))
	return buf
}

func decodeProjEntry(mod *field.Modulus, entrySize int, buf []byte) (x, y, z field.Element) {
	third := entrySize / 3
	x, y, z = mod.Alloc(), mod.Alloc(), mod.Alloc()
	wordsToElement(x, buf[:third])
	wordsToElement(y, buf[third:2*third])
	wordsToElement(z, buf[2*third:])
	return
}

// buildWindowTable computes the 16-entry projective multiple table
// {O, P, 2P, ..., 15P} for the base point p and scatters it under seed.
// Entries are kept in full projective form, rather than normalized to
// affine, so that a caller-applied projective blinding factor on p (see
// dispatch.go) stays in effect through every entry the ladder below
// reads; normalizing here would collapse the table straight back to
// its unblinded canonical coordinates. Table construction runs the
// complete-addition kernels over a public index range; it is not
// secret-dependent, so this sequential accumulation need not itself be
// constant-time, only the later per-digit lookup is.
func buildWindowTable(c *Curve, p *Point, seed uint64) *protmem.Table {
	mod := c.mod
	entrySize := 3 * mod.WordLen() * 8

	entries := make([][]byte, 1<<windowWidth)
	zero, one := mod.Alloc(), mod.Alloc()
	mod.SetSmall(one, 1)
	entries[0] = encodeProjEntry(entrySize, zero, one, zero)
	entries[1] = encodeProjEntry(entrySize, p.x, p.y, p.z)

	acc := p.Clone()
	for j := 2; j < 1<<windowWidth; j++ {
		acc, _ = acc.Add(acc, p) // same Curve by construction; error is unreachable
		entries[j] = encodeProjEntry(entrySize, acc.x, acc.y, acc.z)
	}

	return protmem.Scatter(entries, seed)
}

// ecScalar is the left-to-right, fixed-width windowed ladder for an
// arbitrary curve point: it builds the 16-entry multiple table for p,
// scatters it, then for each 4-bit window of k (most significant
// first) doubles the accumulator four times and adds the scattered
// table entry Gather selects for that window's digit. The digit itself
// only ever drives a Gather call and a loop trip count fixed at
// compile time (windowWidth), never a branch or memory address chosen
// directly from its value.
func ecScalar(c *Curve, p *Point, k []byte, seed uint64) *Point {
	mod, wp := c.mod, c.wp

	tbl := buildWindowTable(c, p, seed)
	entrySize := tbl.EntrySize()

	acc := c.Identity()
	it := bitwindow.NewLR(windowWidth, k)
	nwin := it.NumWindows()
	entryBuf := make([]byte, entrySize)

	for i := 0; i < nwin; i++ {
		for d := 0; d < windowWidth; d++ {
			acc.Double(acc)
		}
		digit := it.Next()
		tbl.Gather(entryBuf, digit)
		ex, ey, ez := decodeProjEntry(mod, entrySize, entryBuf)
		fullAdd(mod, wp, acc.x, acc.y, acc.z, acc.x, acc.y, acc.z, ex, ey, ez, c.b)
	}
	return acc
}

// ecScalarGP256 is the right-to-left generator ladder for the NIST P-256
// canonical generator: c.gTables already holds, for each 4-bit window
// position i, the 16 affine multiples {0, Bi, 2Bi, ..., 15Bi} with
// Bi = 2^(4i)*G, so the scalar is consumed purely as a sequence of
// Gather+mixAdd steps with no doublings at all.
//
// k must fit within p256.NTables windows of p256.WindowSize bits (256
// bits, exactly the tables c.gTables precomputed); a wider k would index
// past the end of the table slice, so this is checked up front and
// reported as ErrValue.
func ecScalarGP256(c *Curve, k []byte) (*Point, error) {
	mod, wp := c.mod, c.wp
	tabs := c.gTables
	entrySize := tabs.EntrySize

	it := bitwindow.NewRL(p256.WindowSize, k)
	nwin := it.NumWindows()
	if nwin > p256.NTables {
		return nil, ErrValue
	}

	acc := c.Identity()
	entryBuf := make([]byte, entrySize)

	for i := 0; i < nwin; i++ {
		digit := it.Next()
		tabs.Tables[i].Gather(entryBuf, digit)
		ex, ey := p256.DecodeEntry(mod, entryBuf)
		mixAdd(mod, wp, acc.x, acc.y, acc.z, acc.x, acc.y, acc.z, ex, ey, c.b)
	}
	return acc, nil
}

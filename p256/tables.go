//go:build !ecwstables

package p256

import (
	"encoding/binary"
	"sync"

	"github.com/go-ecws/ecws/internal/field"
	"github.com/go-ecws/ecws/internal/protmem"
)

// This file is the default build: it computes the generator multi-table
// from the canonical generator by repeated doubling, once per process via
// sync.Once, and holds it behind an immutable reference rather than
// shipping a precomputed literal table asset. The `ecwstables` build tag
// (see notables.go) gates an alternate, table-free build used when only
// the raw curve parameters are needed, e.g. by an offline table-generation
// tool.

// TablesAvailable reports whether this build carries the generator
// multi-table machinery; the `ecwstables` build sets it to false and
// ecws.NewCurve then skips the generator fast path entirely.
const TablesAvailable = true

// Tables is the immutable, scattered generator multi-table for one
// curve-context seed. Table i holds PointsPerTable affine points
// {0, Bi, 2*Bi, ..., (2^w-1)*Bi} with Bi = 2^(i*w)*G, each entry encoded
// as the concatenation of X and Y in Montgomery form (native uint64-word
// packing, not the public big-endian wire format).
type Tables struct {
	Mod       *field.Modulus
	EntrySize int
	Tables    []*protmem.Table
}

var (
	baseOnce    sync.Once
	baseMod     *field.Modulus
	baseEntries [][][]byte // baseEntries[i][j] is the unscattered entry for table i, point j
	baseErr     error
)

// affine point, coordinates held in Montgomery form. (0,0) denotes the
// point at infinity, mirroring the projective encoding's affine-PAI
// convention used by mix_add's short-circuit branch.
type affinePoint struct {
	x, y field.Element
}

func isAffinePAI(mod *field.Modulus, p affinePoint) uint64 {
	return mod.IsZero(p.x) & mod.IsZero(p.y)
}

// doubleAffine computes 2*p for the a=-3 curve using the textbook
// (non-complete, non-constant-time) affine doubling formula. It is only
// ever called at table-construction time on public points, so neither
// property matters here.
func doubleAffine(mod *field.Modulus, scratch []uint64, p affinePoint) affinePoint {
	if isAffinePAI(mod, p) == 1 {
		return p
	}
	x2 := mod.Alloc()
	mod.Sqr(x2, p.x, scratch)
	three := mod.Alloc()
	mod.SetSmall(three, 3)
	num := mod.Alloc()
	mod.Mul(num, x2, three, scratch)
	mod.Sub(num, num, three) // 3x^2 - 3  (a = -3)

	twoY := mod.Alloc()
	mod.Add(twoY, p.y, p.y)
	invTwoY := mod.Alloc()
	mod.InvPrime(invTwoY, twoY, scratch)

	lambda := mod.Alloc()
	mod.Mul(lambda, num, invTwoY, scratch)

	lambda2 := mod.Alloc()
	mod.Sqr(lambda2, lambda, scratch)
	x3 := mod.Alloc()
	mod.Sub(x3, lambda2, p.x)
	mod.Sub(x3, x3, p.x)

	xDiff := mod.Alloc()
	mod.Sub(xDiff, p.x, x3)
	y3 := mod.Alloc()
	mod.Mul(y3, lambda, xDiff, scratch)
	mod.Sub(y3, y3, p.y)

	return affinePoint{x: x3, y: y3}
}

// addAffine computes p+q for distinct, non-infinity affine points.
func addAffine(mod *field.Modulus, scratch []uint64, p, q affinePoint) affinePoint {
	if isAffinePAI(mod, p) == 1 {
		return q
	}
	if isAffinePAI(mod, q) == 1 {
		return p
	}
	xDiff := mod.Alloc()
	mod.Sub(xDiff, q.x, p.x)
	invXDiff := mod.Alloc()
	mod.InvPrime(invXDiff, xDiff, scratch)

	yDiff := mod.Alloc()
	mod.Sub(yDiff, q.y, p.y)
	lambda := mod.Alloc()
	mod.Mul(lambda, yDiff, invXDiff, scratch)

	lambda2 := mod.Alloc()
	mod.Sqr(lambda2, lambda, scratch)
	x3 := mod.Alloc()
	mod.Sub(x3, lambda2, p.x)
	mod.Sub(x3, x3, q.x)

	xd2 := mod.Alloc()
	mod.Sub(xd2, p.x, x3)
	y3 := mod.Alloc()
	mod.Mul(y3, lambda, xd2, scratch)
	mod.Sub(y3, y3, p.y)

	return affinePoint{x: x3, y: y3}
}

func elementToBytes(e field.Element) []byte {
	b := make([]byte, len(e)*8)
	for i, w := range e {
		binary.LittleEndian.PutUint64(b[i*8:], w)
	}
	return b
}

func encodeEntry(entrySize int, p affinePoint) []byte {
	b := make([]byte, entrySize)
	half := entrySize / 2
	copy(b[:half], elementToBytes(p.x))
	copy(b[half:], elementToBytes(p.y))
	return b
}

// buildBaseEntries computes the unscattered coordinate table (a pure
// function of the public generator and curve parameters) exactly once,
// via sync.Once, regardless of how many Curve contexts request a table
// under different seeds: only the final Scatter step, which is cheap
// and genuinely seed-dependent, is redone per BuildTables call.
func buildBaseEntries() {
	baseOnce.Do(func() {
		mod, err := field.NewModulus(Params.P)
		if err != nil {
			baseErr = err
			return
		}
		baseMod = mod
		scratch := make([]uint64, field.ScratchWords(mod.WordLen()))

		gx := mod.Alloc()
		gy := mod.Alloc()
		if err := mod.FromBytes(gx, Params.Gx); err != nil {
			baseErr = err
			return
		}
		if err := mod.FromBytes(gy, Params.Gy); err != nil {
			baseErr = err
			return
		}

		entrySize := 2 * mod.WordLen() * 8
		baseEntries = make([][][]byte, NTables)

		cur := affinePoint{x: gx, y: gy} // 2^(i*w)*G, updated incrementally
		pai := affinePoint{x: mod.Alloc(), y: mod.Alloc()}

		for i := 0; i < NTables; i++ {
			entries := make([][]byte, PointsPerTable)
			entries[0] = encodeEntry(entrySize, pai)

			acc := affinePoint{x: mod.Alloc(), y: mod.Alloc()}
			mod.Copy(acc.x, cur.x)
			mod.Copy(acc.y, cur.y)
			entries[1] = encodeEntry(entrySize, acc)
			for j := 2; j < PointsPerTable; j++ {
				if j == 2 {
					acc = doubleAffine(mod, scratch, cur)
				} else {
					acc = addAffine(mod, scratch, acc, cur)
				}
				entries[j] = encodeEntry(entrySize, acc)
			}
			baseEntries[i] = entries

			if i != NTables-1 {
				for k := 0; k < WindowSize; k++ {
					cur = doubleAffine(mod, scratch, cur)
				}
			}
		}
	})
}

// BuildTables scatters the P-256 generator multi-table under the given
// seed. The underlying affine coordinates are shared (see
// buildBaseEntries); each call produces its own seed-permuted
// protmem.Tables, as required by a Curve context's own scatter seed.
func BuildTables(seed uint64) (*Tables, error) {
	buildBaseEntries()
	if baseErr != nil {
		return nil, baseErr
	}
	entrySize := 2 * baseMod.WordLen() * 8
	tables := make([]*protmem.Table, NTables)
	for i, entries := range baseEntries {
		tables[i] = protmem.Scatter(entries, seed^uint64(i)*0x9E3779B97F4A7C15)
	}
	return &Tables{Mod: baseMod, EntrySize: entrySize, Tables: tables}, nil
}

// DecodeEntry splits a gathered table entry back into Montgomery-form X
// and Y coordinates.
func DecodeEntry(mod *field.Modulus, entry []byte) (x, y field.Element) {
	w := mod.WordLen()
	x = mod.Alloc()
	y = mod.Alloc()
	for i := 0; i < w; i++ {
		x[i] = binary.LittleEndian.Uint64(entry[i*8:])
		y[i] = binary.LittleEndian.Uint64(entry[(w+i)*8:])
	}
	return
}

// Package blind implements the two blinding primitives used by the
// scalar-multiplication dispatcher (ecws.(*Point).Scalar): projective
// point blinding (a random nonzero field factor applied to X, Y, Z) and
// scalar blinding (k' = k + R*n for a 32-bit R drawn from the caller's
// seed). Both exist purely to perturb the intermediate values and the bit
// pattern the ladder walks; neither changes the mathematical result.
package blind

import (
	"encoding/binary"
	"math/bits"

	"github.com/go-ecws/ecws/internal/field"
	"golang.org/x/crypto/sha3"
)

// FieldFactor derives a nonzero blinding factor in Montgomery form from a
// 64-bit seed and a domain-separation tag, using SHAKE256 to absorb a
// fixed label plus the seed and squeeze candidate field elements directly:
// decode each candidate against the modulus and resample on out-of-range
// or zero draws. Reduction here is by the modulus's own FromBytes, using
// the same carry/borrow discipline as the rest of the field package (not
// math/big), because the derived factor sits on the path from a
// caller-controlled seed to the point being multiplied by a secret
// scalar, and big.Int arithmetic gives no constant-time
// guarantee.
func FieldFactor(mod *field.Modulus, seed uint64, tag byte) field.Element {
	byteLen := mod.ByteLen()
	sh := sha3.NewShake256()
	sh.Write([]byte("ecws-blind-field-factor"))
	sh.Write([]byte{tag})
	var seedBuf [8]byte
	binary.BigEndian.PutUint64(seedBuf[:], seed)
	sh.Write(seedBuf[:])

	raw := make([]byte, byteLen)
	var factor field.Element
	// Squeeze successive candidates until one both decodes (< p) and is
	// nonzero; both conditions fail with negligible probability per draw
	// and this loop never runs more than a handful of times in practice.
	for {
		sh.Read(raw)
		factor = mod.Alloc()
		if err := mod.FromBytes(factor, raw); err != nil {
			continue
		}
		if mod.IsZero(factor) == 1 {
			continue
		}
		break
	}
	return factor
}

// ScalarR extracts the 32-bit blinding multiplier R: the low 32 bits of
// seed.
func ScalarR(seed uint64) uint64 {
	return seed & 0xFFFFFFFF
}

// mac computes z + x*y + carry as (lo, hi), the same multiply-accumulate
// primitive used by internal/field's Montgomery multiplication.
func mac(z, x, y, carry uint64) (lo, hi uint64) {
	hi, lo = bits.Mul64(x, y)
	var c uint64
	lo, c = bits.Add64(lo, z, 0)
	hi += c
	lo, c = bits.Add64(lo, carry, 0)
	hi += c
	return
}

// AddMulSmall computes k' = k + R*n as a big-endian byte string, where R
// is a 32-bit value (as returned by ScalarR). The result is widened to
// MAX(len(order_words), len(scalar_words)) + 2 words, enough to hold any
// k + R*n without overflow.
// Scalar addition is a plain (non-modular) big-integer computation: the
// caller runs the ladder directly on k', relying on k'·P = k·P + (R·n)·P
// = k·P since n is the group order.
func AddMulSmall(k, order []byte, seed uint64) []byte {
	R := ScalarR(seed)

	kw := max64Words(len(k))
	nw := max64Words(len(order))
	outWords := kw
	if nw > outWords {
		outWords = nw
	}
	outWords += 2

	kWords := field.WordsFromBytes(k, kw)
	nWords := field.WordsFromBytes(order, nw)

	out := make([]uint64, outWords)
	copy(out, kWords)

	var carry uint64
	for i := 0; i < nw; i++ {
		lo, hi := mac(out[i], nWords[i], R, carry)
		out[i] = lo
		carry = hi
	}
	for i := nw; carry != 0; i++ {
		s, c := bits.Add64(out[i], carry, 0)
		out[i] = s
		carry = c
	}

	dst := make([]byte, outWords*8)
	field.WordsToBytes(dst, out)
	return dst
}

func max64Words(byteLen int) int {
	return (byteLen + 7) / 8
}

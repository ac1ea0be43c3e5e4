package field

import (
	"errors"
	"math/big"
	"math/bits"
)

// This file implements a modulus-polymorphic Montgomery field adapter.
// The types here bind an arbitrary prime modulus at runtime (its word
// count derived from its byte length) and carry out Montgomery
// multiplication with a textbook multiply-then-reduce sequence, using a
// carry/borrow-chain style throughout (math/bits.Add64/Sub64/Mul64, no
// data-dependent branches) so the same field package serves both a fixed
// curve like P-256 and any other short Weierstrass curve a caller
// supplies its own modulus, b and order for.

// ErrZeroLength is returned by NewModulus when given an empty modulus.
var ErrZeroLength = errors.New("field: zero-length modulus")

// ErrOutOfRange is returned when decoding a byte string that denotes an
// integer not in the range 0..p-1.
var ErrOutOfRange = errors.New("field: value out of range")

// An Element is a field value held in Montgomery form (aR mod p, with
// R = 2^(64*w)), stored as w little-endian 64-bit words. All Elements
// bound to a given Modulus have the same length; operations never resize
// an Element in place.
type Element []uint64

// A Modulus binds a prime p and pre-derived Montgomery constants. It is
// immutable after construction and may be shared across goroutines.
// Mul, Sqr, Add, Sub and Select write into caller-supplied destination
// (and, for Mul/Sqr, scratch) buffers without allocating; SetSmall, Neg,
// InvPrime, FromBytes and ToBytes allocate small temporaries internally.
type Modulus struct {
	w       int      // word count
	byteLen int      // canonical encoding length, in bytes
	p       []uint64 // modulus, little-endian words, length w
	n0inv   uint64   // -p[0]^-1 mod 2^64, the REDC constant
	r2      []uint64 // R^2 mod p, little-endian words, length w
	oneMont []uint64 // Montgomery form of 1 (== R mod p)
	pm2     []uint64 // p-2, little-endian words, length w (public; Fermat exponent)
}

// ScratchWords returns the number of uint64 words a scratch buffer passed
// to Mul/Sqr/InvPrime must have, for a modulus of word count w.
func ScratchWords(w int) int {
	return 2*w + 1
}

// WordsFromBytes decodes a big-endian byte string into w little-endian
// 64-bit words (zero-extended on the left if src is shorter than 8*w
// bytes). It is exported for use by packages that need the same
// byte<->word convention as this package's Montgomery encoding but
// without binding to a particular modulus (e.g. internal/blind's
// scalar-widening arithmetic).
func WordsFromBytes(src []byte, w int) []uint64 {
	return wordsFromBigEndian(src, w)
}

// WordsToBytes encodes words (little-endian 64-bit limbs) into dst as a
// big-endian byte string, truncating/zero-extending to len(dst).
func WordsToBytes(dst []byte, words []uint64) {
	wordsToBigEndian(dst, words)
}

func wordsFromBigEndian(src []byte, w int) []uint64 {
	d := make([]uint64, w)
	n := len(src)
	for i := 0; i < n; i++ {
		d[i/8] |= uint64(src[n-1-i]) << uint((i%8)*8)
	}
	return d
}

func wordsToBigEndian(dst []byte, words []uint64) {
	n := len(dst)
	for i := range dst {
		dst[i] = 0
	}
	for i := 0; i < n; i++ {
		wi := i / 8
		if wi >= len(words) {
			break
		}
		dst[n-1-i] = byte(words[wi] >> uint((i%8)*8))
	}
}

func bigFromWords(words []uint64) *big.Int {
	r := new(big.Int)
	for i := len(words) - 1; i >= 0; i-- {
		r.Lsh(r, 64)
		r.Or(r, new(big.Int).SetUint64(words[i]))
	}
	return r
}

func wordsFromBig(v *big.Int, w int) []uint64 {
	d := make([]uint64, w)
	t := new(big.Int).Set(v)
	mask := new(big.Int).SetUint64(^uint64(0))
	for i := 0; i < w; i++ {
		lo := new(big.Int).And(t, mask)
		d[i] = lo.Uint64()
		t.Rsh(t, 64)
	}
	return d
}

// NewModulus constructs a Modulus from a big-endian prime. The byte count
// of modBytes fixes both the word count w = ceil(len/8) and the canonical
// encoding width used by FromBytes/ToBytes. A zero-length modulus is
// rejected, matching the "len == 0 is invalid" contract used throughout
// the curve-context constructor (see ecws.NewCurve).
func NewModulus(modBytes []byte) (*Modulus, error) {
	if len(modBytes) == 0 {
		return nil, ErrZeroLength
	}
	w := (len(modBytes) + 7) / 8
	p := wordsFromBigEndian(modBytes, w)

	pBig := bigFromWords(p)
	r2Big := new(big.Int).Lsh(big.NewInt(1), uint(128*w))
	r2Big.Mod(r2Big, pBig)
	oneBig := new(big.Int).Lsh(big.NewInt(1), uint(64*w))
	oneBig.Mod(oneBig, pBig)
	pm2Big := new(big.Int).Sub(pBig, big.NewInt(2))

	p0 := new(big.Int).SetUint64(p[0])
	mod2_64 := new(big.Int).Lsh(big.NewInt(1), 64)
	inv := new(big.Int).ModInverse(p0, mod2_64)
	n0inv := (^inv.Uint64()) + 1

	return &Modulus{
		w:       w,
		byteLen: len(modBytes),
		p:       p,
		n0inv:   n0inv,
		r2:      wordsFromBig(r2Big, w),
		oneMont: wordsFromBig(oneBig, w),
		pm2:     wordsFromBig(pm2Big, w),
	}, nil
}

// WordLen returns the field's word count w.
func (m *Modulus) WordLen() int { return m.w }

// ByteLen returns the canonical big-endian encoding width, in bytes.
func (m *Modulus) ByteLen() int { return m.byteLen }

// Alloc returns a freshly zeroed Element sized for this modulus.
func (m *Modulus) Alloc() Element {
	return make(Element, m.w)
}

// Copy sets dst <- a.
func (m *Modulus) Copy(dst, a Element) {
	copy(dst, a)
}

// SetSmall sets dst to the Montgomery encoding of the small unsigned
// integer v (v < 2^64).
func (m *Modulus) SetSmall(dst Element, v uint64) {
	raw := m.Alloc()
	raw[0] = v
	scratch := make([]uint64, ScratchWords(m.w))
	m.Mul(dst, raw, Element(m.r2), scratch)
}

// mac computes z + x*y + carry as a 128-bit value (lo, hi); the standard
// multiply-accumulate primitive for schoolbook/CIOS multiplication. The
// result never overflows 128 bits since z + x*y + carry <= (2^64-1)*(2^64+1).
func mac(z, x, y, carry uint64) (lo, hi uint64) {
	hi, lo = bits.Mul64(x, y)
	var c uint64
	lo, c = bits.Add64(lo, z, 0)
	hi += c
	lo, c = bits.Add64(lo, carry, 0)
	hi += c
	return
}

// mulFull computes the full 2w-word product t = a*b (schoolbook, no
// reduction). t must have length >= 2*w.
func mulFull(t, a, b []uint64) {
	w := len(a)
	for i := range t {
		t[i] = 0
	}
	for i := 0; i < w; i++ {
		var carry uint64
		for j := 0; j < w; j++ {
			t[i+j], carry = mac(t[i+j], a[i], b[j], carry)
		}
		t[i+w] = carry
	}
}

// Mul computes dst <- a*b (Montgomery multiplication, i.e. REDC(a*b)).
// scratch must have length ScratchWords(w); its contents are clobbered.
func (m *Modulus) Mul(dst, a, b Element, scratch []uint64) {
	w := m.w
	t := scratch[:2*w+1]
	mulFull(t[:2*w], a, b)
	t[2*w] = 0

	for i := 0; i < w; i++ {
		u := t[i] * m.n0inv
		var carry uint64
		for j := 0; j < w; j++ {
			t[i+j], carry = mac(t[i+j], u, m.p[j], carry)
		}
		k := i + w
		for carry != 0 {
			var c uint64
			t[k], c = bits.Add64(t[k], carry, 0)
			carry = c
			k++
		}
	}

	// Result is t[w:2w] plus a possible overflow bit in t[2w]; the true
	// value is < 2p, so a single conditional subtraction of p suffices.
	var sub [64]uint64 // upper bound on any supported word count
	s := sub[:w]
	var borrow uint64
	for i := 0; i < w; i++ {
		s[i], borrow = bits.Sub64(t[w+i], m.p[i], borrow)
	}
	useSub := t[2*w] | (1 - borrow)
	ctl := -useSub // all-ones if useSub != 0
	for i := 0; i < w; i++ {
		dst[i] = (s[i] & ctl) | (t[w+i] & ^ctl)
	}
}

// Sqr computes dst <- a^2. scratch must have length ScratchWords(w).
func (m *Modulus) Sqr(dst, a Element, scratch []uint64) {
	m.Mul(dst, a, a, scratch)
}

// Add computes dst <- a+b.
func (m *Modulus) Add(dst, a, b Element) {
	w := m.w
	var carry uint64
	for i := 0; i < w; i++ {
		dst[i], carry = bits.Add64(a[i], b[i], carry)
	}
	var sub [64]uint64
	s := sub[:w]
	var borrow uint64
	for i := 0; i < w; i++ {
		s[i], borrow = bits.Sub64(dst[i], m.p[i], borrow)
	}
	useSub := carry | (1 - borrow)
	ctl := -useSub
	for i := 0; i < w; i++ {
		dst[i] = (s[i] & ctl) | (dst[i] & ^ctl)
	}
}

// Sub computes dst <- a-b.
func (m *Modulus) Sub(dst, a, b Element) {
	w := m.w
	var borrow uint64
	for i := 0; i < w; i++ {
		dst[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
	addBack := -borrow
	var carry uint64
	for i := 0; i < w; i++ {
		dst[i], carry = bits.Add64(dst[i], m.p[i]&addBack, carry)
	}
}

// Neg computes dst <- -a.
func (m *Modulus) Neg(dst, a Element) {
	m.Sub(dst, m.Alloc(), a)
}

// Select sets dst <- a if ctl == 1, or dst <- b if ctl == 0. ctl must be
// 0 or 1.
func (m *Modulus) Select(dst, a, b Element, ctl uint64) {
	ma := -ctl
	mb := ^ma
	for i := 0; i < m.w; i++ {
		dst[i] = (a[i] & ma) | (b[i] & mb)
	}
}

// IsZero returns 1 if a == 0 (mod p), 0 otherwise.
func (m *Modulus) IsZero(a Element) uint64 {
	// a is held in Montgomery form, but aR mod p == 0 iff a == 0, so we
	// may test the raw words directly only after reducing representations
	// 0 and p to a canonical form; since field ops here never produce an
	// unreduced element (every Add/Sub/Mul output is fully reduced to
	// 0..p-1), a simple zero-word test suffices.
	var z uint64
	for i := 0; i < m.w; i++ {
		z |= a[i]
	}
	return 1 - ((z | -z) >> 63)
}

// IsOne returns 1 if a encodes the field element 1, 0 otherwise.
func (m *Modulus) IsOne(a Element) uint64 {
	return m.IsEqual(a, Element(m.oneMont))
}

// IsEqual returns 1 if a == b, 0 otherwise.
func (m *Modulus) IsEqual(a, b Element) uint64 {
	var z uint64
	for i := 0; i < m.w; i++ {
		z |= a[i] ^ b[i]
	}
	return 1 - ((z | -z) >> 63)
}

// InvPrime computes dst <- a^-1 via Fermat's little theorem (a^(p-2)); if
// a == 0 it sets dst to 0. This is total (never fails) and constant-time
// in a's value: the square-and-multiply sequence is driven by the public,
// fixed bit pattern of p-2, not by any secret.
func (m *Modulus) InvPrime(dst, a Element, scratch []uint64) {
	acc := m.Alloc()
	copy(acc, m.oneMont)
	base := m.Alloc()
	copy(base, a)

	nbits := m.w * 64
	for bit := nbits - 1; bit >= 0; bit-- {
		m.Sqr(acc, acc, scratch)
		word := m.pm2[bit/64]
		if (word>>uint(bit%64))&1 == 1 {
			m.Mul(acc, acc, base, scratch)
		}
	}
	copy(dst, acc)
}

// FromBytes decodes a big-endian, canonical-width byte string into
// Montgomery form. It fails with ErrOutOfRange if the encoded integer is
// not in 0..p-1.
func (m *Modulus) FromBytes(dst Element, src []byte) error {
	if len(src) != m.byteLen {
		return ErrOutOfRange
	}
	raw := wordsFromBigEndian(src, m.w)
	var borrow uint64
	for i := 0; i < m.w; i++ {
		_, borrow = bits.Sub64(raw[i], m.p[i], borrow)
	}
	if borrow == 0 {
		return ErrOutOfRange
	}
	scratch := make([]uint64, ScratchWords(m.w))
	m.Mul(dst, raw, Element(m.r2), scratch)
	return nil
}

// ToBytes encodes a in Montgomery form as a canonical-width big-endian
// byte string.
func (m *Modulus) ToBytes(dst []byte, src Element) error {
	if len(dst) != m.byteLen {
		return ErrOutOfRange
	}
	raw := m.Alloc()
	one := m.Alloc()
	one[0] = 1
	scratch := make([]uint64, ScratchWords(m.w))
	m.Mul(raw, src, one, scratch)
	wordsToBigEndian(dst, raw)
	return nil
}

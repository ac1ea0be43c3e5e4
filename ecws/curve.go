package ecws

import (
	"github.com/go-ecws/ecws/internal/field"
	"github.com/go-ecws/ecws/p256"
)

// A Curve binds a prime modulus, the short Weierstrass parameter b (with
// a fixed at -3) and a group order to one runtime context. It is built
// once per process (or per key, if contexts must not share a scatter
// seed) and then used to construct and operate on Points; like
// bytes.Buffer, a Curve and the Points bound to it are not safe for
// concurrent use from multiple goroutines without external locking,
// since point operations reuse a single scratch workplace.
type Curve struct {
	mod   *field.Modulus
	b     field.Element
	order []byte // canonical big-endian encoding, public
	seed  uint64
	wp    *workplace

	isP256  bool
	gTables *p256.Tables
	genX    field.Element
	genY    field.Element
}

// NewCurve constructs a Curve context for the short Weierstrass curve
// y^2 = x^3 - 3x + b over the field defined by modulus, with group order
// order. All three byte strings must be non-empty and share the same
// canonical width (modulus's length fixes it); seed scatters the P-256
// generator multi-table built below. The projective and scalar blinding
// in (*Point).Scalar are driven by that method's own seed argument, not
// by this one.
//
// When modulus is exactly the NIST P-256 prime, NewCurve additionally
// builds the precomputed generator multi-table from package p256, which
// (*Point).Scalar uses automatically when the multiplicand is the
// canonical P-256 generator.
func NewCurve(modulus, b, order []byte, seed uint64) (*Curve, error) {
	if len(modulus) == 0 || len(b) == 0 || len(order) == 0 {
		return nil, ErrNull
	}
	mod, err := field.NewModulus(modulus)
	if err != nil {
		return nil, err
	}
	if len(b) != mod.ByteLen() || len(order) != mod.ByteLen() {
		return nil, ErrNotEnoughData
	}

	bE := mod.Alloc()
	if err := mod.FromBytes(bE, b); err != nil {
		return nil, ErrValue
	}

	orderCopy := make([]byte, len(order))
	copy(orderCopy, order)

	c := &Curve{
		mod:   mod,
		b:     bE,
		order: orderCopy,
		seed:  seed,
		wp:    newWorkplace(mod),
	}

	if p256.TablesAvailable && p256.IsCanonicalModulus(modulus) {
		tabs, err := p256.BuildTables(seed)
		if err != nil {
			return nil, err
		}
		gx, gy := mod.Alloc(), mod.Alloc()
		if err := mod.FromBytes(gx, p256.Params.Gx); err != nil {
			return nil, err
		}
		if err := mod.FromBytes(gy, p256.Params.Gy); err != nil {
			return nil, err
		}
		c.isP256 = true
		c.gTables = tabs
		c.genX, c.genY = gx, gy
	}

	return c, nil
}

// ByteLen returns the canonical encoding width, in bytes, shared by
// field elements, the curve order and scalars on this curve.
func (c *Curve) ByteLen() int { return c.mod.ByteLen() }

// Identity returns a fresh Point set to the point at infinity.
func (c *Curve) Identity() *Point {
	mod := c.mod
	p := &Point{curve: c, x: mod.Alloc(), y: mod.Alloc(), z: mod.Alloc()}
	mod.SetSmall(p.y, 1)
	return p
}

func isAllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func checkOnCurve(mod *field.Modulus, wp *workplace, x, y, b field.Element) bool {
	sc := wp.scratch
	y2, x2, x3, three, threeX, rhs := wp.a, wp.b, wp.c, wp.d, wp.e, wp.f
	mod.Sqr(y2, y, sc)
	mod.Sqr(x2, x, sc)
	mod.Mul(x3, x2, x, sc)
	mod.SetSmall(three, 3)
	mod.Mul(threeX, three, x, sc)
	mod.Sub(rhs, x3, threeX)
	mod.Add(rhs, rhs, b)
	return mod.IsEqual(y2, rhs) == 1
}

// padLeft zero-extends src on the left to width n; src must not be
// longer than n.
func padLeft(src []byte, n int) []byte {
	if len(src) == n {
		return src
	}
	out := make([]byte, n)
	copy(out[n-len(src):], src)
	return out
}

// NewPoint decodes a candidate affine point from its big-endian X and Y
// encodings; each may be shorter than the field's canonical width (it is
// zero-extended on the left) but not longer. The all-zero pair (x=0,
// y=0) denotes the point at infinity; any other pair must satisfy the
// curve equation or NewPoint returns ErrPoint.
func (c *Curve) NewPoint(x, y []byte) (*Point, error) {
	mod := c.mod
	byteLen := mod.ByteLen()
	if len(x) == 0 || len(y) == 0 {
		return nil, ErrNotEnoughData
	}
	if len(x) > byteLen || len(y) > byteLen {
		return nil, ErrNotEnoughData
	}

	if isAllZero(x) && isAllZero(y) {
		return c.Identity(), nil
	}

	xw, yw := padLeft(x, byteLen), padLeft(y, byteLen)
	X, Y := mod.Alloc(), mod.Alloc()
	if err := mod.FromBytes(X, xw); err != nil {
		return nil, ErrValue
	}
	if err := mod.FromBytes(Y, yw); err != nil {
		return nil, ErrValue
	}
	if !checkOnCurve(mod, c.wp, X, Y, c.b) {
		return nil, ErrPoint
	}
	Z := mod.Alloc()
	mod.SetSmall(Z, 1)
	return &Point{curve: c, x: X, y: Y, z: Z}, nil
}

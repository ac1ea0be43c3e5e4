package ecws

import "github.com/go-ecws/ecws/internal/field"

// A Point is a projective point (X:Y:Z) bound to a Curve, held in the
// curve's field's Montgomery form. The point at infinity is represented
// canonically as (0:1:0). Point methods follow the same receiver-is-
// destination convention as the projective-coordinate addition kernels
// they wrap: p.Double(q) and p.Add(q1,q2) write their result into the
// receiver, so callers can chain or accumulate without an extra
// temporary.
type Point struct {
	curve   *Curve
	x, y, z field.Element
}

// Curve returns the Curve this Point is bound to.
func (p *Point) Curve() *Curve { return p.curve }

// IsPAI returns 1 if p is the point at infinity, 0 otherwise.
func (p *Point) IsPAI() uint64 {
	return p.curve.mod.IsZero(p.z)
}

// Clone returns a deep copy of p, bound to the same Curve.
func (p *Point) Clone() *Point {
	mod := p.curve.mod
	q := &Point{curve: p.curve, x: mod.Alloc(), y: mod.Alloc(), z: mod.Alloc()}
	mod.Copy(q.x, p.x)
	mod.Copy(q.y, p.y)
	mod.Copy(q.z, p.z)
	return q
}

// Copy sets p <- q and returns p. p and q must be bound to the same
// Curve.
func (p *Point) Copy(q *Point) *Point {
	mod := p.curve.mod
	mod.Copy(p.x, q.x)
	mod.Copy(p.y, q.y)
	mod.Copy(p.z, q.z)
	return p
}

// Double sets p = 2*q and returns p.
func (p *Point) Double(q *Point) *Point {
	c := p.curve
	mod, wp := c.mod, c.wp
	x1, y1, z1 := wp.i, wp.j, wp.k
	mod.Copy(x1, q.x)
	mod.Copy(y1, q.y)
	mod.Copy(z1, q.z)
	double(mod, wp, p.x, p.y, p.z, x1, y1, z1, c.b)
	return p
}

// Add sets p = q1+q2 and returns p. q1 and q2 may alias each other or p;
// their coordinates are captured into private scratch before the kernel
// writes the receiver. Add rejects operands bound to a different Curve.
func (p *Point) Add(q1, q2 *Point) (*Point, error) {
	c := p.curve
	if q1.curve != c || q2.curve != c {
		return nil, ErrCurveMismatch
	}
	mod, wp := c.mod, c.wp
	x1, y1, z1 := wp.i, wp.j, wp.k
	mod.Copy(x1, q1.x)
	mod.Copy(y1, q1.y)
	mod.Copy(z1, q1.z)
	x2, y2, z2 := mod.Alloc(), mod.Alloc(), mod.Alloc()
	mod.Copy(x2, q2.x)
	mod.Copy(y2, q2.y)
	mod.Copy(z2, q2.z)
	fullAdd(mod, wp, p.x, p.y, p.z, x1, y1, z1, x2, y2, z2, c.b)
	return p, nil
}

// Neg sets p = -q (negate the Y coordinate) and returns p.
func (p *Point) Neg(q *Point) *Point {
	mod := p.curve.mod
	mod.Copy(p.x, q.x)
	mod.Neg(p.y, q.y)
	mod.Copy(p.z, q.z)
	return p
}

// Normalize rescales p to Z=1 (or, for the point at infinity, to the
// canonical (0,1,0) encoding) and returns p.
func (p *Point) Normalize() *Point {
	mod := p.curve.mod
	wp := p.curve.wp
	isPAI := p.IsPAI()

	invZ := wp.a
	mod.InvPrime(invZ, p.z, wp.scratch)
	nx, ny := wp.b, wp.c
	mod.Mul(nx, p.x, invZ, wp.scratch)
	mod.Mul(ny, p.y, invZ, wp.scratch)

	one, zero := wp.d, wp.e
	mod.SetSmall(one, 1)
	mod.SetSmall(zero, 0)

	mod.Select(p.x, zero, nx, isPAI)
	mod.Select(p.y, one, ny, isPAI)
	mod.Select(p.z, zero, one, isPAI)
	return p
}

// GetXYInto writes the canonical big-endian affine coordinates of p into
// the caller-supplied buffers. Each buffer must be exactly the curve's
// ByteLen() long, or GetXYInto fails with ErrMemory before touching
// either one. The point at infinity encodes as two all-zero strings, the
// same convention NewPoint accepts on the way in.
func (p *Point) GetXYInto(x, y []byte) error {
	mod := p.curve.mod
	byteLen := mod.ByteLen()
	if len(x) != byteLen || len(y) != byteLen {
		return ErrMemory
	}
	if p.IsPAI() == 1 {
		for i := 0; i < byteLen; i++ {
			x[i] = 0
			y[i] = 0
		}
		return nil
	}
	n := p.Clone().Normalize()
	if err := mod.ToBytes(x, n.x); err != nil {
		return err
	}
	return mod.ToBytes(y, n.y)
}

// GetXY is GetXYInto with freshly allocated destination buffers.
func (p *Point) GetXY() (x, y []byte, err error) {
	byteLen := p.curve.mod.ByteLen()
	x = make([]byte, byteLen)
	y = make([]byte, byteLen)
	if err := p.GetXYInto(x, y); err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// Cmp compares p and q by cross-multiplication (X1Z2 =? X2Z1 and
// Y1Z2 =? Y2Z1, with the PAI cases folded in), rather than normalizing,
// so it works directly on unnormalized projective coordinates. It
// returns nil if p and q represent the same group element, ErrValue if
// they don't, and ErrCurveMismatch if they are bound to different
// Curves. It is not constant-time and is meant for public comparisons,
// not for branching on secret data.
func (p *Point) Cmp(q *Point) error {
	if p.curve != q.curve {
		return ErrCurveMismatch
	}
	if p.IsPAI() == 1 || q.IsPAI() == 1 {
		if p.IsPAI() == q.IsPAI() {
			return nil
		}
		return ErrValue
	}
	mod := p.curve.mod
	scratch := make([]uint64, field.ScratchWords(mod.WordLen()))
	t1, t2 := mod.Alloc(), mod.Alloc()
	mod.Mul(t1, p.x, q.z, scratch)
	mod.Mul(t2, q.x, p.z, scratch)
	if mod.IsEqual(t1, t2) == 0 {
		return ErrValue
	}
	mod.Mul(t1, p.y, q.z, scratch)
	mod.Mul(t2, q.y, p.z, scratch)
	if mod.IsEqual(t1, t2) == 0 {
		return ErrValue
	}
	return nil
}

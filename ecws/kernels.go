package ecws

import "github.com/go-ecws/ecws/internal/field"

// This file implements the three complete-addition primitives for a
// short Weierstrass curve y^2 = x^3 - 3x + b: double, mixAdd (projective
// + affine) and fullAdd (projective + projective). All three are total:
// they accept the point at infinity and equal/opposite operands with no
// data-dependent branch, which is the property the ladders in ladder.go
// depend on to avoid leaking scalar bits through control flow.
//
// The step sequences are Algorithms 4-6 of Renes, Costello and Batina,
// "Complete addition formulas for prime order elliptic curves" (2016),
// transcribed field operation for field operation, in order, against the
// same named temporaries. The curve parameter is plain b throughout, not
// 3*b: these write-ups of the algorithms fold the tripling into the step
// sequence itself, so b is passed unmodified into all three kernels.

// double computes (x3,y3,z3) = 2*(x1,y1,z1) for the curve's a=-3 short
// Weierstrass formula (y^2 = x^3 - 3x + b). b must hold the curve
// parameter in Montgomery form. All field elements must belong to the
// same Modulus; dst may alias the input.
func double(mod *field.Modulus, wp *workplace, x3, y3, z3, x1in, y1in, z1in, b field.Element) {
	t0, t1, t2, t3 := wp.a, wp.b, wp.c, wp.d
	x, y, z := wp.e, wp.f, wp.g
	sc := wp.scratch

	mod.Copy(x, x1in)
	mod.Copy(y, y1in)
	mod.Copy(z, z1in)

	mod.Mul(t0, x, x, sc)
	mod.Mul(t1, y, y, sc)
	mod.Mul(t2, z, z, sc)

	mod.Mul(t3, x, y, sc)
	mod.Add(t3, t3, t3)
	mod.Mul(z3, x, z, sc)

	mod.Add(z3, z3, z3)
	mod.Mul(y3, b, t2, sc)
	mod.Sub(y3, y3, z3)

	mod.Add(x3, y3, y3)
	mod.Add(y3, x3, y3)
	mod.Sub(x3, t1, y3)

	mod.Add(y3, t1, y3)
	mod.Mul(y3, x3, y3, sc)
	mod.Mul(x3, x3, t3, sc)

	mod.Add(t3, t2, t2)
	mod.Add(t2, t2, t3)
	mod.Mul(z3, b, z3, sc)

	mod.Sub(z3, z3, t2)
	mod.Sub(z3, z3, t0)
	mod.Add(t3, z3, z3)

	mod.Add(z3, z3, t3)
	mod.Add(t3, t0, t0)
	mod.Add(t0, t3, t0)

	mod.Sub(t0, t0, t2)
	mod.Mul(t0, t0, z3, sc)
	mod.Add(y3, y3, t0)

	mod.Mul(t0, y, z, sc)
	mod.Add(t0, t0, t0)
	mod.Mul(z3, t0, z3, sc)

	mod.Sub(x3, x3, z3)
	mod.Mul(z3, t0, t1, sc)
	mod.Add(z3, z3, z3)

	mod.Add(z3, z3, z3)
}

// mixAdd computes (x3,y3,z3) = (x1,y1,z1) + (x2,y2) where the second
// operand is affine (implicit Z2=1). The affine operand's all-zero
// encoding (0,0) is the PAI convention used by table entries; when it is
// detected, this short-circuits to copying P1. The branch is not
// constant-time: in ecScalarGP256 it is taken for every zero digit of the
// scalar, since entry 0 of each generator table is (0,0).
func mixAdd(mod *field.Modulus, wp *workplace, x3, y3, z3, x1in, y1in, z1in, x2, y2, b field.Element) {
	if mod.IsZero(x2) == 1 && mod.IsZero(y2) == 1 {
		mod.Copy(x3, x1in)
		mod.Copy(y3, y1in)
		mod.Copy(z3, z1in)
		return
	}

	t0, t1, t2, t3, t4 := wp.a, wp.b, wp.c, wp.d, wp.e
	x1, y1, z1 := wp.f, wp.g, wp.h
	sc := wp.scratch

	mod.Copy(x1, x1in)
	mod.Copy(y1, y1in)
	mod.Copy(z1, z1in)

	mod.Mul(t0, x1, x2, sc)
	mod.Mul(t1, y1, y2, sc)
	mod.Add(t3, x2, y2)

	mod.Add(t4, x1, y1)
	mod.Mul(t3, t3, t4, sc)
	mod.Add(t4, t0, t1)

	mod.Sub(t3, t3, t4)
	mod.Mul(t4, y2, z1, sc)
	mod.Add(t4, t4, y1)

	mod.Mul(y3, x2, z1, sc)
	mod.Add(y3, y3, x1)
	mod.Mul(z3, b, z1, sc)

	mod.Sub(x3, y3, z3)
	mod.Add(z3, x3, x3)
	mod.Add(x3, x3, z3)

	mod.Sub(z3, t1, x3)
	mod.Add(x3, t1, x3)
	mod.Mul(y3, b, y3, sc)

	mod.Add(t1, z1, z1)
	mod.Add(t2, t1, z1)
	mod.Sub(y3, y3, t2)

	mod.Sub(y3, y3, t0)
	mod.Add(t1, y3, y3)
	mod.Add(y3, t1, y3)

	mod.Add(t1, t0, t0)
	mod.Add(t0, t1, t0)
	mod.Sub(t0, t0, t2)

	mod.Mul(t1, t4, y3, sc)
	mod.Mul(t2, t0, y3, sc)
	mod.Mul(y3, x3, z3, sc)

	mod.Add(y3, y3, t2)
	mod.Mul(x3, t3, x3, sc)
	mod.Sub(x3, x3, t1)

	mod.Mul(z3, t4, z3, sc)
	mod.Mul(t1, t3, t0, sc)
	mod.Add(z3, z3, t1)
}

// fullAdd computes (x3,y3,z3) = (x1,y1,z1) + (x2,y2,z2), both projective.
func fullAdd(mod *field.Modulus, wp *workplace, x3, y3, z3, x1in, y1in, z1in, x2in, y2in, z2in, b field.Element) {
	t0, t1, t2, t3, t4 := wp.a, wp.b, wp.c, wp.d, wp.e
	x1, y1, z1 := wp.f, wp.g, wp.h
	x2, y2, z2 := wp.i, wp.j, wp.k
	sc := wp.scratch

	mod.Copy(x1, x1in)
	mod.Copy(y1, y1in)
	mod.Copy(z1, z1in)
	mod.Copy(x2, x2in)
	mod.Copy(y2, y2in)
	mod.Copy(z2, z2in)

	mod.Mul(t0, x1, x2, sc)
	mod.Mul(t1, y1, y2, sc)
	mod.Mul(t2, z1, z2, sc)

	mod.Add(t3, x1, y1)
	mod.Add(t4, x2, y2)
	mod.Mul(t3, t3, t4, sc)

	mod.Add(t4, t0, t1)
	mod.Sub(t3, t3, t4)
	mod.Add(t4, y1, z1)

	mod.Add(x3, y2, z2)
	mod.Mul(t4, t4, x3, sc)
	mod.Add(x3, t1, t2)

	mod.Sub(t4, t4, x3)
	mod.Add(x3, x1, z1)
	mod.Add(y3, x2, z2)

	mod.Mul(x3, x3, y3, sc)
	mod.Add(y3, t0, t2)
	mod.Sub(y3, x3, y3)

	mod.Mul(z3, b, t2, sc)
	mod.Sub(x3, y3, z3)
	mod.Add(z3, x3, x3)

	mod.Add(x3, x3, z3)
	mod.Sub(z3, t1, x3)
	mod.Add(x3, t1, x3)

	mod.Mul(y3, b, y3, sc)
	mod.Add(t1, t2, t2)
	mod.Add(t2, t1, t2)

	mod.Sub(y3, y3, t2)
	mod.Sub(y3, y3, t0)
	mod.Add(t1, y3, y3)

	mod.Add(y3, t1, y3)
	mod.Add(t1, t0, t0)
	mod.Add(t0, t1, t0)

	mod.Sub(t0, t0, t2)
	mod.Mul(t1, t4, y3, sc)
	mod.Mul(t2, t0, y3, sc)

	mod.Mul(y3, x3, z3, sc)
	mod.Add(y3, y3, t2)
	mod.Mul(x3, t3, x3, sc)

	mod.Sub(x3, x3, t1)
	mod.Mul(z3, t4, z3, sc)
	mod.Mul(t1, t3, t0, sc)

	mod.Add(z3, z3, t1)
}

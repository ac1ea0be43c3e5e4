package ecws

import (
	"github.com/go-ecws/ecws/internal/blind"
	"github.com/go-ecws/ecws/internal/field"
)

// blindFactorTag domain-separates the projective-blinding draw from any
// other SHAKE256 squeeze internal/blind.FieldFactor might someday be
// asked for from the same seed family.
const blindFactorTag = 0x01

// Scalar sets p <- k*p in place and returns nil, or leaves p unchanged
// and returns an error. It dispatches to whichever ladder fits: the
// right-to-left generator ladder (ecScalarGP256) when p is exactly the
// curve's canonical P-256 generator (detected by comparing its
// normalized Montgomery-form coordinates against the baked-in constants
// from package p256, not by any flag the caller sets) and the
// left-to-right arbitrary-point ladder (ecScalar) otherwise.
//
// The generator path never runs blinded, regardless of seed: it always
// consumes k exactly as given. Scalar blinding widens k by adding a
// multiple of the group order (see internal/blind.AddMulSmall), and the
// generator ladder's precomputed tables only span k's natural width
// (p256.NTables windows); widening k here would overflow that table and
// silently drop its high bits rather than computing the blinded
// product. The generator's own table scatter (built once, at table
// construction time, not per call) already supplies its side-channel
// countermeasure, so skipping the scalar/point blinding below costs
// nothing the generator path needs.
//
// For any other point, seed = 0 disables both blinding steps and runs
// ecScalar directly on k, for deterministic/testing use. Any other seed
// drives three countermeasures from one entropy source: the projective
// point-blinding factor is derived from seed itself, the scalar blinding
// multiplier R is seed's low 32 bits, and the arbitrary-point ladder's
// window-table scatter runs under seed+1.
func (p *Point) Scalar(k []byte, seed uint64) error {
	c := p.curve
	if len(k) == 0 {
		return ErrNotEnoughData
	}

	if c.isP256 && p.IsPAI() == 0 {
		norm := p.Clone().Normalize()
		mod := c.mod
		if mod.IsEqual(norm.x, c.genX) == 1 && mod.IsEqual(norm.y, c.genY) == 1 {
			res, err := ecScalarGP256(c, k)
			if err != nil {
				return err
			}
			p.Copy(res)
			return nil
		}
	}

	if seed == 0 {
		p.Copy(ecScalar(c, p, k, 0))
		return nil
	}

	factor := blind.FieldFactor(c.mod, seed, blindFactorTag)
	blindedP := blindPoint(c, p, factor)
	kBlinded := blind.AddMulSmall(k, c.order, seed)
	p.Copy(ecScalar(c, blindedP, kBlinded, seed+1))
	return nil
}

// blindPoint returns a copy of p with its projective coordinates scaled
// by factor: (X,Y,Z) -> (factor*X, factor*Y, factor*Z), the same group
// element under a randomized representative. It leaves p itself
// untouched.
func blindPoint(c *Curve, p *Point, factor field.Element) *Point {
	mod := c.mod
	q := p.Clone()
	scratch := make([]uint64, field.ScratchWords(mod.WordLen()))
	mod.Mul(q.x, q.x, factor, scratch)
	mod.Mul(q.y, q.y, factor, scratch)
	mod.Mul(q.z, q.z, factor, scratch)
	return q
}

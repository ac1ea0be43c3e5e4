package ecws

import "github.com/go-ecws/ecws/internal/field"

// A workplace bundles the scratch field elements the addition kernels
// need, keyed by letter: eleven slots (the most fullAdd uses at once)
// plus one multiplication scratch buffer. Callers allocate one per Curve
// (or per goroutine sharing a Curve) and reuse it across many point
// operations instead of allocating fresh Elements on every Double/Add.
type workplace struct {
	a, b, c, d, e, f, g, h, i, j, k field.Element
	scratch                         []uint64
}

func newWorkplace(mod *field.Modulus) *workplace {
	return &workplace{
		a: mod.Alloc(), b: mod.Alloc(), c: mod.Alloc(), d: mod.Alloc(),
		e: mod.Alloc(), f: mod.Alloc(), g: mod.Alloc(), h: mod.Alloc(),
		i: mod.Alloc(), j: mod.Alloc(), k: mod.Alloc(),
		scratch: make([]uint64, field.ScratchWords(mod.WordLen())),
	}
}

//go:build !ecwstables

package ecws

import (
	"testing"

	"github.com/go-ecws/ecws/p256"
)

// TestGeneratorLadderRejectsOversizedScalar exercises the structural
// precondition from the generator ladder: a scalar wide enough to need
// more windows than the precomputed table covers must fail with a value
// error rather than silently truncate. The test only makes sense in
// builds that carry the generator multi-table; the ecwstables build
// routes every scalar through the arbitrary-point ladder, which has no
// width limit.
func TestGeneratorLadderRejectsOversizedScalar(t *testing.T) {
	c := newP256Curve(t)
	g := generator(t, c)

	oversized := make([]byte, p256.ByteLen+1)
	oversized[0] = 1 // 33 significant bytes: 66 windows, above NTables (64)

	if err := g.Scalar(oversized, 0); err != ErrValue {
		t.Fatalf("oversized scalar on generator: got %v, want ErrValue", err)
	}
}

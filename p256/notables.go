//go:build ecwstables

package p256

import (
	"errors"

	"github.com/go-ecws/ecws/internal/field"
	"github.com/go-ecws/ecws/internal/protmem"
)

// This file is the alternate build selected by the `ecwstables` tag, for
// builds that only want the raw curve parameters, e.g. a one-off
// table-generation utility that computes the multi-table offline and
// ships it as a separate asset, rather than linking the table-builder
// arithmetic into the production binary. BuildTables here always fails;
// Tables/DecodeEntry are kept so ecws.NewCurve type-checks against either
// build.

// TablesAvailable is false in this build; ecws.NewCurve skips the
// generator fast path and every scalar multiplication runs through the
// arbitrary-point ladder.
const TablesAvailable = false

// Tables mirrors the default build's type so callers compile unchanged.
type Tables struct {
	Mod       *field.Modulus
	EntrySize int
	Tables    []*protmem.Table
}

// ErrTablesUnavailable is returned by BuildTables in the `ecwstables`
// build, which intentionally excludes the table-construction arithmetic.
var ErrTablesUnavailable = errors.New("p256: generator table construction excluded by the ecwstables build tag")

// BuildTables always fails in this build.
func BuildTables(seed uint64) (*Tables, error) {
	return nil, ErrTablesUnavailable
}

// DecodeEntry is unreachable in this build (no Tables are ever produced)
// but is kept so ecws compiles against either variant.
func DecodeEntry(mod *field.Modulus, entry []byte) (x, y field.Element) {
	return mod.Alloc(), mod.Alloc()
}

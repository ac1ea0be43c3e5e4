// Package p256 provides the NIST P-256 curve constants and the
// precomputed generator multi-table consumed by the generator ladder in
// package ecws. The table layout is an internal implementation detail;
// ecws.NewCurve is the only caller.
package p256

import "encoding/hex"

// Canonical big-endian hex encodings of the P-256 domain parameters.
const (
	pHex  = "ffffffff00000001000000000000000000000000ffffffffffffffffffffffff"
	bHex  = "5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b"
	nHex  = "ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"
	gxHex = "6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296"
	gyHex = "4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5"
)

func mustDecode(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Params exposes the raw domain parameters as fixed 32-byte, big-endian
// arrays: modulus, curve parameter b, group order n, and the affine
// coordinates of the conventional generator G.
var Params = struct {
	P, B, N, Gx, Gy []byte
}{
	P:  mustDecode(pHex),
	B:  mustDecode(bHex),
	N:  mustDecode(nHex),
	Gx: mustDecode(gxHex),
	Gy: mustDecode(gyHex),
}

// ByteLen is the fixed field/scalar encoding width for P-256.
const ByteLen = 32

// WindowSize is the fixed digit width used by the generator ladder, w = 4,
// giving NTables = 64 tables of 16 points each to cover 256 bits.
const WindowSize = 4

// PointsPerTable is 2^WindowSize.
const PointsPerTable = 1 << WindowSize

// NTables is ceil(256/WindowSize).
const NTables = (256 + WindowSize - 1) / WindowSize

// IsCanonicalModulus reports whether modBytes is exactly the P-256 prime,
// encoded as 32 big-endian bytes. ecws.NewCurve uses this to pick the
// generator-table ladder path.
func IsCanonicalModulus(modBytes []byte) bool {
	if len(modBytes) != ByteLen {
		return false
	}
	for i := range modBytes {
		if modBytes[i] != Params.P[i] {
			return false
		}
	}
	return true
}

// Package mayo implements the MAYO post-quantum digital-signature scheme:
// key generation, signing, and verification over four NIST parameter
// levels, built on a bitsliced GF(16) algebraic core (see packages gf16,
// bitslice, codec, and echelon).
package mayo

import "fmt"

const fTailLen = 4

// Params is an immutable record of one MAYO parameter set's dimensions and
// derived sizes. The four supported sets are exposed as the package-level
// presets Mayo1, Mayo2, Mayo3, and Mayo5; callers never construct Params
// themselves.
type Params struct {
	Name string

	N int
	M int
	O int
	K int
	V int // n - o

	MVecLimbs int // ceil(m/16)
	ACols     int // k*o + 1

	MBytes int
	OBytes int
	VBytes int
	RBytes int

	P1Bytes int
	P2Bytes int
	P3Bytes int

	CSKBytes int
	CPKBytes int
	SigBytes int

	SaltBytes   int
	DigestBytes int
	PkSeedBytes int
	SkSeedBytes int

	FTail [fTailLen]byte

	P1Limbs int
	P2Limbs int
	P3Limbs int
}

func newParams(
	name string,
	n, m, o, k, mVecLimbs int,
	mBytes, oBytes, vBytes, rBytes int,
	p1Bytes, p2Bytes, p3Bytes int,
	cskBytes, cpkBytes, sigBytes int,
	saltBytes, digestBytes int,
	pkSeedBytes, skSeedBytes int,
	fTail [fTailLen]byte,
) *Params {
	v := n - o
	p := &Params{
		Name:        name,
		N:           n,
		M:           m,
		O:           o,
		K:           k,
		V:           v,
		MVecLimbs:   mVecLimbs,
		ACols:       k*o + 1,
		MBytes:      mBytes,
		OBytes:      oBytes,
		VBytes:      vBytes,
		RBytes:      rBytes,
		P1Bytes:     p1Bytes,
		P2Bytes:     p2Bytes,
		P3Bytes:     p3Bytes,
		CSKBytes:    cskBytes,
		CPKBytes:    cpkBytes,
		SigBytes:    sigBytes,
		SaltBytes:   saltBytes,
		DigestBytes: digestBytes,
		PkSeedBytes: pkSeedBytes,
		SkSeedBytes: skSeedBytes,
		FTail:       fTail,
		P1Limbs:     v * (v + 1) / 2 * mVecLimbs,
		P2Limbs:     v * o * mVecLimbs,
		P3Limbs:     o * (o + 1) / 2 * mVecLimbs,
	}
	p.assertShiftArithmetic()
	return p
}

// assertShiftArithmetic verifies the relationship between A_cols,
// m_vec_limbs, m and k that the linearized-system assembly (compute_a /
// transpose_16x16_nibbles) relies on; see SPEC_FULL.md's Open Question
// resolution. A misconfigured parameter set panics at init time rather
// than silently producing a corrupted signature.
func (p *Params) assertShiftArithmetic() {
	if p.MVecLimbs != (p.M+15)/16 {
		panic(fmt.Sprintf("mayo: %s: m_vec_limbs %d does not match ceil(m/16)=%d", p.Name, p.MVecLimbs, (p.M+15)/16))
	}
	if p.ACols != p.K*p.O+1 {
		panic(fmt.Sprintf("mayo: %s: a_cols %d does not match k*o+1=%d", p.Name, p.ACols, p.K*p.O+1))
	}
	if p.V != p.N-p.O {
		panic(fmt.Sprintf("mayo: %s: v %d does not match n-o=%d", p.Name, p.V, p.N-p.O))
	}
	aWidth := ((p.O*p.K + 15) / 16) * 16
	if aWidth == 0 {
		panic(fmt.Sprintf("mayo: %s: degenerate a_width", p.Name))
	}
}

// Mayo1 is the MAYO_1 (NIST level 1) parameter set.
var Mayo1 = newParams(
	"MAYO_1",
	86, 78, 8, 10, 5,
	39, 312, 39, 40,
	120159, 24336, 1404,
	24, 1420, 454,
	24, 32,
	16, 24,
	[fTailLen]byte{8, 1, 1, 0},
)

// Mayo2 is the MAYO_2 (NIST level 2) parameter set.
var Mayo2 = newParams(
	"MAYO_2",
	81, 64, 17, 4, 4,
	32, 544, 32, 34,
	66560, 34816, 4896,
	24, 4912, 186,
	24, 32,
	16, 24,
	[fTailLen]byte{8, 0, 2, 8},
)

// Mayo3 is the MAYO_3 (NIST level 3) parameter set.
var Mayo3 = newParams(
	"MAYO_3",
	118, 108, 10, 11, 7,
	54, 540, 54, 55,
	317844, 58320, 2970,
	32, 2986, 681,
	32, 48,
	16, 32,
	[fTailLen]byte{8, 0, 1, 7},
)

// Mayo5 is the MAYO_5 (NIST level 5) parameter set.
var Mayo5 = newParams(
	"MAYO_5",
	154, 142, 12, 12, 9,
	71, 852, 71, 72,
	720863, 120984, 5538,
	40, 5554, 964,
	40, 64,
	16, 40,
	[fTailLen]byte{4, 0, 8, 1},
)

// Variants lists all four supported parameter sets, in NIST level order.
var Variants = []*Params{Mayo1, Mayo2, Mayo3, Mayo5}

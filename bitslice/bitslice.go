// Package bitslice implements nibble-packed ("bitsliced") GF(16) m-vector
// operations on 64-bit limbs. An element of GF(16)^m is packed into
// ceil(m/16) u64 limbs, 16 nibbles per limb, nibble j at bits
// [4*(j%16), 4*(j%16)+4) of limb j/16.
//
// Every function here is constant time with respect to its inputs: no
// branch or memory access depends on the value of a GF(16) element, only
// on public lengths.
package bitslice

import "github.com/mayo-pq/mayo/gf16"

const (
	// MaskLSB isolates bit 0 of every nibble in a limb.
	MaskLSB uint64 = 0x1111111111111111
	// MaskMSB isolates bit 3 of every nibble in a limb.
	MaskMSB uint64 = 0x8888888888888888
)

// Copy sets dst = src over mVecLimbs limbs.
func Copy(src, dst []uint64, mVecLimbs int) {
	copy(dst[:mVecLimbs], src[:mVecLimbs])
}

// Add computes acc ^= src over mVecLimbs limbs.
func Add(src, acc []uint64, mVecLimbs int) {
	for i := 0; i < mVecLimbs; i++ {
		acc[i] ^= src[i]
	}
}

// MulAdd computes acc += src*a, where a is a GF(16) scalar broadcast across
// every nibble lane of src.
func MulAdd(src []uint64, a byte, acc []uint64, mVecLimbs int) {
	tab := gf16.MulTable(a)
	t0 := uint64(tab & 0xff)
	t1 := uint64((tab >> 8) & 0xf)
	t2 := uint64((tab >> 16) & 0xf)
	t3 := uint64((tab >> 24) & 0xf)

	for i := 0; i < mVecLimbs; i++ {
		acc[i] ^= (src[i]&MaskLSB)*t0 ^
			((src[i]>>1)&MaskLSB)*t1 ^
			((src[i]>>2)&MaskLSB)*t2 ^
			((src[i]>>3)&MaskLSB)*t3
	}
}

// MulAddX computes acc += src*x (multiplication by the field generator).
func MulAddX(src, acc []uint64, mVecLimbs int) {
	for i := 0; i < mVecLimbs; i++ {
		t := src[i] & MaskMSB
		acc[i] ^= ((src[i] ^ t) << 1) ^ ((t >> 3) * 3)
	}
}

// MulAddXInv computes acc += src*x^-1.
func MulAddXInv(src, acc []uint64, mVecLimbs int) {
	for i := 0; i < mVecLimbs; i++ {
		t := src[i] & MaskLSB
		acc[i] ^= ((src[i] ^ t) >> 1) ^ (t * 9)
	}
}

// binsMulAddXInv applies MulAddXInv from bins[src:src+n] into bins[dst:dst+n].
func binsMulAddXInv(bins []uint64, src, dst, n int) {
	for i := 0; i < n; i++ {
		t := bins[src+i] & MaskLSB
		bins[dst+i] ^= ((bins[src+i] ^ t) >> 1) ^ (t * 9)
	}
}

// binsMulAddX applies MulAddX from bins[src:src+n] into bins[dst:dst+n].
func binsMulAddX(bins []uint64, src, dst, n int) {
	for i := 0; i < n; i++ {
		t := bins[src+i] & MaskMSB
		bins[dst+i] ^= ((bins[src+i] ^ t) << 1) ^ ((t >> 3) * 3)
	}
}

// MultiplyBins reduces 16 bin accumulators (indexed by nibble value 0..15,
// each mVecLimbs wide) to a single m-vector via a fixed Karatsuba-like
// schedule of MulAddX/MulAddXInv steps, storing the result in out.
//
// bins must have at least 16*mVecLimbs elements and is destroyed. The
// schedule below is a fixed (op, src, dst) table and must be reproduced
// exactly; it is not rediscovered at runtime.
func MultiplyBins(bins, out []uint64, mVecLimbs int) {
	mvl := mVecLimbs

	binsMulAddXInv(bins, 5*mvl, 10*mvl, mvl)
	binsMulAddX(bins, 11*mvl, 12*mvl, mvl)
	binsMulAddXInv(bins, 10*mvl, 7*mvl, mvl)
	binsMulAddX(bins, 12*mvl, 6*mvl, mvl)
	binsMulAddXInv(bins, 7*mvl, 14*mvl, mvl)
	binsMulAddX(bins, 6*mvl, 3*mvl, mvl)
	binsMulAddXInv(bins, 14*mvl, 15*mvl, mvl)
	binsMulAddX(bins, 3*mvl, 8*mvl, mvl)
	binsMulAddXInv(bins, 15*mvl, 13*mvl, mvl)
	binsMulAddX(bins, 8*mvl, 4*mvl, mvl)
	binsMulAddXInv(bins, 13*mvl, 9*mvl, mvl)
	binsMulAddX(bins, 4*mvl, 2*mvl, mvl)
	binsMulAddXInv(bins, 9*mvl, mvl, mvl)
	binsMulAddX(bins, 2*mvl, mvl, mvl)

	copy(out[:mvl], bins[mvl:2*mvl])
}

// VecMulAdd is MulAdd generalized to an arbitrary limb count ("legs"),
// used by the echelon solver on rows whose width differs from a
// parameter set's m_vec_limbs.
func VecMulAdd(legs int, src []uint64, a byte, acc []uint64) {
	tab := gf16.MulTable(a)
	t0 := uint64(tab & 0xff)
	t1 := uint64((tab >> 8) & 0xf)
	t2 := uint64((tab >> 16) & 0xf)
	t3 := uint64((tab >> 24) & 0xf)

	for i := 0; i < legs; i++ {
		acc[i] ^= (src[i]&MaskLSB)*t0 ^
			((src[i]>>1)&MaskLSB)*t1 ^
			((src[i]>>2)&MaskLSB)*t2 ^
			((src[i]>>3)&MaskLSB)*t3
	}
}

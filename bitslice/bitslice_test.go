package bitslice

import (
	"testing"

	"github.com/mayo-pq/mayo/gf16"
)

// unpackNibbles returns the n nibbles held in limbs (16 nibbles per limb).
func unpackNibbles(limbs []uint64, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		leg := i / 16
		off := uint(i % 16)
		out[i] = byte(limbs[leg]>>(4*off)) & 0xf
	}
	return out
}

func packNibbles(vals []byte, mVecLimbs int) []uint64 {
	limbs := make([]uint64, mVecLimbs)
	for i, v := range vals {
		leg := i / 16
		off := uint(i % 16)
		limbs[leg] |= uint64(v&0xf) << (4 * off)
	}
	return limbs
}

func TestMulAddMatchesScalar(t *testing.T) {
	const m = 17 // forces 2 limbs, exercising the tail
	mVecLimbs := 2
	src := make([]byte, 16*mVecLimbs)
	for i := range src {
		src[i] = byte(i % 16)
	}
	for a := 0; a < 16; a++ {
		acc := make([]byte, len(src))
		accLimbs := packNibbles(acc, mVecLimbs)
		srcLimbs := packNibbles(src, mVecLimbs)
		MulAdd(srcLimbs, byte(a), accLimbs, mVecLimbs)

		got := unpackNibbles(accLimbs, m)
		for i := 0; i < m; i++ {
			want := gf16.Mul(src[i], byte(a))
			if got[i] != want {
				t.Fatalf("a=%d lane %d: got %d want %d", a, i, got[i], want)
			}
		}
	}
}

func TestAddIsXor(t *testing.T) {
	src := []uint64{0x123456789abcdef0, 0x0f0f0f0f0f0f0f0f}
	acc := []uint64{0xffffffffffffffff, 0x1111111111111111}
	want0 := src[0] ^ 0xffffffffffffffff
	want1 := src[1] ^ 0x1111111111111111
	Add(src, acc, 2)
	if acc[0] != want0 || acc[1] != want1 {
		t.Fatalf("Add mismatch: got %#x %#x", acc[0], acc[1])
	}
}

func TestMulAddXAndXInvAreInverses(t *testing.T) {
	mVecLimbs := 1
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0}
	srcLimbs := packNibbles(src, mVecLimbs)

	// acc = src*x on a zero acc; then back = acc*x^-1 on a zero back should equal src.
	acc := make([]uint64, mVecLimbs)
	MulAddX(srcLimbs, acc, mVecLimbs)
	back := make([]uint64, mVecLimbs)
	MulAddXInv(acc, back, mVecLimbs)
	got := unpackNibbles(back, 16)
	for i, s := range src {
		want := gf16.Mul(gf16.Mul(s, 2), gf16.Inv(2))
		if got[i] != want {
			t.Fatalf("lane %d: got %d want %d", i, got[i], want)
		}
	}
}

func TestMultiplyBinsMatchesDirectSum(t *testing.T) {
	mVecLimbs := 1
	bins := make([]uint64, 16*mVecLimbs)
	vals := make([]byte, 16)
	for i := 0; i < 16; i++ {
		v := byte((i*7 + 3) & 0xf)
		vals[i] = v
		bins[i] = uint64(v)
	}

	out := make([]uint64, mVecLimbs)
	MultiplyBins(bins, out, mVecLimbs)

	var want byte
	for i := 0; i < 16; i++ {
		want = gf16.Add(want, gf16.Mul(vals[i], byte(i)))
	}
	got := byte(out[0]) & 0xf
	if got != want {
		t.Fatalf("MultiplyBins = %d, want %d", got, want)
	}
}

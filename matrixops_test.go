package mayo

import "testing"

func TestMUpperFoldsOffDiagonal(t *testing.T) {
	// size=2, mVecLimbs=1; input is row-major: [a, b; c, d].
	input := []uint64{0x1, 0x2, 0x3, 0x4}
	output := make([]uint64, 3)
	mUpper(1, input, output, 2)

	if output[0] != 0x1 {
		t.Fatalf("diagonal(0,0): got %#x want %#x", output[0], 0x1)
	}
	if output[1] != (0x2 ^ 0x3) {
		t.Fatalf("off-diagonal(0,1): got %#x want %#x", output[1], 0x2^0x3)
	}
	if output[2] != 0x4 {
		t.Fatalf("diagonal(1,1): got %#x want %#x", output[2], 0x4)
	}
}

func TestMUpperDiagonalOnlyMatrix(t *testing.T) {
	input := []uint64{0xa, 0x0, 0x0, 0xb}
	output := make([]uint64, 3)
	mUpper(1, input, output, 2)

	want := []uint64{0xa, 0x0, 0xb}
	for i := range want {
		if output[i] != want[i] {
			t.Fatalf("index %d: got %#x want %#x", i, output[i], want[i])
		}
	}
}

func TestP1TimesOZeroMatrixIsZero(t *testing.T) {
	p := Mayo1
	p1 := make([]uint64, p.P1Limbs)
	o := make([]byte, p.V*p.O)
	acc := make([]uint64, p.V*p.O*p.MVecLimbs)
	p1TimesO(p, p1, o, acc)

	for i, v := range acc {
		if v != 0 {
			t.Fatalf("acc[%d] = %#x, want 0 for zero P1", i, v)
		}
	}
}

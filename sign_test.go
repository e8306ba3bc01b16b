package mayo

import (
	"math/rand"
	"testing"
)

func TestTranspose16x16NibblesIsSelfInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := make([]uint64, 16)
	for i := range m {
		m[i] = rng.Uint64()
	}
	orig := append([]uint64(nil), m...)

	transpose16x16Nibbles(m)
	transpose16x16Nibbles(m)

	for i := range orig {
		if m[i] != orig[i] {
			t.Fatalf("transpose not self-inverse at limb %d: got %#x want %#x", i, m[i], orig[i])
		}
	}
}

func TestTranspose16x16NibblesMovesDiagonal(t *testing.T) {
	// A single set nibble at (row=0, col=1) should move to (row=1, col=0)
	// after transposing.
	m := make([]uint64, 16)
	m[0] = 0x5 << 4 // row 0, nibble index 1 = 0x5

	transpose16x16Nibbles(m)

	if (m[1] & 0xf) != 0x5 {
		t.Fatalf("expected transposed nibble at limb 1 nibble 0, got limbs=%v", m[:2])
	}
}

func TestDecodePackedNibblesOrder(t *testing.T) {
	input := []byte{0x21, 0x43}
	out := make([]byte, 4)
	decodePackedNibbles(input, out, 4)

	want := []byte{1, 2, 3, 4}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("index %d: got %d want %d", i, out[i], want[i])
		}
	}
}

func TestDecodePackedNibblesTruncatesToLen(t *testing.T) {
	input := []byte{0x21, 0x43}
	out := make([]byte, 3)
	decodePackedNibbles(input, out, 3)

	want := []byte{1, 2, 3}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("index %d: got %d want %d", i, out[i], want[i])
		}
	}
}

package codec

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundtrip(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 16, 17, 39} {
		nibbles := make([]byte, n)
		for i := range nibbles {
			nibbles[i] = byte(i%15) + 1
		}
		packed := make([]byte, (n+1)/2)
		Encode(nibbles, packed, n)

		back := make([]byte, n)
		Decode(packed, back, n)
		if !bytes.Equal(back, nibbles) {
			t.Fatalf("n=%d: decode(encode(x)) != x: got %v want %v", n, back, nibbles)
		}
	}
}

func TestDecodeEncodeRoundtrip(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 16, 17, 39} {
		packed := make([]byte, (n+1)/2)
		for i := range packed {
			packed[i] = byte(i*37 + 11)
		}
		// Mask off the high nibble of the last byte when n is odd so re-encoding is exact.
		if n%2 == 1 && len(packed) > 0 {
			packed[len(packed)-1] &= 0x0f
		}

		nibbles := make([]byte, n)
		Decode(packed, nibbles, n)
		back := make([]byte, (n+1)/2)
		Encode(nibbles, back, n)
		if !bytes.Equal(back, packed) {
			t.Fatalf("n=%d: encode(decode(x)) != x: got %v want %v", n, back, packed)
		}
	}
}

func TestPackUnpackMVecsRoundtrip(t *testing.T) {
	const m = 78 // MAYO_1's m, 5 limbs per vector
	const vecs = 3
	limbs := (m + 15) / 16
	packedSize := m / 2

	packed := make([]byte, vecs*packedSize)
	for i := range packed {
		packed[i] = byte(i*13 + 7)
	}

	unpacked := make([]uint64, vecs*limbs)
	UnpackMVecs(packed, unpacked, vecs, m)

	back := make([]byte, vecs*packedSize)
	PackMVecs(unpacked, back, vecs, m)

	if !bytes.Equal(back, packed) {
		t.Fatalf("pack(unpack(x)) != x")
	}
}

// Package codec converts between the packed byte representation of GF(16)
// vectors (two nibbles per byte, low nibble first) and both the unpacked
// one-nibble-per-byte representation and the bitsliced u64-limb
// representation used by package bitslice.
package codec

// Decode unpacks len nibbles from input (ceil(len/2) bytes, low nibble
// first) into output, one GF(16) element per byte.
func Decode(input, output []byte, length int) {
	outIdx := 0
	i := 0
	for i < length/2 {
		output[outIdx] = input[i] & 0xf
		output[outIdx+1] = input[i] >> 4
		outIdx += 2
		i++
	}
	if length%2 == 1 {
		output[outIdx] = input[i] & 0x0f
	}
}

// Encode packs len GF(16) elements (one per byte in input) into output,
// two nibbles per byte, low nibble first.
func Encode(input, output []byte, length int) {
	inIdx := 0
	i := 0
	for i < length/2 {
		output[i] = input[inIdx] | (input[inIdx+1] << 4)
		inIdx += 2
		i++
	}
	if length%2 == 1 {
		output[i] = input[inIdx]
	}
}

// mVecLimbs returns ceil(m/16).
func mVecLimbs(m int) int {
	return (m + 15) / 16
}

// UnpackMVecs unpacks vecs m-vectors, each held as m/2 packed bytes in
// input, into mVecLimbs(m)*vecs little-endian u64 limbs in output. Safe to
// call with output aliasing an expansion of input since it is processed
// back to front.
func UnpackMVecs(input []byte, output []uint64, vecs, m int) {
	limbs := mVecLimbs(m)
	packedSize := m / 2
	limbBytes := limbs * 8

	tmpBytes := make([]byte, limbBytes)
	for i := vecs - 1; i >= 0; i-- {
		for j := range tmpBytes {
			tmpBytes[j] = 0
		}
		copy(tmpBytes[:packedSize], input[i*packedSize:i*packedSize+packedSize])

		for j := 0; j < limbs; j++ {
			var val uint64
			for b := 0; b < 8; b++ {
				idx := j*8 + b
				if idx < limbBytes {
					val |= uint64(tmpBytes[idx]) << (8 * b)
				}
			}
			output[i*limbs+j] = val
		}
	}
}

// PackMVecs packs vecs m-vectors, each held as mVecLimbs(m) little-endian
// u64 limbs in input, into m/2 packed bytes per vector in output,
// discarding any high padding.
func PackMVecs(input []uint64, output []byte, vecs, m int) {
	limbs := mVecLimbs(m)
	packedSize := m / 2

	for i := 0; i < vecs; i++ {
		src := input[i*limbs : (i+1)*limbs]
		for j := 0; j < packedSize; j++ {
			limbIdx := j / 8
			byteIdx := uint(j % 8)
			output[i*packedSize+j] = byte(src[limbIdx] >> (8 * byteIdx))
		}
	}
}

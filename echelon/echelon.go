// Package echelon computes the constant-time row echelon form used
// inside MAYO signing to solve the linearized oil-and-vinegar system.
//
// Every branch below depends only on public loop indices; secret-dependent
// decisions (which row holds the pivot, whether to overwrite a row, how
// much to eliminate) are all folded through integer bitmasks derived from
// XOR/subtract sign tricks, never through a conditional on secret data.
package echelon

import "github.com/mayo-pq/mayo/bitslice"

// mExtractElement reads a single GF(16) nibble at index from a packed u64
// array.
func mExtractElement(data []uint64, index int) byte {
	leg := index / 16
	offset := uint(index % 16)
	return byte(data[leg]>>(4*offset)) & 0xf
}

// ctCompare64 returns 0 if a==b, all-ones otherwise.
func ctCompare64(a, b int32) uint64 {
	diff := int64(a ^ b)
	return uint64(-diff >> 63)
}

// ct64IsGreaterThan returns all-ones if a>b, else 0.
func ct64IsGreaterThan(a, b int32) uint64 {
	diff := int64(b) - int64(a)
	return uint64(diff >> 63)
}

// CtCompare8 returns 0 if a==b, 0xff otherwise.
func CtCompare8(a, b byte) byte {
	diff := int32(a ^ b)
	return byte(int8(-diff >> 31))
}

// inverseF is duplicated from gf16 to keep the hot path self-contained; it
// is the same a^14 computation.
func inverseF(a byte) byte {
	mul := func(x, y byte) byte {
		var p byte
		p ^= (x & 1) * y
		p ^= (x & 2) * y
		p ^= (x & 4) * y
		p ^= (x & 8) * y
		top := p & 0xf0
		return (p ^ (top >> 4) ^ (top >> 3)) & 0x0f
	}
	a2 := mul(a, a)
	a4 := mul(a2, a2)
	a8 := mul(a4, a4)
	a6 := mul(a2, a4)
	return mul(a8, a6)
}

// efPackMVecSafe packs one row of ncols GF(16) nibbles into output limbs.
func efPackMVecSafe(input []byte, output []uint64, ncols int) {
	for i := range output {
		output[i] = 0
	}
	i := 0
	for i+1 < ncols {
		byteVal := uint64(input[i]) | uint64(input[i+1])<<4
		limbIdx := (i / 2) / 8
		byteIdx := uint((i / 2) % 8)
		output[limbIdx] |= byteVal << (8 * byteIdx)
		i += 2
	}
	if ncols%2 == 1 {
		byteVal := uint64(input[i])
		limbIdx := (i / 2) / 8
		byteIdx := uint((i / 2) % 8)
		output[limbIdx] |= byteVal << (8 * byteIdx)
	}
}

// efUnpackMVecSafe unpacks legs limbs of input into a row of GF(16) nibbles.
func efUnpackMVecSafe(legs int, input []uint64, output []byte) {
	for i := 0; i < legs*16; i += 2 {
		limbIdx := (i / 2) / 8
		byteIdx := uint((i / 2) % 8)
		byteVal := byte(input[limbIdx]>>(8*byteIdx)) & 0xff
		output[i] = byteVal & 0xf
		output[i+1] = byteVal >> 4
	}
}

// EF puts the nrows x ncols GF(16) matrix a (row-major, one byte per
// element) into row echelon form with leading ones, in place, in time
// independent of a's contents. Only the rows below each pivot are
// eliminated; entries above a pivot are left for the caller's back
// substitution. It returns the rank found, which the
// caller may use for tracing; rank deficiency itself is reported by
// inspecting the resulting rows (the last row is all-zero up to its final
// column iff the system was singular).
func EF(a []byte, nrows, ncols int) int {
	rowLen := (ncols + 15) / 16

	packedA := make([]uint64, rowLen*nrows)
	for i := 0; i < nrows; i++ {
		efPackMVecSafe(a[i*ncols:(i+1)*ncols], packedA[i*rowLen:(i+1)*rowLen], ncols)
	}

	pivotRowPacked := make([]uint64, rowLen)
	pivotRow2 := make([]uint64, rowLen)

	var pivotRow int32

	for pivotCol := 0; pivotCol < ncols; pivotCol++ {
		pivotRowLowerBound := max32(0, int32(pivotCol)+int32(nrows)-int32(ncols))
		pivotRowUpperBound := min32(int32(nrows)-1, int32(pivotCol))

		for i := range pivotRowPacked {
			pivotRowPacked[i] = 0
		}
		for i := range pivotRow2 {
			pivotRow2[i] = 0
		}

		var pivot byte
		pivotIsZero := ^uint64(0)

		searchUpper := min32(int32(nrows)-1, pivotRowUpperBound+32)
		for row := pivotRowLowerBound; row <= searchUpper; row++ {
			isPivotRow := ^ctCompare64(row, pivotRow)
			belowPivotRow := ct64IsGreaterThan(row, pivotRow)

			mask := isPivotRow | (belowPivotRow & pivotIsZero)
			for j := 0; j < rowLen; j++ {
				pivotRowPacked[j] ^= mask & packedA[int(row)*rowLen+j]
			}
			pivot = mExtractElement(pivotRowPacked, pivotCol)
			pivotIsZero = ^ctCompare64(int32(pivot), 0)
		}

		inverse := inverseF(pivot)
		bitslice.VecMulAdd(rowLen, pivotRowPacked, inverse, pivotRow2)

		for row := pivotRowLowerBound; row <= pivotRowUpperBound; row++ {
			doCopy := ^ctCompare64(row, pivotRow) & ^pivotIsZero
			doNotCopy := ^doCopy
			for col := 0; col < rowLen; col++ {
				idx := int(row)*rowLen + col
				packedA[idx] = (doNotCopy & packedA[idx]) + (doCopy & pivotRow2[col])
			}
		}

		for row := pivotRowLowerBound; row < int32(nrows); row++ {
			belowPivot := byte(ct64IsGreaterThan(row, pivotRow) & 1)
			eltToElim := mExtractElement(packedA[int(row)*rowLen:(int(row)+1)*rowLen], pivotCol)
			rowSlice := packedA[int(row)*rowLen : (int(row)+1)*rowLen]
			bitslice.VecMulAdd(rowLen, pivotRow2, belowPivot*eltToElim, rowSlice)
		}

		pivotRow += int32(int64(-int64(^pivotIsZero)))
	}

	temp := make([]byte, ncols+16)
	for i := 0; i < nrows; i++ {
		efUnpackMVecSafe(rowLen, packedA[i*rowLen:(i+1)*rowLen], temp)
		copy(a[i*ncols:(i+1)*ncols], temp[:ncols])
	}

	return int(pivotRow)
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

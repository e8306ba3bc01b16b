package mayo

import "github.com/mayo-pq/mayo/bitslice"

// mulAddMUpperTriangularMatXMat multiplies m (possibly upper-triangular)
// bitsliced matrices by a plain byte matrix and accumulates the result.
//
// bsMat holds bitsliced m-vectors in row-major (upper-triangular, if
// triangular) order; mat is bsMatCols x matCols. acc is bsMatRows x
// matCols m-vectors.
func mulAddMUpperTriangularMatXMat(mVecLimbs int, bsMat []uint64, mat []byte, acc []uint64, bsMatRows, bsMatCols, matCols int, triangular bool) {
	used := 0
	for r := 0; r < bsMatRows; r++ {
		cStart := 0
		if triangular {
			cStart = r
		}
		for c := cStart; c < bsMatCols; c++ {
			for k := 0; k < matCols; k++ {
				srcOff := mVecLimbs * used
				dstOff := mVecLimbs * (r*matCols + k)
				scalar := mat[c*matCols+k]
				bitslice.MulAdd(bsMat[srcOff:srcOff+mVecLimbs], scalar, acc[dstOff:dstOff+mVecLimbs], mVecLimbs)
			}
			used++
		}
	}
}

// mulAddMUpperTriangularMatXMatTrans is mulAddMUpperTriangularMatXMat with
// mat's transpose: mat is matRows x bsMatCols.
func mulAddMUpperTriangularMatXMatTrans(mVecLimbs int, bsMat []uint64, mat []byte, acc []uint64, bsMatRows, bsMatCols, matRows int, triangular bool) {
	used := 0
	for r := 0; r < bsMatRows; r++ {
		cStart := 0
		if triangular {
			cStart = r
		}
		for c := cStart; c < bsMatCols; c++ {
			for k := 0; k < matRows; k++ {
				srcOff := mVecLimbs * used
				dstOff := mVecLimbs * (r*matRows + k)
				scalar := mat[k*bsMatCols+c]
				bitslice.MulAdd(bsMat[srcOff:srcOff+mVecLimbs], scalar, acc[dstOff:dstOff+mVecLimbs], mVecLimbs)
			}
			used++
		}
	}
}

// mulAddMatTransXMMat multiplies the transpose of a plain byte matrix
// (matRows x matCols) by m bitsliced matrices (bsMatCols wide) and
// accumulates.
func mulAddMatTransXMMat(mVecLimbs int, mat []byte, bsMat []uint64, acc []uint64, matRows, matCols, bsMatCols int) {
	for r := 0; r < matCols; r++ {
		for c := 0; c < matRows; c++ {
			for k := 0; k < bsMatCols; k++ {
				srcOff := mVecLimbs * (c*bsMatCols + k)
				dstOff := mVecLimbs * (r*bsMatCols + k)
				scalar := mat[c*matCols+r]
				bitslice.MulAdd(bsMat[srcOff:srcOff+mVecLimbs], scalar, acc[dstOff:dstOff+mVecLimbs], mVecLimbs)
			}
		}
	}
}

// mulAddMatXMMat multiplies a plain byte matrix (matRows x matCols) by m
// bitsliced matrices (bsMatCols wide) and accumulates.
func mulAddMatXMMat(mVecLimbs int, mat []byte, bsMat []uint64, acc []uint64, matRows, matCols, bsMatCols int) {
	for r := 0; r < matRows; r++ {
		for c := 0; c < matCols; c++ {
			for k := 0; k < bsMatCols; k++ {
				srcOff := mVecLimbs * (c*bsMatCols + k)
				dstOff := mVecLimbs * (r*bsMatCols + k)
				scalar := mat[r*matCols+c]
				bitslice.MulAdd(bsMat[srcOff:srcOff+mVecLimbs], scalar, acc[dstOff:dstOff+mVecLimbs], mVecLimbs)
			}
		}
	}
}

// p1TimesO computes P1*O (upper-triangular P1 times the oil-basis matrix O).
func p1TimesO(p *Params, p1 []uint64, o []byte, acc []uint64) {
	mulAddMUpperTriangularMatXMat(p.MVecLimbs, p1, o, acc, p.V, p.V, p.O, true)
}

// p1TimesVT computes P1*V^t.
func p1TimesVT(p *Params, p1 []uint64, v []byte, acc []uint64) {
	mulAddMUpperTriangularMatXMatTrans(p.MVecLimbs, p1, v, acc, p.V, p.V, p.K, true)
}

// p1p1tTimesO computes (P1+P1^t)*O and accumulates it onto acc, which
// already holds P2, so that acc becomes L := (P1+P1^t)*O + P2. Diagonal
// entries of P1 contribute nothing (they cancel in P1+P1^t) and are
// skipped.
func p1p1tTimesO(p *Params, p1 []uint64, o []byte, acc []uint64) {
	mVecLimbs := p.MVecLimbs
	paramO := p.O
	paramV := p.V

	used := 0
	for r := 0; r < paramV; r++ {
		for c := r; c < paramV; c++ {
			if c == r {
				used++
				continue
			}
			for k := 0; k < paramO; k++ {
				srcOff := mVecLimbs * used
				dstRC := mVecLimbs * (r*paramO + k)
				bitslice.MulAdd(p1[srcOff:srcOff+mVecLimbs], o[c*paramO+k], acc[dstRC:dstRC+mVecLimbs], mVecLimbs)
				dstCR := mVecLimbs * (c*paramO + k)
				bitslice.MulAdd(p1[srcOff:srcOff+mVecLimbs], o[r*paramO+k], acc[dstCR:dstCR+mVecLimbs], mVecLimbs)
			}
			used++
		}
	}
}

// computeMAndVPV computes the M matrices (V^t*L, written as vl) and
// v^t*P1*v (vp1v) used during signing.
func computeMAndVPV(p *Params, vdec []byte, l, p1 []uint64, vl, vp1v []uint64) {
	mVecLimbs := p.MVecLimbs
	paramK := p.K
	paramV := p.V
	paramO := p.O

	mulAddMatXMMat(mVecLimbs, vdec, l, vl, paramK, paramV, paramO)

	pv := make([]uint64, paramV*paramK*mVecLimbs)
	p1TimesVT(p, p1, vdec, pv)
	mulAddMatXMMat(mVecLimbs, vdec, pv, vp1v, paramK, paramV, paramK)
}

// computeP3 computes P3 := O^t * (P1*O + P2). p2 is mutated in place to
// hold the P1*O+P2 intermediate; callers that need the original P2
// afterward (none do in this module — verification re-expands P2 from the
// seed) must copy it first.
func computeP3(p *Params, p1 []uint64, p2 []uint64, o []byte, p3 []uint64) {
	p1TimesO(p, p1, o, p2)
	mulAddMatTransXMMat(p.MVecLimbs, o, p2, p3, p.V, p.O, p.O)
}

// mUpper folds a size x size square block of m-vectors into its
// size*(size+1)/2 upper-triangular representation: off-diagonal entries
// are summed with their mirror image; diagonal entries are copied as-is.
func mUpper(mVecLimbs int, input, output []uint64, size int) {
	stored := 0
	for r := 0; r < size; r++ {
		for c := r; c < size; c++ {
			dst := output[mVecLimbs*stored : mVecLimbs*(stored+1)]
			srcRC := input[mVecLimbs*(r*size+c) : mVecLimbs*(r*size+c+1)]
			copy(dst, srcRC)
			if r != c {
				srcCRStart := mVecLimbs * (c*size + r)
				for i := 0; i < mVecLimbs; i++ {
					dst[i] ^= input[srcCRStart+i]
				}
			}
			stored++
		}
	}
}

// mCalculatePSAndSPS computes P*S^t (ps) and then S*P*S^t (sps), the
// bilinear form evaluated during verification. Signing does not call it;
// its right-hand side comes from computeMAndVPV's vPv.
func mCalculatePSAndSPS(p *Params, p1, p2, p3 []uint64, s []byte, sps []uint64) {
	m := p.M
	v := p.V
	o := p.O
	k := p.K
	n := p.N
	mVecLimbs := p.MVecLimbs

	ps := make([]uint64, n*k*mVecLimbs)
	accSize := 16 * ((m + 15) / 16) * k * n
	accumulator := make([]uint64, accSize)

	p1Used := 0
	for row := 0; row < v; row++ {
		for j := row; j < v; j++ {
			for col := 0; col < k; col++ {
				binIdx := ((row*k+col)*16 + int(s[col*n+j])) * mVecLimbs
				bitslice.Add(p1[p1Used*mVecLimbs:(p1Used+1)*mVecLimbs], accumulator[binIdx:binIdx+mVecLimbs], mVecLimbs)
			}
			p1Used++
		}
		for j := 0; j < o; j++ {
			for col := 0; col < k; col++ {
				binIdx := ((row*k+col)*16 + int(s[col*n+j+v])) * mVecLimbs
				bitslice.Add(p2[(row*o+j)*mVecLimbs:(row*o+j+1)*mVecLimbs], accumulator[binIdx:binIdx+mVecLimbs], mVecLimbs)
			}
		}
	}

	p3Used := 0
	for row := v; row < n; row++ {
		for j := row; j < n; j++ {
			for col := 0; col < k; col++ {
				binIdx := ((row*k+col)*16 + int(s[col*n+j])) * mVecLimbs
				bitslice.Add(p3[p3Used*mVecLimbs:(p3Used+1)*mVecLimbs], accumulator[binIdx:binIdx+mVecLimbs], mVecLimbs)
			}
			p3Used++
		}
	}

	for idx := 0; idx < n*k; idx++ {
		bitslice.MultiplyBins(accumulator[idx*16*mVecLimbs:], ps[idx*mVecLimbs:(idx+1)*mVecLimbs], mVecLimbs)
	}

	spsAccSize := 16 * ((m + 15) / 16) * k * k
	spsAccumulator := make([]uint64, spsAccSize)

	for row := 0; row < k; row++ {
		for j := 0; j < n; j++ {
			for col := 0; col < k; col++ {
				binIdx := ((row*k+col)*16 + int(s[row*n+j])) * mVecLimbs
				bitslice.Add(ps[(j*k+col)*mVecLimbs:(j*k+col+1)*mVecLimbs], spsAccumulator[binIdx:binIdx+mVecLimbs], mVecLimbs)
			}
		}
	}

	for idx := 0; idx < k*k; idx++ {
		bitslice.MultiplyBins(spsAccumulator[idx*16*mVecLimbs:], sps[idx*mVecLimbs:(idx+1)*mVecLimbs], mVecLimbs)
	}
}

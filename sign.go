package mayo

import (
	"io"
	"os"

	"github.com/mayo-pq/mayo/codec"
	"github.com/mayo-pq/mayo/gf16"
)

// expandSK expands a compact secret key into P1, L = (P1+P1^t)*O + P2
// (stored where P2 was), and O.
func expandSK(p *Params, csk []byte) (pm []uint64, o []byte) {
	seedSk := csk[:p.SkSeedBytes]

	s := make([]byte, p.PkSeedBytes+p.OBytes)
	shake256(s, seedSk)
	seedPk := s[:p.PkSeedBytes]

	o = make([]byte, p.V*p.O)
	codec.Decode(s[p.PkSeedBytes:], o, p.V*p.O)

	pm = expandP1P2(p, seedPk)
	p1 := pm[:p.P1Limbs]
	l := pm[p.P1Limbs:]
	p1p1tTimesO(p, p1, o, l)

	return pm, o
}

// transpose16x16Nibbles transposes a 16x16 matrix of GF(16) nibbles packed
// 16-per-limb across 16 consecutive u64 limbs, in place.
func transpose16x16Nibbles(m []uint64) {
	const evenNibbles uint64 = 0x0f0f0f0f0f0f0f0f
	const evenBytes uint64 = 0x00ff00ff00ff00ff
	const even2Bytes uint64 = 0x0000ffff0000ffff
	const evenHalf uint64 = 0x00000000ffffffff

	for i := 0; i < 16; i += 2 {
		t := ((m[i] >> 4) ^ m[i+1]) & evenNibbles
		m[i] ^= t << 4
		m[i+1] ^= t
	}

	for i := 0; i < 16; i += 4 {
		t0 := ((m[i] >> 8) ^ m[i+2]) & evenBytes
		t1 := ((m[i+1] >> 8) ^ m[i+3]) & evenBytes
		m[i] ^= t0 << 8
		m[i+1] ^= t1 << 8
		m[i+2] ^= t0
		m[i+3] ^= t1
	}

	for i := 0; i < 4; i++ {
		t0 := ((m[i] >> 16) ^ m[i+4]) & even2Bytes
		t1 := ((m[i+8] >> 16) ^ m[i+12]) & even2Bytes
		m[i] ^= t0 << 16
		m[i+8] ^= t1 << 16
		m[i+4] ^= t0
		m[i+12] ^= t1
	}

	for i := 0; i < 8; i++ {
		t := ((m[i] >> 32) ^ m[i+8]) & evenHalf
		m[i] ^= t << 32
		m[i+8] ^= t
	}
}

// computeRHS computes y = t XOR reduce(vPv mod f(X)), folding the k*k
// block of m-vectors vpv down through the degree-m modulus f(X), whose
// low-order coefficients are f_tail, one step at a time.
func computeRHS(p *Params, vpv []uint64, t []byte, y []byte) {
	mVecLimbs := p.MVecLimbs
	paramM := p.M
	paramK := p.K
	fTail := p.FTail

	topPos := uint(((paramM - 1) % 16) * 4)

	if paramM%16 != 0 {
		mask := uint64(1)
		mask <<= uint((paramM % 16) * 4)
		mask--
		for i := 0; i < paramK*paramK; i++ {
			vpv[i*mVecLimbs+mVecLimbs-1] &= mask
		}
	}

	temp := make([]uint64, mVecLimbs)

	for i := paramK - 1; i >= 0; i-- {
		for j := i; j < paramK; j++ {
			top := byte((temp[mVecLimbs-1] >> topPos) % 16)
			temp[mVecLimbs-1] <<= 4
			for k := mVecLimbs - 2; k >= 0; k-- {
				temp[k+1] ^= temp[k] >> 60
				temp[k] <<= 4
			}

			for jj := 0; jj < fTailLen; jj++ {
				product := gf16.Mul(top, fTail[jj])
				limbIdx := (jj / 2) / 8
				byteIdx := uint((jj / 2) % 8)
				if jj%2 == 0 {
					temp[limbIdx] ^= uint64(product) << (byteIdx * 8)
				} else {
					temp[limbIdx] ^= uint64(product) << (byteIdx*8 + 4)
				}
			}

			idxIJ := (i*paramK + j) * mVecLimbs
			idxJI := (j*paramK + i) * mVecLimbs
			for k := 0; k < mVecLimbs; k++ {
				var sym uint64
				if i != j {
					sym = vpv[idxJI+k]
				}
				temp[k] ^= vpv[idxIJ+k] ^ sym
			}
		}
	}

	for i := 0; i < paramM; i += 2 {
		limbIdx := (i / 2) / 8
		byteIdx := uint((i / 2) % 8)
		byteVal := byte((temp[limbIdx] >> (byteIdx * 8)) & 0xff)
		y[i] = t[i] ^ (byteVal & 0xf)
		if i+1 < paramM {
			y[i+1] = t[i+1] ^ (byteVal >> 4)
		}
	}
}

// decodePackedNibbles decodes up to len nibbles from a packed byte slice.
func decodePackedNibbles(input []byte, output []byte, length int) {
	outIdx := 0
	i := 0
	for outIdx < length && i < len(input) {
		output[outIdx] = input[i] & 0xf
		outIdx++
		if outIdx < length {
			output[outIdx] = input[i] >> 4
			outIdx++
		}
		i++
	}
}

// computeA assembles the linearized system matrix A (m rows, a_cols
// columns, byte-per-nibble) from the M matrices (vtl, the V^t*L product),
// via a nibble-packed transposed intermediate reduced mod f(X). This
// mirrors the shift-and-transpose assembly used by the reference
// implementation; the transposed layout's padding to a 16-nibble boundary
// is asserted safe at parameter-construction time (see assertShiftArithmetic).
func computeA(p *Params, vtl []uint64, aOut []byte) {
	mVecLimbs := p.MVecLimbs
	paramM := p.M
	paramO := p.O
	paramK := p.K
	aCols := p.ACols
	fTail := p.FTail
	mOver8 := (paramM + 7) / 8

	aWidth := ((paramO*paramK + 15) / 16) * 16

	bitsToShift := 0
	wordsToShift := 0

	aTotal := aWidth * mOver8
	a := make([]uint64, aTotal)

	if paramM%16 != 0 {
		mask := uint64(1)
		mask <<= uint((paramM % 16) * 4)
		mask--
		for i := 0; i < paramO*paramK; i++ {
			vtl[i*mVecLimbs+mVecLimbs-1] &= mask
		}
	}

	for i := 0; i < paramK; i++ {
		for j := paramK - 1; j >= i; j-- {
			mjBase := j * mVecLimbs * paramO
			for c := 0; c < paramO; c++ {
				for k := 0; k < mVecLimbs; k++ {
					src := vtl[mjBase+k+c*mVecLimbs]
					dstIdx := paramO*i + c + (k+wordsToShift)*aWidth
					if dstIdx < aTotal {
						a[dstIdx] ^= src << uint(bitsToShift)
					}
					if bitsToShift > 0 {
						dstIdx2 := paramO*i + c + (k+wordsToShift+1)*aWidth
						if dstIdx2 < aTotal {
							a[dstIdx2] ^= src >> uint(64-bitsToShift)
						}
					}
				}
			}

			if i != j {
				miBase := i * mVecLimbs * paramO
				for c := 0; c < paramO; c++ {
					for k := 0; k < mVecLimbs; k++ {
						src := vtl[miBase+k+c*mVecLimbs]
						dstIdx := paramO*j + c + (k+wordsToShift)*aWidth
						if dstIdx < aTotal {
							a[dstIdx] ^= src << uint(bitsToShift)
						}
						if bitsToShift > 0 {
							dstIdx2 := paramO*j + c + (k+wordsToShift+1)*aWidth
							if dstIdx2 < aTotal {
								a[dstIdx2] ^= src >> uint(64-bitsToShift)
							}
						}
					}
				}
			}

			bitsToShift += 4
			if bitsToShift == 64 {
				wordsToShift++
				bitsToShift = 0
			}
		}
	}

	totalTranspose := aWidth * ((paramM + (paramK+1)*paramK/2 + 15) / 16)
	for c := 0; c+16 <= len(a) && c < totalTranspose; c += 16 {
		transpose16x16Nibbles(a[c : c+16])
	}

	var tab [fTailLen * 4]byte
	for i := 0; i < fTailLen; i++ {
		tab[4*i] = gf16.Mul(fTail[i], 1)
		tab[4*i+1] = gf16.Mul(fTail[i], 2)
		tab[4*i+2] = gf16.Mul(fTail[i], 4)
		tab[4*i+3] = gf16.Mul(fTail[i], 8)
	}

	const lowBitInNibble uint64 = 0x1111111111111111

	for c := 0; c < aWidth; c += 16 {
		for r := paramM; r < paramM+(paramK+1)*paramK/2; r++ {
			pos := (r/16)*aWidth + c + (r % 16)
			if pos >= len(a) {
				continue
			}
			val := a[pos]
			t0 := val & lowBitInNibble
			t1 := (val >> 1) & lowBitInNibble
			t2 := (val >> 2) & lowBitInNibble
			t3 := (val >> 3) & lowBitInNibble

			for t := 0; t < fTailLen; t++ {
				targetR := r + t - paramM
				targetPos := (targetR/16)*aWidth + c + (targetR % 16)
				if targetPos < len(a) {
					a[targetPos] ^= t0*uint64(tab[4*t]) ^ t1*uint64(tab[4*t+1]) ^ t2*uint64(tab[4*t+2]) ^ t3*uint64(tab[4*t+3])
				}
			}
		}
	}

	for r := 0; r < paramM; r += 16 {
		c := 0
		for c < aCols-1 {
			for i := 0; i < 16; i++ {
				if r+i >= paramM {
					break
				}
				srcPos := r*aWidth/16 + c + i
				decodeLen := 16
				if aCols-1-c < decodeLen {
					decodeLen = aCols - 1 - c
				}
				if srcPos < len(a) {
					var srcBytes [8]byte
					v := a[srcPos]
					for b := 0; b < 8; b++ {
						srcBytes[b] = byte(v >> uint(8*b))
					}
					decodePackedNibbles(srcBytes[:], aOut[(r+i)*aCols+c:], decodeLen)
				}
			}
			c += 16
		}
	}
}

// sign produces a signature over msg under the compact secret key csk,
// retrying with fresh vinegar up to 256 times if the linearized system is
// singular.
func sign(p *Params, csk, msg []byte, rnd io.Reader, sig []byte) error {
	paramM := p.M
	paramN := p.N
	paramO := p.O
	paramK := p.K
	paramV := p.V
	mVecLimbs := p.MVecLimbs

	pm, oMat := expandSK(p, csk)
	seedSk := csk[:p.SkSeedBytes]

	p1 := pm[:p.P1Limbs]
	l := pm[p.P1Limbs:]

	tmp := make([]byte, p.DigestBytes+p.SaltBytes+p.SkSeedBytes+1)
	shake256(tmp[:p.DigestBytes], msg)

	if _, err := io.ReadFull(rnd, tmp[p.DigestBytes:p.DigestBytes+p.SaltBytes]); err != nil {
		return ErrSigning
	}

	salt := make([]byte, p.SaltBytes)
	copy(tmp[p.DigestBytes+p.SaltBytes:p.DigestBytes+p.SaltBytes+p.SkSeedBytes], seedSk)
	shake256(salt, tmp[:p.DigestBytes+p.SaltBytes+p.SkSeedBytes])

	tenc := make([]byte, p.MBytes)
	t := make([]byte, paramM)
	copy(tmp[p.DigestBytes:p.DigestBytes+p.SaltBytes], salt)
	shake256(tenc, tmp[:p.DigestBytes+p.SaltBytes])
	codec.Decode(tenc, t, paramM)

	ctrbyteOffset := p.DigestBytes + p.SaltBytes + p.SkSeedBytes

	x := make([]byte, paramK*paramO)
	s := make([]byte, paramK*paramN)
	vdec := make([]byte, paramV*paramK)

	solved := false
	for ctr := 0; ctr <= 255; ctr++ {
		tmp[ctrbyteOffset] = byte(ctr)
		dbg(os.Stderr, "[sign] %s attempt ctr=%d\n", p.Name, ctr)

		vAndR := make([]byte, paramK*p.VBytes+p.RBytes)
		shake256(vAndR, tmp[:ctrbyteOffset+1])

		for i := 0; i < paramK; i++ {
			codec.Decode(vAndR[i*p.VBytes:], vdec[i*paramV:], paramV)
		}

		mtmp := make([]uint64, paramK*paramO*mVecLimbs)
		vpv := make([]uint64, paramK*paramK*mVecLimbs)
		computeMAndVPV(p, vdec, l, p1, mtmp, vpv)

		y := make([]byte, paramM)
		computeRHS(p, vpv, t, y)

		aRowSize := ((paramM + 7) / 8) * 8
		aMatrix := make([]byte, aRowSize*p.ACols)
		computeA(p, mtmp, aMatrix)

		for i := 0; i < paramM; i++ {
			aMatrix[(1+i)*p.ACols-1] = 0
		}

		r := make([]byte, paramK*paramO+1)
		codec.Decode(vAndR[paramK*p.VBytes:], r, paramK*paramO)

		if sampleSolution(aMatrix, y, r, x, paramK, paramO, paramM, p.ACols) {
			solved = true
			break
		}
	}
	if !solved {
		return ErrSigning
	}

	for i := 0; i < paramK; i++ {
		vi := vdec[i*paramV : (i+1)*paramV]
		xi := x[i*paramO : (i+1)*paramO]
		ox := make([]byte, paramV)
		gf16.MatMul(oMat, xi, ox, paramO, paramV, 1)
		gf16.MatAdd(vi, ox, s[i*paramN:], paramV, 1)
		copy(s[i*paramN+paramV:i*paramN+paramN], x[i*paramO:(i+1)*paramO])
	}

	codec.Encode(s, sig, paramN*paramK)
	copy(sig[p.SigBytes-p.SaltBytes:p.SigBytes], salt)

	return nil
}

package mayo

import (
	"crypto/subtle"

	"github.com/mayo-pq/mayo/codec"
)

// evalPublicMap evaluates the public multivariate map at s, returning the
// result in eval.
func evalPublicMap(p *Params, s []byte, p1, p2, p3 []uint64, eval []byte) {
	sps := make([]uint64, p.K*p.K*p.MVecLimbs)
	mCalculatePSAndSPS(p, p1, p2, p3, s, sps)

	zero := make([]byte, p.M)
	computeRHS(p, sps, zero, eval)
}

// verify reports whether sig is a valid signature over msg under cpk.
func verify(p *Params, msg, sig, cpk []byte) error {
	mVecLimbs := p.MVecLimbs

	pk := expandP1P2(p, cpk[:p.PkSeedBytes])

	p3Vecs := p.P3Limbs / mVecLimbs
	p3 := make([]uint64, p.P3Limbs)
	codec.UnpackMVecs(cpk[p.PkSeedBytes:], p3, p3Vecs, p.M)

	p1 := pk[:p.P1Limbs]
	p2 := pk[p.P1Limbs : p.P1Limbs+p.P2Limbs]

	tmp := make([]byte, p.DigestBytes+p.SaltBytes)
	shake256(tmp[:p.DigestBytes], msg)

	copy(tmp[p.DigestBytes:p.DigestBytes+p.SaltBytes], sig[p.SigBytes-p.SaltBytes:p.SigBytes])
	tenc := make([]byte, p.MBytes)
	shake256(tenc, tmp[:p.DigestBytes+p.SaltBytes])
	t := make([]byte, p.M)
	codec.Decode(tenc, t, p.M)

	s := make([]byte, p.K*p.N)
	codec.Decode(sig, s, p.K*p.N)

	y := make([]byte, 2*p.M)
	evalPublicMap(p, s, p1, p2, p3, y)

	if subtle.ConstantTimeCompare(y[:p.M], t[:p.M]) == 1 {
		return nil
	}
	return ErrVerificationFailed
}

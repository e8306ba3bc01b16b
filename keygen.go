package mayo

import (
	"crypto/rand"
	"io"
	"os"

	"github.com/mayo-pq/mayo/codec"
)

// generateKeypair produces a compact secret key (csk) and compact public
// key (cpk) for the given parameter set, drawing randomness from rnd.
func generateKeypair(p *Params, rnd io.Reader, cpk, csk []byte) error {
	if _, err := io.ReadFull(rnd, csk[:p.SkSeedBytes]); err != nil {
		return ErrKeyGeneration
	}
	return generateKeypairDeterministic(p, csk, cpk)
}

// generateKeypairDeterministic derives cpk from an already-populated csk
// seed, with no randomness of its own. Used both by generateKeypair
// (after drawing the seed) and by deriveCPK (public-key recomputation
// from an existing secret key).
func generateKeypairDeterministic(p *Params, csk, cpk []byte) error {
	mVecLimbs := p.MVecLimbs
	seedSk := csk[:p.SkSeedBytes]

	s := make([]byte, p.PkSeedBytes+p.OBytes)
	shake256(s, seedSk)
	seedPk := s[:p.PkSeedBytes]

	o := make([]byte, p.V*p.O)
	codec.Decode(s[p.PkSeedBytes:], o, p.V*p.O)

	dbg(os.Stderr, "[keygen] %s seed expansion done: pk_seed=%d bytes O=%dx%d\n", p.Name, len(seedPk), p.V, p.O)

	pm := expandP1P2(p, seedPk)
	p1 := pm[:p.P1Limbs]
	p2 := pm[p.P1Limbs:]

	p3 := make([]uint64, p.O*p.O*mVecLimbs)
	computeP3(p, p1, p2, o, p3)

	copy(cpk[:p.PkSeedBytes], seedPk)

	p3Upper := make([]uint64, p.P3Limbs)
	mUpper(mVecLimbs, p3, p3Upper, p.O)
	codec.PackMVecs(p3Upper, cpk[p.PkSeedBytes:], p.P3Limbs/mVecLimbs, p.M)

	return nil
}

// defaultRand is the randomness source GenerateKey and PrivateKey.Sign use
// when they are given a nil reader; callers that want deterministic output
// pass their own reader instead.
var defaultRand = rand.Reader

package mayo

import (
	"crypto/aes"
	"crypto/cipher"

	"golang.org/x/crypto/sha3"

	"github.com/mayo-pq/mayo/codec"
)

// expandP1P2 expands a public-key seed into the bitsliced P1 and P2
// matrices via AES-128-CTR keystream generation followed by nibble
// unpacking. The returned slice holds P1Limbs+P2Limbs u64s, P1 first.
func expandP1P2(p *Params, seedPk []byte) []uint64 {
	totalBytes := p.P1Bytes + p.P2Bytes
	totalLimbs := p.P1Limbs + p.P2Limbs
	numVecs := totalLimbs / p.MVecLimbs

	raw := make([]byte, totalBytes)
	block, err := aes.NewCipher(seedPk[:16])
	if err != nil {
		// seedPk is always exactly 16 bytes of key material; a key-size
		// mismatch here means a parameter set is misconfigured.
		panic("mayo: expandP1P2: " + err.Error())
	}
	var iv [aes.BlockSize]byte
	stream := cipher.NewCTR(block, iv[:])
	stream.XORKeyStream(raw, raw)

	result := make([]uint64, totalLimbs)
	codec.UnpackMVecs(raw, result, numVecs, p.M)
	return result
}

// shake256 writes len(out) bytes of SHAKE256(data...) into out.
func shake256(out []byte, data ...[]byte) {
	h := sha3.NewShake256()
	for _, d := range data {
		h.Write(d)
	}
	h.Read(out)
}

package mayo

import "io"

// PrivateKey is a compact MAYO secret key (a seed, under its parameter
// set). The zero value is not usable; construct one via GenerateKey,
// PrivateKeyFromSeed, or ParsePrivateKey.
type PrivateKey struct {
	params *Params
	bytes  []byte
}

// PublicKey is a compact MAYO public key.
type PublicKey struct {
	params *Params
	bytes  []byte
}

// Signature is a MAYO signature.
type Signature struct {
	params *Params
	bytes  []byte
}

// Params returns the parameter set this key was generated under.
func (sk *PrivateKey) Params() *Params { return sk.params }

// Params returns the parameter set this key was generated under.
func (pk *PublicKey) Params() *Params { return pk.params }

// Params returns the parameter set this signature was produced under.
func (s *Signature) Params() *Params { return s.params }

// Bytes returns the compact secret key encoding. The returned slice
// aliases the key's internal storage; callers must not mutate it.
func (sk *PrivateKey) Bytes() []byte { return sk.bytes }

// Bytes returns the compact public key encoding.
func (pk *PublicKey) Bytes() []byte { return pk.bytes }

// Bytes returns the signature encoding.
func (s *Signature) Bytes() []byte { return s.bytes }

// Zero overwrites the secret key's backing storage with zeros. Call this
// when a private key is no longer needed; Go has no destructor hook to do
// it automatically.
func (sk *PrivateKey) Zero() {
	for i := range sk.bytes {
		sk.bytes[i] = 0
	}
}

// ParsePrivateKey parses a compact secret key encoded under p.
func ParsePrivateKey(p *Params, data []byte) (*PrivateKey, error) {
	if len(data) != p.CSKBytes {
		return nil, invalidKeyLength(p.CSKBytes, len(data))
	}
	b := make([]byte, p.CSKBytes)
	copy(b, data)
	return &PrivateKey{params: p, bytes: b}, nil
}

// ParsePublicKey parses a compact public key encoded under p.
func ParsePublicKey(p *Params, data []byte) (*PublicKey, error) {
	if len(data) != p.CPKBytes {
		return nil, invalidKeyLength(p.CPKBytes, len(data))
	}
	b := make([]byte, p.CPKBytes)
	copy(b, data)
	return &PublicKey{params: p, bytes: b}, nil
}

// ParseSignature parses a signature encoded under p.
func ParseSignature(p *Params, data []byte) (*Signature, error) {
	if len(data) != p.SigBytes {
		return nil, invalidSignatureLength(p.SigBytes, len(data))
	}
	b := make([]byte, p.SigBytes)
	copy(b, data)
	return &Signature{params: p, bytes: b}, nil
}

// GenerateKey generates a fresh keypair for the given parameter set,
// drawing randomness from rnd. If rnd is nil, crypto/rand.Reader is used.
func GenerateKey(p *Params, rnd io.Reader) (*PrivateKey, *PublicKey, error) {
	if rnd == nil {
		rnd = defaultRand
	}
	cpk := make([]byte, p.CPKBytes)
	csk := make([]byte, p.CSKBytes)
	if err := generateKeypair(p, rnd, cpk, csk); err != nil {
		return nil, nil, err
	}
	return &PrivateKey{params: p, bytes: csk}, &PublicKey{params: p, bytes: cpk}, nil
}

// PrivateKeyFromSeed deterministically derives a private key from a
// caller-supplied seed, which must be exactly p.SkSeedBytes long. The
// corresponding public key can be recovered with sk.PublicKey().
func PrivateKeyFromSeed(p *Params, seed []byte) (*PrivateKey, error) {
	if len(seed) != p.SkSeedBytes {
		return nil, invalidSeedLength(p.SkSeedBytes, len(seed))
	}
	csk := make([]byte, p.CSKBytes)
	copy(csk, seed)
	return &PrivateKey{params: p, bytes: csk}, nil
}

// PublicKey derives the public key corresponding to sk.
func (sk *PrivateKey) PublicKey() *PublicKey {
	p := sk.params
	cpk := make([]byte, p.CPKBytes)
	deriveCPK(p, sk.bytes, cpk)
	return &PublicKey{params: p, bytes: cpk}
}

// Sign signs msg, drawing salt randomness from rnd. If rnd is nil,
// crypto/rand.Reader is used. Returns ErrSigning if every one of the 256
// signing attempts hit a singular linear system, which does not happen
// for correctly generated keys.
func (sk *PrivateKey) Sign(rnd io.Reader, msg []byte) (*Signature, error) {
	if rnd == nil {
		rnd = defaultRand
	}
	p := sk.params
	sigBytes := make([]byte, p.SigBytes)
	if err := sign(p, sk.bytes, msg, rnd, sigBytes); err != nil {
		return nil, err
	}
	return &Signature{params: p, bytes: sigBytes}, nil
}

// Verify reports whether sig is a valid signature over msg under pk.
// Returns ErrVerificationFailed on any mismatch; it deliberately carries
// no further detail about why verification failed.
func (pk *PublicKey) Verify(msg []byte, sig *Signature) error {
	if sig.params != pk.params {
		return ErrVerificationFailed
	}
	return verify(pk.params, msg, sig.bytes, pk.bytes)
}

// deriveCPK recomputes a compact public key from a compact secret key,
// without touching or requiring fresh randomness.
func deriveCPK(p *Params, csk, cpk []byte) {
	generateKeypairDeterministic(p, csk, cpk)
}

// Package mayopkcs8 wraps MAYO keys in minimal PKCS#8 PrivateKeyInfo and
// X.509 SubjectPublicKeyInfo DER envelopes.
//
// MAYO has not been standardized by NIST, so there is no assigned OID
// arc for it. This package reuses the experimental arc the Open Quantum
// Safe project uses for pre-standardization PQC algorithms, 1.3.9999.8,
// appending the NIST level and a fixed ".3" suffix per variant. These
// identifiers are not interoperable with any other MAYO implementation
// that picks different experimental OIDs; they exist so MAYO keys can
// round-trip through PKCS#8/SPKI-shaped tooling, not for interop.
package mayopkcs8

import (
	"encoding/asn1"
	"fmt"

	"github.com/mayo-pq/mayo"
)

// OID returns the experimental object identifier for p's variant.
func OID(p *mayo.Params) (asn1.ObjectIdentifier, error) {
	level, err := nistLevel(p)
	if err != nil {
		return nil, err
	}
	return asn1.ObjectIdentifier{1, 3, 9999, 8, level, 3}, nil
}

func nistLevel(p *mayo.Params) (int, error) {
	switch p {
	case mayo.Mayo1:
		return 1, nil
	case mayo.Mayo2:
		return 2, nil
	case mayo.Mayo3:
		return 3, nil
	case mayo.Mayo5:
		return 5, nil
	default:
		return 0, fmt.Errorf("mayopkcs8: unrecognized parameter set %q", p.Name)
	}
}

func paramsForLevel(level int) (*mayo.Params, error) {
	switch level {
	case 1:
		return mayo.Mayo1, nil
	case 2:
		return mayo.Mayo2, nil
	case 3:
		return mayo.Mayo3, nil
	case 5:
		return mayo.Mayo5, nil
	default:
		return nil, fmt.Errorf("mayopkcs8: unrecognized NIST level %d", level)
	}
}

// algorithmIdentifier mirrors the ASN.1 AlgorithmIdentifier SEQUENCE:
// algorithm OBJECT IDENTIFIER, parameters ANY OPTIONAL (always absent
// here).
type algorithmIdentifier struct {
	Algorithm asn1.ObjectIdentifier
}

// privateKeyInfo mirrors RFC 5958's OneAsymmetricKey/PKCS#8
// PrivateKeyInfo, minus the (unused) optional attributes field:
//
//	PrivateKeyInfo ::= SEQUENCE {
//	  version                   INTEGER,
//	  privateKeyAlgorithm       AlgorithmIdentifier,
//	  privateKey                OCTET STRING }
type privateKeyInfo struct {
	Version    int
	Algorithm  algorithmIdentifier
	PrivateKey []byte
}

// subjectPublicKeyInfo mirrors X.509's SubjectPublicKeyInfo:
//
//	SubjectPublicKeyInfo ::= SEQUENCE {
//	  algorithm         AlgorithmIdentifier,
//	  subjectPublicKey  BIT STRING }
type subjectPublicKeyInfo struct {
	Algorithm        algorithmIdentifier
	SubjectPublicKey asn1.BitString
}

// MarshalPrivateKey DER-encodes sk as a PKCS#8 PrivateKeyInfo, carrying
// the compact secret key bytes directly as the OCTET STRING payload (no
// further ASN.1 structure inside it, matching the compact-byte-seed
// nature of a MAYO secret key).
func MarshalPrivateKey(sk *mayo.PrivateKey) ([]byte, error) {
	oid, err := OID(sk.Params())
	if err != nil {
		return nil, err
	}
	return asn1.Marshal(privateKeyInfo{
		Version:    0,
		Algorithm:  algorithmIdentifier{Algorithm: oid},
		PrivateKey: sk.Bytes(),
	})
}

// ParsePrivateKey decodes a PKCS#8 PrivateKeyInfo produced by
// MarshalPrivateKey back into a *mayo.PrivateKey.
func ParsePrivateKey(der []byte) (*mayo.PrivateKey, error) {
	var info privateKeyInfo
	if _, err := asn1.Unmarshal(der, &info); err != nil {
		return nil, fmt.Errorf("mayopkcs8: parsing PrivateKeyInfo: %w", err)
	}
	level, err := levelFromOID(info.Algorithm.Algorithm)
	if err != nil {
		return nil, err
	}
	p, err := paramsForLevel(level)
	if err != nil {
		return nil, err
	}
	return mayo.ParsePrivateKey(p, info.PrivateKey)
}

// MarshalPublicKey DER-encodes pk as an X.509 SubjectPublicKeyInfo.
func MarshalPublicKey(pk *mayo.PublicKey) ([]byte, error) {
	oid, err := OID(pk.Params())
	if err != nil {
		return nil, err
	}
	return asn1.Marshal(subjectPublicKeyInfo{
		Algorithm: algorithmIdentifier{Algorithm: oid},
		SubjectPublicKey: asn1.BitString{
			Bytes:     pk.Bytes(),
			BitLength: len(pk.Bytes()) * 8,
		},
	})
}

// ParsePublicKey decodes a SubjectPublicKeyInfo produced by
// MarshalPublicKey back into a *mayo.PublicKey.
func ParsePublicKey(der []byte) (*mayo.PublicKey, error) {
	var info subjectPublicKeyInfo
	if _, err := asn1.Unmarshal(der, &info); err != nil {
		return nil, fmt.Errorf("mayopkcs8: parsing SubjectPublicKeyInfo: %w", err)
	}
	level, err := levelFromOID(info.Algorithm.Algorithm)
	if err != nil {
		return nil, err
	}
	p, err := paramsForLevel(level)
	if err != nil {
		return nil, err
	}
	return mayo.ParsePublicKey(p, info.SubjectPublicKey.Bytes)
}

func levelFromOID(oid asn1.ObjectIdentifier) (int, error) {
	want := asn1.ObjectIdentifier{1, 3, 9999, 8}
	if len(oid) != 6 || !oid[:4].Equal(want) || oid[5] != 3 {
		return 0, fmt.Errorf("mayopkcs8: OID %s is not a MAYO algorithm identifier", oid)
	}
	return oid[4], nil
}

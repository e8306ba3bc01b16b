package mayopkcs8

import (
	"bytes"
	"encoding/asn1"
	"testing"

	"github.com/mayo-pq/mayo"
)

func TestPrivateKeyRoundtrip(t *testing.T) {
	sk, _, err := mayo.GenerateKey(mayo.Mayo1, nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	der, err := MarshalPrivateKey(sk)
	if err != nil {
		t.Fatalf("MarshalPrivateKey: %v", err)
	}
	got, err := ParsePrivateKey(der)
	if err != nil {
		t.Fatalf("ParsePrivateKey: %v", err)
	}
	if !bytes.Equal(got.Bytes(), sk.Bytes()) {
		t.Fatalf("roundtripped private key bytes differ")
	}
	if got.Params() != mayo.Mayo1 {
		t.Fatalf("roundtripped private key has wrong parameter set: %s", got.Params().Name)
	}
}

func TestPublicKeyRoundtrip(t *testing.T) {
	_, pk, err := mayo.GenerateKey(mayo.Mayo2, nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	der, err := MarshalPublicKey(pk)
	if err != nil {
		t.Fatalf("MarshalPublicKey: %v", err)
	}
	got, err := ParsePublicKey(der)
	if err != nil {
		t.Fatalf("ParsePublicKey: %v", err)
	}
	if !bytes.Equal(got.Bytes(), pk.Bytes()) {
		t.Fatalf("roundtripped public key bytes differ")
	}
	if got.Params() != mayo.Mayo2 {
		t.Fatalf("roundtripped public key has wrong parameter set: %s", got.Params().Name)
	}
}

func TestParsePrivateKeyRejectsForeignOID(t *testing.T) {
	sk, _, err := mayo.GenerateKey(mayo.Mayo1, nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	// RSA's OID: well-formed PrivateKeyInfo, but not a MAYO algorithm
	// identifier, so it must be rejected by levelFromOID's prefix check
	// rather than by asn1.Unmarshal.
	der, err := asn1.Marshal(privateKeyInfo{
		Version:    0,
		Algorithm:  algorithmIdentifier{Algorithm: asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}},
		PrivateKey: sk.Bytes(),
	})
	if err != nil {
		t.Fatalf("asn1.Marshal: %v", err)
	}

	if _, err := ParsePrivateKey(der); err == nil {
		t.Fatal("expected an error parsing a PrivateKeyInfo with a foreign OID")
	}
}

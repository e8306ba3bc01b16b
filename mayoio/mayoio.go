// Package mayoio persists MAYO parameter selections, keys, and signatures
// as JSON documents, the way ntru/io stores the NTRU system parameters
// this module was adapted from.
package mayoio

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mayo-pq/mayo"
)

// VariantName identifies one of the four MAYO parameter sets by name, as
// it would appear in a JSON document ("MAYO_1".."MAYO_5").
type VariantName string

// ParamsByName resolves a variant name to its *mayo.Params, searching
// mayo.Variants; an unknown name is an error.
func ParamsByName(name VariantName) (*mayo.Params, error) {
	for _, p := range mayo.Variants {
		if p.Name == string(name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("mayoio: unknown parameter set %q", name)
}

// KeyDocument is the on-disk JSON encoding of a MAYO keypair half (either
// a private or public key), hex-encoding the raw bytes the way the
// NTRU-era private_key.json/public_key.json format does.
type KeyDocument struct {
	Variant VariantName `json:"variant"`
	Bytes   string      `json:"bytes"`
}

// SignatureDocument is the on-disk JSON encoding of a MAYO signature.
type SignatureDocument struct {
	Variant VariantName `json:"variant"`
	Message string      `json:"message,omitempty"`
	Bytes   string      `json:"bytes"`
}

// SavePrivateKey writes sk to path as a KeyDocument.
func SavePrivateKey(path string, sk *mayo.PrivateKey) error {
	doc := KeyDocument{
		Variant: VariantName(sk.Params().Name),
		Bytes:   hex.EncodeToString(sk.Bytes()),
	}
	return writeJSON(path, &doc)
}

// LoadPrivateKey reads a KeyDocument from path and parses it under its
// named parameter set.
func LoadPrivateKey(path string) (*mayo.PrivateKey, error) {
	var doc KeyDocument
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	p, err := ParamsByName(doc.Variant)
	if err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(doc.Bytes)
	if err != nil {
		return nil, fmt.Errorf("mayoio: decoding private key hex: %w", err)
	}
	return mayo.ParsePrivateKey(p, raw)
}

// SavePublicKey writes pk to path as a KeyDocument.
func SavePublicKey(path string, pk *mayo.PublicKey) error {
	doc := KeyDocument{
		Variant: VariantName(pk.Params().Name),
		Bytes:   hex.EncodeToString(pk.Bytes()),
	}
	return writeJSON(path, &doc)
}

// LoadPublicKey reads a KeyDocument from path and parses it under its
// named parameter set.
func LoadPublicKey(path string) (*mayo.PublicKey, error) {
	var doc KeyDocument
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	p, err := ParamsByName(doc.Variant)
	if err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(doc.Bytes)
	if err != nil {
		return nil, fmt.Errorf("mayoio: decoding public key hex: %w", err)
	}
	return mayo.ParsePublicKey(p, raw)
}

// SaveSignature writes sig (and, if non-empty, the signed message) to
// path as a SignatureDocument.
func SaveSignature(path string, sig *mayo.Signature, message []byte) error {
	doc := SignatureDocument{
		Variant: VariantName(sig.Params().Name),
		Bytes:   hex.EncodeToString(sig.Bytes()),
	}
	if len(message) > 0 {
		doc.Message = hex.EncodeToString(message)
	}
	return writeJSON(path, &doc)
}

// LoadSignature reads a SignatureDocument from path and parses it under
// its named parameter set, returning the signature and the recorded
// message bytes (nil if none were saved).
func LoadSignature(path string) (*mayo.Signature, []byte, error) {
	var doc SignatureDocument
	if err := readJSON(path, &doc); err != nil {
		return nil, nil, err
	}
	p, err := ParamsByName(doc.Variant)
	if err != nil {
		return nil, nil, err
	}
	raw, err := hex.DecodeString(doc.Bytes)
	if err != nil {
		return nil, nil, fmt.Errorf("mayoio: decoding signature hex: %w", err)
	}
	sig, err := mayo.ParseSignature(p, raw)
	if err != nil {
		return nil, nil, err
	}
	var msg []byte
	if doc.Message != "" {
		msg, err = hex.DecodeString(doc.Message)
		if err != nil {
			return nil, nil, fmt.Errorf("mayoio: decoding message hex: %w", err)
		}
	}
	return sig, msg, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Command mayocli is a thin command-line front end for the MAYO
// signature scheme: generate a keypair, sign a message, and verify a
// signature, persisting state as JSON documents under ./mayo_keys/.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mayo-pq/mayo"
	"github.com/mayo-pq/mayo/mayoio"
)

const keysDir = "mayo_keys"

func usage() {
	fmt.Println(`usage: mayocli <gen|sign|verify> [options]

Subcommands:
  gen      Generate a MAYO keypair and write ./mayo_keys/{private,public}.json
           Flags:
             -variant  <MAYO_1|MAYO_2|MAYO_3|MAYO_5>  parameter set (default: MAYO_1)

  sign     Sign a message and write ./mayo_keys/signature.json
           Flags:
             -m  <string>  message to sign (required)

  verify   Verify ./mayo_keys/signature.json against ./mayo_keys/public.json`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "gen":
		runGen(os.Args[2:])
	case "sign":
		runSign(os.Args[2:])
	case "verify":
		runVerify()
	default:
		usage()
	}
}

func runGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	variant := fs.String("variant", "MAYO_1", "parameter set: MAYO_1|MAYO_2|MAYO_3|MAYO_5")
	fs.Parse(args)

	p, err := mayoio.ParamsByName(mayoio.VariantName(*variant))
	if err != nil {
		fmt.Fprintln(os.Stderr, "mayocli:", err)
		os.Exit(1)
	}

	sk, pk, err := mayo.GenerateKey(p, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mayocli: key generation failed:", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(keysDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "mayocli:", err)
		os.Exit(1)
	}
	if err := mayoio.SavePrivateKey(filepath.Join(keysDir, "private.json"), sk); err != nil {
		fmt.Fprintln(os.Stderr, "mayocli: writing private key:", err)
		os.Exit(1)
	}
	if err := mayoio.SavePublicKey(filepath.Join(keysDir, "public.json"), pk); err != nil {
		fmt.Fprintln(os.Stderr, "mayocli: writing public key:", err)
		os.Exit(1)
	}

	fmt.Printf("generated %s keypair: csk=%d bytes cpk=%d bytes\n", p.Name, len(sk.Bytes()), len(pk.Bytes()))
}

func runSign(args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	msg := fs.String("m", "", "message to sign (required)")
	fs.Parse(args)
	if *msg == "" {
		fmt.Fprintln(os.Stderr, "mayocli: -m is required")
		os.Exit(1)
	}

	sk, err := mayoio.LoadPrivateKey(filepath.Join(keysDir, "private.json"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "mayocli: loading private key:", err)
		os.Exit(1)
	}

	sig, err := sk.Sign(nil, []byte(*msg))
	if err != nil {
		fmt.Fprintln(os.Stderr, "mayocli: signing failed:", err)
		os.Exit(1)
	}

	if err := mayoio.SaveSignature(filepath.Join(keysDir, "signature.json"), sig, []byte(*msg)); err != nil {
		fmt.Fprintln(os.Stderr, "mayocli: writing signature:", err)
		os.Exit(1)
	}

	fmt.Printf("signed %q: signature=%d bytes\n", *msg, len(sig.Bytes()))
}

func runVerify() {
	pk, err := mayoio.LoadPublicKey(filepath.Join(keysDir, "public.json"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "mayocli: loading public key:", err)
		os.Exit(1)
	}
	sig, msg, err := mayoio.LoadSignature(filepath.Join(keysDir, "signature.json"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "mayocli: loading signature:", err)
		os.Exit(1)
	}
	if msg == nil {
		fmt.Fprintln(os.Stderr, "mayocli: signature.json has no recorded message to verify against")
		os.Exit(1)
	}

	if err := pk.Verify(msg, sig); err != nil {
		fmt.Println("INVALID:", err)
		os.Exit(1)
	}
	fmt.Println("VALID")
}

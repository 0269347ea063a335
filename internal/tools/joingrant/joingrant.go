// Package joingrant generates the ed25519 key pair backing invite join
// grants.
package joingrant

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/louisbranch/hextable/internal/table/invite"
)

// KeyPair is a freshly generated join grant signing key pair.
type KeyPair struct {
	Public  ed25519.PublicKey
	Private ed25519.PrivateKey
}

// Generate creates a key pair from reader, defaulting to crypto/rand.
func Generate(reader io.Reader) (KeyPair, error) {
	if reader == nil {
		reader = rand.Reader
	}
	publicKey, privateKey, err := ed25519.GenerateKey(reader)
	if err != nil {
		return KeyPair{}, fmt.Errorf("generate join grant key: %w", err)
	}
	return KeyPair{Public: publicKey, Private: privateKey}, nil
}

// WriteExports writes the pair as shell exports for the grant signing and
// verification env keys.
func (kp KeyPair) WriteExports(out io.Writer) error {
	exports := []struct {
		env string
		key []byte
	}{
		{env: invite.EnvPrivateKey, key: kp.Private},
		{env: invite.EnvPublicKey, key: kp.Public},
	}
	for _, e := range exports {
		if _, err := fmt.Fprintf(out, "export %s=%s\n", e.env, base64.RawStdEncoding.EncodeToString(e.key)); err != nil {
			return err
		}
	}
	return nil
}

// Run generates a key pair and writes it to out.
func Run(out io.Writer, reader io.Reader) error {
	if out == nil {
		return errors.New("output is required")
	}
	pair, err := Generate(reader)
	if err != nil {
		return err
	}
	return pair.WriteExports(out)
}

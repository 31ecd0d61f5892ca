// Package keypair loads ed25519 secret keys from the on-disk forms the
// Solana tooling produces.
//
// Accepted forms:
//   - solana-keygen JSON: a 64-element array of byte values
//   - web3.js bundle: {"_keypair": {"secretKey": {"0": n, "1": n, ...}}}
//   - a base58 string, as exported by browser wallets
package keypair

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"gifportal/internal/jsonutil"
)

// ErrInvalidKey is returned when the decoded bytes are not a valid ed25519
// secret key (wrong length, or public half does not match the seed).
var ErrInvalidKey = errors.New("invalid ed25519 secret key")

// bundle is the JSON shape of a web3.js Keypair serialized with JSON.stringify.
type bundle struct {
	Keypair struct {
		SecretKey map[string]int `json:"secretKey"`
	} `json:"_keypair"`
	SecretKey map[string]int `json:"secretKey"`
}

// Load reads and parses the key file at path.
func Load(path string) (solana.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keypair %s: %w", path, err)
	}
	key, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("keypair %s: %w", path, err)
	}
	return key, nil
}

// Parse decodes a secret key in any of the accepted forms.
func Parse(data []byte) (solana.PrivateKey, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidKey)
	}

	var raw []byte
	var err error
	switch trimmed[0] {
	case '[':
		raw, err = jsonutil.ByteArray(trimmed, "keypair array")
	case '{':
		raw, err = parseBundle(trimmed)
	default:
		raw, err = base58.Decode(strings.Trim(string(trimmed), `"`))
		if err != nil {
			err = fmt.Errorf("keypair base58: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}
	if err := validate(raw); err != nil {
		return nil, err
	}
	return solana.PrivateKey(raw), nil
}

func parseBundle(data []byte) ([]byte, error) {
	var b bundle
	if err := jsonutil.UnmarshalWithContext(data, &b, "keypair bundle"); err != nil {
		return nil, err
	}
	secret := b.Keypair.SecretKey
	if len(secret) == 0 {
		secret = b.SecretKey
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: bundle has no secretKey", ErrInvalidKey)
	}
	return jsonutil.IndexedByteObject(secret, "keypair bundle secretKey")
}

func validate(raw []byte) error {
	if len(raw) != ed25519.PrivateKeySize {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKey, ed25519.PrivateKeySize, len(raw))
	}
	derived := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
		return fmt.Errorf("%w: public key does not match seed", ErrInvalidKey)
	}
	return nil
}

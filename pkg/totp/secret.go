package totp

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/jeremyhahn/go-totp/pkg/codec"
)

// SecretSize is the number of random bytes in a generated secret (160 bits,
// the RFC 4226 recommended length).
const SecretSize = 20

// GenerateSecret returns a new shared secret drawn from crypto/rand, encoded
// as upper case unpadded Base32.
func GenerateSecret() (string, error) {
	return GenerateSecretFrom(rand.Reader)
}

// GenerateSecretFrom is GenerateSecret with a caller supplied entropy source.
// r must be a cryptographically secure random source.
func GenerateSecretFrom(r io.Reader) (string, error) {
	b := make([]byte, SecretSize)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", fmt.Errorf("totp: failed to generate random secret: %w", err)
	}
	return codec.EncodeBase32(b), nil
}

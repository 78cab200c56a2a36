package totp

import (
	"crypto"
	"crypto/hmac"
	_ "crypto/sha1" // registers crypto.SHA1
	_ "crypto/sha256"
	_ "crypto/sha512"
	"fmt"
	"strings"
)

// Algorithm names the hash function used for the HMAC computation.
type Algorithm string

const (
	// AlgorithmSHA1 is HMAC-SHA1, the RFC 4226 default and the only
	// algorithm every authenticator app supports.
	AlgorithmSHA1 Algorithm = "SHA1"
	// AlgorithmSHA256 is HMAC-SHA256.
	AlgorithmSHA256 Algorithm = "SHA256"
	// AlgorithmSHA512 is HMAC-SHA512.
	AlgorithmSHA512 Algorithm = "SHA512"
)

// ParseAlgorithm converts a configuration string into an Algorithm. Matching
// is case-insensitive and accepts the "HmacSHA1" style names as well.
func ParseAlgorithm(s string) (Algorithm, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "HMAC")
	name = strings.ReplaceAll(name, "-", "")
	switch Algorithm(name) {
	case AlgorithmSHA1, AlgorithmSHA256, AlgorithmSHA512:
		return Algorithm(name), nil
	}
	return "", fmt.Errorf("%w: unknown algorithm %q", ErrCryptoUnavailable, s)
}

// String returns the canonical algorithm name.
func (a Algorithm) String() string {
	return string(a)
}

// Size returns the digest length in bytes, or 0 for an unknown algorithm.
func (a Algorithm) Size() int {
	h, ok := a.hash()
	if !ok {
		return 0
	}
	return h.Size()
}

// Available reports whether the algorithm is known and linked into the binary.
func (a Algorithm) Available() bool {
	h, ok := a.hash()
	return ok && h.Available()
}

func (a Algorithm) hash() (crypto.Hash, bool) {
	switch a {
	case AlgorithmSHA1:
		return crypto.SHA1, true
	case AlgorithmSHA256:
		return crypto.SHA256, true
	case AlgorithmSHA512:
		return crypto.SHA512, true
	}
	return 0, false
}

// Compute returns HMAC(key, message) using the given algorithm. The key may
// have any length; no stretching or derivation is applied.
//
// An unknown or unavailable algorithm is a configuration error and wraps
// ErrCryptoUnavailable. Config.Validate reports the same condition up front.
func Compute(key, message []byte, alg Algorithm) ([]byte, error) {
	h, ok := alg.hash()
	if !ok || !h.Available() {
		return nil, fmt.Errorf("%w: %q", ErrCryptoUnavailable, string(alg))
	}
	mac := hmac.New(h.New, key)
	mac.Write(message)
	return mac.Sum(nil), nil
}

package totp

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"time"

	"github.com/jeremyhahn/go-totp/pkg/codec"
)

// Counter returns floor(unix(at) / step). Instants before the Unix epoch
// return ErrInvalidTime.
func Counter(at time.Time, step time.Duration) (uint64, error) {
	secs := int64(step / time.Second)
	if secs <= 0 {
		return 0, fmt.Errorf("%w: step must be at least one second, got %s", ErrInvalidConfig, step)
	}
	unix := at.Unix()
	if unix < 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTime, at.UTC().Format(time.RFC3339))
	}
	return uint64(unix / secs), nil
}

// GenerateCode returns the one-time code for secret at the given instant.
//
// The secret is Base32 text and is normalized before decoding. The result is
// exactly cfg.Digits decimal characters, left-padded with zeros. Identical
// inputs always produce the identical code.
func GenerateCode(secret string, at time.Time, cfg Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	key, err := decodeKey(secret)
	if err != nil {
		return "", err
	}
	counter, err := Counter(at, cfg.Step)
	if err != nil {
		return "", err
	}
	return hotp(key, counter, cfg)
}

// decodeKey decodes a Base32 secret. A secret that decodes to no bytes, such
// as "" or only whitespace, is rejected with ErrDecode.
func decodeKey(secret string) ([]byte, error) {
	key, err := codec.DecodeBase32(secret)
	if err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty secret", ErrDecode)
	}
	return key, nil
}

// hotp is the RFC 4226 value for key and counter, formatted to cfg.Digits.
// cfg must already be validated.
func hotp(key []byte, counter uint64, cfg Config) (string, error) {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	digest, err := Compute(key, msg[:], cfg.Algorithm)
	if err != nil {
		return "", err
	}
	return format(truncate(digest)%powers10[cfg.Digits], cfg.Digits), nil
}

// truncate implements RFC 4226 dynamic truncation: the low nibble of the last
// byte selects four bytes, read big-endian with the top bit cleared.
func truncate(digest []byte) uint32 {
	offset := digest[len(digest)-1] & 0x0f
	return binary.BigEndian.Uint32(digest[offset:offset+4]) & 0x7fffffff
}

// format renders v in decimal, left-padded with '0' to digits characters.
func format(v uint32, digits uint) string {
	var buf [MaxDigits]byte
	s := strconv.AppendUint(buf[:0], uint64(v), 10)
	out := make([]byte, digits)
	pad := int(digits) - len(s)
	for i := 0; i < pad; i++ {
		out[i] = '0'
	}
	copy(out[pad:], s)
	return string(out)
}

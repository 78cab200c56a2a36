package codec

import (
	"encoding/base32"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrDecode indicates the input is not valid Base32 or hexadecimal text.
var ErrDecode = errors.New("codec: decode error")

var base32NoPad = base32.StdEncoding.WithPadding(base32.NoPadding)

// Normalize removes all whitespace from s and converts it to upper case.
// Authenticator apps commonly display secrets in space-separated groups of
// four lowercase characters; both forms decode to the same key.
func Normalize(s string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}

// EncodeBase32 encodes b with the standard RFC 4648 alphabet, upper case,
// without padding.
func EncodeBase32(b []byte) string {
	return base32NoPad.EncodeToString(b)
}

// DecodeBase32 normalizes s and decodes it as unpadded standard Base32.
// Trailing '=' padding is tolerated and ignored.
func DecodeBase32(s string) ([]byte, error) {
	clean := strings.TrimRight(Normalize(s), "=")
	// 1, 3 and 6 trailing characters cannot carry a whole byte (RFC 4648 section 6)
	switch len(clean) % 8 {
	case 1, 3, 6:
		return nil, fmt.Errorf("%w: invalid base32 length %d", ErrDecode, len(clean))
	}
	b, err := base32NoPad.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base32: %v", ErrDecode, err)
	}
	return b, nil
}

// EncodeHex encodes b as upper case hexadecimal.
func EncodeHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// DecodeHex normalizes s and decodes it as hexadecimal.
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(Normalize(s))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hex: %v", ErrDecode, err)
	}
	return b, nil
}

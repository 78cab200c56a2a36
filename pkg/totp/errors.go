package totp

import (
	"errors"

	"github.com/jeremyhahn/go-totp/pkg/codec"
)

var (
	// ErrCryptoUnavailable indicates the requested digest algorithm is unknown
	// or not supported by the runtime. It is a configuration error and should
	// stop the application at startup rather than fail individual requests.
	ErrCryptoUnavailable = errors.New("totp: crypto unavailable")
	// ErrInvalidConfig indicates an algorithm configuration outside the
	// supported range (non-positive step, digits outside 1..9).
	ErrInvalidConfig = errors.New("totp: invalid configuration")
	// ErrInvalidTime indicates an instant before the Unix epoch, which has no
	// unsigned time counter.
	ErrInvalidTime = errors.New("totp: time before unix epoch")
	// ErrDecode is returned, wrapped, when a secret is not valid Base32.
	// It is the same value as codec.ErrDecode.
	ErrDecode = codec.ErrDecode
)

package totp

import (
	"crypto/subtle"
	"time"
)

// Verify reports whether candidate matches the code for secret at any counter
// within cfg.Window steps of at.
//
// A wrong code, a code outside the window and a malformed candidate all
// return (false, nil); callers cannot tell them apart. An error is returned
// only for an invalid cfg, an empty or non-Base32 secret, or an instant before
// the Unix epoch.
func Verify(secret, candidate string, at time.Time, cfg Config) (bool, error) {
	if err := cfg.Validate(); err != nil {
		return false, err
	}
	key, err := decodeKey(secret)
	if err != nil {
		return false, err
	}
	counter, err := Counter(at, cfg.Step)
	if err != nil {
		return false, err
	}
	if !ValidCandidate(candidate, cfg.Digits) {
		return false, nil
	}

	want := []byte(candidate)
	for _, c := range window(counter, cfg.Window) {
		code, err := hotp(key, c, cfg)
		if err != nil {
			return false, err
		}
		if subtle.ConstantTimeCompare([]byte(code), want) == 1 {
			return true, nil
		}
	}
	return false, nil
}

// ValidCandidate reports whether s is exactly digits ASCII decimal digits.
func ValidCandidate(s string, digits uint) bool {
	if uint(len(s)) != digits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// window lists counter, counter-1, counter+1, ... out to size steps on each
// side. Counters below zero or past the uint64 range are left out.
func window(counter uint64, size uint) []uint64 {
	out := make([]uint64, 1, 2*size+1)
	out[0] = counter
	for i := uint64(1); i <= uint64(size); i++ {
		if counter >= i {
			out = append(out, counter-i)
		}
		if counter+i > counter {
			out = append(out, counter+i)
		}
	}
	return out
}

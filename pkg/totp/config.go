package totp

import (
	"fmt"
	"time"
)

const (
	// DefaultStep is the RFC 6238 recommended time step.
	DefaultStep = 30 * time.Second
	// MaxStep is the longest accepted time step.
	MaxStep = 24 * time.Hour
	// DefaultDigits is the code length used by common authenticator apps.
	DefaultDigits = 6
	// MaxDigits is the longest code the 31-bit truncated value can fill.
	MaxDigits = 9
	// MaxWindow bounds the verification window. Ten steps on each side is
	// already five minutes of drift at the default step.
	MaxWindow = 10
)

// powers10[d] is the truncation modulus for a d digit code.
var powers10 = [MaxDigits + 1]uint32{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000,
}

// Config is the immutable parameter set shared by code generation and
// verification. It is passed by value into every call so that different
// configurations can be used side by side.
type Config struct {
	// Algorithm is the HMAC digest algorithm.
	Algorithm Algorithm
	// Step is the time step that quantizes wall-clock time into a counter.
	// It must be a whole number of seconds between one second and MaxStep.
	Step time.Duration
	// Digits is the code length, 1 through MaxDigits.
	Digits uint
	// Window is the number of adjacent steps accepted on each side of the
	// current one during verification. Zero accepts only the current step.
	Window uint
}

// DefaultConfig returns SHA1, a 30 second step, 6 digits and no tolerance
// window.
func DefaultConfig() Config {
	return Config{
		Algorithm: AlgorithmSHA1,
		Step:      DefaultStep,
		Digits:    DefaultDigits,
		Window:    0,
	}
}

// Validate checks the configuration. An unavailable algorithm wraps
// ErrCryptoUnavailable; every other violation wraps ErrInvalidConfig.
func (c Config) Validate() error {
	if !c.Algorithm.Available() {
		return fmt.Errorf("%w: %q", ErrCryptoUnavailable, string(c.Algorithm))
	}
	if c.Step < time.Second || c.Step%time.Second != 0 {
		return fmt.Errorf("%w: step must be a positive whole number of seconds, got %s", ErrInvalidConfig, c.Step)
	}
	if c.Step > MaxStep {
		return fmt.Errorf("%w: step must be at most %s, got %s", ErrInvalidConfig, MaxStep, c.Step)
	}
	if c.Digits < 1 || c.Digits > MaxDigits {
		return fmt.Errorf("%w: digits must be between 1 and %d, got %d", ErrInvalidConfig, MaxDigits, c.Digits)
	}
	if c.Window > MaxWindow {
		return fmt.Errorf("%w: window must be at most %d, got %d", ErrInvalidConfig, MaxWindow, c.Window)
	}
	return nil
}

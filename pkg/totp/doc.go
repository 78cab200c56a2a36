// Package totp implements Time-based One-Time Passwords (RFC 6238) on top of
// the HOTP dynamic truncation defined in RFC 4226.
//
// Every function is pure: the secret, the instant and the algorithm
// configuration are explicit arguments, and nothing reads the wall clock or
// package-level settings. That makes it possible to run several
// configurations side by side and to test against the RFC vectors at exact
// instants.
//
// # Generating and Verifying Codes
//
//	secret, err := totp.GenerateSecret()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg := totp.DefaultConfig() // SHA1, 30s step, 6 digits, window 0
//	cfg.Window = 1              // accept one step of clock drift
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err) // fail at startup, not per request
//	}
//
//	code, err := totp.GenerateCode(secret, time.Now(), cfg)
//
//	ok, err := totp.Verify(secret, userInput, time.Now(), cfg)
//	if err != nil {
//	    // malformed secret or configuration: a programming error
//	}
//	if !ok {
//	    // wrong code, expired code and malformed input look the same
//	}
//
// # Algorithm
//
// The counter is floor(unix seconds / step), encoded as an 8-byte big-endian
// message and authenticated with HMAC-SHA1, HMAC-SHA256 or HMAC-SHA512. The
// low nibble of the last digest byte selects four digest bytes; with the top
// bit cleared they form a 31-bit value which is reduced modulo 10^digits and
// zero padded.
//
// # Verification
//
// Verify checks the current counter and then Window counters on each side.
// Candidates that are not exactly Digits ASCII digits are rejected before any
// HMAC work, and codes are compared with crypto/subtle in constant time.
//
// # Thread Safety
//
// The package holds no mutable state; all functions are safe for concurrent
// use. GenerateSecret reads crypto/rand, which is safe for concurrent use.
package totp

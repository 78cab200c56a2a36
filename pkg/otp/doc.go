// Package otp provides a TOTP (RFC 6238) authenticator for two-factor login.
//
// TOTP (Time-based One-Time Password) generates codes that change every 30 seconds,
// commonly used with authenticator apps like Google Authenticator, Authy, etc.
// The code derivation lives in package totp; this package binds it to one
// enrolled secret, a clock and the provisioning URI format.
//
// # TOTP Example
//
// Time-based OTP for use with authenticator apps:
//
//	config := otp.Config{
//	    Secret:      "JBSWY3DPEHPK3PXP",
//	    Issuer:      "MyApp",
//	    AccountName: "user@example.com",
//	    Digits:      6,
//	    Period:      30,
//	    Algorithm:   otp.AlgorithmSHA1,
//	    Skew:        1, // Allow 1 period of clock skew
//	}
//
//	auth, err := otp.NewAuthenticator(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Validate a code from user's authenticator app
//	err = auth.Authenticate(ctx, "123456")
//	if err != nil {
//	    log.Printf("Authentication failed: %v", err)
//	}
//
//	// Generate provisioning URI for QR code
//	uri := auth.GetProvisioningURI()
//	// Display uri as QR code for user to scan
//
// # Clock Skew
//
// Skew defaults to 0: only the code for the current period is accepted.
// Many deployments allow Skew: 1 to absorb drift between the server and
// the user's phone. A code outside the window and a wrong code both return
// ErrInvalidCode.
//
// # Secret Generation
//
// Generate a cryptographically random secret:
//
//	secret, err := otp.GenerateSecret()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Use secret in Config.Secret
//
// # Importing Enrollments
//
// ParseProvisioningURI reads an existing otpauth://totp/ URI back into a
// Config:
//
//	cfg, err := otp.ParseProvisioningURI(uri)
//
// # Hash Algorithms
//
// The package supports multiple hash algorithms:
//   - AlgorithmSHA1 (default, widely supported)
//   - AlgorithmSHA256
//   - AlgorithmSHA512
//
// Note that not all authenticator apps support SHA256 and SHA512.
//
// # Testing
//
// WithClock replaces the wall clock so codes can be checked at fixed instants:
//
//	auth, err := otp.NewAuthenticator(cfg, otp.WithClock(totp.FixedClock(time.Unix(59, 0))))
//
// # Thread Safety
//
// The Authenticator type is safe for concurrent use. Multiple goroutines
// can call its methods simultaneously.
package otp

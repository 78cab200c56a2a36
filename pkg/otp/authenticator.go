package otp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jeremyhahn/go-totp/pkg/codec"
	"github.com/jeremyhahn/go-totp/pkg/totp"
)

// Algorithm represents the hash algorithm used for OTP generation.
type Algorithm = totp.Algorithm

const (
	// AlgorithmSHA1 uses SHA1 hash algorithm.
	AlgorithmSHA1 = totp.AlgorithmSHA1
	// AlgorithmSHA256 uses SHA256 hash algorithm.
	AlgorithmSHA256 = totp.AlgorithmSHA256
	// AlgorithmSHA512 uses SHA512 hash algorithm.
	AlgorithmSHA512 = totp.AlgorithmSHA512
)

// Common errors returned by the OTP authenticator.
var (
	// ErrInvalidCode indicates the provided OTP code is invalid.
	ErrInvalidCode = errors.New("otp: invalid code")
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("otp: invalid configuration")
	// ErrNilAuthenticator indicates a nil authenticator was used.
	ErrNilAuthenticator = errors.New("otp: authenticator is nil")
)

// Config holds OTP authenticator configuration.
type Config struct {
	// Secret is the base32-encoded shared secret key (required).
	// Whitespace and lower case letters are accepted and normalized.
	Secret string
	// Issuer is the name of the issuing organization (e.g., "MyApp").
	Issuer string
	// AccountName is the account identifier (e.g., "user@example.com").
	AccountName string
	// Digits specifies the number of digits in the OTP code (1 to 9).
	// Default: 6
	Digits uint
	// Period specifies the time step in seconds (at most one day).
	// Default: 30
	Period uint
	// Algorithm specifies the hash algorithm to use.
	// Default: SHA1
	Algorithm Algorithm
	// Skew specifies the number of time periods to check before and after
	// the current time (tolerance for clock skew).
	// Default: 0, only the current period is accepted
	Skew uint
}

// maxPeriod is totp.MaxStep in seconds.
const maxPeriod = uint(totp.MaxStep / time.Second)

// withDefaults fills zero values. Skew has no default: zero is a valid and
// intentionally strict setting.
func (c Config) withDefaults() Config {
	if c.Digits == 0 {
		c.Digits = totp.DefaultDigits
	}
	if c.Period == 0 {
		c.Period = uint(totp.DefaultStep / time.Second)
	}
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmSHA1
	}
	return c
}

// totpConfig maps the authenticator settings onto the core parameter set.
func (c Config) totpConfig() totp.Config {
	return totp.Config{
		Algorithm: c.Algorithm,
		Step:      time.Duration(c.Period) * time.Second,
		Digits:    c.Digits,
		Window:    c.Skew,
	}
}

// validate checks that the configuration is valid. Defaults must already be
// applied.
func (c Config) validate() error {
	// Validate secret
	if strings.TrimSpace(c.Secret) == "" {
		return fmt.Errorf("%w: secret must not be empty", ErrInvalidConfig)
	}

	// Validate secret is valid base32
	key, err := codec.DecodeBase32(c.Secret)
	if err != nil {
		return fmt.Errorf("%w: secret must be valid base32: %w", ErrInvalidConfig, err)
	}
	if len(key) == 0 {
		return fmt.Errorf("%w: secret must not be empty", ErrInvalidConfig)
	}

	// Bound period before it is converted to a time.Duration
	if c.Period > maxPeriod {
		return fmt.Errorf("%w: period must be at most %d seconds, got %d", ErrInvalidConfig, maxPeriod, c.Period)
	}

	// Validate algorithm, digits, period and skew
	if err := c.totpConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Option configures an Authenticator.
type Option func(*Authenticator)

// WithClock sets the time source used by Authenticate and Generate.
// Default: totp.SystemClock
func WithClock(clock totp.Clock) Option {
	return func(a *Authenticator) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// WithLogger sets the logger used for failed authentication attempts.
// Secrets and submitted codes are never logged.
// Default: discard
func WithLogger(logger *slog.Logger) Option {
	return func(a *Authenticator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Authenticator validates TOTP codes.
// It is safe for concurrent use.
type Authenticator struct {
	cfg    Config
	secret string
	params totp.Config
	clock  totp.Clock
	logger *slog.Logger
}

// NewAuthenticator creates a new OTP authenticator.
// The configuration is validated and an error is returned if invalid, so an
// unsupported algorithm is reported here rather than on every request.
func NewAuthenticator(cfg Config, opts ...Option) (*Authenticator, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	a := &Authenticator{
		cfg:    cfg,
		secret: codec.Normalize(cfg.Secret),
		params: cfg.totpConfig(),
		clock:  totp.SystemClock{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Config returns the effective configuration with defaults applied.
func (a *Authenticator) Config() Config {
	if a == nil {
		return Config{}
	}
	return a.cfg
}

// Authenticate validates an OTP code against the current time with skew
// tolerance. Every rejected code yields ErrInvalidCode regardless of the
// reason.
func (a *Authenticator) Authenticate(ctx context.Context, code string) error {
	if a == nil {
		return ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	valid, err := totp.Verify(a.secret, code, a.clock.Now(), a.params)
	if err != nil {
		a.logger.ErrorContext(ctx, "otp verification failed", "issuer", a.cfg.Issuer, "account", a.cfg.AccountName, "error", err)
		return fmt.Errorf("%w: validation failed: %w", ErrInvalidCode, err)
	}
	if !valid {
		a.logger.WarnContext(ctx, "invalid otp code", "issuer", a.cfg.Issuer, "account", a.cfg.AccountName)
		return ErrInvalidCode
	}

	return nil
}

// Generate generates the OTP code for the current time.
func (a *Authenticator) Generate() (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}
	return a.GenerateAt(a.clock.Now())
}

// GenerateAt generates the OTP code for the given instant.
func (a *Authenticator) GenerateAt(at time.Time) (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}

	code, err := totp.GenerateCode(a.secret, at, a.params)
	if err != nil {
		return "", fmt.Errorf("otp: failed to generate TOTP code: %w", err)
	}
	return code, nil
}

// GetProvisioningURI returns the otpauth:// URI for QR code generation.
// This URI can be encoded as a QR code and scanned by authenticator apps.
//
// The label is "issuer:account" when an issuer is configured and the
// account name alone otherwise.
func (a *Authenticator) GetProvisioningURI() string {
	if a == nil {
		return ""
	}

	v := url.Values{}
	v.Set("secret", a.secret)
	if a.cfg.Issuer != "" {
		v.Set("issuer", a.cfg.Issuer)
	}
	v.Set("algorithm", string(a.cfg.Algorithm))
	v.Set("digits", strconv.FormatUint(uint64(a.cfg.Digits), 10))
	v.Set("period", strconv.FormatUint(uint64(a.cfg.Period), 10))

	label := a.cfg.AccountName
	if a.cfg.Issuer != "" {
		label = a.cfg.Issuer + ":" + a.cfg.AccountName
	}
	return fmt.Sprintf("otpauth://totp/%s?%s", url.PathEscape(label), v.Encode())
}

// GenerateSecret generates a cryptographically random secret key.
// The secret is returned as a base32-encoded string suitable for use
// in the Config.Secret field.
func GenerateSecret() (string, error) {
	secret, err := totp.GenerateSecret()
	if err != nil {
		return "", fmt.Errorf("otp: %w", err)
	}
	return secret, nil
}

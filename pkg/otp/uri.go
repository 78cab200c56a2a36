package otp

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/jeremyhahn/go-totp/pkg/totp"
	"github.com/pquerna/otp"
)

// Key returns the provisioning URI as a pquerna/otp Key, which callers can
// render with Key.Image or hand to other otpauth tooling.
func (a *Authenticator) Key() (*otp.Key, error) {
	if a == nil {
		return nil, ErrNilAuthenticator
	}
	return otp.NewKeyFromURL(a.GetProvisioningURI())
}

// ParseProvisioningURI reads an otpauth://totp/ URI, for example one exported
// from another enrollment system, into a Config. Missing parameters take the
// authenticator defaults. Skew is not part of the URI format and is left zero.
func ParseProvisioningURI(uri string) (Config, error) {
	key, err := otp.NewKeyFromURL(uri)
	if err != nil {
		return Config{}, fmt.Errorf("%w: malformed provisioning uri: %w", ErrInvalidConfig, err)
	}

	u, err := url.Parse(key.URL())
	if err != nil {
		return Config{}, fmt.Errorf("%w: malformed provisioning uri: %w", ErrInvalidConfig, err)
	}
	if u.Scheme != "otpauth" {
		return Config{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidConfig, u.Scheme)
	}
	if key.Type() != "totp" {
		return Config{}, fmt.Errorf("%w: unsupported otp type %q", ErrInvalidConfig, key.Type())
	}

	q := u.Query()
	cfg := Config{
		Secret:      key.Secret(),
		Issuer:      key.Issuer(),
		AccountName: key.AccountName(),
		Period:      uint(key.Period()),
	}

	// pquerna/otp only distinguishes 6 and 8 digits and maps unknown
	// algorithms to SHA1, so both are read from the query directly.
	if d := q.Get("digits"); d != "" {
		n, err := strconv.ParseUint(d, 10, 8)
		if err != nil {
			return Config{}, fmt.Errorf("%w: invalid digits %q", ErrInvalidConfig, d)
		}
		cfg.Digits = uint(n)
	}
	if alg := q.Get("algorithm"); alg != "" {
		parsed, err := totp.ParseAlgorithm(alg)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		cfg.Algorithm = parsed
	}

	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

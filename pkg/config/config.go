package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jeremyhahn/go-totp/pkg/otp"
	"github.com/jeremyhahn/go-totp/pkg/totp"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	// ErrInvalidProperties indicates the loaded properties failed validation.
	ErrInvalidProperties = errors.New("config: invalid properties")
	// ErrMissingKey indicates an operation needs the shared secret but none
	// was configured.
	ErrMissingKey = errors.New("config: totp.key is not set")
)

// prefix is the section name in config files. With the "." to "_" env key
// replacer it also yields the TOTP_ environment variable prefix.
const prefix = "totp"

// Properties is the application-facing TOTP configuration.
type Properties struct {
	// Key is the Base32 shared secret.
	Key string `mapstructure:"key"`
	// Issuer and Account label the provisioning URI.
	Issuer  string `mapstructure:"issuer"`
	Account string `mapstructure:"account"`
	// Algorithm is SHA1, SHA256 or SHA512 (HmacSHA1 style names accepted).
	Algorithm string `mapstructure:"algorithm" validate:"required,totp_algorithm"`
	// Period is the time step in seconds, at most one day.
	Period uint `mapstructure:"period" validate:"min=1,max=86400"`
	// Digits is the code length.
	Digits uint `mapstructure:"digits" validate:"min=1,max=9"`
	// Window is the number of adjacent periods accepted on each side.
	Window uint `mapstructure:"window" validate:"max=10"`
}

type document struct {
	TOTP Properties `mapstructure:"totp"`
}

var defaults = map[string]any{
	"key":       "",
	"issuer":    "",
	"account":   "",
	"algorithm": string(totp.AlgorithmSHA1),
	"period":    uint(totp.DefaultStep / time.Second),
	"digits":    uint(totp.DefaultDigits),
	"window":    uint(0),
}

// RegisterFlags declares one flag per property on fs. Load binds them when
// the same flag set is passed in.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("key", "", "base32 shared secret (env TOTP_KEY)")
	fs.String("issuer", "", "issuer shown by authenticator apps (env TOTP_ISSUER)")
	fs.String("account", "", "account name shown by authenticator apps (env TOTP_ACCOUNT)")
	fs.String("algorithm", string(totp.AlgorithmSHA1), "HMAC algorithm: SHA1, SHA256 or SHA512 (env TOTP_ALGORITHM)")
	fs.Uint("period", uint(totp.DefaultStep/time.Second), "time step in seconds (env TOTP_PERIOD)")
	fs.Uint("digits", totp.DefaultDigits, "code length (env TOTP_DIGITS)")
	fs.Uint("window", 0, "periods of clock drift accepted on each side (env TOTP_WINDOW)")
}

// Load resolves the properties from, in increasing priority: defaults, the
// config file at path (optional, format chosen by extension, values under a
// "totp" section), TOTP_* environment variables and flags changed on flags
// (optional).
func Load(path string, flags *pflag.FlagSet) (*Properties, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, value := range defaults {
		v.SetDefault(prefix+"."+name, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	}

	if flags != nil {
		for name := range defaults {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(prefix+"."+name, f); err != nil {
					return nil, fmt.Errorf("config: failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var doc document
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProperties, err)
	}

	p := &doc.TOTP
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation("totp_algorithm", func(fl validator.FieldLevel) bool {
		_, err := totp.ParseAlgorithm(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(fmt.Sprintf("config: failed to register totp_algorithm validation: %v", err))
	}
	return v
}

// Validate checks the ranges of the algorithm parameters. The key is not
// required here; commands that need it call RequireKey.
func (p *Properties) Validate() error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidProperties, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidProperties, err)
	}
	return nil
}

// RequireKey returns ErrMissingKey when no secret is configured.
func (p *Properties) RequireKey() error {
	if strings.TrimSpace(p.Key) == "" {
		return ErrMissingKey
	}
	return nil
}

// maxPeriod is totp.MaxStep in seconds. It matches the max tag on Period.
const maxPeriod = uint(totp.MaxStep / time.Second)

// checkPeriod bounds the period before it is converted to a time.Duration.
func (p *Properties) checkPeriod() error {
	if p.Period > maxPeriod {
		return fmt.Errorf("%w: period must be at most %d seconds, got %d", ErrInvalidProperties, maxPeriod, p.Period)
	}
	return nil
}

// AlgorithmConfig converts the properties into the core parameter set.
func (p *Properties) AlgorithmConfig() (totp.Config, error) {
	alg, err := totp.ParseAlgorithm(p.Algorithm)
	if err != nil {
		return totp.Config{}, err
	}
	if err := p.checkPeriod(); err != nil {
		return totp.Config{}, err
	}
	cfg := totp.Config{
		Algorithm: alg,
		Step:      time.Duration(p.Period) * time.Second,
		Digits:    p.Digits,
		Window:    p.Window,
	}
	if err := cfg.Validate(); err != nil {
		return totp.Config{}, err
	}
	return cfg, nil
}

// OTPConfig converts the properties into an authenticator configuration.
func (p *Properties) OTPConfig() (otp.Config, error) {
	alg, err := totp.ParseAlgorithm(p.Algorithm)
	if err != nil {
		return otp.Config{}, err
	}
	if err := p.checkPeriod(); err != nil {
		return otp.Config{}, err
	}
	return otp.Config{
		Secret:      p.Key,
		Issuer:      p.Issuer,
		AccountName: p.Account,
		Digits:      p.Digits,
		Period:      p.Period,
		Algorithm:   alg,
		Skew:        p.Window,
	}, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jeremyhahn/go-totp/pkg/config"
	"github.com/jeremyhahn/go-totp/pkg/otp"
	"github.com/jeremyhahn/go-totp/pkg/totp"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// stdin is where a missing key is prompted for.
var stdin = os.Stdin

// newFlagSet returns the flags shared by every command that reads settings.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("totp "+name, pflag.ContinueOnError)
	fs.String("config", "", "config file (yaml, toml or json)")
	fs.BoolP("verbose", "v", false, "log debug output to stderr")
	config.RegisterFlags(fs)
	return fs
}

// parse parses args, switches on debug logging and loads the properties.
// A nil Properties with a nil error means --help was requested.
func (env *environment) parse(fs *pflag.FlagSet, args []string) (*config.Properties, error) {
	fs.SetOutput(env.stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, nil
		}
		return nil, err
	}

	if verbose, _ := fs.GetBool("verbose"); verbose {
		env.logger = slog.New(slog.NewTextHandler(env.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	path, _ := fs.GetString("config")
	p, err := config.Load(path, fs)
	if err != nil {
		return nil, err
	}
	env.logger.Debug("totp properties loaded", "file", path, "algorithm", p.Algorithm, "period", p.Period, "digits", p.Digits, "window", p.Window)
	return p, nil
}

// requireKey prompts for the secret without echo when none is configured and
// stdin is a terminal.
func (env *environment) requireKey(p *config.Properties) error {
	if err := p.RequireKey(); err == nil {
		return nil
	}
	fd := int(stdin.Fd())
	if !term.IsTerminal(fd) {
		return config.ErrMissingKey
	}

	fmt.Fprint(env.stderr, "secret key: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(env.stderr)
	if err != nil {
		return fmt.Errorf("failed to read secret: %w", err)
	}
	p.Key = strings.TrimSpace(string(b))
	return p.RequireKey()
}

// authenticator builds an Authenticator from the properties. --at, when set,
// pins the clock to that unix time.
func (env *environment) authenticator(fs *pflag.FlagSet, p *config.Properties) (*otp.Authenticator, error) {
	if err := env.requireKey(p); err != nil {
		return nil, err
	}
	cfg, err := p.OTPConfig()
	if err != nil {
		return nil, err
	}

	var clock totp.Clock = totp.SystemClock{}
	if f := fs.Lookup("at"); f != nil && f.Changed {
		at, _ := fs.GetInt64("at")
		if at < 0 {
			return nil, fmt.Errorf("--at must not be negative, got %d", at)
		}
		clock = totp.FixedClock(time.Unix(at, 0))
	}

	return otp.NewAuthenticator(cfg, otp.WithClock(clock), otp.WithLogger(env.logger))
}

func runSecret(env *environment, args []string) error {
	fs := pflag.NewFlagSet("totp secret", pflag.ContinueOnError)
	fs.SetOutput(env.stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	secret, err := otp.GenerateSecret()
	if err != nil {
		return err
	}
	fmt.Fprintln(env.stdout, secret)
	return nil
}

func runCode(env *environment, args []string) error {
	fs := newFlagSet("code")
	fs.Int64("at", 0, "unix time to generate the code for (default now)")
	p, err := env.parse(fs, args)
	if err != nil || p == nil {
		return err
	}

	auth, err := env.authenticator(fs, p)
	if err != nil {
		return err
	}
	code, err := auth.Generate()
	if err != nil {
		return err
	}
	fmt.Fprintln(env.stdout, code)
	return nil
}

func runVerify(env *environment, args []string) error {
	fs := newFlagSet("verify")
	fs.Int64("at", 0, "unix time to verify the code at (default now)")
	p, err := env.parse(fs, args)
	if err != nil || p == nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("verify expects exactly one CODE argument")
	}

	auth, err := env.authenticator(fs, p)
	if err != nil {
		return err
	}
	if err := auth.Authenticate(context.Background(), fs.Arg(0)); err != nil {
		if errors.Is(err, otp.ErrInvalidCode) {
			return errMismatch
		}
		return err
	}
	fmt.Fprintln(env.stdout, "valid")
	return nil
}

func runURI(env *environment, args []string) error {
	fs := newFlagSet("uri")
	qr := fs.String("qr", "", "also write the URI as a QR code PNG to this file")
	size := fs.Int("size", 256, "QR code image size in pixels")
	p, err := env.parse(fs, args)
	if err != nil || p == nil {
		return err
	}
	if strings.TrimSpace(p.Account) == "" {
		return errors.New("uri requires --account (or TOTP_ACCOUNT)")
	}

	auth, err := env.authenticator(fs, p)
	if err != nil {
		return err
	}
	uri := auth.GetProvisioningURI()
	fmt.Fprintln(env.stdout, uri)

	if *qr != "" {
		if err := qrcode.WriteFile(uri, qrcode.Medium, *size, *qr); err != nil {
			return fmt.Errorf("failed to write qr code: %w", err)
		}
		env.logger.Debug("qr code written", "file", *qr, "size", *size)
	}
	return nil
}

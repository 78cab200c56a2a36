package otp

import (
	"errors"
	"testing"

	"github.com/jeremyhahn/go-totp/pkg/totp"
)

func TestParseProvisioningURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    Config
		wantErr error
	}{
		{
			name: "full uri",
			uri:  "otpauth://totp/TestApp:user@example.com?secret=JBSWY3DPEHPK3PXP&issuer=TestApp&algorithm=SHA256&digits=8&period=60",
			want: Config{
				Secret:      "JBSWY3DPEHPK3PXP",
				Issuer:      "TestApp",
				AccountName: "user@example.com",
				Digits:      8,
				Period:      60,
				Algorithm:   AlgorithmSHA256,
			},
		},
		{
			name: "issuer from label only",
			uri:  "otpauth://totp/ACME%20Co:john.doe@email.com?secret=HXDMVJECJJWSRB3HWIZR4IFUGFTMXBOZ",
			want: Config{
				Secret:      "HXDMVJECJJWSRB3HWIZR4IFUGFTMXBOZ",
				Issuer:      "ACME Co",
				AccountName: "john.doe@email.com",
				Digits:      6,
				Period:      30,
				Algorithm:   AlgorithmSHA1,
			},
		},
		{
			name: "account only",
			uri:  "otpauth://totp/alice?secret=GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ&digits=7",
			want: Config{
				Secret:      "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ",
				AccountName: "alice",
				Digits:      7,
				Period:      30,
				Algorithm:   AlgorithmSHA1,
			},
		},
		{
			name:    "hotp",
			uri:     "otpauth://hotp/TestApp:user?secret=JBSWY3DPEHPK3PXP&counter=1",
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "wrong scheme",
			uri:     "https://totp/TestApp:user?secret=JBSWY3DPEHPK3PXP",
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "missing secret",
			uri:     "otpauth://totp/TestApp:user?issuer=TestApp",
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "bad secret",
			uri:     "otpauth://totp/TestApp:user?secret=JBSWY3DP1HPK3PXP",
			wantErr: totp.ErrDecode,
		},
		{
			name:    "md5",
			uri:     "otpauth://totp/TestApp:user?secret=JBSWY3DPEHPK3PXP&algorithm=MD5",
			wantErr: totp.ErrCryptoUnavailable,
		},
		{
			name:    "bad digits",
			uri:     "otpauth://totp/TestApp:user?secret=JBSWY3DPEHPK3PXP&digits=six",
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProvisioningURI(tt.uri)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

// TestProvisioningURIRoundTrip checks that a generated URI is read back by
// pquerna/otp with the same parameters
func TestProvisioningURIRoundTrip(t *testing.T) {
	secret, err := GenerateSecret()
	if err != nil {
		t.Fatalf("failed to generate secret: %v", err)
	}

	cfg := Config{
		Secret:      secret,
		Issuer:      "Example Corp",
		AccountName: "user@example.com",
		Digits:      8,
		Period:      45,
		Algorithm:   AlgorithmSHA512,
	}
	auth, err := NewAuthenticator(cfg)
	if err != nil {
		t.Fatalf("failed to create authenticator: %v", err)
	}

	key, err := auth.Key()
	if err != nil {
		t.Fatalf("failed to parse key: %v", err)
	}
	if key.Type() != "totp" {
		t.Errorf("expected totp, got %s", key.Type())
	}
	if key.Secret() != secret {
		t.Errorf("expected secret %s, got %s", secret, key.Secret())
	}
	if key.Issuer() != "Example Corp" {
		t.Errorf("expected issuer Example Corp, got %s", key.Issuer())
	}
	if key.AccountName() != "user@example.com" {
		t.Errorf("expected account user@example.com, got %s", key.AccountName())
	}
	if key.Period() != 45 {
		t.Errorf("expected period 45, got %d", key.Period())
	}
	if key.Algorithm().String() != "SHA512" {
		t.Errorf("expected SHA512, got %s", key.Algorithm())
	}

	parsed, err := ParseProvisioningURI(auth.GetProvisioningURI())
	if err != nil {
		t.Fatalf("failed to parse uri: %v", err)
	}
	if parsed != auth.Config() {
		t.Errorf("round trip mismatch: expected %+v, got %+v", auth.Config(), parsed)
	}
}

// Package config binds the TOTP settings of an application: the shared
// secret key and the algorithm parameters.
//
// Values are resolved by spf13/viper from defaults, an optional config file,
// environment variables and command-line flags, then checked with
// go-playground/validator. A YAML file looks like:
//
//	totp:
//	  key: JBSWY3DPEHPK3PXP
//	  issuer: MyApp
//	  account: user@example.com
//	  algorithm: SHA1
//	  period: 30
//	  digits: 6
//	  window: 1
//
// Every property can be overridden with a TOTP_ environment variable
// (TOTP_KEY, TOTP_ALGORITHM, ...) or a flag registered with RegisterFlags.
package config

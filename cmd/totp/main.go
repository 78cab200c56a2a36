// Command totp generates secrets, prints and verifies codes, and renders
// provisioning URIs.
//
// Usage:
//
//	totp secret
//	totp code   [--at UNIX] [flags]
//	totp verify CODE [--at UNIX] [flags]
//	totp uri    [--qr FILE.png] [flags]
//
// Settings come from --config (yaml, toml or json with a "totp" section),
// TOTP_* environment variables and flags, in increasing priority.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const (
	exitOK       = 0
	exitMismatch = 1
	exitError    = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type command struct {
	name    string
	summary string
	run     func(env *environment, args []string) error
}

var commands = []command{
	{name: "secret", summary: "generate a new shared secret", run: runSecret},
	{name: "code", summary: "print the code for the current or given time", run: runCode},
	{name: "verify", summary: "verify a code, exit status 1 on mismatch", run: runVerify},
	{name: "uri", summary: "print the provisioning URI, optionally as a QR code", run: runURI},
}

// errMismatch is returned by verify for a code that does not match.
var errMismatch = errors.New("code does not match")

// environment carries the process streams and the logger into commands.
type environment struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		usage(stderr)
		if len(args) == 0 {
			return exitError
		}
		return exitOK
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
			break
		}
	}
	if cmd == nil {
		fmt.Fprintf(stderr, "totp: unknown command %q\n\n", args[0])
		usage(stderr)
		return exitError
	}

	env := &environment{
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}

	err := cmd.run(env, args[1:])
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errMismatch):
		env.logger.Warn("verification failed")
		return exitMismatch
	default:
		env.logger.Error("command failed", "command", cmd.name, "error", err)
		return exitError
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: totp <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "run 'totp <command> --help' for the flags of a command")
}

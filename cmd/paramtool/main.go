// Copyright 2026 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

// paramtool builds, encodes and inspects parameter sequences.
//
// Usage:
//
//	paramtool encode [-f binary|cbor] [-i document.yaml] [-o file]
//	paramtool decode [-f binary|cbor] [-i file]
//	paramtool locate -k key [-f binary|cbor] [-i file]
//
// The encode command reads a YAML document of the form
//
//	params:
//	  - key: bits
//	    type: integer
//	    size: 4
//	    value: "2048"
//	  - key: digest
//	    type: utf8_string
//	    value: SHA256
//
// and writes the encoded sequence to the output file, or as hex to stdout.
// The decode and locate commands read an encoded sequence from the input
// file, or as hex from stdin, and print one line per entry with the key,
// the type, the data size and the value.
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/xerrors"

	"github.com/canonical/go-params"
	"github.com/canonical/go-params/wire"
)

type options struct {
	format  string
	input   string
	output  string
	key     string
	verbose bool
}

type command struct {
	name  string
	usage string
	flags func(*pflag.FlagSet, *options)
	run   func(*env, *options) error
}

// env holds the standard streams that a command uses.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
}

var commands = []*command{
	{
		name:  "encode",
		usage: "encode a YAML parameter document",
		flags: func(fs *pflag.FlagSet, opts *options) {
			fs.StringVarP(&opts.output, "output", "o", "", "write the encoding to this file instead of as hex to stdout")
		},
		run: runEncode,
	},
	{
		name:  "decode",
		usage: "print every parameter in an encoded sequence",
		run:   runDecode,
	},
	{
		name:  "locate",
		usage: "print the parameter with the specified key",
		flags: func(fs *pflag.FlagSet, opts *options) {
			fs.StringVarP(&opts.key, "key", "k", "", "the key to locate")
		},
		run: runLocate,
	},
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: paramtool <command> [flags]\n\nCommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.name, cmd.usage)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return xerrors.New("no command specified")
	}

	var cmd *command
	for _, c := range commands {
		if c.name == args[0] {
			cmd = c
			break
		}
	}
	if cmd == nil {
		if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
			printUsage(stdout)
			return nil
		}
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}

	var opts options
	fs := pflag.NewFlagSet("paramtool "+cmd.name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.format, "format", "f", "binary", "the encoding (binary or cbor)")
	fs.StringVarP(&opts.input, "input", "i", "", "read from this file instead of stdin")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	if cmd.flags != nil {
		cmd.flags(fs, &opts)
	}
	if err := fs.Parse(args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	logger := zap.NewNop()
	if opts.verbose {
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(stderr),
			zapcore.DebugLevel)
		logger = zap.New(core, zap.Development())
	}
	params.SetLogger(logger)
	defer func() {
		logger.Sync()
		params.SetLogger(nil)
	}()

	return cmd.run(&env{stdin: stdin, stdout: stdout, stderr: stderr, logger: logger}, &opts)
}

func (e *env) readInput(opts *options, hexStdin bool) ([]byte, error) {
	if opts.input != "" {
		data, err := os.ReadFile(opts.input)
		if err != nil {
			return nil, xerrors.Errorf("cannot read input: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(e.stdin)
	if err != nil {
		return nil, xerrors.Errorf("cannot read stdin: %w", err)
	}
	if !hexStdin {
		return data, nil
	}
	data, err = hex.DecodeString(string(bytes.TrimSpace(data)))
	if err != nil {
		return nil, xerrors.Errorf("cannot decode hex input: %w", err)
	}
	return data, nil
}

func (e *env) decodeInput(opts *options) (params.Sequence, error) {
	format, err := wire.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	data, err := e.readInput(opts, true)
	if err != nil {
		return nil, err
	}
	ps, err := format.Unmarshal(data)
	if err != nil {
		return nil, xerrors.Errorf("cannot decode parameters: %w", err)
	}
	e.logger.Debug("decoded parameters", zap.Stringer("format", format), zap.Int("count", ps.Len()))
	return ps, nil
}

func runEncode(e *env, opts *options) error {
	format, err := wire.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	data, err := e.readInput(opts, false)
	if err != nil {
		return err
	}
	doc, err := parseDocument(data)
	if err != nil {
		return err
	}
	ps, err := doc.build()
	if err != nil {
		return err
	}
	encoded, err := format.Marshal(ps)
	if err != nil {
		return xerrors.Errorf("cannot encode parameters: %w", err)
	}
	e.logger.Debug("encoded parameters", zap.Stringer("format", format), zap.Int("count", ps.Len()), zap.Int("size", len(encoded)))

	if opts.output != "" {
		if err := os.WriteFile(opts.output, encoded, 0644); err != nil {
			return xerrors.Errorf("cannot write output: %w", err)
		}
		return nil
	}
	_, err = fmt.Fprintln(e.stdout, hex.EncodeToString(encoded))
	return err
}

func runDecode(e *env, opts *options) error {
	ps, err := e.decodeInput(opts)
	if err != nil {
		return err
	}
	for i := 0; i < ps.Len(); i++ {
		if err := printParam(e.stdout, &ps[i]); err != nil {
			return xerrors.Errorf("cannot print parameter %q: %w", ps[i].Key, err)
		}
	}
	return nil
}

func runLocate(e *env, opts *options) error {
	if opts.key == "" {
		return xerrors.New("no key specified")
	}
	ps, err := e.decodeInput(opts)
	if err != nil {
		return err
	}
	p := ps.Locate(opts.key)
	if p == nil {
		return fmt.Errorf("no parameter with key %q", opts.key)
	}
	if err := printParam(e.stdout, p); err != nil {
		return xerrors.Errorf("cannot print parameter %q: %w", p.Key, err)
	}
	return nil
}

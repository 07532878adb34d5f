/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ExitError is an error carrying a process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Options is the parsed command line.
type Options struct {
	// Manifests are applied to the scratch host in order.
	Manifests []string
	// List prints the installed members and exits.
	List bool
	// Exec runs one session command and exits.
	Exec string
	// EnvFiles are dotenv files read before the environment.
	EnvFiles  []string
	LogLevel  string
	LogFormat string
}

// Parse processes command-line arguments. It returns the options, whether
// the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	slog.Debug("CLI parser started")
	flagSet := flag.NewFlagSet("dmx", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
dmx - load dynamic member manifests and play with them.

Usage:
  dmx [options] [MANIFEST...]

Arguments:
  MANIFEST
    Path to an .hcl, .yaml or .yml manifest.

Options:
`)
		flagSet.PrintDefaults()
	}

	opts := &Options{}
	flagSet.BoolVar(&opts.List, "list", false, "Print the installed members and exit.")
	flagSet.StringVar(&opts.Exec, "e", "", "Run one command (for example 'call shout hi') and exit.")
	flagSet.Func("env", "Dotenv file to read configuration from. May be repeated.", func(s string) error {
		opts.EnvFiles = append(opts.EnvFiles, s)
		return nil
	})
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	opts.Manifests = flagSet.Args()

	opts.LogFormat = strings.ToLower(*logFormatFlag)
	if opts.LogFormat != "text" && opts.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	opts.LogLevel = strings.ToLower(*logLevelFlag)
	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	slog.Debug("CLI parser finished", "manifests", len(opts.Manifests))
	return opts, false, nil
}

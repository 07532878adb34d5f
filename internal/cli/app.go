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
	"fmt"
	"io"
	"time"

	"dirpx.dev/dmx/config"
)

// Run executes the command described by opts. Results go to outW, logs to
// logW.
func Run(outW, logW io.Writer, opts *Options) error {
	logger := NewLogger(opts.LogLevel, opts.LogFormat, logW)

	cfg, err := config.Load(opts.EnvFiles...)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	logger.Debug("Configuration loaded", "maxUnwrap", cfg.MaxUnwrap, "cache", cfg.Cache.String())

	s := NewSession(cfg, Builtins(time.Now), logger)
	if err := s.Load(opts.Manifests...); err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}

	switch {
	case opts.List:
		for _, m := range s.Members() {
			fmt.Fprintln(outW, m)
		}
		return nil
	case opts.Exec != "":
		res, err := s.Exec(opts.Exec)
		if err != nil {
			return &ExitError{Code: 1, Message: err.Error()}
		}
		if res != "" {
			fmt.Fprintln(outW, res)
		}
		return nil
	default:
		return RunREPL(s, outW)
	}
}

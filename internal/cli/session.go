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
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"dirpx.dev/dmx"
	"dirpx.dev/dmx/apis"
	"dirpx.dev/dmx/builder"
	"dirpx.dev/dmx/manifest"
)

// Scratch is the host the CLI installs dynamic members on.
type Scratch struct {
	*dmx.Object
}

// Session is an isolated scratch host with its own registry, dispatcher and
// resolver.
type Session struct {
	host *Scratch
	dsp  apis.Dispatcher
}

// NewSession builds a session. Manifests loaded into it may refer to funcs.
func NewSession(cfg apis.Config, funcs manifest.Funcs, logger *slog.Logger) *Session {
	b := builder.New()
	ext := builder.Ext{Funcs: funcs, Logger: logger}
	reg := b.BuildRegistry(cfg, nil, ext)
	dsp := b.BuildDispatcher(cfg, reg, nil, ext)
	res := b.BuildResolver(cfg, nil, ext)

	h := &Scratch{}
	h.Object = dmx.NewObject(h, dmx.WithDispatcher(dsp), dmx.WithResolver(res))
	return &Session{host: h, dsp: dsp}
}

// Host returns the scratch host.
func (s *Session) Host() *Scratch { return s.host }

// Load applies manifests to the host in order.
func (s *Session) Load(paths ...string) error {
	for _, p := range paths {
		if _, err := s.host.Extend(p); err != nil {
			return err
		}
	}
	return nil
}

// Members lists the dynamic members of the host, sorted.
func (s *Session) Members() []string {
	owner := s.host.Owner()
	var out []string
	for _, e := range s.dsp.Registry().Entries() {
		if e.Owner != owner {
			continue
		}
		switch {
		case e.Property != nil:
			out = append(out, "property "+e.Property.Name+flags(e.Property.Memoize, false))
		case e.Method != nil:
			out = append(out, "method "+e.Method.Name+"()"+flags(e.Method.Memoize, e.Method.Static))
		}
	}
	sort.Strings(out)
	return out
}

func flags(memoize, static bool) string {
	var f []string
	if memoize {
		f = append(f, "memoize")
	}
	if static {
		f = append(f, "static")
	}
	if len(f) == 0 {
		return ""
	}
	return " [" + strings.Join(f, " ") + "]"
}

const help = `commands:
  get NAME              read a property
  set NAME VALUE        write a property
  call NAME ARGS...     call a method
  static NAME ARGS...   call a static method
  extend PATH           load a manifest
  members               list dynamic members
  clear-cache           drop memoized results
  :quit                 leave the REPL

words use shell quoting; nil, numbers and booleans are typed,
'"..."' passes a Go string literal as is`

// Exec runs one command line and returns its output.
func (s *Session) Exec(line string) (string, error) {
	toks, err := splitArgs(line)
	if err != nil {
		return "", err
	}
	if len(toks) == 0 {
		return "", nil
	}

	cmd, rest := toks[0], toks[1:]
	switch cmd {
	case "get":
		if len(rest) != 1 {
			return "", errors.New("usage: get NAME")
		}
		return result(s.host.Get(rest[0]))
	case "set":
		if len(rest) != 2 {
			return "", errors.New("usage: set NAME VALUE")
		}
		return "", s.host.Set(rest[0], value(rest[1]))
	case "call":
		if len(rest) < 1 {
			return "", errors.New("usage: call NAME ARGS...")
		}
		return result(s.host.Call(rest[0], values(rest[1:])...))
	case "static":
		if len(rest) < 1 {
			return "", errors.New("usage: static NAME ARGS...")
		}
		return result(s.dsp.CallStatic(s.host.Owner(), rest[0], values(rest[1:])...))
	case "extend":
		if len(rest) != 1 {
			return "", errors.New("usage: extend PATH")
		}
		if err := s.Load(rest[0]); err != nil {
			return "", err
		}
		return fmt.Sprintf("%d members", len(s.Members())), nil
	case "members":
		return strings.Join(s.Members(), "\n"), nil
	case "clear-cache":
		s.dsp.Cache().Clear()
		return "cache cleared", nil
	case "help":
		return help, nil
	default:
		return "", fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func result(v any, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return fmt.Sprint(v), nil
}

// value interprets a word as nil, int, float64 or bool when it reads as
// one. A word spelled as a Go string literal ('"42"') is that string.
// Everything else is a string.
func value(w string) any {
	if len(w) >= 2 && w[0] == '"' && w[len(w)-1] == '"' {
		if s, err := strconv.Unquote(w); err == nil {
			return s
		}
	}
	if w == "nil" {
		return nil
	}
	if i, err := strconv.Atoi(w); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(w, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(w); err == nil {
		return b
	}
	return w
}

func values(words []string) []any {
	out := make([]any, len(words))
	for i, w := range words {
		out[i] = value(w)
	}
	return out
}

// splitArgs splits line into words with shell quoting rules.
func splitArgs(line string) ([]string, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("bad command line: %w", err)
	}
	return words, nil
}

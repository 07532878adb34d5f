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
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dmx/config"
	dmxerrors "dirpx.dev/dmx/errors"
)

const manifestHCL = `
property "greeting" {
  value = upper("hello")
}

property "stamp" {
  function = "now"
  memoize  = true
}

method "shout" {
  function = "upper"
  aliases  = ["yell"]
  static   = true
}

method "size" {
  function = "len"
}
`

// ticker is a clock that advances one second per reading.
type ticker struct{ t time.Time }

func (c *ticker) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	clock := &ticker{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewSession(config.DefaultConfig(), Builtins(clock.now), logger)

	path := filepath.Join(t.TempDir(), "ext.hcl")
	require.NoError(t, os.WriteFile(path, []byte(manifestHCL), 0o600))
	require.NoError(t, s.Load(path))
	return s
}

func TestSession_Members(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, []string{
		"method shout() [static]",
		"method size()",
		"method yell() [static]",
		"property greeting",
		"property stamp [memoize]",
	}, s.Members())
}

func TestSession_Exec(t *testing.T) {
	s := newTestSession(t)

	cases := []struct {
		line string
		want string
	}{
		{"get greeting", "HELLO"},
		{"call shout hi", "HI"},
		{"call yell \"hi there\"", "HI THERE"},
		{"static shout hi", "HI"},
		{"call size héllo", "5"},
		{"set greeting bye", ""},
		{"get greeting", "bye"},
		{"set scratch 42", ""},
		{"get scratch", "42"},
		{"", ""},
	}
	for _, tc := range cases {
		got, err := s.Exec(tc.line)
		require.NoError(t, err, tc.line)
		assert.Equal(t, tc.want, got, tc.line)
	}
	assert.False(t, s.Host().HasProperty("scratch"), "set never registers new properties")
}

func TestSession_MemoizeAndClearCache(t *testing.T) {
	s := newTestSession(t)

	a, err := s.Exec("get stamp")
	require.NoError(t, err)
	b, err := s.Exec("get stamp")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = s.Exec("clear-cache")
	require.NoError(t, err)
	c, err := s.Exec("get stamp")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestSession_Errors(t *testing.T) {
	s := newTestSession(t)

	_, err := s.Exec("call nope")
	assert.ErrorIs(t, err, dmxerrors.ErrUndefinedMember)

	_, err = s.Exec("static size x")
	assert.ErrorIs(t, err, dmxerrors.ErrUndefinedStaticMember)

	_, err = s.Exec("extend /nonexistent/path")
	assert.ErrorIs(t, err, dmxerrors.ErrInvalidExtension)

	_, err = s.Exec("frobnicate")
	assert.Error(t, err)

	_, err = s.Exec("get")
	assert.Error(t, err)

	_, err = s.Exec("call shout \"unterminated")
	assert.Error(t, err)
}

func TestSplitArgs(t *testing.T) {
	words, err := splitArgs(`call  echo "a \"b\"" 1 2.5 true nil x '"7"' 'two words'`)
	require.NoError(t, err)
	require.Len(t, words, 10)

	assert.Equal(t, `a "b"`, words[2])
	assert.Equal(t, []any{`a "b"`, 1, 2.5, true, nil, "x", "7", "two words"}, values(words[2:]))
}

func TestSplitArgs_Unterminated(t *testing.T) {
	_, err := splitArgs(`call shout "open`)
	assert.Error(t, err)
}

func TestRepl(t *testing.T) {
	s := newTestSession(t)
	in := &scripted{lines: []string{"get greeting", "", "call nope", ":quit", "get greeting"}}
	out := &bytes.Buffer{}

	require.NoError(t, repl(s, in, out))
	assert.Equal(t, "HELLO\nerror: dmx: undefined method: nope()\n", out.String())
	assert.Equal(t, []string{"get greeting", "call nope", ":quit"}, in.history)
}

func TestRepl_EOF(t *testing.T) {
	s := newTestSession(t)
	out := &bytes.Buffer{}
	require.NoError(t, repl(s, &scripted{}, out))
	assert.Equal(t, "\n", out.String())
}

// scripted is a lineReader replaying fixed input.
type scripted struct {
	lines   []string
	history []string
}

func (s *scripted) Prompt(string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scripted) AppendHistory(item string) {
	s.history = append(s.history, item)
}

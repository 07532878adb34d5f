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

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/dmx/internal/cli"
)

func writeManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ext.yaml")
	src := "properties:\n  - name: greeting\n    value: hello\nmethods:\n  - name: shout\n    function: upper\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func TestRun_ShouldExit(t *testing.T) {
	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"-h"})
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_List(t *testing.T) {
	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"-list", writeManifest(t)})
	require.NoError(t, err)
	require.Equal(t, "method shout()\nproperty greeting\n", out.String())
}

func TestRun_Exec(t *testing.T) {
	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"-e", "call shout hi", writeManifest(t)})
	require.NoError(t, err)
	require.Equal(t, "HI\n", out.String())
}

func TestRun_Errors(t *testing.T) {
	cases := map[string]struct {
		args []string
		code int
	}{
		"bad flag":         {[]string{"-log-format", "xml"}, 2},
		"missing manifest": {[]string{"-list", "/nonexistent/path.hcl"}, 1},
		"bad command":      {[]string{"-e", "frobnicate"}, 1},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := run(&bytes.Buffer{}, &bytes.Buffer{}, tc.args)
			var exitErr *cli.ExitError
			require.True(t, errors.As(err, &exitErr), "got %v", err)
			require.Equal(t, tc.code, exitErr.Code)
		})
	}
}

func TestRun_EnvFile(t *testing.T) {
	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte("DMX_CACHE=bogus\n"), 0o600))

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"-env", env, "-list"})
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr), "got %v", err)
	require.Equal(t, 2, exitErr.Code)
}

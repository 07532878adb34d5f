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
	"strings"
	"time"
	"unicode/utf8"

	"dirpx.dev/dmx/callable"
	"dirpx.dev/dmx/manifest"
)

// Builtins returns the functions manifests loaded by the CLI may refer to.
// now is the clock behind the "now" function.
func Builtins(now func() time.Time) manifest.Funcs {
	return manifest.Funcs{
		"upper": callable.MustOf(strings.ToUpper),
		"lower": callable.MustOf(strings.ToLower),
		"concat": callable.MustOf(func(parts ...string) string {
			return strings.Join(parts, "")
		}),
		"len": callable.MustOf(utf8.RuneCountInString),
		"now": callable.MustOf(func() string {
			return now().Format(time.RFC3339Nano)
		}),
		"echo": callable.MustOf(func(args ...any) string {
			return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
		}),
	}
}

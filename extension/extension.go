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

// Package extension applies extension sources to a target.
package extension

import (
	"dirpx.dev/dmx/apis"
	dmxerrors "dirpx.dev/dmx/errors"
)

// Load resolves src through res and runs the resulting extension against t.
// Resolution failures are invalid-extension errors; an error returned by the
// extension itself is passed through unchanged.
func Load(res apis.Resolver, t apis.Target, src any) error {
	if res == nil {
		return dmxerrors.NewInvalidExtension(src, nil)
	}
	ext, err := res.Resolve(src)
	if err != nil {
		return err
	}
	return ext(t)
}

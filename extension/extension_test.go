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

package extension_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dmx/apis"
	dmxerrors "dirpx.dev/dmx/errors"
	"dirpx.dev/dmx/extension"
	"dirpx.dev/dmx/manifest"
	"dirpx.dev/dmx/resolver"
	"dirpx.dev/dmx/strategy"
)

type target struct{ methods []string }

func (t *target) Self() any                       { return t }
func (t *target) Owner() reflect.Type             { return reflect.TypeOf(target{}) }
func (t *target) AddProperty([]string, any, bool) {}
func (t *target) AddMethod(names []string, _ apis.Callable, _, _ bool) {
	t.methods = append(t.methods, names...)
}

func chain() apis.Resolver {
	return resolver.New(
		strategy.NewCallableStrategy(),
		strategy.NewManifestStrategy(manifest.Funcs{}),
	)
}

func TestLoad_Callable(t *testing.T) {
	tg := &target{}
	err := extension.Load(chain(), tg, func(t apis.Target) {
		t.AddMethod([]string{"foo"}, nil, false, false)
		t.AddMethod([]string{"bar"}, nil, false, false)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "bar"}, tg.methods)
}

func TestLoad_ExtensionErrorPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	err := extension.Load(chain(), &target{}, func(apis.Target) error { return boom })
	assert.Same(t, boom, err)
}

func TestLoad_Invalid(t *testing.T) {
	for _, src := range []any{"/nonexistent/path", 42, nil} {
		err := extension.Load(chain(), &target{}, src)
		assert.True(t, dmxerrors.IsInvalidExtension(err), "%v", src)
	}

	err := extension.Load(nil, &target{}, func(apis.Target) {})
	assert.ErrorIs(t, err, dmxerrors.ErrInvalidExtension)
}

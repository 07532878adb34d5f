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

package reflect_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dmx/apis"
	"dirpx.dev/dmx/config"
	uref "dirpx.dev/dmx/utils/reflect"
)

// Local test types.
type A struct{}
type G[T any] struct{}

type named struct{}

func (named) EntityName() string { return "demo.named" }

func TestNormalize_PointersShareOwner(t *testing.T) {
	conf := config.DefaultConfig()
	a := &A{}
	pa := &a

	cases := []struct {
		name string
		typ  reflect.Type
	}{
		{"plain", reflect.TypeOf(A{})},
		{"ptr", reflect.TypeOf(a)},
		{"ptr-ptr", reflect.TypeOf(pa)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := uref.Normalize(tc.typ, conf)
			if err != nil {
				t.Fatalf("Normalize(%v) returned error: %v", tc.typ, err)
			}
			if got != reflect.TypeOf(A{}) {
				t.Fatalf("Normalize(%v) = %v, want A", tc.typ, got)
			}
		})
	}
}

func TestNormalize_ContainersAreOwnersOfTheirOwn(t *testing.T) {
	conf := config.DefaultConfig()
	for _, typ := range []reflect.Type{reflect.TypeOf([]A{}), reflect.TypeOf(map[string]A{})} {
		got, err := uref.Normalize(typ, conf)
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
}

func TestNormalize_MaxUnwrapLimit(t *testing.T) {
	var x **A
	_, err := uref.Normalize(reflect.TypeOf(x), apis.Config{MaxUnwrap: 1})
	if !errors.Is(err, uref.ErrReflectTooDeep) {
		t.Fatalf("MaxUnwrap=1: want ErrReflectTooDeep, got %v", err)
	}

	got, err := uref.Normalize(reflect.TypeOf(x), apis.Config{MaxUnwrap: 2})
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(A{}), got)
}

func TestOwner_Nil(t *testing.T) {
	_, err := uref.Owner(nil, config.DefaultConfig())
	assert.ErrorIs(t, err, uref.ErrReflectNilValue)

	_, err = uref.Normalize(nil, config.DefaultConfig())
	assert.ErrorIs(t, err, uref.ErrReflectNilType)
}

func TestIsAnonymous(t *testing.T) {
	assert.False(t, uref.IsAnonymous(reflect.TypeOf(A{})))
	assert.True(t, uref.IsAnonymous(reflect.TypeOf(struct{ X int }{})))

	runtime := reflect.StructOf([]reflect.StructField{{Name: "Foo", Type: reflect.TypeOf("")}})
	assert.True(t, uref.IsAnonymous(runtime))
}

func TestKey_DistinguishesPackages(t *testing.T) {
	assert.Equal(t, "dirpx.dev/dmx/utils/reflect_test.A", uref.Key(reflect.TypeOf(A{})))
	assert.Equal(t, "struct { X int }", uref.Key(reflect.TypeOf(struct{ X int }{})))
	assert.Equal(t, "int", uref.Key(reflect.TypeOf(0)))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "reflect_test.A", uref.DisplayName(A{}, reflect.TypeOf(A{})))
	assert.Equal(t, "reflect_test.G", uref.DisplayName(nil, reflect.TypeOf(G[int]{})))
	assert.Equal(t, "demo.named", uref.DisplayName(named{}, reflect.TypeOf(named{})))
	assert.Equal(t, "struct {}", uref.DisplayName(nil, reflect.TypeOf(struct{}{})))
}

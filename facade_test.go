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

package dmx_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dmx"
	"dirpx.dev/dmx/apis"
	dmxerrors "dirpx.dev/dmx/errors"
)

// Shouter is registered through the type-level API and the global snapshot.
type Shouter struct {
	*dmx.Object
}

func newShouter() *Shouter {
	s := &Shouter{}
	s.Object = dmx.NewObject(s)
	return s
}

func cleanup(t *testing.T) {
	t.Cleanup(func() {
		dmx.ClearProperties[Shouter]()
		dmx.ClearMethods[Shouter]()
	})
}

func TestFacade_AddPropertyWithAliases(t *testing.T) {
	cleanup(t)
	dmx.AddProperty[Shouter]("goodafternoon", "world", dmx.Aliases("goodbye"))

	assert.True(t, dmx.HasProperty[Shouter]("goodafternoon"))
	assert.True(t, dmx.HasProperty[*Shouter]("goodbye"), "pointer and value share an owner")

	v, err := newShouter().Get("goodbye")
	require.NoError(t, err)
	assert.Equal(t, "world", v)

	dmx.RemoveProperty[Shouter]("goodbye")
	dmx.RemoveProperty[Shouter]("goodbye")
	assert.False(t, dmx.HasProperty[Shouter]("goodbye"))
}

func TestFacade_StaticGate(t *testing.T) {
	cleanup(t)
	require.NoError(t, dmx.AddMethod[Shouter]("shout", strings.ToUpper, dmx.Static(), dmx.Memoize()))
	require.NoError(t, dmx.AddMethod[Shouter]("whisper", strings.ToLower))

	v, err := dmx.CallStatic[Shouter]("shout", "hi")
	require.NoError(t, err)
	assert.Equal(t, "HI", v)

	v, err = newShouter().Call("shout", "hi")
	require.NoError(t, err)
	assert.Equal(t, "HI", v)

	v, err = newShouter().Call("whisper", "HI")
	require.NoError(t, err)
	assert.Equal(t, "hi", v)

	_, err = dmx.CallStaticType(reflect.TypeOf(Shouter{}), "whisper", "HI")
	assert.ErrorIs(t, err, dmxerrors.ErrUndefinedStaticMember)
	assert.True(t, dmxerrors.IsUndefinedStaticMember(err))

	dmx.RemoveMethod[Shouter]("whisper")
	assert.False(t, dmx.HasMethod[Shouter]("whisper"))
}

func TestFacade_AddMethodRejectsNonFunc(t *testing.T) {
	err := dmx.AddMethod[Shouter]("bad", "strings.ToUpper")
	assert.ErrorIs(t, err, dmxerrors.ErrNotCallable)
}

func TestFacade_Func(t *testing.T) {
	fn := dmx.Func(strings.Repeat)
	v, err := fn(nil, "ab", 2)
	require.NoError(t, err)
	assert.Equal(t, "abab", v)

	assert.Panics(t, func() { dmx.Func(42) })
}

func TestFacade_ExtendType(t *testing.T) {
	cleanup(t)
	err := dmx.Extend[Shouter](func(t apis.Target) error {
		t.AddMethod([]string{"fromType"}, dmx.Func(func() string { return "ok" }), false, true)
		return nil
	})
	require.NoError(t, err)

	v, err := dmx.CallStatic[Shouter]("fromType")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestFacade_OwnerOf(t *testing.T) {
	assert.Equal(t, reflect.TypeOf(Shouter{}), dmx.OwnerOf[**Shouter]())
}

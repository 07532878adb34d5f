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
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/dmx"
	"dirpx.dev/dmx/apis"
	"dirpx.dev/dmx/builder"
	"dirpx.dev/dmx/config"
	dmxerrors "dirpx.dev/dmx/errors"
)

// Demo is a host with native members and dynamic ones.
type Demo struct {
	*dmx.Object
	Title string
	Count int
}

func (d *Demo) Native(s string) string { return "native:" + s }

// Child embeds Demo; it is an owner of its own.
type Child struct {
	Demo
}

type env struct {
	dsp apis.Dispatcher
	res apis.Resolver
}

func newEnv() env {
	b := builder.New()
	cfg := config.DefaultConfig()
	reg := b.BuildRegistry(cfg, nil, nil)
	return env{
		dsp: b.BuildDispatcher(cfg, reg, nil, nil),
		res: b.BuildResolver(cfg, nil, nil),
	}
}

func (e env) opts() []dmx.ObjectOption {
	return []dmx.ObjectOption{dmx.WithDispatcher(e.dsp), dmx.WithResolver(e.res)}
}

func (e env) demo() *Demo {
	d := &Demo{Title: "title"}
	d.Object = dmx.NewObject(d, e.opts()...)
	return d
}

func (e env) child() *Child {
	c := &Child{}
	c.Object = dmx.NewObject(c, e.opts()...)
	return c
}

func TestObject_PropertyReadWrite(t *testing.T) {
	d := newEnv().demo()
	d.AddProperty([]string{"hello"}, "world", false)

	v, err := d.Get("hello")
	require.NoError(t, err)
	assert.Equal(t, "world", v)

	require.NoError(t, d.Set("hello", "foo"))
	v, err = d.Get("hello")
	require.NoError(t, err)
	assert.Equal(t, "foo", v)
	assert.True(t, d.HasProperty("hello"))
}

func TestObject_SetUnregisteredIsAdHoc(t *testing.T) {
	e := newEnv()
	d := e.demo()

	require.NoError(t, d.Set("fake", "property"))
	v, err := d.Get("fake")
	require.NoError(t, err)
	assert.Equal(t, "property", v)
	assert.False(t, d.HasProperty("fake"), "ad-hoc attributes are not dynamic properties")

	// Ad-hoc attributes belong to one instance.
	_, err = e.demo().Get("fake")
	assert.ErrorIs(t, err, dmxerrors.ErrUndefinedMember)
}

func TestObject_WriteThenReadAgreesWithAdHocAttribute(t *testing.T) {
	e := newEnv()
	d := e.demo()

	require.NoError(t, d.Set("x", "adhoc"))
	d.AddProperty([]string{"x"}, "reg", false)
	require.NoError(t, d.Set("x", "new"))

	v, err := d.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "new", v)

	// The attribute shadows the dynamic property on this instance only.
	v, err = e.demo().Get("x")
	require.NoError(t, err)
	assert.Equal(t, "reg", v)
}

func TestObject_Memoize(t *testing.T) {
	d := newEnv().demo()
	var n atomic.Int64
	tick := func() int64 { return n.Add(1) }

	d.AddProperty([]string{"memo"}, dmx.Func(tick), true)
	d.AddProperty([]string{"plain"}, dmx.Func(tick), false)

	a, _ := d.Get("memo")
	b, _ := d.Get("memo")
	assert.Equal(t, a, b)

	c, _ := d.Get("plain")
	e, _ := d.Get("plain")
	assert.NotEqual(t, c, e)
}

func TestObject_NativeFirst(t *testing.T) {
	d := newEnv().demo()
	d.AddProperty([]string{"Title"}, "dynamic", false)
	d.AddMethod([]string{"Native"}, dmx.Func(func() string { return "dynamic" }), false, false)

	v, err := d.Get("Title")
	require.NoError(t, err)
	assert.Equal(t, "title", v)

	require.NoError(t, d.Set("Title", "changed"))
	assert.Equal(t, "changed", d.Title)

	require.NoError(t, d.Set("Count", 3.0))
	assert.Equal(t, 3, d.Count)

	err = d.Set("Count", "three")
	assert.ErrorIs(t, err, dmxerrors.ErrUnassignable)

	v, err = d.Call("Native", "x")
	require.NoError(t, err)
	assert.Equal(t, "native:x", v)
}

func TestObject_CallUndefined(t *testing.T) {
	d := newEnv().demo()
	_, err := d.Call("foo")

	var ue *dmxerrors.UndefinedMemberError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "foo", ue.Name)
	assert.Contains(t, err.Error(), "foo")
}

func TestObject_ReceiverBinding(t *testing.T) {
	d := newEnv().demo()
	d.AddMethod([]string{"describe"}, dmx.Func(func(rx *apis.Receiver, suffix string) string {
		return rx.Self.(*Demo).Title + suffix
	}), false, false)

	v, err := d.Call("describe", "!")
	require.NoError(t, err)
	assert.Equal(t, "title!", v)
}

func TestObject_EmbeddingDoesNotInherit(t *testing.T) {
	e := newEnv()
	d := e.demo()
	d.AddProperty([]string{"hello"}, "world", false)

	c := e.child()
	assert.False(t, c.HasProperty("hello"))
	_, err := c.Get("hello")
	assert.ErrorIs(t, err, dmxerrors.ErrUndefinedMember)

	v, err := c.Call("Native", "y")
	require.NoError(t, err)
	assert.Equal(t, "native:y", v)

	c.AddProperty([]string{"own"}, 1, false)
	assert.False(t, d.HasProperty("own"))
}

func TestObject_ClearOnlyOwner(t *testing.T) {
	e := newEnv()
	d, c := e.demo(), e.child()
	d.AddProperty([]string{"x"}, 1, false)
	c.AddProperty([]string{"x"}, 2, false)
	d.AddMethod([]string{"m"}, dmx.Func(func() {}), false, false)

	d.ClearProperties()
	d.ClearMethods()
	d.RemoveProperty("x")
	d.RemoveMethod("m")

	assert.False(t, d.HasProperty("x"))
	assert.False(t, d.HasMethod("m"))
	assert.True(t, c.HasProperty("x"))
}

func TestObject_AnonymousOwnerIsUnbound(t *testing.T) {
	e := newEnv()
	anon := &struct {
		*dmx.Object
		X int
	}{X: 1}
	anon.Object = dmx.NewObject(anon, e.opts()...)

	anon.AddMethod([]string{"probe"}, func(rx *apis.Receiver, _ ...any) (any, error) {
		return rx == nil, nil
	}, false, false)

	v, err := anon.Call("probe")
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestObject_Extend(t *testing.T) {
	d := newEnv().demo()

	got, err := d.Extend(func(t apis.Target) {
		t.AddMethod([]string{"foo"}, dmx.Func(func() string { return "foo" }), false, false)
		t.AddMethod([]string{"bar"}, dmx.Func(func() string { return "bar" }), false, false)
	})
	require.NoError(t, err)
	assert.Same(t, d.Object, got)

	for _, name := range []string{"foo", "bar"} {
		v, err := d.Call(name)
		require.NoError(t, err)
		assert.Equal(t, name, v)
	}

	_, err = d.Extend("/nonexistent/path")
	assert.ErrorIs(t, err, dmxerrors.ErrInvalidExtension)
}

func TestObject_Invoke(t *testing.T) {
	d := newEnv().demo()
	var calls int
	fn := func(rx *apis.Receiver) string {
		calls++
		return strings.ToUpper(rx.Self.(*Demo).Title)
	}

	for i := 0; i < 2; i++ {
		v, err := d.Invoke(fn, true)
		require.NoError(t, err)
		assert.Equal(t, "TITLE", v)
	}
	assert.Equal(t, 1, calls)
}

func TestObject_Owner(t *testing.T) {
	d := newEnv().demo()
	assert.Equal(t, reflect.TypeOf(Demo{}), d.Owner())
	assert.Same(t, d, d.Self())
}

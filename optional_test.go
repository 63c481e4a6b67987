package objc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptional(t *testing.T) {
	o := Some(ID(0x10))
	require.True(t, o.IsSome())
	require.False(t, o.IsNone())
	v, ok := o.Get()
	require.True(t, ok)
	require.Equal(t, ID(0x10), v)
	require.Equal(t, ID(0x10), o.OrElse(Nil))

	o.Clear()
	require.True(t, o.IsNone())
	require.Equal(t, Nil, o.Value)
	require.Equal(t, ID(0x20), o.OrElse(0x20))

	o.Set(0x30)
	require.Equal(t, ID(0x30), o.OrElse(Nil))

	require.True(t, None[string]().IsNone())
}

func TestOptionalOf(t *testing.T) {
	require.True(t, OptionalOf(NilClass).IsNone())
	require.True(t, OptionalOf(SEL(0)).IsNone())

	c := OptionalOf(Class(0x1000))
	require.True(t, c.IsSome())
	require.Equal(t, Class(0x1000), c.Value)
}

func TestHandles(t *testing.T) {
	require.True(t, Nil.IsNil())
	require.True(t, NilClass.IsNil())
	require.False(t, ID(1).IsNil())
	require.Equal(t, ID(0x1234), Class(0x1234).AsID())

	for _, h := range []interface{ ObjCType() string }{ID(0), Class(0), SEL(0), IMP(0)} {
		require.NotEmpty(t, h.ObjCType())
	}
	require.Equal(t, "@", Nil.ObjCType())
	require.Equal(t, "#", NilClass.ObjCType())
	require.Equal(t, ":", SEL(0).ObjCType())
}

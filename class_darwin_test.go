package objc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hsfzxjy/objc/internal/keepalive"
)

func nsObject(t *testing.T) Class {
	t.Helper()
	c := GetClass("NSObject")
	require.False(t, c.IsNil())
	return c
}

func newObject(c Class) ID {
	return Send[ID](c.AsID(), Sel("new"))
}

func release(obj ID) {
	Send[struct{}](obj, Sel("release"))
}

func TestGetClass(t *testing.T) {
	require.Equal(t, NilClass, GetClass("ObjcNoSuchClass"))
	require.Equal(t, NilClass, LookUpClass("ObjcNoSuchClass"))
	require.True(t, LookupClass("ObjcNoSuchClass").IsNone())

	c := nsObject(t)
	require.Equal(t, c, LookUpClass("NSObject"))
	require.Equal(t, c, LookupClass("NSObject").Value)
	require.Equal(t, "NSObject", c.Name())
	require.Equal(t, "NSObject", c.String())
}

func TestClassName(t *testing.T) {
	require.Equal(t, "nil", NilClass.Name())
	require.Equal(t, "nil", NilClass.String())

	c := nsObject(t)
	for i := 0; i < 3; i++ {
		require.Equal(t, "NSObject", c.Name())
		require.Equal(t, NilClass, c.Superclass())
	}
}

func TestMetaClass(t *testing.T) {
	c := nsObject(t)
	meta := GetMetaClass("NSObject")
	require.False(t, meta.IsNil())
	require.True(t, meta.IsMetaClass())
	require.False(t, c.IsMetaClass())
	require.Equal(t, meta, c.MetaClass())
	require.Equal(t, "NSObject", meta.Name())
	require.Equal(t, "meta NSObject", meta.String())
	require.NotEqual(t, c, meta)
}

func TestClassList(t *testing.T) {
	classes := ClassList()
	require.NotEmpty(t, classes)
	require.Contains(t, classes, nsObject(t))

	l := CopyClassList()
	require.Equal(t, len(classes), l.Len())
	require.False(t, l.Freed())
	l.Free()
	require.True(t, l.Freed())
	require.Zero(t, l.Len())
	l.Free()
	require.Nil(t, l.Slice())
	require.Panics(t, func() { l.At(0) })
}

func TestClassIntrospection(t *testing.T) {
	c := nsObject(t)
	require.NotZero(t, c.InstanceSize())

	isa := c.InstanceVariable("isa")
	if !isa.IsNil() {
		require.Equal(t, "isa", isa.Name())
		require.Zero(t, isa.Offset())
	}

	desc := Sel("description")
	m := c.InstanceMethod(desc)
	require.False(t, m.IsNil())
	require.Equal(t, desc, m.Name())
	require.Equal(t, 2, m.NumberOfArguments())
	require.Equal(t, "@", m.ReturnType())
	require.Equal(t, "@", m.ArgumentType(0))
	require.Equal(t, ":", m.ArgumentType(1))
	require.Equal(t, "", m.ArgumentType(5))
	sig, err := m.Signature()
	require.NoError(t, err)
	require.True(t, sig.Return.IsObject())
	require.Len(t, sig.Args, 2)

	require.False(t, c.ClassMethod(Sel("alloc")).IsNil())
	require.True(t, c.InstanceMethod(Sel("objcNoSuchMethod")).IsNil())
	require.True(t, c.RespondsToSelector(desc))
	require.False(t, c.RespondsToSelector(Sel("objcNoSuchMethod")))
	require.False(t, c.MethodImplementation(desc).IsNil())

	require.NotEmpty(t, c.Methods())

	p := GetProtocol("NSObject")
	require.False(t, p.IsNil())
	require.Equal(t, "NSObject", p.Name())
	require.True(t, c.ConformsToProtocol(p))
	require.Contains(t, c.Protocols(), p)
}

func TestImages(t *testing.T) {
	image := nsObject(t).ImageName()
	require.True(t, strings.HasSuffix(image, "libobjc.A.dylib"), image)
	require.Contains(t, ImageNames(), image)
	require.Contains(t, ClassNamesForImage(image), "NSObject")
}

func TestSelectors(t *testing.T) {
	a := RegisterName("objcTestSelector:")
	require.False(t, a.IsNil())
	require.Equal(t, a, Sel("objcTestSelector:"))
	require.Equal(t, a, GetUid("objcTestSelector:"))
	require.Equal(t, "objcTestSelector:", a.Name())
	require.NotEqual(t, a, RegisterName("objcTestSelector"))
	require.Equal(t, "<null selector>", SEL(0).Name())
}

func TestObjects(t *testing.T) {
	c := nsObject(t)
	obj := newObject(c)
	defer release(obj)

	require.False(t, obj.IsNil())
	require.Equal(t, c, obj.Class())
	require.Equal(t, "NSObject", obj.ClassName())
	require.True(t, strings.HasPrefix(obj.String(), "<NSObject: 0x"))
	require.Equal(t, "nil", Nil.String())
	require.Equal(t, NilClass, Nil.Class())

	other := newObject(c)
	defer release(other)
	require.NotEqual(t, obj, other)
	require.Equal(t, obj.Class(), other.Class())
}

func TestAssociatedObjects(t *testing.T) {
	c := nsObject(t)
	obj := newObject(c)
	defer release(obj)
	value := newObject(c)
	defer release(value)

	key := NewAssociationKey()
	require.NotEqual(t, key, NewAssociationKey())

	require.Equal(t, Nil, obj.AssociatedObject(key))
	obj.SetAssociatedObject(key, value, AssociationRetainNonatomic)
	require.Equal(t, value, obj.AssociatedObject(key))
	obj.RemoveAssociatedObjects()
	require.Equal(t, Nil, obj.AssociatedObject(key))
}

func TestConstructInstance(t *testing.T) {
	c := nsObject(t)
	var h keepalive.Holder
	defer h.Free()

	obj := c.ConstructInstance(h.Malloc(c.InstanceSize()))
	require.False(t, obj.IsNil())
	require.Equal(t, c, obj.Class())

	value := newObject(c)
	defer release(value)
	key := NewAssociationKey()
	obj.SetAssociatedObject(key, value, AssociationRetainNonatomic)
	require.Equal(t, value, obj.AssociatedObject(key))

	require.Equal(t, uintptr(obj), uintptr(obj.DestructInstance()))
}

func TestReplaceProperty(t *testing.T) {
	c := DefineClass("ObjcTestReplaceProperty", nsObject(t), nil)
	require.True(t, c.Property("level").IsNil())

	c.ReplaceProperty("level", PropertyAttribute{"T", "i"})
	v, ok := c.Property("level").AttributeValue("T")
	require.True(t, ok)
	require.Equal(t, "i", v)

	c.ReplaceProperty("level", PropertyAttribute{"T", "q"}, PropertyAttribute{"N", ""})
	require.Equal(t, "Tq,N", c.Property("level").Attributes())
}

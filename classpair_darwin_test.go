package objc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefineClassThing(t *testing.T) {
	super := nsObject(t)
	var builds, added int
	build := func(cp *ClassPair) {
		builds++
		if cp.AddMethod(Sel("doSomething"), func(self ID, _ SEL) ID { return self }) {
			added++
		}
		if cp.AddMethod(Sel("doSomethingElse"), func(self ID, _ SEL) ID { return self }) {
			added++
		}
	}

	var wg sync.WaitGroup
	classes := make([]Class, 8)
	for i := range classes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			classes[i] = DefineClass("Thing", super, build)
		}(i)
	}
	wg.Wait()
	require.Equal(t, 1, builds)
	require.Equal(t, 2, added)

	thing := classes[0]
	for _, c := range classes {
		require.Equal(t, thing, c)
	}
	require.Equal(t, thing, GetClass("Thing"))
	require.Equal(t, thing, DefinedClass("Thing").Value)
	require.Equal(t, super, thing.Superclass())
	require.Len(t, thing.Methods(), 2)

	m := thing.InstanceMethod(Sel("doSomething"))
	require.Equal(t, "@@:", m.TypeEncoding())
	require.True(t, IsGoIMP(m.Implementation()))

	seen := 0
	for _, c := range ClassList() {
		if c == thing {
			seen++
		}
	}
	require.Equal(t, 1, seen)
	require.NotEqual(t, NilClass, thing)

	obj := newObject(thing)
	require.Equal(t, "Thing", obj.ClassName())
	require.Equal(t, "NSObject", obj.Class().Superclass().Name())
	require.Equal(t, obj, Send[ID](obj, Sel("doSomething")))
	require.Equal(t, obj, Send[ID](obj, Sel("doSomethingElse")))
	Send[struct{}](obj, Sel("dealloc"))

	require.Panics(t, func() { DefineClass("Thing", thing, nil) })
	require.Panics(t, func() { DefineClass("NSObject", NilClass, nil) })
	require.True(t, DefinedClass("ObjcNeverDefined").IsNone())
}

func TestDefinedClassWhileDefining(t *testing.T) {
	super := nsObject(t)
	started := make(chan struct{})
	release := make(chan struct{})
	build := func(cp *ClassPair) {
		close(started)
		<-release
		cp.AddMethod(Sel("objcPing"), func(self ID, _ SEL) ID { return self })
	}

	var wg sync.WaitGroup
	var defined Class
	wg.Add(1)
	go func() {
		defer wg.Done()
		defined = DefineClass("ObjcTestDefining", super, build)
	}()
	<-started

	seen := make([]Optional[Class], 4)
	for i := range seen {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if o := DefinedClass("ObjcTestDefining"); o.IsSome() {
					seen[i] = o
					return
				}
			}
		}(i)
	}
	close(release)
	wg.Wait()

	require.False(t, defined.IsNil())
	for _, o := range seen {
		if o.IsSome() {
			require.Equal(t, defined, o.Value)
		}
	}
	require.Equal(t, defined, DefinedClass("ObjcTestDefining").Value)
}

func TestClassPairLifecycle(t *testing.T) {
	cp, ok := AllocateClassPair(nsObject(t), "ObjcTestLifecycle", 0)
	require.True(t, ok)
	require.Equal(t, "ObjcTestLifecycle", cp.Name())
	require.Equal(t, nsObject(t), cp.Superclass())
	require.True(t, cp.MetaClass().IsMetaClass())

	_, ok = AllocateClassPair(nsObject(t), "NSObject", 0)
	require.False(t, ok)

	require.True(t, AddIvarOf[int32](cp, "count"))
	require.False(t, AddIvarOf[int32](cp, "count"))
	require.True(t, cp.AddIvar("delegate", 8, 8, "@"))
	require.True(t, AddIvarOf[*ID](cp, "errorOut"))
	require.Panics(t, func() { cp.AddIvar("bad", 4, 3, "i") })
	require.True(t, cp.AddProperty("count", PropertyAttribute{"T", "i"}, PropertyAttribute{"N", ""}))
	require.True(t, cp.AddProtocol(GetProtocol("NSObject")))
	require.True(t, cp.AddClassMethod(Sel("objcAnswer"), func(Class, SEL) int { return 42 }))
	require.True(t, cp.AddMethod(Sel("objcFill:"), func(self ID, _ SEL, out *ID) bool {
		*out = self
		return true
	}))
	require.Panics(t, func() { cp.AddMethod(Sel("bad"), func(ID) {}) })

	c := cp.Register()
	require.True(t, cp.IsRegistered())
	require.Equal(t, c, GetClass("ObjcTestLifecycle"))

	count := c.InstanceVariable("count")
	require.False(t, count.IsNil())
	require.Equal(t, "i", count.TypeEncoding())
	require.Equal(t, "^@", c.InstanceVariable("errorOut").TypeEncoding())
	require.Equal(t, "B@:^@", c.InstanceMethod(Sel("objcFill:")).TypeEncoding())
	require.Equal(t, "Ti,N", c.Property("count").Attributes())
	v, ok := c.Property("count").AttributeValue("T")
	require.True(t, ok)
	require.Equal(t, "i", v)
	require.Equal(t, 42, Send[int](c.AsID(), Sel("objcAnswer")))

	obj := newObject(c)
	*(*int32)(obj.IvarAddr(count)) = 7
	require.Equal(t, int32(7), *(*int32)(obj.IvarAddr(count)))
	var out ID
	require.True(t, Send[bool](obj, Sel("objcFill:"), &out))
	require.Equal(t, obj, out)
	release(obj)

	require.False(t, cp.AddIvar("late", 4, 4, "i"))
	require.False(t, cp.AddMethod(Sel("late"), func(ID, SEL) {}))
	require.False(t, cp.AddProtocol(GetProtocol("NSObject")))
	require.Panics(t, func() { cp.Register() })
	require.Panics(t, func() { cp.Dispose() })
}

func TestClassPairDispose(t *testing.T) {
	cp, ok := AllocateClassPair(nsObject(t), "ObjcTestDisposed", 0)
	require.True(t, ok)
	require.True(t, cp.AddMethod(Sel("objcNothing"), func(ID, SEL) {}))
	methods := cp.Class().Methods()
	require.Len(t, methods, 1)
	imp := methods[0].Implementation()
	require.True(t, IsGoIMP(imp))

	cp.Dispose()
	require.False(t, IsGoIMP(imp))
	require.False(t, cp.IsRegistered())
	require.False(t, cp.AddMethod(Sel("objcNothing"), func(ID, SEL) {}))
	require.Panics(t, func() { cp.Dispose() })
	require.Panics(t, func() { cp.Register() })

	// the name is free again
	cp, ok = AllocateClassPair(nsObject(t), "ObjcTestDisposed", 0)
	require.True(t, ok)
	cp.Dispose()
}

func TestIvarLayoutOfNewClass(t *testing.T) {
	cp, ok := AllocateClassPair(nsObject(t), "ObjcTestLayout", 0)
	require.True(t, ok)
	require.True(t, AddIvarOf[ID](cp, "first"))
	require.True(t, AddIvarOf[uintptr](cp, "raw"))
	require.True(t, AddIvarOf[ID](cp, "second"))
	require.True(t, cp.SetIvarLayout(bitsOf(1, 3)))
	require.Equal(t, []uint{1, 3}, setBits(cp.Class().IvarLayout()))
	require.True(t, cp.SetWeakIvarLayout(nil))
	require.Empty(t, setBits(cp.Class().WeakIvarLayout()))

	cp.Register()
	require.False(t, cp.SetIvarLayout(bitsOf(1)))
}

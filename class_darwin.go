package objc

/*
#include <stdlib.h>
#include <objc/runtime.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/bits-and-blooms/bitset"

	"github.com/hsfzxjy/objc/internal/keepalive"
)

// GetClass returns the class named name, or NilClass. Unlike LookUpClass it
// gives the runtime's class handler a chance to load the class.
func GetClass(name string) Class {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Class(unsafe.Pointer(C.objc_getClass(cname)))
}

// LookUpClass returns the class named name, or NilClass, without invoking
// the class handler.
func LookUpClass(name string) Class {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Class(unsafe.Pointer(C.objc_lookUpClass(cname)))
}

// GetRequiredClass is GetClass, except that the runtime aborts the process
// when the class does not exist.
func GetRequiredClass(name string) Class {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Class(unsafe.Pointer(C.objc_getRequiredClass(cname)))
}

func GetMetaClass(name string) Class {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Class(unsafe.Pointer(C.objc_getMetaClass(cname)))
}

// LookupClass is GetClass reporting absence as None.
func LookupClass(name string) Optional[Class] {
	return OptionalOf(GetClass(name))
}

// ClassList returns every registered class.
func ClassList() []Class {
	l := CopyClassList()
	defer l.Free()
	return l.Copy()
}

func CopyClassList() *List[Class] {
	var n C.uint
	p := C.objc_copyClassList(&n)
	return newList[Class](unsafe.Pointer(p), int(n))
}

// Name returns the class name. The name of NilClass is "nil".
func (c Class) Name() string {
	return C.GoString(C.class_getName(c.cclass()))
}

func (c Class) Superclass() Class {
	return Class(unsafe.Pointer(C.class_getSuperclass(c.cclass())))
}

// MetaClass returns the class of the class object.
func (c Class) MetaClass() Class {
	return Class(unsafe.Pointer(C.object_getClass(c.AsID().cid())))
}

func (c Class) IsMetaClass() bool {
	return goBool(C.class_isMetaClass(c.cclass()))
}

func (c Class) InstanceSize() uintptr {
	return uintptr(C.class_getInstanceSize(c.cclass()))
}

func (c Class) InstanceVariable(name string) Ivar {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Ivar(unsafe.Pointer(C.class_getInstanceVariable(c.cclass(), cname)))
}

func (c Class) ClassVariable(name string) Ivar {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Ivar(unsafe.Pointer(C.class_getClassVariable(c.cclass(), cname)))
}

// Ivars returns the instance variables declared by c itself, not by its
// superclasses.
func (c Class) Ivars() []Ivar {
	l := c.CopyIvarList()
	defer l.Free()
	return l.Copy()
}

func (c Class) CopyIvarList() *List[Ivar] {
	var n C.uint
	p := C.class_copyIvarList(c.cclass(), &n)
	return newList[Ivar](unsafe.Pointer(p), int(n))
}

// IvarLayout returns the strong ivar layout of c, or nil if the runtime has
// none recorded.
func (c Class) IvarLayout() *bitset.BitSet {
	return decodeCLayout(C.class_getIvarLayout(c.cclass()))
}

func (c Class) WeakIvarLayout() *bitset.BitSet {
	return decodeCLayout(C.class_getWeakIvarLayout(c.cclass()))
}

func decodeCLayout(p *C.uint8_t) *bitset.BitSet {
	if p == nil {
		return nil
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return DecodeIvarLayout(unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
}

func (c Class) Property(name string) Property {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Property(unsafe.Pointer(C.class_getProperty(c.cclass(), cname)))
}

func (c Class) Properties() []Property {
	l := c.CopyPropertyList()
	defer l.Free()
	return l.Copy()
}

func (c Class) CopyPropertyList() *List[Property] {
	var n C.uint
	p := C.class_copyPropertyList(c.cclass(), &n)
	return newList[Property](unsafe.Pointer(p), int(n))
}

func (c Class) InstanceMethod(sel SEL) Method {
	return Method(unsafe.Pointer(C.class_getInstanceMethod(c.cclass(), sel.csel())))
}

func (c Class) ClassMethod(sel SEL) Method {
	return Method(unsafe.Pointer(C.class_getClassMethod(c.cclass(), sel.csel())))
}

// Methods returns the instance methods implemented by c itself.
func (c Class) Methods() []Method {
	l := c.CopyMethodList()
	defer l.Free()
	return l.Copy()
}

func (c Class) CopyMethodList() *List[Method] {
	var n C.uint
	p := C.class_copyMethodList(c.cclass(), &n)
	return newList[Method](unsafe.Pointer(p), int(n))
}

// MethodImplementation returns the function that would run if sel were sent
// to an instance of c. It may be the runtime's forwarding trampoline.
func (c Class) MethodImplementation(sel SEL) IMP {
	return IMP(unsafe.Pointer(C.class_getMethodImplementation(c.cclass(), sel.csel())))
}

// RespondsToSelector reports whether instances of c respond to sel.
func (c Class) RespondsToSelector(sel SEL) bool {
	return goBool(C.class_respondsToSelector(c.cclass(), sel.csel()))
}

func (c Class) ConformsToProtocol(p Protocol) bool {
	return goBool(C.class_conformsToProtocol(c.cclass(), p.cprotocol()))
}

func (c Class) Protocols() []Protocol {
	var n C.uint
	p := C.class_copyProtocolList(c.cclass(), &n)
	l := newList[Protocol](unsafe.Pointer(p), int(n))
	defer l.Free()
	return l.Copy()
}

// ReplaceMethod sets the implementation of sel on c, adding the method with
// the given type encoding if c does not implement it. It returns the previous
// implementation, or 0 if the method was added.
func (c Class) ReplaceMethod(sel SEL, imp IMP, types string) IMP {
	ctypes := C.CString(types)
	defer C.free(unsafe.Pointer(ctypes))
	return IMP(unsafe.Pointer(C.class_replaceMethod(c.cclass(), sel.csel(), imp.cimp(), ctypes)))
}

// ReplaceProperty sets the attributes of the property name on c, adding the
// property if c does not declare it.
func (c Class) ReplaceProperty(name string, attrs ...PropertyAttribute) {
	var h keepalive.Holder
	defer h.Free()
	cattrs, n := propertyAttributes(&h, attrs)
	C.class_replaceProperty(c.cclass(), (*C.char)(h.CStringPtr(name)), cattrs, n)
}

func (c Class) Version() int {
	return int(C.class_getVersion(c.cclass()))
}

func (c Class) SetVersion(version int) {
	C.class_setVersion(c.cclass(), C.int(version))
}

// ImageName returns the path of the image c was loaded from, or "" for
// classes created at run time.
func (c Class) ImageName() string {
	p := C.class_getImageName(c.cclass())
	if p == nil {
		return ""
	}
	return C.GoString(p)
}

// CreateInstance allocates an instance of c with extraBytes of indexed ivar
// space. The instance is not initialized; send it init.
func (c Class) CreateInstance(extraBytes uintptr) ID {
	return ID(unsafe.Pointer(C.class_createInstance(c.cclass(), C.size_t(extraBytes))))
}

// ConstructInstance turns the memory at bytes into an instance of c. bytes
// must be zeroed, outside the Go heap and at least InstanceSize long. It
// returns Nil if the instance cannot be constructed.
func (c Class) ConstructInstance(bytes unsafe.Pointer) ID {
	return ID(unsafe.Pointer(C.objc_constructInstance(c.cclass(), bytes)))
}

func (c Class) String() string {
	if c.IsNil() {
		return "nil"
	}
	if c.IsMetaClass() {
		return fmt.Sprintf("meta %s", c.Name())
	}
	return c.Name()
}

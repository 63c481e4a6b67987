package objc

/*
#include <stdlib.h>
#include <objc/runtime.h>
*/
import "C"

import (
	"fmt"
	"math/bits"
	"reflect"
	"sync"
	"unsafe"

	"github.com/bits-and-blooms/bitset"

	"github.com/hsfzxjy/objc/abi"
	"github.com/hsfzxjy/objc/encoding"
	"github.com/hsfzxjy/objc/internal/keepalive"
)

type pairState uint8

const (
	pairPending pairState = iota
	pairRegistered
	pairDisposed
)

func (s pairState) String() string {
	switch s {
	case pairRegistered:
		return "registered"
	case pairDisposed:
		return "disposed"
	default:
		return "pending"
	}
}

// ClassPair is a class and its metaclass that have been allocated but not yet
// registered. Instance variables can only be added at this stage.
//
// After Register or Dispose every Add and Set method reports false without
// touching the runtime, and calling Register or Dispose again panics.
type ClassPair struct {
	mu    sync.Mutex
	cls   Class
	name  string
	state pairState
	imps  []IMP
}

// AllocateClassPair creates a new class named name deriving from super (which
// may be NilClass for a new root class). It fails if a class of that name
// already exists.
func AllocateClassPair(super Class, name string, extraBytes uintptr) (*ClassPair, bool) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cls := Class(unsafe.Pointer(C.objc_allocateClassPair(super.cclass(), cname, C.size_t(extraBytes))))
	if cls.IsNil() {
		log.Debugf("allocating class pair %q failed", name)
		return nil, false
	}
	return &ClassPair{cls: cls, name: name}, true
}

func (cp *ClassPair) Name() string { return cp.name }

// Class returns the class being built. It can be used as a method argument
// type or a receiver before registration, but it is not usable for
// instantiation until Register.
func (cp *ClassPair) Class() Class { return cp.cls }

func (cp *ClassPair) MetaClass() Class { return cp.cls.MetaClass() }

func (cp *ClassPair) Superclass() Class { return cp.cls.Superclass() }

// lock acquires cp and reports whether it is still pending. Callers must
// unlock.
func (cp *ClassPair) lock(op string) bool {
	cp.mu.Lock()
	if cp.state != pairPending {
		log.Warningf("%s on class pair %q ignored: already %s", op, cp.name, cp.state)
		return false
	}
	return true
}

// AddIvar adds an instance variable of size bytes aligned to align bytes (a
// power of two) with the given type encoding.
func (cp *ClassPair) AddIvar(name string, size, align uintptr, types string) bool {
	if align == 0 || align&(align-1) != 0 {
		panic(fmt.Sprintf("objc: ivar alignment %d is not a power of two", align))
	}
	defer cp.mu.Unlock()
	if !cp.lock("AddIvar") {
		return false
	}
	var h keepalive.Holder
	defer h.Free()
	return goBool(C.class_addIvar(
		cp.cls.cclass(),
		(*C.char)(h.CStringPtr(name)),
		C.size_t(size),
		C.uint8_t(bits.TrailingZeros(uint(align))),
		(*C.char)(h.CStringPtr(types)),
	))
}

// AddIvarOf adds an instance variable whose size, alignment and encoding
// are those of T.
func AddIvarOf[T any](cp *ClassPair, name string) bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	size, err := abi.Size(t, host)
	if err != nil {
		panic(fmt.Sprintf("objc: ivar %s: %v", name, err))
	}
	align, _ := abi.Align(t, host)
	return cp.AddIvar(name, size, align, encoding.MustOf(t))
}

// AddMethod adds an instance method implemented by the Go function fn; see
// NewIMP for its form. It panics if fn is not a valid implementation.
func (cp *ClassPair) AddMethod(sel SEL, fn any) bool {
	return cp.addGoMethod("AddMethod", cp.cls, sel, fn)
}

// AddClassMethod is AddMethod for class methods; fn receives the class as
// its first argument, typed either ID or Class.
func (cp *ClassPair) AddClassMethod(sel SEL, fn any) bool {
	return cp.addGoMethod("AddClassMethod", cp.cls.MetaClass(), sel, fn)
}

func (cp *ClassPair) addGoMethod(op string, target Class, sel SEL, fn any) bool {
	defer cp.mu.Unlock()
	if !cp.lock(op) {
		return false
	}
	imp, types, err := NewIMP(fn)
	if err != nil {
		panic(err)
	}
	if !addMethod(target, sel, imp, types) {
		FreeIMP(imp)
		return false
	}
	cp.imps = append(cp.imps, imp)
	return true
}

// AddMethodIMP adds an instance method with an existing implementation.
func (cp *ClassPair) AddMethodIMP(sel SEL, imp IMP, types string) bool {
	defer cp.mu.Unlock()
	if !cp.lock("AddMethodIMP") {
		return false
	}
	return addMethod(cp.cls, sel, imp, types)
}

func addMethod(c Class, sel SEL, imp IMP, types string) bool {
	ctypes := C.CString(types)
	defer C.free(unsafe.Pointer(ctypes))
	return goBool(C.class_addMethod(c.cclass(), sel.csel(), imp.cimp(), ctypes))
}

func (cp *ClassPair) AddProtocol(p Protocol) bool {
	defer cp.mu.Unlock()
	if !cp.lock("AddProtocol") {
		return false
	}
	return goBool(C.class_addProtocol(cp.cls.cclass(), p.cprotocol()))
}

func (cp *ClassPair) AddProperty(name string, attrs ...PropertyAttribute) bool {
	defer cp.mu.Unlock()
	if !cp.lock("AddProperty") {
		return false
	}
	var h keepalive.Holder
	defer h.Free()
	cattrs, n := propertyAttributes(&h, attrs)
	return goBool(C.class_addProperty(cp.cls.cclass(), (*C.char)(h.CStringPtr(name)), cattrs, n))
}

// SetIvarLayout records which words of an instance hold strong references.
func (cp *ClassPair) SetIvarLayout(layout *bitset.BitSet) bool {
	return cp.setLayout("SetIvarLayout", layout, false)
}

func (cp *ClassPair) SetWeakIvarLayout(layout *bitset.BitSet) bool {
	return cp.setLayout("SetWeakIvarLayout", layout, true)
}

func (cp *ClassPair) setLayout(op string, layout *bitset.BitSet, weak bool) bool {
	defer cp.mu.Unlock()
	if !cp.lock(op) {
		return false
	}
	var h keepalive.Holder
	defer h.Free()
	p := (*C.uint8_t)(h.Bytes(EncodeIvarLayout(layout)))
	if weak {
		C.class_setWeakIvarLayout(cp.cls.cclass(), p)
	} else {
		C.class_setIvarLayout(cp.cls.cclass(), p)
	}
	return true
}

// Register makes the class available to the runtime and returns it. It
// panics if the pair was already registered or disposed.
func (cp *ClassPair) Register() Class {
	defer cp.mu.Unlock()
	if !cp.lock("Register") {
		panic(fmt.Sprintf("objc: class pair %q already %s", cp.name, cp.state))
	}
	C.objc_registerClassPair(cp.cls.cclass())
	cp.state = pairRegistered
	log.Debugf("registered class %q", cp.name)
	return cp.cls
}

// Dispose destroys an unregistered pair and frees the Go IMPs added to it.
// It panics if the pair was already registered or disposed.
func (cp *ClassPair) Dispose() {
	defer cp.mu.Unlock()
	if !cp.lock("Dispose") {
		panic(fmt.Sprintf("objc: class pair %q already %s", cp.name, cp.state))
	}
	C.objc_disposeClassPair(cp.cls.cclass())
	for _, imp := range cp.imps {
		FreeIMP(imp)
	}
	cp.imps = nil
	cp.state = pairDisposed
}

func (cp *ClassPair) IsRegistered() bool {
	cp.mu.Lock()
	defer cp.mu.Unlock()
	return cp.state == pairRegistered
}

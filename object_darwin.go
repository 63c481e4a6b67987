package objc

/*
#include <stdlib.h>
#include <objc/runtime.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// ISA reads the class pointer stored in the first word of the object. This
// is wrong for tagged pointers and for non-pointer isa fields; Class is the
// reliable form.
func (id ID) ISA() Class {
	if id.IsNil() {
		return NilClass
	}
	return *(*Class)(unsafe.Pointer(id))
}

// Class returns the class of the object, or NilClass for Nil.
func (id ID) Class() Class {
	return Class(unsafe.Pointer(C.object_getClass(id.cid())))
}

func (id ID) ClassName() string {
	return C.GoString(C.object_getClassName(id.cid()))
}

// SetClass changes the class of the object and returns the previous one.
func (id ID) SetClass(c Class) Class {
	return Class(unsafe.Pointer(C.object_setClass(id.cid(), c.cclass())))
}

// Copy returns a bitwise copy of the object of the given size.
func (id ID) Copy(size uintptr) ID {
	return ID(unsafe.Pointer(C.object_copy(id.cid(), C.size_t(size))))
}

// Dispose frees the object's memory without running dealloc. It always
// returns Nil.
func (id ID) Dispose() ID {
	return ID(unsafe.Pointer(C.object_dispose(id.cid())))
}

// DestructInstance releases the ivars and associated objects of an instance
// made by ConstructInstance without freeing its memory, which it returns.
func (id ID) DestructInstance() unsafe.Pointer {
	return C.objc_destructInstance(id.cid())
}

// Ivar reads an object-typed instance variable.
func (id ID) Ivar(v Ivar) ID {
	return ID(unsafe.Pointer(C.object_getIvar(id.cid(), v.civar())))
}

// SetIvar writes an object-typed instance variable without retaining value.
func (id ID) SetIvar(v Ivar, value ID) {
	C.object_setIvar(id.cid(), v.civar(), value.cid())
}

// IvarAddr returns the address of an instance variable of any type.
func (id ID) IvarAddr(v Ivar) unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(id), v.Offset())
}

// IndexedIvars returns the extra bytes allocated past the declared ivars.
func (id ID) IndexedIvars() unsafe.Pointer {
	return C.object_getIndexedIvars(id.cid())
}

// AssociationKey identifies an associated object slot. Keys are compared by
// address.
type AssociationKey uintptr

// NewAssociationKey returns a key that is distinct from every other key. Keys
// are never freed.
func NewAssociationKey() AssociationKey {
	return AssociationKey(unsafe.Pointer(C.malloc(1)))
}

func (k AssociationKey) ptr() unsafe.Pointer { return unsafe.Pointer(k) }

func (id ID) SetAssociatedObject(key AssociationKey, value ID, policy AssociationPolicy) {
	C.objc_setAssociatedObject(id.cid(), key.ptr(), value.cid(), C.objc_AssociationPolicy(policy))
}

func (id ID) AssociatedObject(key AssociationKey) ID {
	return ID(unsafe.Pointer(C.objc_getAssociatedObject(id.cid(), key.ptr())))
}

func (id ID) RemoveAssociatedObjects() {
	C.objc_removeAssociatedObjects(id.cid())
}

func (id ID) String() string {
	if id.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("<%s: %#x>", id.ClassName(), uintptr(id))
}

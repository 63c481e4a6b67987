package objc

/*
#include <stdlib.h>
#include <objc/runtime.h>
*/
import "C"

import (
	"unsafe"

	"github.com/hsfzxjy/objc/internal/keepalive"
)

func (p Property) Name() string {
	if p.IsNil() {
		return ""
	}
	return C.GoString(C.property_getName(p.cproperty()))
}

// Attributes returns the attribute string, such as `T@"NSString",C,N,V_name`.
func (p Property) Attributes() string {
	if p.IsNil() {
		return ""
	}
	return C.GoString(C.property_getAttributes(p.cproperty()))
}

// AttributeValue returns the value of a single attribute and whether it is
// present.
func (p Property) AttributeValue(name string) (string, bool) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	v := C.property_copyAttributeValue(p.cproperty(), cname)
	if v == nil {
		return "", false
	}
	return goStringAndFree(v), true
}

func GetProtocol(name string) Protocol {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Protocol(unsafe.Pointer(C.objc_getProtocol(cname)))
}

func (p Protocol) Name() string {
	if p.IsNil() {
		return ""
	}
	return C.GoString(C.protocol_getName(p.cprotocol()))
}

func (p Protocol) String() string { return p.Name() }

// propertyAttributes lays attrs out as a C array of objc_property_attribute_t
// owned by h.
func propertyAttributes(h *keepalive.Holder, attrs []PropertyAttribute) (*C.objc_property_attribute_t, C.uint) {
	if len(attrs) == 0 {
		return nil, 0
	}
	size := unsafe.Sizeof(C.objc_property_attribute_t{})
	p := h.Malloc(size * uintptr(len(attrs)))
	cattrs := unsafe.Slice((*C.objc_property_attribute_t)(p), len(attrs))
	for i, a := range attrs {
		cattrs[i].name = (*C.char)(h.CStringPtr(a.Name))
		cattrs[i].value = (*C.char)(h.CStringPtr(a.Value))
	}
	return (*C.objc_property_attribute_t)(p), C.uint(len(attrs))
}

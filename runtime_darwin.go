package objc

/*
#cgo LDFLAGS: -lobjc
#include <stdlib.h>
#include <objc/runtime.h>
#include <objc/message.h>

static BOOL objc_bool(int b) { return b ? YES : NO; }
static int objc_int(BOOL b) { return b ? 1 : 0; }
*/
import "C"

import (
	"unsafe"
)

func (c Class) cclass() C.Class    { return (C.Class)(unsafe.Pointer(c)) }
func (id ID) cid() C.id            { return (C.id)(unsafe.Pointer(id)) }
func (s SEL) csel() C.SEL          { return (C.SEL)(unsafe.Pointer(s)) }
func (m Method) cmethod() C.Method { return (C.Method)(unsafe.Pointer(m)) }
func (v Ivar) civar() C.Ivar       { return (C.Ivar)(unsafe.Pointer(v)) }
func (i IMP) cimp() C.IMP          { return (C.IMP)(unsafe.Pointer(i)) }

func (p Property) cproperty() C.objc_property_t {
	return (C.objc_property_t)(unsafe.Pointer(p))
}

func (p Protocol) cprotocol() *C.Protocol {
	return (*C.Protocol)(unsafe.Pointer(p))
}

// BOOL is signed char on x86_64 and bool on arm64
func goBool(b C.BOOL) bool { return C.objc_int(b) != 0 }

func cBool(b bool) C.BOOL {
	if b {
		return C.objc_bool(1)
	}
	return C.objc_bool(0)
}

// goStringAndFree copies and frees a string the runtime allocated for the
// caller.
func goStringAndFree(s *C.char) string {
	if s == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(s))
	return C.GoString(s)
}

func goStrings(p **C.char, n C.uint) []string {
	if p == nil {
		return nil
	}
	defer C.free(unsafe.Pointer(p))
	cs := unsafe.Slice(p, int(n))
	out := make([]string, len(cs))
	for i, s := range cs {
		out[i] = C.GoString(s)
	}
	return out
}

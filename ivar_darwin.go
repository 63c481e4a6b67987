package objc

/*
#include <objc/runtime.h>
*/
import "C"

func (v Ivar) Name() string {
	p := C.ivar_getName(v.civar())
	if p == nil {
		return ""
	}
	return C.GoString(p)
}

func (v Ivar) TypeEncoding() string {
	p := C.ivar_getTypeEncoding(v.civar())
	if p == nil {
		return ""
	}
	return C.GoString(p)
}

// Offset is the byte offset of the variable within instances of the class
// the Ivar was obtained from.
func (v Ivar) Offset() uintptr {
	return uintptr(C.ivar_getOffset(v.civar()))
}

func (v Ivar) String() string {
	if v.IsNil() {
		return "nil"
	}
	return v.Name()
}

package objc

/*
#include <stdlib.h>
#include <objc/runtime.h>
*/
import "C"

import (
	"unsafe"

	"github.com/hsfzxjy/objc/encoding"
)

func (m Method) Name() SEL {
	return SEL(unsafe.Pointer(C.method_getName(m.cmethod())))
}

func (m Method) Implementation() IMP {
	return IMP(unsafe.Pointer(C.method_getImplementation(m.cmethod())))
}

// TypeEncoding returns the method's type string, stack offsets included.
func (m Method) TypeEncoding() string {
	p := C.method_getTypeEncoding(m.cmethod())
	if p == nil {
		return ""
	}
	return C.GoString(p)
}

func (m Method) ReturnType() string {
	return goStringAndFree(C.method_copyReturnType(m.cmethod()))
}

// ArgumentType returns the encoding of argument i, counting the receiver and
// the selector, or "" if there is no such argument.
func (m Method) ArgumentType(i int) string {
	return goStringAndFree(C.method_copyArgumentType(m.cmethod(), C.uint(i)))
}

func (m Method) NumberOfArguments() int {
	return int(C.method_getNumberOfArguments(m.cmethod()))
}

// SetImplementation installs imp and returns the previous implementation.
func (m Method) SetImplementation(imp IMP) IMP {
	return IMP(unsafe.Pointer(C.method_setImplementation(m.cmethod(), imp.cimp())))
}

func (m Method) ExchangeImplementations(other Method) {
	C.method_exchangeImplementations(m.cmethod(), other.cmethod())
}

// Signature parses TypeEncoding.
func (m Method) Signature() (encoding.Signature, error) {
	return encoding.ParseSignature(m.TypeEncoding())
}

func (m Method) String() string {
	if m.IsNil() {
		return "nil"
	}
	return m.Name().Name()
}

package foundation

/*
#cgo LDFLAGS: -framework Foundation
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/hsfzxjy/objc"
)

func ObjectOf(id objc.ID) NSObject { return NSObject{id} }
func StringOf(id objc.ID) NSString { return NSString{NSObject{id}} }

// NewObject returns a new NSObject owned by the caller.
func NewObject() NSObject { return ObjectOf(NSObjectNew()) }

// String returns the description of the object.
func (o NSObject) String() string {
	if o.ID.IsNil() {
		return "nil"
	}
	return StringOf(o.Description()).String()
}

// NewString returns an NSString holding a copy of s, owned by the caller.
// s must not contain NUL bytes.
func NewString(s string) NSString {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	str := StringOf(objc.Send[objc.ID](NSStringClass().AsID(), selNSObjectAlloc))
	return StringOf(str.InitWithUTF8String(unsafe.Pointer(cs)))
}

// String copies the contents into Go memory.
func (s NSString) String() string {
	p := s.UTF8String()
	if p == nil {
		return ""
	}
	return C.GoString((*C.char)(p))
}

package foundation

//lint:file-ignore U1000 read by objc-gen

import (
	"unsafe"

	"github.com/hsfzxjy/objc"
)

//objc:class NSString NSObject
type nsString interface {
	//objc:class-method
	//objc:selector stringWithUTF8String:
	WithUTF8String(s unsafe.Pointer) objc.ID

	InitWithUTF8String(s unsafe.Pointer) objc.ID
	UTF8String() unsafe.Pointer
	Length() uint
	IsEqualToString(other objc.ID) bool
}

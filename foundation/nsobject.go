package foundation

//lint:file-ignore U1000 read by objc-gen

import (
	"github.com/hsfzxjy/objc"
)

//objc:class NSObject
type nsObject interface {
	//objc:class-method
	Alloc() objc.ID
	//objc:class-method
	New() objc.ID
	//objc:class-method
	Initialize()
	//objc:class-method
	Load()
	//objc:class-method
	IsSubclassOfClass(c objc.Class) bool

	Init() objc.ID
	Copy() objc.ID
	MutableCopy() objc.ID
	Dealloc()
	Release()
	Retain() objc.ID
	Autorelease() objc.ID

	Class() objc.Class
	Superclass() objc.Class
	IsKindOfClass(c objc.Class) bool
	RespondsToSelector(sel objc.SEL) bool

	Description() objc.ID
	Hash() uint
	IsEqual(other objc.ID) bool
}

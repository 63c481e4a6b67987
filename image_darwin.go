package objc

/*
#include <stdlib.h>
#include <objc/runtime.h>
*/
import "C"

import (
	"unsafe"
)

// ImageNames returns the paths of every loaded image that contains
// Objective-C metadata.
func ImageNames() []string {
	var n C.uint
	return goStrings(C.objc_copyImageNames(&n), n)
}

func ClassNamesForImage(image string) []string {
	cimage := C.CString(image)
	defer C.free(unsafe.Pointer(cimage))
	var n C.uint
	return goStrings(C.objc_copyClassNamesForImage(cimage, &n), n)
}

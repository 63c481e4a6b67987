package objc

/*
#include <stdlib.h>
#include <objc/runtime.h>
*/
import "C"

import (
	"unsafe"

	"github.com/puzpuzpuz/xsync/v2"
)

type _selectorTable struct {
	m *xsync.MapOf[string, SEL]
}

// selectors are never unregistered, so the table only grows
var selectorTable _selectorTable

func init() {
	selectorTable.m = xsync.NewMapOf[SEL]()
}

// RegisterName registers name with the runtime if needed and returns its
// selector. Results are cached, so repeated calls do not cross into C.
func RegisterName(name string) SEL {
	if sel, ok := selectorTable.m.Load(name); ok {
		return sel
	}
	sel, _ := selectorTable.m.LoadOrCompute(name, func() SEL {
		cname := C.CString(name)
		defer C.free(unsafe.Pointer(cname))
		return SEL(unsafe.Pointer(C.sel_registerName(cname)))
	})
	return sel
}

// Sel is a short form of RegisterName.
func Sel(name string) SEL { return RegisterName(name) }

// GetUid is the runtime's older spelling of RegisterName. It bypasses the
// cache.
func GetUid(name string) SEL {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return SEL(unsafe.Pointer(C.sel_getUid(cname)))
}

func (s SEL) Name() string {
	if s.IsNil() {
		return "<null selector>"
	}
	return C.GoString(C.sel_getName(s.csel()))
}

func (s SEL) String() string { return s.Name() }

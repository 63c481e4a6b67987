// Package keepalive owns C heap memory that must outlive a single cgo call,
// such as argument vectors handed to libffi and C strings passed to the
// runtime, and releases it in one go.
package keepalive

/*
#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"sync"
	"unsafe"
)

type node struct {
	data unsafe.Pointer
	next *node
}

var pool = sync.Pool{
	New: func() any { return new(node) },
}

// Holder is a list of C allocations. The zero value is ready to use. A Holder
// must not be copied after first use.
type Holder struct {
	head *node
	n    int
}

// Add takes ownership of p, which must come from malloc.
func (h *Holder) Add(p unsafe.Pointer) {
	if p == nil {
		return
	}
	node := pool.Get().(*node)
	node.data = p
	node.next = h.head
	h.head = node
	h.n++
}

// Malloc returns n zeroed bytes that live until Free.
func (h *Holder) Malloc(n uintptr) unsafe.Pointer {
	if n == 0 {
		n = 1
	}
	p := C.calloc(1, C.size_t(n))
	if p == nil {
		panic("objc: out of memory")
	}
	h.Add(p)
	return p
}

// CString copies s to the C heap as a NUL terminated string.
func (h *Holder) CString(s string) *C.char {
	cs := C.CString(s)
	h.Add(unsafe.Pointer(cs))
	return cs
}

// CStringPtr is CString for callers in other cgo packages, whose C.char is a
// distinct type.
func (h *Holder) CStringPtr(s string) unsafe.Pointer {
	return unsafe.Pointer(h.CString(s))
}

// Bytes copies b to the C heap.
func (h *Holder) Bytes(b []byte) unsafe.Pointer {
	p := h.Malloc(uintptr(len(b)))
	if len(b) > 0 {
		C.memcpy(p, unsafe.Pointer(&b[0]), C.size_t(len(b)))
	}
	return p
}

// Pointers allocates a C array of n pointers.
func (h *Holder) Pointers(n int) []unsafe.Pointer {
	if n == 0 {
		return nil
	}
	p := h.Malloc(uintptr(n) * unsafe.Sizeof(uintptr(0)))
	return unsafe.Slice((*unsafe.Pointer)(p), n)
}

func (h *Holder) Len() int { return h.n }

// Free releases every allocation. The Holder can be reused afterwards.
func (h *Holder) Free() {
	n := h.head
	for n != nil {
		p := n.next
		C.free(n.data)
		n.data = nil
		n.next = nil
		pool.Put(n)
		n = p
	}
	h.head = nil
	h.n = 0
}

package objc

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"
)

type listElem interface {
	Class | Method | Ivar | Property | Protocol
}

// List is a view of an array the runtime allocated for the caller. It must
// be released with Free; slices obtained from Slice are invalid afterwards.
type List[T listElem] struct {
	p unsafe.Pointer
	n int
}

func newList[T listElem](p unsafe.Pointer, n int) *List[T] {
	if p == nil {
		n = 0
	}
	return &List[T]{p: p, n: n}
}

func (l *List[T]) Len() int { return l.n }

func (l *List[T]) At(i int) T {
	if i < 0 || i >= l.n {
		panic("objc: list index out of range")
	}
	return l.Slice()[i]
}

// Slice returns the elements in place, without copying.
func (l *List[T]) Slice() []T {
	if l.p == nil {
		return nil
	}
	return unsafe.Slice((*T)(l.p), l.n)
}

// Copy returns the elements in Go memory.
func (l *List[T]) Copy() []T {
	if l.p == nil {
		return nil
	}
	return append([]T(nil), l.Slice()...)
}

// Free releases the runtime's buffer. Calling it again does nothing.
func (l *List[T]) Free() {
	if l.p == nil {
		return
	}
	C.free(l.p)
	l.p = nil
	l.n = 0
}

func (l *List[T]) Freed() bool { return l.p == nil }

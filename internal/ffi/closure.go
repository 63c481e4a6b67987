package ffi

/*
#ifdef __APPLE__
#include <ffi/ffi.h>
#else
#include <ffi.h>
#endif
#include <stdint.h>
*/
import "C"

import (
	"fmt"
	"reflect"
	"sync/atomic"
	"unsafe"

	xsync "github.com/puzpuzpuz/xsync/v2"
)

// Handler receives the argument slots and the result slot of a closure call.
// args[i] points to the value of argument i.
type Handler func(args []unsafe.Pointer, ret unsafe.Pointer)

// Closure is executable code that calls a Go Handler with the C signature of
// its CIF.
type Closure struct {
	id      uintptr
	cif     *CIF
	handler Handler
	mem     unsafe.Pointer
	code    unsafe.Pointer
}

var (
	closures      = xsync.NewIntegerMapOf[uintptr, *Closure]()
	nextClosureID atomic.Uintptr
)

func NewClosure(cif *CIF, handler Handler) (*Closure, error) {
	c := &Closure{cif: cif, handler: handler}
	for n := 0; n < 10; n++ {
		c.id = nextClosureID.Add(1)
		if _, loaded := closures.LoadOrStore(c.id, c); !loaded {
			goto STORED
		}
	}
	panic("objc: too many live closures")

STORED:
	c.mem, c.code = closureAlloc()
	if c.mem == nil {
		closures.Delete(c.id)
		panic("objc: out of memory")
	}
	if st := closurePrep(c.mem, cif, c.id, c.code); st != 0 {
		closureFree(c.mem)
		closures.Delete(c.id)
		return nil, fmt.Errorf("%w: closure status %d", ErrPrep, st)
	}
	return c, nil
}

// Code is the C function pointer of c.
func (c *Closure) Code() unsafe.Pointer { return c.code }

// Free releases c. Calling its code afterwards is undefined.
func (c *Closure) Free() {
	if _, loaded := closures.LoadAndDelete(c.id); !loaded {
		return
	}
	closureFree(c.mem)
	c.mem, c.code = nil, nil
}

// FuncHandler adapts a Go function whose signature matches cif to a Handler.
// Arguments are copied out of their slots and the result is written back,
// widened to a full register for narrow integral types as libffi expects.
func FuncHandler(cif *CIF, fn reflect.Value) Handler {
	return func(args []unsafe.Pointer, ret unsafe.Pointer) {
		in := make([]reflect.Value, len(cif.Args))
		for i, t := range cif.Args {
			v := reflect.New(t).Elem()
			v.Set(reflect.NewAt(t, args[i]).Elem())
			in[i] = v
		}
		out := fn.Call(in)
		if cif.Ret != nil {
			WriteReturn(ret, out[0])
		}
	}
}

// WriteReturn stores v into a closure result slot.
func WriteReturn(ret unsafe.Pointer, v reflect.Value) {
	switch v.Kind() {
	case reflect.Bool:
		var b C.ffi_arg
		if v.Bool() {
			b = 1
		}
		*(*C.ffi_arg)(ret) = b
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		*(*C.ffi_arg)(ret) = C.ffi_arg(v.Uint())
	case reflect.Int8, reflect.Int16, reflect.Int32:
		*(*C.ffi_sarg)(ret) = C.ffi_sarg(v.Int())
	default:
		reflect.NewAt(v.Type(), ret).Elem().Set(v)
	}
}

//export objcffiInvoke
func objcffiInvoke(_ *C.ffi_cif, ret unsafe.Pointer, args *unsafe.Pointer, user C.uintptr_t) {
	c, ok := closures.Load(uintptr(user))
	if !ok {
		panic(fmt.Sprintf("objc: closure %d not exist", uintptr(user)))
	}
	n := len(c.cif.Args)
	var argv []unsafe.Pointer
	if n > 0 {
		argv = unsafe.Slice(args, n)
	}
	c.handler(argv, ret)
}

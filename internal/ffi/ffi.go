// Package ffi calls C functions and builds C function pointers from Go with
// libffi, describing signatures with Go types.
package ffi

/*
#cgo darwin LDFLAGS: -lffi
#cgo linux pkg-config: libffi
#ifdef __APPLE__
#include <ffi/ffi.h>
#else
#include <ffi.h>
#endif
#include <stdint.h>
#include <stdlib.h>

static ffi_cif* objcffi_alloc_cif(void) {
	return (ffi_cif*)calloc(1, sizeof(ffi_cif));
}

static int objcffi_prep_cif(ffi_cif* cif, unsigned int nargs, ffi_type* rtype, ffi_type** atypes) {
	return ffi_prep_cif(cif, FFI_DEFAULT_ABI, nargs, rtype, atypes);
}

// generic void* fn avoids cgo function pointer typing at the call site
static void objcffi_call(ffi_cif* cif, void* fn, void* rvalue, void** avalue) {
	ffi_call(cif, (void (*)(void))fn, rvalue, avalue);
}

static ffi_type* objcffi_new_struct(size_t n) {
	ffi_type* t = (ffi_type*)calloc(1, sizeof(ffi_type));
	if (t == NULL) return NULL;
	t->type = FFI_TYPE_STRUCT;
	t->elements = (ffi_type**)calloc(n + 1, sizeof(ffi_type*));
	if (t->elements == NULL) { free(t); return NULL; }
	return t;
}

static void objcffi_set_element(ffi_type* t, size_t i, ffi_type* e) {
	t->elements[i] = e;
}

static void objcffi_free_struct(ffi_type* t) {
	free(t->elements);
	free(t);
}

static size_t objcffi_arg_size(void) {
	return sizeof(ffi_arg);
}

extern void objcffiInvoke(ffi_cif*, void*, void**, uintptr_t);

static void objcffi_thunk(ffi_cif* cif, void* ret, void** args, void* user) {
	objcffiInvoke(cif, ret, args, (uintptr_t)user);
}

static void* objcffi_closure_alloc(void** code) {
	return ffi_closure_alloc(sizeof(ffi_closure), code);
}

static int objcffi_prep_closure(void* closure, ffi_cif* cif, uintptr_t user, void* code) {
	return ffi_prep_closure_loc((ffi_closure*)closure, cif, objcffi_thunk, (void*)user, code);
}

static void objcffi_closure_free(void* closure) {
	ffi_closure_free(closure);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"hash/maphash"
	"reflect"
	"runtime"
	"strconv"
	"strings"
	"unsafe"

	xsync "github.com/puzpuzpuz/xsync/v2"

	"github.com/hsfzxjy/objc/abi"
	"github.com/hsfzxjy/objc/internal/keepalive"
)

var ErrPrep = errors.New("ffi: prep failed")

var (
	types = xsync.NewTypedMapOf[reflect.Type, *C.ffi_type](hashType)
	cifs  = xsync.NewMapOf[*CIF]()
)

func hashType(seed maphash.Seed, t reflect.Type) uint64 {
	return maphash.String(seed, t.String())
}

var argSize = uintptr(C.objcffi_arg_size())

func typeOf(t reflect.Type) (*C.ffi_type, error) {
	if t == nil {
		return &C.ffi_type_void, nil
	}
	if ft, ok := types.Load(t); ok {
		return ft, nil
	}
	ft, built, err := buildType(t)
	if err != nil {
		return nil, err
	}
	actual, loaded := types.LoadOrStore(t, ft)
	if loaded && built {
		C.objcffi_free_struct(ft)
	}
	return actual, nil
}

func buildType(t reflect.Type) (ft *C.ffi_type, built bool, err error) {
	switch t.Kind() {
	case reflect.Bool, reflect.Uint8:
		return &C.ffi_type_uint8, false, nil
	case reflect.Int8:
		return &C.ffi_type_sint8, false, nil
	case reflect.Int16:
		return &C.ffi_type_sint16, false, nil
	case reflect.Uint16:
		return &C.ffi_type_uint16, false, nil
	case reflect.Int32:
		return &C.ffi_type_sint32, false, nil
	case reflect.Uint32:
		return &C.ffi_type_uint32, false, nil
	case reflect.Int64:
		return &C.ffi_type_sint64, false, nil
	case reflect.Uint64:
		return &C.ffi_type_uint64, false, nil
	case reflect.Int:
		if t.Size() == 4 {
			return &C.ffi_type_sint32, false, nil
		}
		return &C.ffi_type_sint64, false, nil
	case reflect.Uint:
		if t.Size() == 4 {
			return &C.ffi_type_uint32, false, nil
		}
		return &C.ffi_type_uint64, false, nil
	case reflect.Uintptr, reflect.Pointer, reflect.UnsafePointer:
		return &C.ffi_type_pointer, false, nil
	case reflect.Float32:
		return &C.ffi_type_float, false, nil
	case reflect.Float64:
		return &C.ffi_type_double, false, nil
	}

	// aggregates must have a C layout before libffi sees them
	if _, err := abi.Size(t, abi.Host()); err != nil {
		return nil, false, err
	}
	var elems []reflect.Type
	switch t.Kind() {
	case reflect.Complex64:
		elems = []reflect.Type{reflect.TypeOf(float32(0)), reflect.TypeOf(float32(0))}
	case reflect.Complex128:
		elems = []reflect.Type{reflect.TypeOf(float64(0)), reflect.TypeOf(float64(0))}
	case reflect.Array:
		// libffi has no array type, a struct of n elements lays out the same
		for i := 0; i < t.Len(); i++ {
			elems = append(elems, t.Elem())
		}
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			elems = append(elems, t.Field(i).Type)
		}
	default:
		return nil, false, fmt.Errorf("%w: %s", abi.ErrUnsupported, t)
	}
	if len(elems) == 0 {
		return nil, false, fmt.Errorf("%w: empty aggregate %s", abi.ErrUnsupported, t)
	}
	ft = C.objcffi_new_struct(C.size_t(len(elems)))
	if ft == nil {
		panic("objc: out of memory")
	}
	for i, et := range elems {
		eft, err := typeOf(et)
		if err != nil {
			C.objcffi_free_struct(ft)
			return nil, false, err
		}
		C.objcffi_set_element(ft, C.size_t(i), eft)
	}
	return ft, true, nil
}

// CIF is a prepared call interface. CIFs are cached per signature and live
// for the life of the process.
type CIF struct {
	cif   *C.ffi_cif
	atys  **C.ffi_type
	Ret   reflect.Type
	Args  []reflect.Type
	rsize uintptr
}

func signatureKey(ret *C.ffi_type, args []*C.ffi_type) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(uintptr(unsafe.Pointer(ret))), 16))
	for _, a := range args {
		b.WriteByte(',')
		b.WriteString(strconv.FormatUint(uint64(uintptr(unsafe.Pointer(a))), 16))
	}
	return b.String()
}

// Prep returns the call interface for a C function returning ret (nil for
// void) and taking args.
func Prep(ret reflect.Type, args ...reflect.Type) (*CIF, error) {
	rft, err := typeOf(ret)
	if err != nil {
		return nil, fmt.Errorf("result: %w", err)
	}
	afts := make([]*C.ffi_type, len(args))
	for i, a := range args {
		if afts[i], err = typeOf(a); err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
	}
	key := signatureKey(rft, afts)
	if c, ok := cifs.Load(key); ok {
		return c, nil
	}

	c := &CIF{
		cif:  C.objcffi_alloc_cif(),
		Ret:  ret,
		Args: append([]reflect.Type(nil), args...),
	}
	if c.cif == nil {
		panic("objc: out of memory")
	}
	if len(afts) > 0 {
		mem := C.calloc(C.size_t(len(afts)), C.size_t(unsafe.Sizeof(uintptr(0))))
		if mem == nil {
			panic("objc: out of memory")
		}
		copy(unsafe.Slice((**C.ffi_type)(mem), len(afts)), afts)
		c.atys = (**C.ffi_type)(mem)
	}
	if st := C.objcffi_prep_cif(c.cif, C.uint(len(afts)), rft, c.atys); st != C.FFI_OK {
		c.free()
		return nil, fmt.Errorf("%w: status %d", ErrPrep, int(st))
	}
	c.rsize = argSize
	if ret != nil && ret.Size() > c.rsize {
		c.rsize = ret.Size()
	}

	actual, loaded := cifs.LoadOrStore(key, c)
	if loaded {
		c.free()
	}
	return actual, nil
}

// PrepFunc is Prep for the signature of the Go function type fn.
func PrepFunc(fn reflect.Type) (*CIF, error) {
	if fn.Kind() != reflect.Func || fn.IsVariadic() || fn.NumOut() > 1 {
		return nil, fmt.Errorf("%w: %s has no C signature", abi.ErrUnsupported, fn)
	}
	var ret reflect.Type
	if fn.NumOut() == 1 {
		ret = fn.Out(0)
	}
	args := make([]reflect.Type, fn.NumIn())
	for i := range args {
		args[i] = fn.In(i)
	}
	return Prep(ret, args...)
}

func (c *CIF) free() {
	C.free(unsafe.Pointer(c.cif))
	C.free(unsafe.Pointer(c.atys))
}

// Call calls fn with args, each of which must have exactly the type of the
// matching c.Args entry, and returns the result. The result is invalid for
// void functions.
//
// Go pointers among the arguments are pinned for the duration of the call;
// the callee must not keep them.
func (c *CIF) Call(fn unsafe.Pointer, args ...reflect.Value) reflect.Value {
	if len(args) != len(c.Args) {
		panic(fmt.Sprintf("objc: call expects %d arguments, got %d", len(c.Args), len(args)))
	}

	var (
		h      keepalive.Holder
		pinner runtime.Pinner
	)
	defer h.Free()
	defer pinner.Unpin()

	argv := h.Pointers(len(args))
	for i, v := range args {
		t := c.Args[i]
		if v.Type() != t {
			panic(fmt.Sprintf("objc: argument %d is %s, want %s", i, v.Type(), t))
		}
		pin(&pinner, v)
		p := h.Malloc(t.Size())
		reflect.NewAt(t, p).Elem().Set(v)
		argv[i] = p
	}
	rvalue := h.Malloc(c.rsize)

	var avalue *unsafe.Pointer
	if len(argv) > 0 {
		avalue = &argv[0]
	}
	C.objcffi_call(c.cif, fn, rvalue, avalue)

	if c.Ret == nil {
		return reflect.Value{}
	}
	out := reflect.New(c.Ret).Elem()
	out.Set(reflect.NewAt(c.Ret, rvalue).Elem())
	return out
}

// RetSize is the size of the buffer libffi writes the result into. Integral
// results narrower than a register are widened.
func (c *CIF) RetSize() uintptr { return c.rsize }

func closureAlloc() (mem, code unsafe.Pointer) {
	mem = C.objcffi_closure_alloc(&code)
	return mem, code
}

func closurePrep(mem unsafe.Pointer, cif *CIF, id uintptr, code unsafe.Pointer) int {
	return int(C.objcffi_prep_closure(mem, cif.cif, C.uintptr_t(id), code))
}

func closureFree(mem unsafe.Pointer) { C.objcffi_closure_free(mem) }

func pin(p *runtime.Pinner, v reflect.Value) {
	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer:
		if !v.IsNil() {
			p.Pin(v.UnsafePointer())
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			pin(p, v.Field(i))
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			pin(p, v.Index(i))
		}
	}
}

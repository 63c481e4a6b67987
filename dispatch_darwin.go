package objc

/*
#include <objc/runtime.h>
#include <objc/message.h>

enum {
	objc_entry_msgSend,
	objc_entry_msgSend_fpret,
	objc_entry_msgSend_stret,
	objc_entry_msgSendSuper,
	objc_entry_msgSendSuper_stret,
};

// objc_msgSend and friends are declared without a prototype; only their
// addresses are needed, and the _stret/_fpret variants only exist where the
// ABI has a use for them.
static void* objc_entry(int which) {
	switch (which) {
	case objc_entry_msgSend:
		return (void*)objc_msgSend;
	case objc_entry_msgSendSuper:
		return (void*)objc_msgSendSuper;
#if defined(__i386__)
	case objc_entry_msgSend_fpret:
		return (void*)objc_msgSend_fpret;
#endif
#if defined(__i386__) || defined(__x86_64__)
	case objc_entry_msgSend_stret:
		return (void*)objc_msgSend_stret;
	case objc_entry_msgSendSuper_stret:
		return (void*)objc_msgSendSuper_stret;
#endif
	}
	return NULL;
}
*/
import "C"

import (
	"fmt"
	"hash/maphash"
	"reflect"
	"unsafe"

	"github.com/puzpuzpuz/xsync/v2"

	"github.com/hsfzxjy/objc/abi"
	"github.com/hsfzxjy/objc/internal/ffi"
)

var host = abi.Host()

func entryAddr(e abi.Entry) unsafe.Pointer {
	var which C.int
	switch e {
	case abi.MsgSend:
		which = C.objc_entry_msgSend
	case abi.MsgSendFpret:
		which = C.objc_entry_msgSend_fpret
	case abi.MsgSendStret:
		which = C.objc_entry_msgSend_stret
	case abi.MsgSendSuper:
		which = C.objc_entry_msgSendSuper
	case abi.MsgSendSuperStret:
		which = C.objc_entry_msgSendSuper_stret
	}
	p := C.objc_entry(which)
	if p == nil {
		panic(fmt.Sprintf("objc: %s is not available on %s", e, host))
	}
	return p
}

var selType = reflect.TypeOf(SEL(0))

// resultType maps T to the type libffi returns, nil for void.
func resultType[T any]() reflect.Type {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Size() == 0 && (t.Kind() == reflect.Struct || t.Kind() == reflect.Array) {
		return nil
	}
	return t
}

type dispatcher struct {
	entry abi.Entry
	class abi.Classification
	fn    unsafe.Pointer
	ret   reflect.Type
}

func newDispatcher(ret reflect.Type, super bool) (dispatcher, error) {
	sel := abi.Select
	if super {
		sel = abi.SelectSuper
	}
	entry, class, err := sel(ret, host)
	if err != nil {
		return dispatcher{}, err
	}
	if ret != nil && class.Convention != abi.Void {
		// the result must also be something libffi can describe
		if _, err := ffi.Prep(ret); err != nil {
			return dispatcher{}, err
		}
	}
	return dispatcher{entry: entry, class: class, fn: entryAddr(entry), ret: ret}, nil
}

func (d *dispatcher) call(self reflect.Value, sel SEL, args []any) reflect.Value {
	atys := make([]reflect.Type, 0, len(args)+2)
	vals := make([]reflect.Value, 0, len(args)+2)
	atys = append(atys, self.Type(), selType)
	vals = append(vals, self, reflect.ValueOf(sel))
	for i, a := range args {
		if a == nil {
			panic(fmt.Sprintf("objc: argument %d to %s is untyped nil, use objc.Nil", i, sel.Name()))
		}
		v := reflect.ValueOf(a)
		atys = append(atys, v.Type())
		vals = append(vals, v)
	}
	cif, err := ffi.Prep(d.ret, atys...)
	if err != nil {
		panic(fmt.Sprintf("objc: cannot send %s: %v", sel.Name(), err))
	}
	return cif.Call(d.fn, vals...)
}

// Sender sends messages whose result has type T. Use struct{} for methods
// returning void.
type Sender[T any] struct {
	d dispatcher
}

// NewSender classifies T for the host and selects the matching entry point.
// It fails with abi.ErrUnsupported when T has no C representation.
func NewSender[T any]() (Sender[T], error) {
	d, err := newDispatcher(resultType[T](), false)
	if err != nil {
		return Sender[T]{}, fmt.Errorf("objc: result type %s: %w", reflect.TypeOf((*T)(nil)).Elem(), err)
	}
	return Sender[T]{d}, nil
}

// MsgSend is NewSender for result types known to be valid. It panics
// otherwise.
func MsgSend[T any]() Sender[T] {
	s, err := NewSender[T]()
	if err != nil {
		panic(err)
	}
	return s
}

// Send sends sel to recv with args and returns the result. Argument types
// must match the method's parameter types exactly: an int32 parameter takes
// an int32, an NSInteger takes an int, a BOOL takes a bool.
func (s Sender[T]) Send(recv ID, sel SEL, args ...any) T {
	out := s.d.call(reflect.ValueOf(recv), sel, args)
	var zero T
	if !out.IsValid() {
		return zero
	}
	return out.Interface().(T)
}

// Entry returns the address of the runtime function the sender calls.
func (s Sender[T]) Entry() uintptr { return uintptr(s.d.fn) }

// EntryPoint names the runtime function the sender calls.
func (s Sender[T]) EntryPoint() abi.Entry { return s.d.entry }

func (s Sender[T]) Convention() abi.Classification { return s.d.class }

// SuperSender sends messages to a Super, starting method lookup at its
// class.
type SuperSender[T any] struct {
	d dispatcher
}

func NewSuperSender[T any]() (SuperSender[T], error) {
	d, err := newDispatcher(resultType[T](), true)
	if err != nil {
		return SuperSender[T]{}, fmt.Errorf("objc: result type %s: %w", reflect.TypeOf((*T)(nil)).Elem(), err)
	}
	return SuperSender[T]{d}, nil
}

func MsgSendSuper[T any]() SuperSender[T] {
	s, err := NewSuperSender[T]()
	if err != nil {
		panic(err)
	}
	return s
}

func (s SuperSender[T]) Send(super *Super, sel SEL, args ...any) T {
	out := s.d.call(reflect.ValueOf(super), sel, args)
	var zero T
	if !out.IsValid() {
		return zero
	}
	return out.Interface().(T)
}

func (s SuperSender[T]) Entry() uintptr { return uintptr(s.d.fn) }

func (s SuperSender[T]) EntryPoint() abi.Entry { return s.d.entry }

func (s SuperSender[T]) Convention() abi.Classification { return s.d.class }

// Send sends sel to recv through a Sender[T] cached per result type.
func Send[T any](recv ID, sel SEL, args ...any) T {
	return senderFor[T]().Send(recv, sel, args...)
}

// SendSuper is Send for super sends.
func SendSuper[T any](super *Super, sel SEL, args ...any) T {
	return superSenderFor[T]().Send(super, sel, args...)
}

// senders caches one Sender or SuperSender per instantiation, keyed by the
// sender type itself.
var senders = xsync.NewTypedMapOf[reflect.Type, any](hashType)

func hashType(seed maphash.Seed, t reflect.Type) uint64 {
	return maphash.String(seed, t.String())
}

func senderFor[T any]() Sender[T] {
	key := reflect.TypeOf((*Sender[T])(nil)).Elem()
	if s, ok := senders.Load(key); ok {
		return s.(Sender[T])
	}
	s, _ := senders.LoadOrStore(key, MsgSend[T]())
	return s.(Sender[T])
}

func superSenderFor[T any]() SuperSender[T] {
	key := reflect.TypeOf((*SuperSender[T])(nil)).Elem()
	if s, ok := senders.Load(key); ok {
		return s.(SuperSender[T])
	}
	s, _ := senders.LoadOrStore(key, MsgSendSuper[T]())
	return s.(SuperSender[T])
}

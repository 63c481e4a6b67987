package objc

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/puzpuzpuz/xsync/v2"

	"github.com/hsfzxjy/objc/encoding"
	"github.com/hsfzxjy/objc/internal/ffi"
)

type goIMP struct {
	closure *ffi.Closure
	fn      reflect.Value
	types   string
}

// goIMPs holds every IMP created by NewIMP that has not been freed, keyed by
// code address.
var goIMPs = xsync.NewIntegerMapOf[uintptr, *goIMP]()

var classType = reflect.TypeOf(NilClass)

func checkIMPSignature(t reflect.Type) error {
	if t.Kind() != reflect.Func {
		return fmt.Errorf("objc: method implementation must be a function, got %s", t)
	}
	if t.NumIn() < 2 {
		return fmt.Errorf("objc: method implementation %s must take the receiver and the selector", t)
	}
	if recv := t.In(0); recv != reflect.TypeOf(Nil) && recv != classType {
		return fmt.Errorf("objc: first parameter of %s must be objc.ID or objc.Class", t)
	}
	if t.In(1) != selType {
		return fmt.Errorf("objc: second parameter of %s must be objc.SEL", t)
	}
	return nil
}

// NewIMP makes a method implementation out of a Go function of the form
//
//	func(self objc.ID, cmd objc.SEL, args...) R
//
// where self may instead be an objc.Class for class methods and R is
// optional. It also returns the type encoding of the method.
//
// A panic inside fn is recovered and logged; the caller in Objective-C then
// sees a zero result. The IMP stays valid until FreeIMP.
func NewIMP(fn any) (IMP, string, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() {
		return 0, "", fmt.Errorf("objc: method implementation is nil")
	}
	t := v.Type()
	if err := checkIMPSignature(t); err != nil {
		return 0, "", err
	}
	types, err := encoding.Func(t)
	if err != nil {
		return 0, "", fmt.Errorf("objc: %s: %w", t, err)
	}
	cif, err := ffi.PrepFunc(t)
	if err != nil {
		return 0, "", fmt.Errorf("objc: %s: %w", t, err)
	}

	invoke := ffi.FuncHandler(cif, v)
	handler := func(args []unsafe.Pointer, ret unsafe.Pointer) {
		defer func() {
			if p := recover(); p != nil {
				cmd := *(*SEL)(args[1])
				log.Errorf("method %s panicked: %v", cmd.Name(), p)
				if cif.Ret != nil {
					ffi.WriteReturn(ret, reflect.Zero(cif.Ret))
				}
			}
		}()
		invoke(args, ret)
	}

	closure, err := ffi.NewClosure(cif, handler)
	if err != nil {
		return 0, "", fmt.Errorf("objc: %s: %w", t, err)
	}
	imp := IMP(closure.Code())
	goIMPs.Store(uintptr(imp), &goIMP{closure: closure, fn: v, types: types})
	log.Debugf("new IMP %#x for %s (%s)", uintptr(imp), t, types)
	return imp, types, nil
}

// MustIMP is NewIMP for functions known to be valid.
func MustIMP(fn any) (IMP, string) {
	imp, types, err := NewIMP(fn)
	if err != nil {
		panic(err)
	}
	return imp, types
}

// FreeIMP releases an IMP made by NewIMP. The IMP must no longer be
// installed in any class. It reports whether imp was a live Go IMP.
func FreeIMP(imp IMP) bool {
	g, ok := goIMPs.LoadAndDelete(uintptr(imp))
	if !ok {
		return false
	}
	g.closure.Free()
	return true
}

// IsGoIMP reports whether imp was made by NewIMP and is still live.
func IsGoIMP(imp IMP) bool {
	_, ok := goIMPs.Load(uintptr(imp))
	return ok
}

package abi

import (
	"fmt"
	"reflect"
)

type scalarKind uint8

const (
	skInt scalarKind = iota
	skFloat
)

type leaf struct {
	offset uintptr
	size   uintptr
	kind   scalarKind
}

type layout struct {
	size      uintptr
	align     uintptr
	aggregate bool
	leaves    []leaf
}

// leaves are only needed to classify small aggregates
const maxLeafBytes = 64

func layoutOf(t reflect.Type, arch Arch) (layout, error) {
	var l layout
	size, align, err := l.walk(t, 0, arch, true)
	if err != nil {
		return layout{}, err
	}
	l.size, l.align = size, align
	switch t.Kind() {
	case reflect.Struct, reflect.Array, reflect.Complex64, reflect.Complex128:
		l.aggregate = true
	}
	return l, nil
}

// Size and Align report the C layout of t on arch.
func Size(t reflect.Type, arch Arch) (uintptr, error) {
	l, err := layoutOf(t, arch)
	return l.size, err
}

func Align(t reflect.Type, arch Arch) (uintptr, error) {
	l, err := layoutOf(t, arch)
	return l.align, err
}

func (l *layout) scalar(base, size, align uintptr, kind scalarKind, record bool) (uintptr, uintptr, error) {
	if record {
		l.leaves = append(l.leaves, leaf{base, size, kind})
	}
	return size, align, nil
}

func (l *layout) walk(t reflect.Type, base uintptr, arch Arch, record bool) (size, align uintptr, err error) {
	ptr := arch.PtrSize()
	// double and long long are only 4-aligned inside i386 aggregates
	wide := uintptr(8)
	if arch == I386 {
		wide = 4
	}

	switch t.Kind() {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return l.scalar(base, 1, 1, skInt, record)
	case reflect.Int16, reflect.Uint16:
		return l.scalar(base, 2, 2, skInt, record)
	case reflect.Int32, reflect.Uint32:
		return l.scalar(base, 4, 4, skInt, record)
	case reflect.Int64, reflect.Uint64:
		return l.scalar(base, 8, wide, skInt, record)
	case reflect.Int, reflect.Uint, reflect.Uintptr, reflect.Pointer, reflect.UnsafePointer:
		return l.scalar(base, ptr, ptr, skInt, record)
	case reflect.Float32:
		return l.scalar(base, 4, 4, skFloat, record)
	case reflect.Float64:
		return l.scalar(base, 8, wide, skFloat, record)
	case reflect.Complex64:
		l.scalar(base, 4, 4, skFloat, record)
		l.scalar(base+4, 4, 4, skFloat, record)
		return 8, 4, nil
	case reflect.Complex128:
		l.scalar(base, 8, wide, skFloat, record)
		l.scalar(base+8, 8, wide, skFloat, record)
		return 16, wide, nil

	case reflect.Array:
		n := uintptr(t.Len())
		before := len(l.leaves)
		esize, ealign, err := l.walk(t.Elem(), base, arch, record)
		if err != nil {
			return 0, 0, err
		}
		if n == 0 {
			l.leaves = l.leaves[:before]
			return 0, ealign, nil
		}
		record = record && esize*n <= maxLeafBytes
		for i := uintptr(1); i < n; i++ {
			if _, _, err := l.walk(t.Elem(), base+i*esize, arch, record); err != nil {
				return 0, 0, err
			}
		}
		return esize * n, ealign, nil

	case reflect.Struct:
		var off uintptr
		align = 1
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			fl := layout{}
			fsize, falign, err := fl.walk(f.Type, 0, arch, false)
			if err != nil {
				return 0, 0, fmt.Errorf("field %s: %w", f.Name, err)
			}
			if fsize == 0 {
				// Go pads trailing zero-size fields, C does not.
				return 0, 0, fmt.Errorf("%w: zero-size field %s in %s", ErrUnsupported, f.Name, t)
			}
			off = alignUp(off, falign)
			if _, _, err := l.walk(f.Type, base+off, arch, record && off+fsize <= maxLeafBytes); err != nil {
				return 0, 0, err
			}
			off += fsize
			if falign > align {
				align = falign
			}
		}
		return alignUp(off, align), align, nil

	default:
		return 0, 0, fmt.Errorf("%w: %s has no C representation", ErrUnsupported, t)
	}
}

func alignUp(n, a uintptr) uintptr {
	return (n + a - 1) &^ (a - 1)
}

// Package encoding converts between Go types and Objective-C type encodings,
// the strings produced by @encode and stored in method and ivar metadata.
package encoding

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unsafe"
)

var ErrNoEncoding = errors.New("encoding: no objc encoding")

// Encoder is implemented by types that carry their own encoding, such as the
// runtime handle types.
type Encoder interface {
	ObjCType() string
}

var encoderType = reflect.TypeOf((*Encoder)(nil)).Elem()

const ptrSize = unsafe.Sizeof(uintptr(0))

// Of returns the encoding of t. A nil type encodes as void.
func Of(t reflect.Type) (string, error) {
	var b strings.Builder
	if err := write(&b, t, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

// MustOf is Of for types known to be encodable.
func MustOf(t reflect.Type) string {
	s, err := Of(t)
	if err != nil {
		panic(err)
	}
	return s
}

// Func returns the method type encoding of a Go function type: the result
// followed by every parameter. Method implementations take the receiver and
// the selector as their first two parameters, so a well formed fn yields a
// string that has "@:" or "#:" right after the result.
func Func(t reflect.Type) (string, error) {
	if t.Kind() != reflect.Func {
		return "", fmt.Errorf("%w: %s is not a function", ErrNoEncoding, t)
	}
	if t.IsVariadic() {
		return "", fmt.Errorf("%w: variadic %s", ErrNoEncoding, t)
	}
	var b strings.Builder
	switch t.NumOut() {
	case 0:
		b.WriteByte('v')
	case 1:
		if err := write(&b, t.Out(0), 0); err != nil {
			return "", fmt.Errorf("result: %w", err)
		}
	default:
		return "", fmt.Errorf("%w: %s returns %d values", ErrNoEncoding, t, t.NumOut())
	}
	for i := 0; i < t.NumIn(); i++ {
		if err := write(&b, t.In(i), 0); err != nil {
			return "", fmt.Errorf("parameter %d: %w", i, err)
		}
	}
	return b.String(), nil
}

func write(b *strings.Builder, t reflect.Type, depth int) error {
	if t == nil {
		b.WriteByte('v')
		return nil
	}
	if t.Implements(encoderType) {
		if t.Kind() != reflect.Pointer {
			b.WriteString(reflect.Zero(t).Interface().(Encoder).ObjCType())
			return nil
		}
		// *H for a handle H is a pointer to H, encoded through the ^ case
		if !t.Elem().Implements(encoderType) {
			b.WriteString(reflect.New(t.Elem()).Interface().(Encoder).ObjCType())
			return nil
		}
	}
	switch t.Kind() {
	case reflect.Bool:
		b.WriteByte('B')
	case reflect.Int8:
		b.WriteByte('c')
	case reflect.Uint8:
		b.WriteByte('C')
	case reflect.Int16:
		b.WriteByte('s')
	case reflect.Uint16:
		b.WriteByte('S')
	case reflect.Int32:
		b.WriteByte('i')
	case reflect.Uint32:
		b.WriteByte('I')
	case reflect.Int64:
		b.WriteByte('q')
	case reflect.Uint64:
		b.WriteByte('Q')
	case reflect.Int:
		b.WriteByte(intCode(false))
	case reflect.Uint, reflect.Uintptr:
		b.WriteByte(intCode(true))
	case reflect.Float32:
		b.WriteByte('f')
	case reflect.Float64:
		b.WriteByte('d')
	case reflect.UnsafePointer:
		b.WriteString("^v")
	case reflect.Pointer:
		if t.Elem().Kind() == reflect.Int8 {
			b.WriteByte('*')
			return nil
		}
		b.WriteByte('^')
		// pointed-to structs are written without fields past the first
		// level, like clang does, so recursive types terminate
		if t.Elem().Kind() == reflect.Struct && depth > 0 {
			fmt.Fprintf(b, "{%s}", structName(t.Elem()))
			return nil
		}
		return write(b, t.Elem(), depth+1)
	case reflect.Array:
		fmt.Fprintf(b, "[%d", t.Len())
		if err := write(b, t.Elem(), depth); err != nil {
			return err
		}
		b.WriteByte(']')
	case reflect.Struct:
		b.WriteByte('{')
		b.WriteString(structName(t))
		b.WriteByte('=')
		for i := 0; i < t.NumField(); i++ {
			if err := write(b, t.Field(i).Type, depth+1); err != nil {
				return fmt.Errorf("field %s: %w", t.Field(i).Name, err)
			}
		}
		b.WriteByte('}')
	default:
		return fmt.Errorf("%w: %s", ErrNoEncoding, t)
	}
	return nil
}

func intCode(unsigned bool) byte {
	switch {
	case ptrSize == 8 && unsigned:
		return 'Q'
	case ptrSize == 8:
		return 'q'
	case unsigned:
		return 'I'
	default:
		return 'i'
	}
}

func structName(t reflect.Type) string {
	if t.Name() == "" {
		return "?"
	}
	return t.Name()
}

// Type is one parsed type encoding.
type Type struct {
	// Code is the leading character: 'c', 'i', '@', '{', '^' and so on.
	Code byte
	// Qualifiers holds method qualifiers such as 'r' (const) or 'o' (out).
	Qualifiers string
	// Name is the struct or union tag, or the class name of a typed object
	// ("@\"NSString\"").
	Name string
	// Elem is the pointee of '^' and the element of '['.
	Elem *Type
	// Fields are the members of '{' and '('.
	Fields []Field
	// Len is the array length of '[' and the bit width of 'b'.
	Len int
}

type Field struct {
	Name string
	Type Type
}

func (t Type) IsObject() bool { return t.Code == '@' || t.Code == '#' }

func (t Type) IsVoid() bool { return t.Code == 'v' }

// String writes t back as an encoding, without stack offsets.
func (t Type) String() string {
	var b strings.Builder
	t.encode(&b)
	return b.String()
}

func (t Type) encode(b *strings.Builder) {
	b.WriteString(t.Qualifiers)
	switch t.Code {
	case '^':
		b.WriteByte('^')
		if t.Elem != nil {
			t.Elem.encode(b)
		}
	case '[':
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(t.Len))
		t.Elem.encode(b)
		b.WriteByte(']')
	case '{', '(':
		b.WriteByte(t.Code)
		b.WriteString(t.Name)
		if t.Fields != nil {
			b.WriteByte('=')
			for _, f := range t.Fields {
				if f.Name != "" {
					b.WriteString(strconv.Quote(f.Name))
				}
				f.Type.encode(b)
			}
		}
		if t.Code == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(')')
		}
	case 'b':
		b.WriteByte('b')
		b.WriteString(strconv.Itoa(t.Len))
	case '@':
		b.WriteByte('@')
		switch {
		case t.Name == "?":
			b.WriteByte('?')
		case t.Name != "":
			b.WriteString(strconv.Quote(t.Name))
		}
	default:
		b.WriteByte(t.Code)
	}
}

// Size reports the size of a value of type t on the running process, or
// false for bitfields and unknown codes.
func (t Type) Size() (uintptr, bool) {
	size, _, ok := t.layout()
	return size, ok
}

func (t Type) Align() (uintptr, bool) {
	_, align, ok := t.layout()
	return align, ok
}

func (t Type) layout() (size, align uintptr, ok bool) {
	switch t.Code {
	case 'c', 'C', 'B':
		return 1, 1, true
	case 's', 'S':
		return 2, 2, true
	case 'i', 'I', 'f':
		return 4, 4, true
	case 'l', 'L':
		// long is 32 bits in the objc encoding even on LP64
		return 4, 4, true
	case 'q', 'Q', 'd':
		return 8, alignOf8(), true
	case '@', '#', ':', '*', '^', '?':
		return ptrSize, ptrSize, true
	case 'v':
		return 0, 1, true
	case '[':
		if t.Elem == nil {
			return 0, 0, false
		}
		esize, ealign, ok := t.Elem.layout()
		if !ok || t.Len < 0 || (esize != 0 && uintptr(t.Len) > ^uintptr(0)/esize) {
			return 0, 0, false
		}
		return esize * uintptr(t.Len), ealign, true
	case '{', '(':
		if t.Fields == nil {
			return 0, 0, false
		}
		var off uintptr
		align = 1
		for _, f := range t.Fields {
			fsize, falign, ok := f.Type.layout()
			if !ok {
				return 0, 0, false
			}
			if falign > align {
				align = falign
			}
			if t.Code == '(' {
				if fsize > off {
					off = fsize
				}
				continue
			}
			off = (off+falign-1)&^(falign-1) + fsize
		}
		return (off + align - 1) &^ (align - 1), align, true
	}
	return 0, 0, false
}

func alignOf8() uintptr {
	if ptrSize == 4 {
		return 4
	}
	return 8
}

// Package abi classifies Go types by how the C calling convention of a
// Darwin architecture returns them, and selects the objc_msgSend entry point
// that matches.
//
// The choice of entry point cannot be made from the message itself: it depends
// only on where the processor returns a value of the result type. Picking the
// wrong one corrupts the stack or reads the wrong registers, so classification
// here is exhaustive and refuses types it cannot place instead of guessing.
package abi

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
)

var ErrUnsupported = errors.New("abi: unsupported type")

type Arch uint8

const (
	ArchUnknown Arch = iota
	I386
	AMD64
	ARM64
)

func (a Arch) String() string {
	switch a {
	case I386:
		return "i386"
	case AMD64:
		return "x86_64"
	case ARM64:
		return "arm64"
	default:
		return "unknown"
	}
}

func (a Arch) PtrSize() uintptr {
	if a == I386 {
		return 4
	}
	return 8
}

// HasFPRet reports whether floating-point results come back in a register
// class that objc_msgSend cannot clean up on its own (the x87 stack).
func (a Arch) HasFPRet() bool { return a == I386 }

// HasStret reports whether the runtime exports separate _stret entry points.
// arm64 returns large aggregates through x8, which objc_msgSend preserves.
func (a Arch) HasStret() bool { return a == I386 || a == AMD64 }

// Host is the architecture of the running process.
func Host() Arch { return ArchOf(runtime.GOARCH) }

func ArchOf(goarch string) Arch {
	switch goarch {
	case "386":
		return I386
	case "amd64":
		return AMD64
	case "arm64":
		return ARM64
	default:
		return ArchUnknown
	}
}

// Convention is where a result of some type is returned.
type Convention uint8

const (
	Void Convention = iota
	// Integer results live in general purpose registers.
	Integer
	// Float results live in floating point registers (SSE, NEON or x87).
	Float
	// Mixed results are split across general purpose and SSE registers.
	Mixed
	// Indirect results are written through a hidden pointer the caller passes.
	Indirect
)

func (c Convention) String() string {
	switch c {
	case Void:
		return "void"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Mixed:
		return "mixed"
	case Indirect:
		return "indirect"
	default:
		return fmt.Sprintf("Convention(%d)", uint8(c))
	}
}

// Classification is the result of classifying a type for one architecture.
type Classification struct {
	Convention Convention
	Size       uintptr
	Align      uintptr
	// Parts holds the per-eightbyte classes on x86_64 and the per-register
	// classes elsewhere. It is empty for Void and Indirect results.
	Parts []Convention
}

func Classify(t reflect.Type, arch Arch) (Classification, error) {
	if t == nil {
		return Classification{Convention: Void}, nil
	}
	l, err := layoutOf(t, arch)
	if err != nil {
		return Classification{}, err
	}
	if l.size == 0 {
		return Classification{Convention: Void, Align: l.align}, nil
	}
	var c Classification
	switch arch {
	case AMD64:
		c = classifySysV(l)
	case ARM64:
		c = classifyAAPCS(l)
	case I386:
		c = classifyI386(l)
	default:
		return Classification{}, fmt.Errorf("%w: no calling convention for %s", ErrUnsupported, arch)
	}
	c.Size, c.Align = l.size, l.align
	return c, nil
}

// Entry identifies one of the runtime's message send entry points.
type Entry uint8

const (
	MsgSend Entry = iota
	MsgSendFpret
	MsgSendStret
	MsgSendSuper
	MsgSendSuperStret
)

func (e Entry) Symbol() string {
	switch e {
	case MsgSend:
		return "objc_msgSend"
	case MsgSendFpret:
		return "objc_msgSend_fpret"
	case MsgSendStret:
		return "objc_msgSend_stret"
	case MsgSendSuper:
		return "objc_msgSendSuper"
	case MsgSendSuperStret:
		return "objc_msgSendSuper_stret"
	default:
		return fmt.Sprintf("Entry(%d)", uint8(e))
	}
}

func (e Entry) String() string { return e.Symbol() }

// Select picks the entry point for sending a message whose result has type t.
//
//  1. floating point results on an architecture with a distinct fp return
//     register class use objc_msgSend_fpret;
//  2. results returned in registers use objc_msgSend;
//  3. results returned through a hidden pointer use objc_msgSend_stret where
//     the architecture has one.
func Select(t reflect.Type, arch Arch) (Entry, Classification, error) {
	c, err := Classify(t, arch)
	if err != nil {
		return 0, c, err
	}
	switch {
	case c.Convention == Float && arch.HasFPRet() && isFloatScalar(t):
		return MsgSendFpret, c, nil
	case c.Convention == Indirect && arch.HasStret():
		return MsgSendStret, c, nil
	default:
		return MsgSend, c, nil
	}
}

// SelectSuper is Select for sends that start lookup at a superclass. There is
// no fpret variant of objc_msgSendSuper.
func SelectSuper(t reflect.Type, arch Arch) (Entry, Classification, error) {
	c, err := Classify(t, arch)
	if err != nil {
		return 0, c, err
	}
	if c.Convention == Indirect && arch.HasStret() {
		return MsgSendSuperStret, c, nil
	}
	return MsgSendSuper, c, nil
}

func isFloatScalar(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

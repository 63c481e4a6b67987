//go:build cgo

package ffi

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/hsfzxjy/objc/abi"
)

type pair struct {
	A int64
	B float64
}

type rect struct {
	X, Y, W, H float64
}

func closureOf(t *testing.T, fn any) (*CIF, *Closure) {
	t.Helper()
	v := reflect.ValueOf(fn)
	cif, err := PrepFunc(v.Type())
	require.NoError(t, err)
	c, err := NewClosure(cif, FuncHandler(cif, v))
	require.NoError(t, err)
	t.Cleanup(c.Free)
	return cif, c
}

func TestClosureRoundTrip(t *testing.T) {
	cif, c := closureOf(t, func(a int32, b float64) float64 { return float64(a) * b })
	out := cif.Call(c.Code(), reflect.ValueOf(int32(3)), reflect.ValueOf(1.5))
	require.Equal(t, 4.5, out.Float())
}

func TestClosureNarrowResults(t *testing.T) {
	cif, c := closureOf(t, func(x int8) int8 { return -x })
	out := cif.Call(c.Code(), reflect.ValueOf(int8(3)))
	require.EqualValues(t, -3, out.Int())

	cif, c = closureOf(t, func(x uint16) bool { return x > 10 })
	require.True(t, cif.Call(c.Code(), reflect.ValueOf(uint16(11))).Bool())
	require.False(t, cif.Call(c.Code(), reflect.ValueOf(uint16(1))).Bool())
}

func TestClosureAggregates(t *testing.T) {
	cif, c := closureOf(t, func(p pair) pair { return pair{p.A + 1, p.B * 2} })
	out := cif.Call(c.Code(), reflect.ValueOf(pair{1, 2}))
	require.Equal(t, pair{2, 4}, out.Interface())

	cif, c = closureOf(t, func(x, y float64) rect { return rect{x, y, 10, 20} })
	out = cif.Call(c.Code(), reflect.ValueOf(1.0), reflect.ValueOf(2.0))
	require.Equal(t, rect{1, 2, 10, 20}, out.Interface())

	cif, c = closureOf(t, func(a [3]int32) int32 { return a[0] + a[1] + a[2] })
	require.EqualValues(t, 6, cif.Call(c.Code(), reflect.ValueOf([3]int32{1, 2, 3})).Int())
}

func TestClosureVoidAndPointers(t *testing.T) {
	var got int
	cif, c := closureOf(t, func(p *int, n int) { *p = n; got = n })
	x := 0
	out := cif.Call(c.Code(), reflect.ValueOf(&x), reflect.ValueOf(7))
	require.False(t, out.IsValid())
	require.Equal(t, 7, x)
	require.Equal(t, 7, got)
}

func TestPrepCache(t *testing.T) {
	a, err := Prep(reflect.TypeOf(pair{}), reflect.TypeOf(uintptr(0)))
	require.NoError(t, err)
	b, err := Prep(reflect.TypeOf(pair{}), reflect.TypeOf(uintptr(0)))
	require.NoError(t, err)
	require.Same(t, a, b)
	require.GreaterOrEqual(t, a.RetSize(), reflect.TypeOf(pair{}).Size())
}

func TestPrepUnsupported(t *testing.T) {
	_, err := Prep(reflect.TypeOf(""))
	require.ErrorIs(t, err, abi.ErrUnsupported)

	_, err = Prep(nil, reflect.TypeOf([]int{}))
	require.ErrorIs(t, err, abi.ErrUnsupported)

	_, err = Prep(reflect.TypeOf(struct{}{}))
	require.ErrorIs(t, err, abi.ErrUnsupported)

	_, err = PrepFunc(reflect.TypeOf(func(...int) {}))
	require.ErrorIs(t, err, abi.ErrUnsupported)

	_, err = PrepFunc(reflect.TypeOf(func() (int, int) { return 0, 0 }))
	require.ErrorIs(t, err, abi.ErrUnsupported)
}

func TestCallMisuse(t *testing.T) {
	cif, c := closureOf(t, func(a int32) int32 { return a })
	require.Panics(t, func() { cif.Call(c.Code()) })
	require.Panics(t, func() { cif.Call(c.Code(), reflect.ValueOf(int64(1))) })
}

func TestClosureFreeTwice(t *testing.T) {
	cif, err := PrepFunc(reflect.TypeOf(func() {}))
	require.NoError(t, err)
	c, err := NewClosure(cif, func(args []unsafe.Pointer, ret unsafe.Pointer) {})
	require.NoError(t, err)
	require.NotNil(t, c.Code())
	c.Free()
	require.Nil(t, c.Code())
	c.Free()
}

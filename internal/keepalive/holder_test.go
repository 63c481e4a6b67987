//go:build cgo

package keepalive

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestHolder(t *testing.T) {
	var h Holder
	p := h.Malloc(16)
	require.NotNil(t, p)
	require.Equal(t, make([]byte, 16), unsafe.Slice((*byte)(p), 16))

	b := h.Bytes([]byte("hello"))
	require.Equal(t, "hello", string(unsafe.Slice((*byte)(b), 5)))

	cs := h.CStringPtr("objc")
	require.Equal(t, []byte("objc\x00"), unsafe.Slice((*byte)(cs), 5))

	argv := h.Pointers(3)
	require.Len(t, argv, 3)
	argv[0] = p
	require.Equal(t, 4, h.Len())

	h.Add(nil)
	require.Equal(t, 4, h.Len())

	h.Free()
	require.Equal(t, 0, h.Len())
	require.Nil(t, h.Pointers(0))

	h.Malloc(0)
	require.Equal(t, 1, h.Len())
	h.Free()
	h.Free()
	require.Equal(t, 0, h.Len())
}

package objc

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func setBits(bs *bitset.BitSet) []uint {
	if bs == nil {
		return nil
	}
	var out []uint
	for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i + 1) {
		out = append(out, i)
	}
	return out
}

func bitsOf(words ...uint) *bitset.BitSet {
	bs := bitset.New(0)
	for _, w := range words {
		bs.Set(w)
	}
	return bs
}

func wordRange(from, to uint) []uint {
	var out []uint
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

func TestDecodeIvarLayout(t *testing.T) {
	require.Nil(t, DecodeIvarLayout(nil))
	require.Nil(t, DecodeIvarLayout([]byte{}))

	cases := []struct {
		name   string
		layout []byte
		want   []uint
	}{
		{"terminator only", []byte{0}, nil},
		{"first word", []byte{0x01, 0}, []uint{0}},
		{"skip then scan", []byte{0x12, 0}, []uint{1, 2}},
		{"two runs", []byte{0x01, 0x21, 0}, []uint{0, 3}},
		{"long skip", []byte{0xf0, 0x51, 0}, []uint{20}},
		{"long scan", []byte{0x0f, 0x05, 0}, wordRange(0, 20)},
		{"stops at zero", []byte{0x01, 0, 0x11}, []uint{0}},
		{"no terminator", []byte{0x11}, []uint{1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := setBits(DecodeIvarLayout(c.layout))
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Fatalf("DecodeIvarLayout(%x) mismatch (-want +got):\n%s", c.layout, diff)
			}
		})
	}
}

func TestEncodeIvarLayout(t *testing.T) {
	require.Equal(t, []byte{0}, EncodeIvarLayout(nil))
	require.Equal(t, []byte{0}, EncodeIvarLayout(bitset.New(8)))

	require.Equal(t, []byte{0x01, 0}, EncodeIvarLayout(bitsOf(0)))
	require.Equal(t, []byte{0x12, 0}, EncodeIvarLayout(bitsOf(1, 2)))
	require.Equal(t, []byte{0x01, 0x21, 0}, EncodeIvarLayout(bitsOf(0, 3)))
	require.Equal(t, []byte{0xf0, 0x51, 0}, EncodeIvarLayout(bitsOf(20)))
	require.Equal(t, []byte{0x0f, 0x05, 0}, EncodeIvarLayout(bitsOf(wordRange(0, 20)...)))
}

func TestIvarLayoutRoundTrip(t *testing.T) {
	for _, words := range [][]uint{
		{0},
		{5, 6, 7},
		{0, 2, 4, 6},
		{16, 17},
		wordRange(3, 40),
		append(wordRange(0, 16), 50),
	} {
		got := setBits(DecodeIvarLayout(EncodeIvarLayout(bitsOf(words...))))
		require.Equal(t, words, got)
	}
}

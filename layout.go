package objc

import (
	"github.com/bits-and-blooms/bitset"
)

// DecodeIvarLayout expands the runtime's compact ivar layout into a bitset
// with one bit per pointer-sized word of the instance, set for words that
// hold strong (or, for weak layouts, weak) object references.
//
// Each byte of the compact form holds the number of words to skip in its
// high nibble and the number of words to scan in its low nibble. A zero byte
// ends the layout. A nil or empty layout decodes to nil.
func DecodeIvarLayout(layout []byte) *bitset.BitSet {
	if len(layout) == 0 {
		return nil
	}
	bs := bitset.New(0)
	var word uint
	for _, b := range layout {
		if b == 0 {
			break
		}
		word += uint(b >> 4)
		for n := uint(b & 0x0f); n > 0; n-- {
			bs.Set(word)
			word++
		}
	}
	return bs
}

// EncodeIvarLayout is the inverse of DecodeIvarLayout. The result is zero
// terminated. Runs longer than 15 words are split across bytes.
func EncodeIvarLayout(bs *bitset.BitSet) []byte {
	if bs == nil || bs.None() {
		return []byte{0}
	}
	var out []byte
	var word uint
	for {
		next, ok := bs.NextSet(word)
		if !ok {
			break
		}
		skip := next - word
		for skip > 15 {
			out = append(out, 0xf0)
			skip -= 15
		}
		end, ok := bs.NextClear(next)
		if !ok {
			end = bs.Len()
		}
		scan := end - next
		first := min(scan, 15)
		out = append(out, byte(skip<<4)|byte(first))
		scan -= first
		for scan > 0 {
			n := min(scan, 15)
			out = append(out, byte(n))
			scan -= n
		}
		word = end
	}
	return append(out, 0)
}

package abi

// classifyI386 follows the Darwin i386 return rules: scalars come back in
// eax/edx or on the x87 stack, aggregates of 1, 2, 4 or 8 bytes in eax/edx and
// every other aggregate through a hidden pointer.
func classifyI386(l layout) Classification {
	if !l.aggregate {
		if l.leaves[0].kind == skFloat {
			return Classification{Convention: Float, Parts: []Convention{Float}}
		}
		return Classification{Convention: Integer, Parts: parts32(l.size)}
	}
	switch l.size {
	case 1, 2, 4, 8:
		return Classification{Convention: Integer, Parts: parts32(l.size)}
	}
	return Classification{Convention: Indirect}
}

func parts32(size uintptr) []Convention {
	if size > 4 {
		return []Convention{Integer, Integer}
	}
	return []Convention{Integer}
}

package abi

// classifyAAPCS follows the Apple arm64 return rules. Homogeneous floating
// point aggregates of up to four members come back in v0-v3, other aggregates
// of at most 16 bytes in x0/x1, and anything larger through the buffer whose
// address the caller passes in x8.
func classifyAAPCS(l layout) Classification {
	if !l.aggregate {
		if l.leaves[0].kind == skFloat {
			return Classification{Convention: Float, Parts: []Convention{Float}}
		}
		return Classification{Convention: Integer, Parts: []Convention{Integer}}
	}
	if n, ok := homogeneousFloats(l); ok {
		parts := make([]Convention, n)
		for i := range parts {
			parts[i] = Float
		}
		return Classification{Convention: Float, Parts: parts}
	}
	if l.size > 16 {
		return Classification{Convention: Indirect}
	}
	parts := make([]Convention, (l.size+7)/8)
	for i := range parts {
		parts[i] = Integer
	}
	return Classification{Convention: Integer, Parts: parts}
}

func homogeneousFloats(l layout) (int, bool) {
	n := len(l.leaves)
	if n == 0 || n > 4 {
		return 0, false
	}
	first := l.leaves[0]
	for _, lf := range l.leaves {
		if lf.kind != skFloat || lf.size != first.size {
			return 0, false
		}
	}
	if uintptr(n)*first.size != l.size {
		return 0, false
	}
	return n, true
}

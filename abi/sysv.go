package abi

// classifySysV follows the System V x86_64 return rules: aggregates over two
// eightbytes go to memory, everything else is split into eightbytes that are
// INTEGER if any integer field overlaps them and SSE otherwise.
func classifySysV(l layout) Classification {
	if l.size > 16 {
		return Classification{Convention: Indirect}
	}
	parts := make([]Convention, (l.size+7)/8)
	for _, lf := range l.leaves {
		i := lf.offset / 8
		cls := Integer
		if lf.kind == skFloat {
			cls = Float
		}
		switch {
		case parts[i] == Void:
			parts[i] = cls
		case parts[i] == Integer || cls == Integer:
			parts[i] = Integer
		default:
			parts[i] = Float
		}
	}
	for i := range parts {
		// padding-only eightbytes cannot happen with naturally aligned
		// fields, but an empty class would confuse the merge below
		if parts[i] == Void {
			parts[i] = Integer
		}
	}
	return Classification{Convention: merge(parts), Parts: parts}
}

func merge(parts []Convention) Convention {
	conv := parts[0]
	for _, p := range parts[1:] {
		if p != conv {
			return Mixed
		}
	}
	return conv
}

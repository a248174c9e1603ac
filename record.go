package spellcsv

// applyLine processes one line's fields left to right against the
// accumulator sequence. Each accumulator must return a valid cursor at its
// field separator; the driver then advances past the separator for the next
// field.
//
// On full success it returns (0, 0). On the first failure it returns the
// 1-based byte position of the error and the 1-based ordinal of the failing
// field; that pair feeds the error log directly. Trailing line content past
// the last accumulator is not checked: callers that want full-line
// validation size the accumulator sequence to the whole schema.
func applyLine(line []byte, accs []Accumulator) (bytePos, fieldIndex int) {
	pos := 0
	for i, acc := range accs {
		c := acc.apply(line, pos)
		if !c.valid() {
			return c.pos + 1, i + 1
		}
		pos = c.pos + 1
	}
	return 0, 0
}

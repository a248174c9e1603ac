package spellcsv

// IDCounter tallies how often each identifier occurs across the whole
// dataset. One person contributes one count per spell line, so the tally is
// the ragged row count of the person's spell history.
type IDCounter map[uint64]uint64

// NewIDCounter creates an empty counter.
func NewIDCounter() IDCounter {
	return make(IDCounter)
}

// Add counts one occurrence of id.
func (c IDCounter) Add(id uint64) {
	c[id]++
}

// Count returns the tally for id, zero if never seen.
func (c IDCounter) Count(id uint64) uint64 {
	return c[id]
}

// Len returns the number of distinct identifiers.
func (c IDCounter) Len() int {
	return len(c)
}

// Total returns the sum of all tallies, i.e. the total number of counted lines.
func (c IDCounter) Total() uint64 {
	var total uint64
	for _, n := range c {
		total += n
	}
	return total
}

// MaxCount returns the largest tally, zero for an empty counter. It drives
// the width selection of the on-disk spell-count column.
func (c IDCounter) MaxCount() uint64 {
	var maxN uint64
	for _, n := range c {
		if n > maxN {
			maxN = n
		}
	}
	return maxN
}

package spellcsv

import "fmt"

// AutoIndex is a bijective mapping from first-seen keys to consecutive
// positive integers starting at 1, assigned in encounter order. The first
// lookup of a new key permanently fixes its integer; later lookups return it
// unchanged. Capacity is bounded by the configured integer width so that
// assigned indexes always fit the chosen on-disk column type.
//
// An AutoIndex is not safe for concurrent use. In a multi-file run it is
// owned by the orchestrating driver and passed into each file's processing
// call, so assignment order is a pure function of the traversal order.
type AutoIndex[K comparable] struct {
	indexes map[K]uint64
	keys    []K
	maxSize uint64
}

// NewAutoIndex creates an AutoIndex whose indexes must fit an unsigned
// integer of the given width.
func NewAutoIndex[K comparable](width IntWidth) *AutoIndex[K] {
	return &AutoIndex[K]{
		indexes: make(map[K]uint64),
		maxSize: width.unsignedMax(),
	}
}

// Index returns the integer assigned to key, assigning the next free one on
// first sight. It fails when the next index would exceed the configured
// width; the run must stop rather than silently truncate.
func (a *AutoIndex[K]) Index(key K) (uint64, error) {
	if idx, ok := a.indexes[key]; ok {
		return idx, nil
	}
	next := uint64(len(a.keys)) + 1
	if next > a.maxSize {
		return 0, fmt.Errorf("%w: %d keys", ErrIndexCapacity, a.maxSize)
	}
	a.indexes[key] = next
	a.keys = append(a.keys, key)
	return next, nil
}

// Len returns the number of distinct keys seen so far.
func (a *AutoIndex[K]) Len() int {
	return len(a.keys)
}

// Keys returns all keys ordered by assigned index, so Keys()[i] carries
// index i+1. The slice is shared with the index and must not be modified.
func (a *AutoIndex[K]) Keys() []K {
	return a.keys
}

// Lookup returns the integer assigned to key without assigning one.
func (a *AutoIndex[K]) Lookup(key K) (uint64, bool) {
	idx, ok := a.indexes[key]
	return idx, ok
}

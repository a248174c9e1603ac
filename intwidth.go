package spellcsv

import (
	"fmt"
	"math"

	"github.com/apache/arrow/go/v18/arrow"
)

// IntWidth is one rung of the fixed integer width ladder used for compact
// on-disk column types.
type IntWidth int

// The width ladder, narrowest first.
const (
	Width8  IntWidth = 8
	Width16 IntWidth = 16
	Width32 IntWidth = 32
	Width64 IntWidth = 64
)

var widthLadder = []IntWidth{Width8, Width16, Width32, Width64}

// Bits returns the width in bits.
func (w IntWidth) Bits() int {
	return int(w)
}

// unsignedMax returns the largest value an unsigned integer of this width
// can hold.
func (w IntWidth) unsignedMax() uint64 {
	if w == Width64 {
		return math.MaxUint64
	}
	return 1<<uint(w) - 1
}

// signedBounds returns the inclusive range of a signed integer of this width.
func (w IntWidth) signedBounds() (int64, int64) {
	if w == Width64 {
		return math.MinInt64, math.MaxInt64
	}
	return -(1 << uint(w-1)), 1<<uint(w-1) - 1
}

// ArrowType returns the Arrow data type matching this width and signedness,
// used when building the columnar output schema.
func (w IntWidth) ArrowType(unsigned bool) arrow.DataType {
	if unsigned {
		switch w {
		case Width8:
			return arrow.PrimitiveTypes.Uint8
		case Width16:
			return arrow.PrimitiveTypes.Uint16
		case Width32:
			return arrow.PrimitiveTypes.Uint32
		default:
			return arrow.PrimitiveTypes.Uint64
		}
	}
	switch w {
	case Width8:
		return arrow.PrimitiveTypes.Int8
	case Width16:
		return arrow.PrimitiveTypes.Int16
	case Width32:
		return arrow.PrimitiveTypes.Int32
	default:
		return arrow.PrimitiveTypes.Int64
	}
}

// SelectIntWidth selects the narrowest width whose representable range
// covers the inclusive range [lo, hi]. With unsigned selection a negative
// lower bound cannot be covered by any width and fails.
func SelectIntWidth(lo, hi int64, unsigned bool) (IntWidth, error) {
	if lo > hi {
		return 0, fmt.Errorf("%w: empty range [%d, %d]", ErrNoIntegerWidth, lo, hi)
	}
	for _, w := range widthLadder {
		if unsigned {
			if lo >= 0 && uint64(hi) <= w.unsignedMax() {
				return w, nil
			}
			continue
		}
		wlo, whi := w.signedBounds()
		if lo >= wlo && hi <= whi {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: [%d, %d] unsigned=%t", ErrNoIntegerWidth, lo, hi, unsigned)
}

// SelectUintWidth selects the narrowest width covering [0, hi] for values
// that do not fit the signed argument form of SelectIntWidth.
func SelectUintWidth(hi uint64) IntWidth {
	for _, w := range widthLadder {
		if hi <= w.unsignedMax() {
			return w
		}
	}
	return Width64
}

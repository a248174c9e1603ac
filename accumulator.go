package spellcsv

import "sort"

// UintSet accumulates distinct unsigned integer field values. Insertion is
// idempotent; duplicates are silently absorbed.
type UintSet map[uint64]struct{}

// NewUintSet creates an empty UintSet.
func NewUintSet() UintSet {
	return make(UintSet)
}

// Add inserts v into the set.
func (s UintSet) Add(v uint64) {
	s[v] = struct{}{}
}

// Has reports whether v is in the set.
func (s UintSet) Has(v uint64) bool {
	_, ok := s[v]
	return ok
}

// Values returns the set's members in ascending order.
func (s UintSet) Values() []uint64 {
	values := make([]uint64, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}

// Range returns the minimum and maximum member. The boolean is false for an
// empty set.
func (s UintSet) Range() (minV, maxV uint64, ok bool) {
	for v := range s {
		if !ok {
			minV, maxV, ok = v, v, true
			continue
		}
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return minV, maxV, ok
}

// DateSet accumulates distinct dates.
type DateSet map[Date]struct{}

// NewDateSet creates an empty DateSet.
func NewDateSet() DateSet {
	return make(DateSet)
}

// Add inserts d into the set.
func (s DateSet) Add(d Date) {
	s[d] = struct{}{}
}

// Has reports whether d is in the set.
func (s DateSet) Has(d Date) bool {
	_, ok := s[d]
	return ok
}

// Values returns the set's members in chronological order.
func (s DateSet) Values() []Date {
	values := make([]Date, 0, len(s))
	for d := range s {
		values = append(values, d)
	}
	sort.Slice(values, func(i, j int) bool { return values[i].Before(values[j]) })
	return values
}

// ByteSet accumulates distinct byte-string field values. Members are stored
// as strings, which copies them out of the reused line buffer.
type ByteSet map[string]struct{}

// NewByteSet creates an empty ByteSet.
func NewByteSet() ByteSet {
	return make(ByteSet)
}

// Add inserts b into the set, copying it.
func (s ByteSet) Add(b []byte) {
	s[string(b)] = struct{}{}
}

// Has reports whether v is in the set.
func (s ByteSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Values returns the set's members in lexicographic order.
func (s ByteSet) Values() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// accumulatorKind enumerates the closed set of per-column behaviors.
type accumulatorKind int

const (
	accSkip accumulatorKind = iota
	accCollectUint
	accCollectDate
	accCollectBytes
	accConvertUint
	accConvertDate
	accConvertBytes
)

// Accumulator decodes one field and optionally stores or forwards its value.
// The variant is fixed at construction time for the lifetime of a parsing
// run. On decode failure no side effect occurs and the failure propagates
// unchanged to the line driver.
type Accumulator struct {
	kind       accumulatorKind
	strictDate bool
	uints      UintSet
	dates      DateSet
	bytes      ByteSet
	uintFn     func(uint64)
	dateFn     func(Date)
	bytesFn    func([]byte)
}

// Skip returns an accumulator that advances over the field without decoding it.
func Skip() Accumulator {
	return Accumulator{kind: accSkip}
}

// CollectUint returns an accumulator that decodes an unsigned integer field
// into the caller-owned set.
func CollectUint(set UintSet) Accumulator {
	return Accumulator{kind: accCollectUint, uints: set}
}

// CollectDate returns an accumulator that decodes a YYYYMMDD date field into
// the caller-owned set. In strict mode a day of month of 0 is rejected
// instead of being coerced to 1.
func CollectDate(set DateSet, strict bool) Accumulator {
	return Accumulator{kind: accCollectDate, dates: set, strictDate: strict}
}

// CollectBytes returns an accumulator that copies the raw field bytes into
// the caller-owned set.
func CollectBytes(set ByteSet) Accumulator {
	return Accumulator{kind: accCollectBytes, bytes: set}
}

// ConvertUint returns an accumulator that hands each decoded unsigned
// integer to fn. Failures inside fn are the caller's responsibility.
func ConvertUint(fn func(uint64)) Accumulator {
	return Accumulator{kind: accConvertUint, uintFn: fn}
}

// ConvertDate returns an accumulator that hands each decoded date to fn.
// Dates are decoded in non-strict mode; use ConvertDateStrict to reject a
// day of month of 0.
func ConvertDate(fn func(Date)) Accumulator {
	return Accumulator{kind: accConvertDate, dateFn: fn}
}

// ConvertDateStrict is ConvertDate with strict day-of-month validation.
func ConvertDateStrict(fn func(Date)) Accumulator {
	return Accumulator{kind: accConvertDate, dateFn: fn, strictDate: true}
}

// ConvertBytes returns an accumulator that hands the raw field bytes to fn.
// The slice aliases the line buffer; fn must copy it to retain it.
func ConvertBytes(fn func([]byte)) Accumulator {
	return Accumulator{kind: accConvertBytes, bytesFn: fn}
}

// apply decodes one field starting at pos and performs the variant's side
// effect on success. The returned cursor points at the field separator.
func (a Accumulator) apply(line []byte, pos int) cursor {
	switch a.kind {
	case accSkip:
		return skipToSep(line, pos)
	case accCollectUint:
		v, c := decodeUintToSep(line, pos)
		if c.valid() {
			a.uints.Add(v)
		}
		return c
	case accCollectDate:
		d, c := decodeDate(line, pos, a.strictDate)
		if c.valid() {
			a.dates.Add(d)
		}
		return c
	case accCollectBytes:
		b, c := captureToSep(line, pos)
		if c.valid() {
			a.bytes.Add(b)
		}
		return c
	case accConvertUint:
		v, c := decodeUintToSep(line, pos)
		if c.valid() {
			a.uintFn(v)
		}
		return c
	case accConvertDate:
		d, c := decodeDate(line, pos, a.strictDate)
		if c.valid() {
			a.dateFn(d)
		}
		return c
	case accConvertBytes:
		b, c := captureToSep(line, pos)
		if c.valid() {
			a.bytesFn(b)
		}
		return c
	default:
		return failCursor(pos, failInvalidByte)
	}
}

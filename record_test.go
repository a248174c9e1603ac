package spellcsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spellAccumulators builds the accumulator sequence used by the line driver
// tests: unique-int, two unique-dates, two skips, two unique-byte columns.
func spellAccumulators(ids UintSet, dates DateSet, codes ByteSet) []Accumulator {
	return []Accumulator{
		CollectUint(ids),
		CollectDate(dates, false),
		CollectDate(dates, false),
		Skip(),
		Skip(),
		CollectBytes(codes),
		CollectBytes(codes),
	}
}

func TestApplyLine(t *testing.T) {
	t.Parallel()

	t.Run("Full line succeeds with sentinel pair", func(t *testing.T) {
		t.Parallel()

		ids := NewUintSet()
		dates := NewDateSet()
		codes := NewByteSet()
		accs := spellAccumulators(ids, dates, codes)

		pos, field := applyLine([]byte("9997;19800101;19900101;0;0;CC;BB;"), accs)
		require.Zero(t, pos, "expected success sentinel position")
		require.Zero(t, field, "expected success sentinel field")

		pos, field = applyLine([]byte("1212;19850101;19950101;0;0;CC;DD;"), accs)
		require.Zero(t, pos)
		require.Zero(t, field)

		assert.Len(t, ids, 2)
		assert.True(t, ids.Has(9997))
		assert.True(t, ids.Has(1212))

		assert.Len(t, dates, 4, "expected the union of all distinct dates")
		assert.True(t, dates.Has(Date{Year: 1980, Month: 1, Day: 1}))
		assert.True(t, dates.Has(Date{Year: 1995, Month: 1, Day: 1}))

		assert.ElementsMatch(t, []string{"BB", "CC", "DD"}, codes.Values())
	})

	t.Run("Malformed first field", func(t *testing.T) {
		t.Parallel()

		accs := spellAccumulators(NewUintSet(), NewDateSet(), NewByteSet())
		pos, field := applyLine([]byte("MALFORMED;"), accs)
		assert.Equal(t, 1, pos, "byte position is 1-based")
		assert.Equal(t, 1, field, "field index is 1-based")
	})

	t.Run("Malformed second field", func(t *testing.T) {
		t.Parallel()

		accs := spellAccumulators(NewUintSet(), NewDateSet(), NewByteSet())
		pos, field := applyLine([]byte("11;MALFORMED;"), accs)
		assert.Equal(t, 4, pos)
		assert.Equal(t, 2, field)
	})

	t.Run("No side effect on failing line", func(t *testing.T) {
		t.Parallel()

		ids := NewUintSet()
		dates := NewDateSet()
		codes := NewByteSet()
		accs := spellAccumulators(ids, dates, codes)

		// The id and first date decode before the second date fails, so the
		// sets legitimately hold the prefix values; the failing field itself
		// must leave no trace.
		pos, field := applyLine([]byte("11;19800101;19809901;0;0;CC;BB;"), accs)
		assert.Equal(t, 17, pos, "calendar failures point at the month component")
		assert.Equal(t, 3, field)
		assert.Len(t, dates, 1)
	})

	t.Run("Trailing content beyond accumulators is ignored", func(t *testing.T) {
		t.Parallel()

		ids := NewUintSet()
		accs := []Accumulator{CollectUint(ids)}
		pos, field := applyLine([]byte("42;whatever;else;"), accs)
		assert.Zero(t, pos)
		assert.Zero(t, field)
		assert.True(t, ids.Has(42))
	})

	t.Run("Truncated line fails at end of line", func(t *testing.T) {
		t.Parallel()

		accs := spellAccumulators(NewUintSet(), NewDateSet(), NewByteSet())
		pos, field := applyLine([]byte("9997;19800101"), accs)
		assert.Equal(t, 14, pos, "end of line reported one past the last byte")
		assert.Equal(t, 2, field)
	})
}

func TestAccumulator_Convert(t *testing.T) {
	t.Parallel()

	t.Run("ConvertUint forwards decoded value", func(t *testing.T) {
		t.Parallel()

		var got []uint64
		acc := ConvertUint(func(v uint64) { got = append(got, v) })
		c := acc.apply([]byte("123;"), 0)
		require.True(t, c.valid())
		assert.Equal(t, []uint64{123}, got)
	})

	t.Run("ConvertUint has no effect on failure", func(t *testing.T) {
		t.Parallel()

		calls := 0
		acc := ConvertUint(func(uint64) { calls++ })
		c := acc.apply([]byte("x;"), 0)
		require.False(t, c.valid())
		assert.Zero(t, calls)
	})

	t.Run("ConvertDate strict rejects day zero", func(t *testing.T) {
		t.Parallel()

		calls := 0
		acc := ConvertDateStrict(func(Date) { calls++ })
		c := acc.apply([]byte("19800100;"), 0)
		require.False(t, c.valid())
		assert.Zero(t, calls)
	})

	t.Run("ConvertBytes borrows the span", func(t *testing.T) {
		t.Parallel()

		line := []byte("AB;")
		var got string
		acc := ConvertBytes(func(b []byte) { got = string(b) })
		c := acc.apply(line, 0)
		require.True(t, c.valid())
		assert.Equal(t, "AB", got)
	})
}

func TestSets(t *testing.T) {
	t.Parallel()

	t.Run("UintSet values sorted and deduplicated", func(t *testing.T) {
		t.Parallel()

		s := NewUintSet()
		s.Add(9)
		s.Add(1)
		s.Add(9)
		assert.Equal(t, []uint64{1, 9}, s.Values())

		minV, maxV, ok := s.Range()
		require.True(t, ok)
		assert.Equal(t, uint64(1), minV)
		assert.Equal(t, uint64(9), maxV)
	})

	t.Run("UintSet range of empty set", func(t *testing.T) {
		t.Parallel()

		_, _, ok := NewUintSet().Range()
		assert.False(t, ok)
	})

	t.Run("DateSet values chronological", func(t *testing.T) {
		t.Parallel()

		s := NewDateSet()
		s.Add(Date{Year: 1990, Month: 1, Day: 1})
		s.Add(Date{Year: 1980, Month: 6, Day: 15})
		s.Add(Date{Year: 1990, Month: 1, Day: 1})
		values := s.Values()
		require.Len(t, values, 2)
		assert.Equal(t, Date{Year: 1980, Month: 6, Day: 15}, values[0])
	})

	t.Run("ByteSet copies members", func(t *testing.T) {
		t.Parallel()

		s := NewByteSet()
		buf := []byte("CC")
		s.Add(buf)
		buf[0] = 'X' // mutate the source buffer after insertion
		assert.True(t, s.Has("CC"))
		assert.False(t, s.Has("XC"))
	})
}

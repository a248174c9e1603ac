package spellcsv

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessLines(t *testing.T) {
	t.Parallel()

	t.Run("Malformed lines logged without aborting", func(t *testing.T) {
		t.Parallel()

		ids := NewUintSet()
		codes := NewByteSet()
		accs := []Accumulator{CollectUint(ids), CollectBytes(codes)}

		input := "1;CC;\nbad;;\n2;DD;\n"
		records := 0
		var lines []int64

		log, err := ProcessLines(context.Background(), strings.NewReader(input), StreamConfig{
			Filename:     "data.csv.gz",
			Accumulators: accs,
			OnRecord:     func() error { records++; return nil },
			Progress:     func(line int64) { lines = append(lines, line) },
		})
		require.NoError(t, err)

		assert.Equal(t, 2, records)
		assert.Equal(t, []int64{1, 2, 3}, lines, "progress fires for every line")
		assert.ElementsMatch(t, []uint64{1, 2}, ids.Values())
		assert.ElementsMatch(t, []string{"CC", "DD"}, codes.Values())

		require.Equal(t, 1, log.Len())
		e := log.Errors()[0]
		assert.Equal(t, 2, e.Line)
		assert.Equal(t, 1, e.BytePos)
		assert.Equal(t, 1, e.FieldIndex)
		assert.Equal(t, "bad;;", string(e.Content))
		assert.Equal(t, "data.csv.gz: 1 error", log.Summary())
	})

	t.Run("Zero errors summary", func(t *testing.T) {
		t.Parallel()

		log, err := ProcessLines(context.Background(), strings.NewReader("1;\n"), StreamConfig{
			Filename:     "clean.csv.gz",
			Accumulators: []Accumulator{Skip()},
		})
		require.NoError(t, err)
		assert.Equal(t, "clean.csv.gz: 0 errors", log.Summary())
	})

	t.Run("Line cap stops processing", func(t *testing.T) {
		t.Parallel()

		ids := NewUintSet()
		log, err := ProcessLines(context.Background(), strings.NewReader("1;\n2;\n3;\n"), StreamConfig{
			Accumulators: []Accumulator{CollectUint(ids)},
			MaxLines:     2,
		})
		require.NoError(t, err)
		assert.Zero(t, log.Len())
		assert.Equal(t, []uint64{1, 2}, ids.Values())
	})

	t.Run("Negative cap means unbounded", func(t *testing.T) {
		t.Parallel()

		ids := NewUintSet()
		_, err := ProcessLines(context.Background(), strings.NewReader("1;\n2;\n"), StreamConfig{
			Accumulators: []Accumulator{CollectUint(ids)},
			MaxLines:     -1,
		})
		require.NoError(t, err)
		assert.Len(t, ids, 2)
	})

	t.Run("Header line skipped on request", func(t *testing.T) {
		t.Parallel()

		ids := NewUintSet()
		log, err := ProcessLines(context.Background(), strings.NewReader("persnr;\n7;\n"), StreamConfig{
			Accumulators: []Accumulator{CollectUint(ids)},
			SkipHeader:   true,
		})
		require.NoError(t, err)
		assert.Zero(t, log.Len())
		assert.Equal(t, []uint64{7}, ids.Values())
	})

	t.Run("Skipped header does not count toward the cap", func(t *testing.T) {
		t.Parallel()

		ids := NewUintSet()
		log, err := ProcessLines(context.Background(), strings.NewReader("persnr;\n1;\n2;\n3;\n"), StreamConfig{
			Accumulators: []Accumulator{CollectUint(ids)},
			SkipHeader:   true,
			MaxLines:     2,
		})
		require.NoError(t, err)
		assert.Zero(t, log.Len())
		assert.Equal(t, []uint64{1, 2}, ids.Values())
	})

	t.Run("Cancelled context aborts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ProcessLines(ctx, strings.NewReader("1;\n2;\n"), StreamConfig{
			Accumulators: []Accumulator{Skip()},
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Record callback error aborts", func(t *testing.T) {
		t.Parallel()

		_, err := ProcessLines(context.Background(), strings.NewReader("1;\n"), StreamConfig{
			Accumulators: []Accumulator{Skip()},
			OnRecord:     func() error { return ErrIndexCapacity },
		})
		assert.ErrorIs(t, err, ErrIndexCapacity)
	})

	t.Run("Empty input yields empty log", func(t *testing.T) {
		t.Parallel()

		log, err := ProcessLines(context.Background(), strings.NewReader(""), StreamConfig{
			Filename:     "empty.csv.gz",
			Accumulators: []Accumulator{Skip()},
		})
		require.NoError(t, err)
		assert.Zero(t, log.Len())
	})
}

package spellcsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColumns(t *testing.T) {
	t.Parallel()

	header := []string{"persnr", "begepi", "endepi", "dummy1", "dummy2", "beruf", "wz"}

	t.Run("Gaps filled with skip accumulators", func(t *testing.T) {
		t.Parallel()

		ids := NewUintSet()
		codes := NewByteSet()
		accs, err := ResolveColumns(header, []ColumnSpec{
			{Name: "persnr", Accumulator: CollectUint(ids)},
			{Name: "beruf", Accumulator: CollectBytes(codes)},
		})
		require.NoError(t, err)
		require.Len(t, accs, 6, "sequence covers columns up to the last declared one")

		pos, field := applyLine([]byte("42;19800101;19900101;0;0;CC;BB;"), accs)
		assert.Zero(t, pos)
		assert.Zero(t, field)
		assert.True(t, ids.Has(42))
		assert.True(t, codes.Has("CC"))
		assert.False(t, codes.Has("BB"), "trailing undeclared column must be ignored")
	})

	t.Run("Unknown column name", func(t *testing.T) {
		t.Parallel()

		_, err := ResolveColumns(header, []ColumnSpec{
			{Name: "nonexistent", Accumulator: Skip()},
		})
		assert.ErrorIs(t, err, ErrColumnNotFound)
	})

	t.Run("Columns declared out of order", func(t *testing.T) {
		t.Parallel()

		_, err := ResolveColumns(header, []ColumnSpec{
			{Name: "beruf", Accumulator: Skip()},
			{Name: "persnr", Accumulator: Skip()},
		})
		assert.ErrorIs(t, err, ErrColumnOrder)
	})

	t.Run("Duplicate spec for one column", func(t *testing.T) {
		t.Parallel()

		_, err := ResolveColumns(header, []ColumnSpec{
			{Name: "persnr", Accumulator: Skip()},
			{Name: "persnr", Accumulator: Skip()},
		})
		assert.ErrorIs(t, err, ErrColumnOrder)
	})

	t.Run("Duplicate header names rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ResolveColumns([]string{"a", "b", "a"}, []ColumnSpec{
			{Name: "b", Accumulator: Skip()},
		})
		assert.ErrorIs(t, err, ErrDuplicateColumnName)
	})

	t.Run("Empty spec list", func(t *testing.T) {
		t.Parallel()

		accs, err := ResolveColumns(header, nil)
		require.NoError(t, err)
		assert.Empty(t, accs)
	})
}

func TestParseHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{
			name:     "Plain header",
			line:     "persnr;begepi;endepi",
			expected: []string{"persnr", "begepi", "endepi"},
		},
		{
			name:     "Trailing newline stripped",
			line:     "persnr;begepi\n",
			expected: []string{"persnr", "begepi"},
		},
		{
			name:     "Windows line ending stripped",
			line:     "persnr;begepi\r\n",
			expected: []string{"persnr", "begepi"},
		},
		{
			name:     "Single column",
			line:     "persnr",
			expected: []string{"persnr"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, ParseHeader(tt.line))
		})
	}
}

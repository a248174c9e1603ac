package spellcsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDCounter(t *testing.T) {
	t.Parallel()

	t.Run("Tallies repeated identifiers", func(t *testing.T) {
		t.Parallel()

		c := NewIDCounter()
		for _, id := range []uint64{9997, 1212, 9997, 9997} {
			c.Add(id)
		}

		assert.Equal(t, uint64(3), c.Count(9997))
		assert.Equal(t, uint64(1), c.Count(1212))
		assert.Zero(t, c.Count(5), "unseen identifier counts zero")
		assert.Equal(t, 2, c.Len())
		assert.Equal(t, uint64(4), c.Total())
		assert.Equal(t, uint64(3), c.MaxCount())
	})

	t.Run("Empty counter", func(t *testing.T) {
		t.Parallel()

		c := NewIDCounter()
		assert.Zero(t, c.Len())
		assert.Zero(t, c.Total())
		assert.Zero(t, c.MaxCount())
	})
}
